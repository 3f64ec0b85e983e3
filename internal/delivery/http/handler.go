package http

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bluepin/backend/internal/domain"
	"github.com/bluepin/backend/internal/usecase"
)

// Version is reported by the health check
const Version = "1.0.0"

// Services bundles the use cases served over HTTP
type Services struct {
	Catalog     *usecase.CatalogService
	Analysis    *usecase.AnalysisService
	Aggregation *usecase.AggregationService
	Comparison  *usecase.ComparisonService
	Wishlist    *usecase.WishlistService
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	catalog     *usecase.CatalogService
	analysis    *usecase.AnalysisService
	aggregation *usecase.AggregationService
	comparison  *usecase.ComparisonService
	wishlist    *usecase.WishlistService
	logger      *zap.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(svc Services, logger *zap.Logger) *Handler {
	return &Handler{
		catalog:     svc.Catalog,
		analysis:    svc.Analysis,
		aggregation: svc.Aggregation,
		comparison:  svc.Comparison,
		wishlist:    svc.Wishlist,
		logger:      logger,
	}
}

// HealthCheck returns the health status of the API and the loaded snapshot
func (h *Handler) HealthCheck(c *gin.Context) {
	status := h.catalog.Status(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"status":     "healthy",
		"service":    "bluepin-backend",
		"version":    Version,
		"generation": status.Generation,
		"products":   status.ProductCount,
		"dataLoaded": status.ProductCount > 0,
	})
}

// respondError maps domain errors to HTTP status codes
func (h *Handler) respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.Error(err),
		)
		c.AbortWithStatusJSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrProductNotFound), errors.Is(err, domain.ErrWishlistItemNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrWishlistDuplicate):
		return http.StatusConflict
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, domain.ErrNoDataSources):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// queryFloat parses an optional finite float query parameter
func queryFloat(c *gin.Context, key string) (*float64, error) {
	raw, ok := c.GetQuery(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("%w: %s must be a number", domain.ErrInvalidRequest, key)
	}
	return &v, nil
}

// queryInt parses an optional integer query parameter; absent means 0
func queryInt(c *gin.Context, key string) (int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidRequest, key)
	}
	return v, nil
}

// productCriteria reads min_price, max_price, min_rating, category and search
func productCriteria(c *gin.Context) (domain.ProductCriteria, error) {
	var (
		criteria domain.ProductCriteria
		err      error
	)
	if criteria.MinPrice, err = queryFloat(c, "min_price"); err != nil {
		return criteria, err
	}
	if criteria.MaxPrice, err = queryFloat(c, "max_price"); err != nil {
		return criteria, err
	}
	if criteria.MinRating, err = queryFloat(c, "min_rating"); err != nil {
		return criteria, err
	}
	criteria.Category = c.Query("category")
	criteria.Search = c.Query("search")
	return criteria, nil
}

// supplierCriteria reads min_price, max_price, min_rating, location, product and search
func supplierCriteria(c *gin.Context) (domain.SupplierCriteria, error) {
	var (
		criteria domain.SupplierCriteria
		err      error
	)
	if criteria.MinPrice, err = queryFloat(c, "min_price"); err != nil {
		return criteria, err
	}
	if criteria.MaxPrice, err = queryFloat(c, "max_price"); err != nil {
		return criteria, err
	}
	if criteria.MinRating, err = queryFloat(c, "min_rating"); err != nil {
		return criteria, err
	}
	criteria.Location = c.Query("location")
	criteria.ProductSearched = c.Query("product")
	criteria.Search = c.Query("search")
	return criteria, nil
}

// queryList collects a repeated parameter, dropping blanks
func queryList(c *gin.Context, key string) []string {
	var out []string
	for _, v := range c.QueryArray(key) {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
