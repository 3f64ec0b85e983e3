package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bluepin/backend/internal/domain"
)

// ProductAnalysis returns the AI score of one product
func (h *Handler) ProductAnalysis(c *gin.Context) {
	result, err := h.analysis.ScoreProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// TopPotential returns the highest scoring products
func (h *Handler) TopPotential(c *gin.Context) {
	limit, err := queryInt(c, "limit")
	if err != nil {
		h.respondError(c, err)
		return
	}

	results, err := h.analysis.TopPotential(c.Request.Context(), limit)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"products": results,
		"count":    len(results),
	})
}

// ScoreDistribution tallies every product per potential tier
func (h *Handler) ScoreDistribution(c *gin.Context) {
	c.JSON(http.StatusOK, h.analysis.ScoreDistribution(c.Request.Context()))
}

// CompareProducts compares the products named by repeated id parameters
func (h *Handler) CompareProducts(c *gin.Context) {
	ids := queryList(c, "id")
	if len(ids) == 0 {
		h.respondError(c, fmt.Errorf("%w: at least one id is required", domain.ErrInvalidRequest))
		return
	}

	products := h.comparison.CompareProducts(c.Request.Context(), ids)
	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

// CompareSuppliers compares the suppliers named by repeated name parameters
func (h *Handler) CompareSuppliers(c *gin.Context) {
	names := queryList(c, "name")
	if len(names) == 0 {
		h.respondError(c, fmt.Errorf("%w: at least one name is required", domain.ErrInvalidRequest))
		return
	}

	suppliers := h.comparison.CompareSuppliers(c.Request.Context(), names)
	c.JSON(http.StatusOK, gin.H{
		"suppliers": suppliers,
		"count":     len(suppliers),
	})
}

// ProductComparison compares a product against its suppliers
func (h *Handler) ProductComparison(c *gin.Context) {
	result, err := h.comparison.ProductVsSuppliers(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
