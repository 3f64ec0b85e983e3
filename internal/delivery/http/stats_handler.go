package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bluepin/backend/internal/usecase"
)

// Stats returns the overview statistics
func (h *Handler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.aggregation.OverviewStats(c.Request.Context()))
}

// TopProducts ranks products by the metric query parameter
func (h *Handler) TopProducts(c *gin.Context) {
	limit, err := queryInt(c, "limit")
	if err != nil {
		h.respondError(c, err)
		return
	}
	metric := c.DefaultQuery("metric", usecase.MetricRatings)

	products, err := h.aggregation.TopProducts(c.Request.Context(), metric, limit)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"metric":   metric,
		"products": products,
	})
}

// TopSuppliers ranks suppliers by the metric query parameter
func (h *Handler) TopSuppliers(c *gin.Context) {
	limit, err := queryInt(c, "limit")
	if err != nil {
		h.respondError(c, err)
		return
	}
	metric := c.DefaultQuery("metric", usecase.SupplierMetricRating)

	suppliers, err := h.aggregation.TopSuppliers(c.Request.Context(), metric, limit)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"metric":    metric,
		"suppliers": suppliers,
	})
}

// Categories returns per-category statistics
func (h *Handler) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"categories": h.aggregation.CategoryBreakdown(c.Request.Context()),
	})
}

// PriceDistribution returns the price histogram
func (h *Handler) PriceDistribution(c *gin.Context) {
	bins, err := queryInt(c, "bins")
	if err != nil {
		h.respondError(c, err)
		return
	}

	hist, err := h.aggregation.PriceDistribution(c.Request.Context(), bins)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, hist)
}

// RatingDistribution returns the rating histogram
func (h *Handler) RatingDistribution(c *gin.Context) {
	c.JSON(http.StatusOK, h.aggregation.RatingDistribution(c.Request.Context()))
}

// LocationStats returns per-location supplier statistics
func (h *Handler) LocationStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"locations": h.aggregation.LocationStats(c.Request.Context()),
	})
}

// ProductCharts returns chart series for the filtered products
func (h *Handler) ProductCharts(c *gin.Context) {
	criteria, err := productCriteria(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.aggregation.ProductCharts(c.Request.Context(), criteria))
}

// SupplierCharts returns chart series for the filtered suppliers
func (h *Handler) SupplierCharts(c *gin.Context) {
	criteria, err := supplierCriteria(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.aggregation.SupplierCharts(c.Request.Context(), criteria))
}
