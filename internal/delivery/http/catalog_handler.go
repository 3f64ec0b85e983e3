package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListProducts returns the products matching the query filters
func (h *Handler) ListProducts(c *gin.Context) {
	criteria, err := productCriteria(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	products := h.catalog.FilterProducts(c.Request.Context(), criteria)
	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

// GetProduct returns one product by identifier
func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.catalog.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// ProductSuppliers returns the suppliers found for a product
func (h *Handler) ProductSuppliers(c *gin.Context) {
	id := c.Param("id")
	suppliers, err := h.catalog.SuppliersForProduct(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"productIdentifier": id,
		"suppliers":         suppliers,
		"count":             len(suppliers),
	})
}

// ListSuppliers returns the supplier rows matching the query filters
func (h *Handler) ListSuppliers(c *gin.Context) {
	criteria, err := supplierCriteria(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	suppliers := h.catalog.FilterSuppliers(c.Request.Context(), criteria)
	c.JSON(http.StatusOK, gin.H{
		"suppliers": suppliers,
		"count":     len(suppliers),
	})
}

// FilterOptions returns the values the dashboard filters can take
func (h *Handler) FilterOptions(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.FilterOptions(c.Request.Context()))
}

// Search runs the global product and supplier search
func (h *Handler) Search(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Search(c.Request.Context(), c.Query("q")))
}
