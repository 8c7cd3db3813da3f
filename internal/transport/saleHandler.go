package transport

import (
	"net/http"
	"time"

	"github.com/Kgadrw/profit-backend/internal/service"
	"github.com/Kgadrw/profit-backend/internal/transport/middleware"

	"github.com/gin-gonic/gin"
)

type SaleHandler struct {
	saleService service.SaleService
}

func NewSaleHandler(saleService service.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

func (h *SaleHandler) RecordSale(c *gin.Context) {
	var req service.RecordSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sale, err := h.saleService.RecordSale(c.Request.Context(), middleware.TenantID(c), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, sale)
}

func (h *SaleHandler) GetSales(c *gin.Context) {
	from, to, err := parsePeriod(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sales, err := h.saleService.GetSales(c.Request.Context(), middleware.TenantID(c), from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, sales)
}

func (h *SaleHandler) GetSale(c *gin.Context) {
	sale, err := h.saleService.GetSale(c.Request.Context(), middleware.TenantID(c), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, sale)
}

// parsePeriod reads optional from/to query params, defaulting to the
// last 30 days.
func parsePeriod(c *gin.Context) (time.Time, time.Time, error) {
	now := time.Now()
	from := now.AddDate(0, 0, -30)
	to := now

	if s := c.Query("from"); s != "" {
		parsed, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		from = parsed
	}
	if s := c.Query("to"); s != "" {
		parsed, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		to = parsed
	}

	return from, to, nil
}
