package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/openclaims/riskprice/internal/pkg/errcode"
	"github.com/openclaims/riskprice/internal/pkg/response"
	"github.com/openclaims/riskprice/internal/service"
)

type QuoteHandler struct {
	quotes *service.QuoteService
}

func NewQuoteHandler(quotes *service.QuoteService) *QuoteHandler {
	return &QuoteHandler{quotes: quotes}
}

// Quote prices a product for a customer at the current base price.
func (h *QuoteHandler) Quote(c *gin.Context) {
	productID, ok := parseID(c, "id")
	if !ok {
		return
	}
	customerID := int64(1)
	if raw := c.Query("customer_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			response.Error(c, http.StatusBadRequest, errcode.ErrInvalid, "invalid customer_id")
			return
		}
		customerID = parsed
	}
	result, err := h.quotes.Quote(c.Request.Context(), customerID, productID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, result)
}

type purchaseRequest struct {
	CustomerID int64 `json:"customer_id" binding:"required"`
	ProductID  int64 `json:"product_id" binding:"required"`
}

// Purchase sells a policy at the current base price.
func (h *QuoteHandler) Purchase(c *gin.Context) {
	var req purchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalid, "customer_id and product_id are required")
		return
	}
	result, err := h.quotes.Purchase(c.Request.Context(), req.CustomerID, req.ProductID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, result)
}
