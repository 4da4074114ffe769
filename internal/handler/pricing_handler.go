package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/openclaims/riskprice/internal/pkg/errcode"
	"github.com/openclaims/riskprice/internal/pkg/response"
	"github.com/openclaims/riskprice/internal/service"
)

type PricingHandler struct {
	pricing *service.PricingService
}

func NewPricingHandler(pricing *service.PricingService) *PricingHandler {
	return &PricingHandler{pricing: pricing}
}

// Factor computes the current pricing factor without touching any price.
func (h *PricingHandler) Factor(c *gin.Context) {
	result, err := h.pricing.PredictFactor(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, result)
}

type applyRequest struct {
	ProductID  int64 `json:"product_id"`
	PolicyID   int64 `json:"policy_id"`
	CustomerID int64 `json:"customer_id"`
}

// Apply recomputes the factor and writes the new price with its audit
// record. Omitted ids fall back to the demo defaults.
func (h *PricingHandler) Apply(c *gin.Context) {
	req := applyRequest{ProductID: 1, PolicyID: 1, CustomerID: 1}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, errcode.ErrInvalid, "malformed request body")
			return
		}
	}
	result, err := h.pricing.ApplyPricing(c.Request.Context(), req.ProductID, req.PolicyID, req.CustomerID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, result)
}

// parseID is shared by quote-style routes taking :id.
func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalid, "invalid "+name)
		return 0, false
	}
	return id, true
}
