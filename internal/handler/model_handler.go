package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/openclaims/riskprice/internal/pkg/response"
	"github.com/openclaims/riskprice/internal/repo"
	"github.com/openclaims/riskprice/internal/service"
)

type ModelHandler struct {
	training *service.TrainingService
	state    *repo.StateRepo
}

func NewModelHandler(training *service.TrainingService, state *repo.StateRepo) *ModelHandler {
	return &ModelHandler{training: training, state: state}
}

// Retrain runs the retraining gate once and reports what it decided.
func (h *ModelHandler) Retrain(c *gin.Context) {
	result, err := h.training.TrainIfNeeded(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, result)
}

// State reports the committed model version and watermark.
func (h *ModelHandler) State(c *gin.Context) {
	state, err := h.state.Get(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, state)
}
