package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/openclaims/riskprice/internal/middleware"
	"github.com/openclaims/riskprice/internal/pkg/errcode"
	appErr "github.com/openclaims/riskprice/internal/pkg/errors"
	"github.com/openclaims/riskprice/internal/pkg/response"
)

func getSubject(c *gin.Context) string {
	value, _ := c.Get(middleware.ContextSubjectKey)
	subject, _ := value.(string)
	return subject
}

func handleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	logutil.GetLogger(c.Request.Context()).Error("request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.String("subject", getSubject(c)),
		zap.Error(err),
	)
	switch {
	case errors.Is(err, appErr.ErrMissingArtifact):
		response.Error(c, http.StatusConflict, errcode.ErrMissingArtifact,
			"no trained model artifacts found: trigger a retrain first")
	case errors.Is(err, appErr.ErrInsufficientData):
		response.Error(c, http.StatusConflict, errcode.ErrInsufficientData,
			"not enough documents to train a model")
	case errors.Is(err, appErr.ErrNoUsableDocuments):
		response.Error(c, http.StatusConflict, errcode.ErrNoUsableDocuments,
			"no recent documents with readable text to score")
	case errors.Is(err, appErr.ErrProductNotFound):
		response.Error(c, http.StatusNotFound, errcode.ErrProductNotFound, "product not found")
	case errors.Is(err, appErr.ErrInvalidPrice):
		response.Error(c, http.StatusConflict, errcode.ErrInvalidPrice,
			"product has no base price set")
	case errors.Is(err, appErr.ErrUnauthorized):
		response.Error(c, http.StatusUnauthorized, errcode.ErrUnauthorized, "unauthorized")
	case errors.Is(err, appErr.ErrNotFound):
		response.Error(c, http.StatusNotFound, errcode.ErrNotFound, "not found")
	case errors.Is(err, appErr.ErrInvalid):
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalid, "invalid request")
	case errors.Is(err, appErr.ErrConflict):
		response.Error(c, http.StatusConflict, errcode.ErrConflict, "conflict")
	default:
		response.Error(c, http.StatusInternalServerError, errcode.ErrInternal, "internal error")
	}
}
