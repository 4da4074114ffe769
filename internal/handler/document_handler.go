package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/openclaims/riskprice/internal/pkg/errcode"
	"github.com/openclaims/riskprice/internal/pkg/response"
	"github.com/openclaims/riskprice/internal/service"
)

const maxUploadBytes = 10 << 20

type DocumentHandler struct {
	documents *service.DocumentService
}

func NewDocumentHandler(documents *service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documents: documents}
}

// Ingest accepts a multipart upload (field "file") plus a customer_id form
// value and registers the document for the pricing pipeline.
func (h *DocumentHandler) Ingest(c *gin.Context) {
	customerID, err := strconv.ParseInt(c.PostForm("customer_id"), 10, 64)
	if err != nil || customerID <= 0 {
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalid, "customer_id is required")
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalid, "file is required")
		return
	}
	if fileHeader.Size > maxUploadBytes {
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalid, "file too large")
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		handleError(c, err)
		return
	}
	defer f.Close()
	content, err := io.ReadAll(io.LimitReader(f, maxUploadBytes))
	if err != nil {
		handleError(c, err)
		return
	}

	doc, err := h.documents.Ingest(c.Request.Context(), service.IngestInput{
		FileName:   fileHeader.Filename,
		Content:    content,
		CustomerID: customerID,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, doc)
}
