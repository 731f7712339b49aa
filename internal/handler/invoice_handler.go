package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-contrib/sse"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"docex/internal/domain"
	"docex/internal/service"
)

// InvoiceHandler handles invoice upload and extraction endpoints.
type InvoiceHandler struct {
	extraction *service.ExtractionService
	orders     *service.OrderService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(extraction *service.ExtractionService, orders *service.OrderService) *InvoiceHandler {
	return &InvoiceHandler{extraction: extraction, orders: orders}
}

// errClientGone marks a failed write to a disconnected stream consumer.
var errClientGone = errors.New("stream client disconnected")

func readUpload(c *gin.Context) (*service.UploadInput, error) {
	file, err := c.FormFile("file")
	if err != nil {
		return nil, domain.ErrNoFile
	}
	data, err := readMultipartFile(file)
	if err != nil {
		return nil, err
	}
	return &service.UploadInput{
		Filename:  file.Filename,
		FileBytes: data,
		SaveToDB:  saveRequested(c),
	}, nil
}

// saveRequested reads the persist flag. The browser client posts "save";
// "save_to_db" is accepted as an alias.
func saveRequested(c *gin.Context) bool {
	if v := c.PostForm("save"); v != "" {
		return v == "true"
	}
	return c.PostForm("save_to_db") == "true"
}

func readMultipartFile(file *multipart.FileHeader) ([]byte, error) {
	f, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// Upload handles POST /api/invoices/upload
// @Summary Upload and extract an invoice
// @Description Run the full pipeline on an uploaded invoice image, optionally saving the result
// @Tags invoices
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Invoice image (png, jpg, jpeg, webp, pdf)"
// @Param save formData string false "Persist the extraction as an order ('true' to enable)"
// @Success 200 {object} APIResponse{data=service.UploadResult} "Extraction result"
// @Failure 400 {object} APIResponse "Invalid upload"
// @Failure 502 {object} APIResponse "Extraction failed"
// @Router /invoices/upload [post]
func (h *InvoiceHandler) Upload(c *gin.Context) {
	input, err := readUpload(c)
	if err != nil {
		HandleError(c, err)
		return
	}

	result, err := h.extraction.ProcessUpload(c.Request.Context(), *input, func(domain.ProcessingStep) error {
		return nil
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, result)
}

// Extract handles POST /api/invoices/extract
// @Summary Extract an invoice without saving
// @Description Parse an uploaded invoice image and return the structured extraction
// @Tags invoices
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Invoice image (png, jpg, jpeg, webp, pdf)"
// @Success 200 {object} APIResponse{data=service.UploadResult} "Extraction result"
// @Failure 400 {object} APIResponse "Invalid upload"
// @Failure 502 {object} APIResponse "Extraction failed"
// @Router /invoices/extract [post]
func (h *InvoiceHandler) Extract(c *gin.Context) {
	input, err := readUpload(c)
	if err != nil {
		HandleError(c, err)
		return
	}

	result, err := h.extraction.Extract(c.Request.Context(), *input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, result)
}

// UploadStream handles POST /api/invoices/upload-stream
// @Summary Upload an invoice with streamed progress
// @Description Run the pipeline while emitting SSE step frames, ending with a terminal result frame
// @Tags invoices
// @Accept multipart/form-data
// @Produce text/event-stream
// @Param file formData file true "Invoice image (png, jpg, jpeg, webp, pdf)"
// @Param save formData string false "Persist the extraction as an order ('true' to enable)"
// @Router /invoices/upload-stream [post]
func (h *InvoiceHandler) UploadStream(c *gin.Context) {
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")
	c.Writer.WriteHeader(http.StatusOK)

	emit := func(payload interface{}) error {
		if err := sse.Encode(c.Writer, sse.Event{Data: payload}); err != nil {
			return errClientGone
		}
		c.Writer.Flush()
		return nil
	}

	// Multipart errors surface as an error result frame: by the time we
	// know, the SSE response has already started.
	input, err := readUpload(c)
	if err != nil {
		_, code, msg := MapDomainError(err)
		_ = emit(streamResult{Type: "result", Success: false, Error: &APIError{Code: code, Message: msg}})
		return
	}

	result, err := h.extraction.ProcessUpload(c.Request.Context(), *input, func(step domain.ProcessingStep) error {
		return emit(streamStep{Step: step.ID, Status: step.Status, Message: step.Message})
	})
	if errors.Is(err, errClientGone) {
		log.Debug().Msg("upload stream consumer disconnected")
		return
	}
	if err != nil {
		_, code, msg := MapDomainError(err)
		_ = emit(streamResult{Type: "result", Success: false, Error: &APIError{Code: code, Message: msg}})
		return
	}

	_ = emit(streamResult{Type: "result", Success: true, Data: result})
}

// streamStep is one SSE step frame.
type streamStep struct {
	Step    string            `json:"step"`
	Status  domain.StepStatus `json:"status"`
	Message string            `json:"message,omitempty"`
}

// streamResult is the terminal SSE frame.
type streamResult struct {
	Type    string      `json:"type"`
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// SaveEdited handles POST /api/invoices/save-edited
// @Summary Save an edited extraction
// @Description Persist a user-edited extraction as a new order
// @Tags invoices
// @Accept json
// @Produce json
// @Success 201 {object} APIResponse "Allocated order id"
// @Failure 400 {object} APIResponse "Invalid request body"
// @Router /invoices/save-edited [post]
func (h *InvoiceHandler) SaveEdited(c *gin.Context) {
	var req struct {
		Extraction *domain.ExtractedInvoice `json:"extraction" binding:"required"`
		Provider   string                   `json:"provider"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, CodeValidation, "extraction payload is required")
		return
	}

	orderID, err := h.orders.SaveExtracted(c.Request.Context(), req.Extraction, req.Provider)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, gin.H{"order_id": orderID})
}
