package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"docex/internal/domain"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Meta carries response metadata. Currently only pagination.
type Meta struct {
	Pagination *PagMeta `json:"pagination,omitempty"`
}

// PagMeta holds pagination metadata.
type PagMeta struct {
	Page       int  `json:"page"`
	PerPage    int  `json:"per_page"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// NewPagMeta derives full pagination metadata from a page request and the
// total match count.
func NewPagMeta(page, perPage, total int) PagMeta {
	totalPages := 0
	if perPage > 0 {
		totalPages = (total + perPage - 1) / perPage
	}
	return PagMeta{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1 && total > 0,
	}
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondPaginated sends a 200 success response with pagination metadata.
func RespondPaginated(c *gin.Context, data interface{}, meta PagMeta) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    data,
		Meta:    &Meta{Pagination: &meta},
	})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// Stable error codes returned in the envelope.
const (
	CodeValidation = "ERR_VALIDATION"
	CodeNotFound   = "ERR_NOT_FOUND"
	CodeFileType   = "ERR_FILE_TYPE"
	CodeExtraction = "ERR_EXTRACTION"
	CodeLLMFailed  = "ERR_LLM_FAILED"
	CodeInternal   = "ERR_INTERNAL"
)

// MapDomainError translates domain errors to HTTP status and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, CodeNotFound, "resource not found"
	case errors.Is(err, domain.ErrNoFile):
		return http.StatusBadRequest, CodeValidation, "no file uploaded"
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, CodeFileType, "unsupported file type; allowed: png, jpg, jpeg, webp, pdf"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, CodeValidation, "file exceeds maximum allowed size"
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, CodeValidation, err.Error()
	case errors.Is(err, domain.ErrAllProvidersFailed):
		return http.StatusBadGateway, CodeLLMFailed, "all extraction providers failed"
	case errors.Is(err, domain.ErrExtractionFailed):
		return http.StatusBadGateway, CodeExtraction, "extraction failed"
	case errors.Is(err, domain.ErrSaveFailed):
		return http.StatusInternalServerError, CodeInternal, "saving extracted order failed"
	default:
		return http.StatusInternalServerError, CodeInternal, "internal server error"
	}
}

// HandleError writes the mapped error response and logs server-side failures.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
	}
	RespondError(c, status, code, msg)
}
