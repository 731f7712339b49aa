package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"docex/internal/domain"
	"docex/internal/port"
	"docex/internal/validator"
)

// allowedExtensions maps accepted upload extensions to the content type
// forwarded to the LLM provider.
var allowedExtensions = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".webp": "image/webp",
	".pdf":  "application/pdf",
}

// ProgressFunc receives step updates during an upload session. A non-nil
// return stops the pipeline: the consumer is gone and no further work is
// worth doing.
type ProgressFunc func(step domain.ProcessingStep) error

// UploadInput is one invoice upload.
type UploadInput struct {
	Filename    string
	ContentType string
	FileBytes   []byte
	SaveToDB    bool
}

// ValidationSummary is the advisory validation outcome attached to a result.
type ValidationSummary struct {
	IsValid bool     `json:"is_valid"`
	Issues  []string `json:"issues"`
}

// SaveSummary reports the persistence outcome when a save was requested.
type SaveSummary struct {
	Saved   bool   `json:"saved"`
	OrderID int    `json:"order_id,omitempty"`
	Message string `json:"message,omitempty"`
}

// UploadResult is the terminal payload of a successful upload session.
type UploadResult struct {
	Extraction *domain.ExtractedInvoice `json:"extraction"`
	Provider   string                   `json:"provider"`
	ModelUsed  string                   `json:"model_used,omitempty"`
	Validation ValidationSummary        `json:"validation"`
	Database   *SaveSummary             `json:"database,omitempty"`
}

// ExtractionService runs the upload pipeline: validate the file, parse it
// with the LLM chain, validate the extraction arithmetic, and optionally
// persist the result.
type ExtractionService struct {
	parser       port.InvoiceParser
	rules        *validator.Registry
	orders       *OrderService
	maxFileBytes int64
}

// NewExtractionService creates an ExtractionService.
func NewExtractionService(p port.InvoiceParser, rules *validator.Registry, orders *OrderService, maxFileSizeMB int64) *ExtractionService {
	return &ExtractionService{
		parser:       p,
		rules:        rules,
		orders:       orders,
		maxFileBytes: maxFileSizeMB * 1024 * 1024,
	}
}

// ValidateFile gates an upload on extension and size before any provider
// call is made. It returns the content type the parser should receive.
func (s *ExtractionService) ValidateFile(filename string, size int64) (string, error) {
	if filename == "" || size == 0 {
		return "", domain.ErrNoFile
	}
	ext := strings.ToLower(filepath.Ext(filename))
	contentType, ok := allowedExtensions[ext]
	if !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedFileType, ext)
	}
	if s.maxFileBytes > 0 && size > s.maxFileBytes {
		return "", fmt.Errorf("%w: %d bytes", domain.ErrFileTooLarge, size)
	}
	return contentType, nil
}

// wrapParseError keeps the whole-chain failure sentinel visible to error
// mapping; any other parse failure is reported as an extraction failure.
func wrapParseError(err error) error {
	if errors.Is(err, domain.ErrAllProvidersFailed) {
		return err
	}
	return fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
}

// Extract parses an invoice image and validates the result. It is the
// non-streaming path behind the plain extract endpoint.
func (s *ExtractionService) Extract(ctx context.Context, input UploadInput) (*UploadResult, error) {
	contentType, err := s.ValidateFile(input.Filename, int64(len(input.FileBytes)))
	if err != nil {
		return nil, err
	}
	if input.ContentType != "" {
		contentType = input.ContentType
	}

	out, err := s.parser.Parse(ctx, port.ParseInput{
		FileBytes:   input.FileBytes,
		ContentType: contentType,
	})
	if err != nil {
		return nil, wrapParseError(err)
	}

	isValid, issues, _ := s.rules.Run(ctx, out.Invoice)
	return &UploadResult{
		Extraction: out.Invoice,
		Provider:   out.Provider,
		ModelUsed:  out.ModelUsed,
		Validation: ValidationSummary{IsValid: isValid, Issues: issues},
	}, nil
}

// ProcessUpload runs the full streaming pipeline, reporting each step
// through emit. Step order is fixed: validate, upload, analyze, extract,
// and (when requested) save. An emit error aborts the run: the stream
// consumer disconnected and the session is abandoned at that point.
//
// A failed save does not fail the session. The extraction already
// succeeded; the save step reports its own error status and the terminal
// result still carries the extracted data. An extraction with validation
// issues is never persisted: the save step reports an error and the data
// is left for the client to edit and save explicitly.
func (s *ExtractionService) ProcessUpload(ctx context.Context, input UploadInput, emit ProgressFunc) (*UploadResult, error) {
	step := func(id string, status domain.StepStatus, msg string) error {
		return emit(domain.ProcessingStep{ID: id, Status: status, Message: msg})
	}

	if err := step(domain.StepValidate, domain.StepActive, "Validating file"); err != nil {
		return nil, err
	}
	contentType, err := s.ValidateFile(input.Filename, int64(len(input.FileBytes)))
	if err != nil {
		_ = step(domain.StepValidate, domain.StepError, err.Error())
		return nil, err
	}
	if input.ContentType != "" {
		contentType = input.ContentType
	}
	if err := step(domain.StepValidate, domain.StepComplete, "File accepted"); err != nil {
		return nil, err
	}

	if err := step(domain.StepUpload, domain.StepActive, "Reading file"); err != nil {
		return nil, err
	}
	if err := step(domain.StepUpload, domain.StepComplete, fmt.Sprintf("Read %d bytes", len(input.FileBytes))); err != nil {
		return nil, err
	}

	if err := step(domain.StepAnalyze, domain.StepActive, "Analyzing document with AI"); err != nil {
		return nil, err
	}
	out, err := s.parser.Parse(ctx, port.ParseInput{
		FileBytes:   input.FileBytes,
		ContentType: contentType,
	})
	if err != nil {
		_ = step(domain.StepAnalyze, domain.StepError, "Extraction failed")
		return nil, wrapParseError(err)
	}
	if err := step(domain.StepAnalyze, domain.StepComplete, fmt.Sprintf("Analyzed with %s", out.Provider)); err != nil {
		return nil, err
	}

	if err := step(domain.StepExtract, domain.StepActive, "Structuring extracted data"); err != nil {
		return nil, err
	}
	isValid, issues, _ := s.rules.Run(ctx, out.Invoice)
	extractMsg := "Extraction validated"
	if !isValid {
		extractMsg = fmt.Sprintf("Extracted with %d validation issue(s)", len(issues))
	}
	if err := step(domain.StepExtract, domain.StepComplete, extractMsg); err != nil {
		return nil, err
	}

	result := &UploadResult{
		Extraction: out.Invoice,
		Provider:   out.Provider,
		ModelUsed:  out.ModelUsed,
		Validation: ValidationSummary{IsValid: isValid, Issues: issues},
	}

	if input.SaveToDB {
		if !isValid {
			result.Database = &SaveSummary{Saved: false, Message: "Cannot save - validation failed"}
			_ = step(domain.StepSave, domain.StepError, "Cannot save - validation failed")
			return result, nil
		}
		if err := step(domain.StepSave, domain.StepActive, "Saving to database"); err != nil {
			return nil, err
		}
		orderID, saveErr := s.orders.SaveExtracted(ctx, out.Invoice, out.Provider)
		if saveErr != nil {
			log.Error().Err(saveErr).Msg("failed to save extracted order")
			result.Database = &SaveSummary{Saved: false, Message: saveErr.Error()}
			_ = step(domain.StepSave, domain.StepError, "Save failed")
		} else {
			result.Database = &SaveSummary{
				Saved:   true,
				OrderID: orderID,
				Message: fmt.Sprintf("Saved as order %d", orderID),
			}
			if err := step(domain.StepSave, domain.StepComplete, fmt.Sprintf("Saved as order %d", orderID)); err != nil {
				return nil, err
			}
		}
	}

	return result, nil
}
