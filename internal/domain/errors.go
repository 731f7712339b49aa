package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrValidation          = errors.New("validation failed")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrNoFile              = errors.New("no file uploaded")
	ErrExtractionFailed    = errors.New("extraction failed")
	ErrAllProvidersFailed  = errors.New("all providers failed")
	ErrSaveFailed          = errors.New("saving extracted order failed")
)
