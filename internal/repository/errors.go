package repository

import "errors"

var (
	// ErrInvalidDocumentURL indicates an invalid document URL
	ErrInvalidDocumentURL = errors.New("invalid document URL")

	// ErrResultNotFound indicates no stored result for the content key
	ErrResultNotFound = errors.New("extraction result not found")

	// ErrRepositoryUnavailable indicates the repository is unavailable
	ErrRepositoryUnavailable = errors.New("repository unavailable")
)
