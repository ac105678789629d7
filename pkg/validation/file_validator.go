package validation

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	apperrors "go-id-extractor/internal/errors"
)

// FileCheck identifies which structural check a file failed.
type FileCheck string

const (
	CheckNonZeroSize FileCheck = "non_zero_size"
	CheckMaxSize     FileCheck = "max_size"
	CheckMIMEType    FileCheck = "mime_type"
	CheckSignature   FileCheck = "signature"
	CheckExtension   FileCheck = "extension"
)

// FileValidationResult reports the outcome of structural file validation.
// Expected failure modes are carried here as data, never as errors.
type FileValidationResult struct {
	Valid       bool           `json:"valid"`
	FailedCheck FileCheck      `json:"failed_check,omitempty"`
	Code        apperrors.Code `json:"code,omitempty"`
	Message     string         `json:"message,omitempty"`
}

// supported MIME types and their magic-byte signatures
var signatures = map[string][][]byte{
	"image/jpeg":      {{0xFF, 0xD8, 0xFF}},
	"image/png":       {{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}},
	"image/webp":      {{0x52, 0x49, 0x46, 0x46}}, // RIFF container, WEBP tag checked separately
	"application/pdf": {{0x25, 0x50, 0x44, 0x46}}, // %PDF
}

var extensions = map[string][]string{
	"image/jpeg":      {".jpg", ".jpeg"},
	"image/png":       {".png"},
	"image/webp":      {".webp"},
	"application/pdf": {".pdf"},
}

// FileValidator performs cheap structural checks on an incoming file blob
// before any pixel-level processing.
type FileValidator struct {
	maxSize int64
}

// NewFileValidator creates a validator with the given maximum file size in bytes.
func NewFileValidator(maxSize int64) *FileValidator {
	if maxSize <= 0 {
		maxSize = 10 * 1024 * 1024
	}
	return &FileValidator{maxSize: maxSize}
}

// Validate runs the structural checks in order: non-zero size, maximum size,
// supported MIME type, magic-byte signature, file extension. The first failing
// check is reported; later checks are not run.
func (v *FileValidator) Validate(data []byte, declaredMIME, filename string, declaredSize int64) FileValidationResult {
	if declaredSize == 0 || len(data) == 0 {
		return failed(CheckNonZeroSize, apperrors.CodeEmptyFile, "file is empty")
	}
	if declaredSize > v.maxSize || int64(len(data)) > v.maxSize {
		return failed(CheckMaxSize, apperrors.CodeFileTooLarge,
			fmt.Sprintf("file exceeds maximum size of %d bytes", v.maxSize))
	}

	mimeType := normalizeMIME(declaredMIME)
	sigs, supported := signatures[mimeType]
	if !supported {
		return failed(CheckMIMEType, apperrors.CodeUnsupportedFormat,
			fmt.Sprintf("unsupported MIME type %q", declaredMIME))
	}

	if !matchesSignature(data, mimeType, sigs) {
		return failed(CheckSignature, apperrors.CodeSignatureMismatch,
			fmt.Sprintf("file content does not match declared type %q", mimeType))
	}

	if ext := strings.ToLower(filepath.Ext(filename)); ext != "" {
		if !contains(extensions[mimeType], ext) {
			return failed(CheckExtension, apperrors.CodeSignatureMismatch,
				fmt.Sprintf("file extension %q does not match declared type %q", ext, mimeType))
		}
	}

	return FileValidationResult{Valid: true}
}

// MaxSize returns the configured maximum file size in bytes.
func (v *FileValidator) MaxSize() int64 {
	return v.maxSize
}

func matchesSignature(data []byte, mimeType string, sigs [][]byte) bool {
	for _, sig := range sigs {
		if len(data) >= len(sig) && bytes.Equal(data[:len(sig)], sig) {
			// WEBP shares the RIFF signature with WAV/AVI; the format tag
			// at offset 8 disambiguates.
			if mimeType == "image/webp" {
				return len(data) >= 12 && bytes.Equal(data[8:12], []byte("WEBP"))
			}
			return true
		}
	}
	return false
}

func normalizeMIME(declared string) string {
	mimeType := strings.ToLower(strings.TrimSpace(declared))
	if idx := strings.Index(mimeType, ";"); idx >= 0 {
		mimeType = strings.TrimSpace(mimeType[:idx])
	}
	if mimeType == "image/jpg" {
		mimeType = "image/jpeg"
	}
	return mimeType
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

func failed(check FileCheck, code apperrors.Code, message string) FileValidationResult {
	return FileValidationResult{
		Valid:       false,
		FailedCheck: check,
		Code:        code,
		Message:     message,
	}
}
