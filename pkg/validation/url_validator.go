package validation

import (
	"net/url"
	"strings"

	apperrors "go-id-extractor/internal/errors"
)

// URLValidator handles document URL validation logic
type URLValidator struct {
	allowedSchemes []string
	allowedHosts   []string
}

// NewURLValidator creates a new URL validator with default settings
func NewURLValidator() *URLValidator {
	return &URLValidator{
		allowedSchemes: []string{"http", "https"},
		allowedHosts:   []string{}, // empty means all hosts allowed
	}
}

// NewURLValidatorWithOptions creates a URL validator with custom options
func NewURLValidatorWithOptions(schemes []string, hosts []string) *URLValidator {
	return &URLValidator{
		allowedSchemes: schemes,
		allowedHosts:   hosts,
	}
}

// ValidateDocumentURL validates if the provided URL is acceptable for fetching
func (v *URLValidator) ValidateDocumentURL(documentURL string) error {
	if strings.TrimSpace(documentURL) == "" {
		return apperrors.NewValidationError(apperrors.CodeEmptyFile, "URL cannot be empty", nil)
	}

	parsedURL, err := url.Parse(documentURL)
	if err != nil {
		return apperrors.NewValidationError(apperrors.CodeUnsupportedFormat, "invalid URL format", err)
	}

	if !v.isSchemeAllowed(parsedURL.Scheme) {
		return apperrors.NewValidationError(apperrors.CodeUnsupportedFormat, "URL scheme not allowed", nil)
	}

	if parsedURL.Host == "" {
		return apperrors.NewValidationError(apperrors.CodeUnsupportedFormat, "URL must have a valid host", nil)
	}

	if len(v.allowedHosts) > 0 && !v.isHostAllowed(parsedURL.Host) {
		return apperrors.NewValidationError(apperrors.CodeUnsupportedFormat, "URL host not allowed", nil)
	}

	return nil
}

// isSchemeAllowed checks if the URL scheme is in the allowed list
func (v *URLValidator) isSchemeAllowed(scheme string) bool {
	for _, allowed := range v.allowedSchemes {
		if scheme == allowed {
			return true
		}
	}
	return false
}

// isHostAllowed checks if the URL host is in the allowed list
// Returns true if no host restrictions are set (empty allowedHosts)
func (v *URLValidator) isHostAllowed(host string) bool {
	if len(v.allowedHosts) == 0 {
		return true
	}
	for _, allowed := range v.allowedHosts {
		if host == allowed {
			return true
		}
	}
	return false
}
