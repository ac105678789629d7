package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"go-id-extractor/internal/config"
	apperrors "go-id-extractor/internal/errors"
	"go-id-extractor/internal/extractor"
	"go-id-extractor/internal/logger"
	"go-id-extractor/internal/processor"
	"go-id-extractor/internal/service"
	"go-id-extractor/pkg/validation"
)

// ExtractRequest is the JSON body for URL-based extraction
type ExtractRequest struct {
	URL         string  `json:"url" binding:"required,url"`
	Temperature float64 `json:"temperature,omitempty"`
	MaxTokens   int     `json:"max_tokens,omitempty"`
	Prompt      string  `json:"prompt,omitempty"`
	MaxAttempts int     `json:"max_attempts,omitempty"`
}

// ErrorBody is the machine-readable error payload
type ErrorBody struct {
	Code    apperrors.Code `json:"code"`
	Message string         `json:"message"`
}

// Envelope is the response contract: either success with data or a coded error
type Envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
}

// NewHandler builds the HTTP surface around the extraction service
func NewHandler(svc service.ExtractionService, cfg *config.Config) http.Handler {
	r := gin.Default()
	r.Use(requestSizeLimiter(cfg.MaxUploadSize))

	r.GET("/health", healthCheck(svc))
	r.POST("/process", processDocument(svc, cfg))
	r.POST("/extract", extractDocument(svc, cfg))

	return r
}

func processDocument(svc service.ExtractionService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.RequestTimeout)
		defer cancel()

		data, declaredMIME, filename, err := readUpload(c)
		if err != nil {
			respondError(c, apperrors.NewValidationError(apperrors.CodeEmptyFile, "missing or unreadable file upload", err))
			return
		}

		result, err := svc.ProcessDocument(ctx, data, declaredMIME, filename, processor.DefaultOptions())
		if err != nil {
			respondError(c, err)
			return
		}

		logger.WithFields(logrus.Fields{
			"id":              result.ID,
			"filename":        filename,
			"duration_ms":     time.Since(startTime).Milliseconds(),
			"transformations": result.Transformations,
		}).Info("document processed")

		c.JSON(http.StatusOK, Envelope{Success: true, Data: result})
	}
}

func extractDocument(svc service.ExtractionService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		// Extraction can legitimately take longer than plain processing
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.VLM.Timeout)
		defer cancel()

		opts := extractor.DefaultExtractionOptions()
		opts.MaxAttempts = cfg.MaxRetries

		var result any
		var err error

		if data, declaredMIME, filename, uploadErr := readUpload(c); uploadErr == nil {
			result, err = svc.ExtractDocument(ctx, data, declaredMIME, filename, opts)
		} else {
			var req ExtractRequest
			if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
				respondError(c, apperrors.NewValidationError(apperrors.CodeEmptyFile,
					"request needs a file upload or a document URL", bindErr))
				return
			}
			if validateErr := documentURLValidator.ValidateDocumentURL(req.URL); validateErr != nil {
				respondError(c, validateErr)
				return
			}
			applyRequestOptions(&opts, req)
			result, err = svc.ExtractFromURL(ctx, req.URL, opts)
		}

		if err != nil {
			if errors.Is(err, apperrors.ErrCancelled) || errors.Is(err, context.Canceled) {
				// Client went away; a cancelled run has no result to report
				c.AbortWithStatus(499)
				return
			}
			respondError(c, err)
			return
		}

		logger.WithFields(logrus.Fields{
			"duration_ms": time.Since(startTime).Milliseconds(),
		}).Info("extraction request completed")

		c.JSON(http.StatusOK, Envelope{Success: true, Data: result})
	}
}

func healthCheck(svc service.ExtractionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		status, detail := svc.Health(ctx)

		code := http.StatusOK
		if status == extractor.StatusUnhealthy {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"status": status,
			"detail": detail,
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	}
}

func readUpload(c *gin.Context) ([]byte, string, string, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return nil, "", "", err
	}
	file, err := fileHeader.Open()
	if err != nil {
		return nil, "", "", err
	}
	defer func(file multipart.File) { _ = file.Close() }(file)

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", "", err
	}
	return data, fileHeader.Header.Get("Content-Type"), fileHeader.Filename, nil
}

func applyRequestOptions(opts *extractor.ExtractionOptions, req ExtractRequest) {
	if req.Temperature > 0 && req.Temperature <= 1 {
		opts.Temperature = req.Temperature
	}
	if req.MaxTokens > 0 {
		opts.MaxTokens = req.MaxTokens
	}
	if req.Prompt != "" {
		opts.CustomPrompt = req.Prompt
	}
	if req.MaxAttempts > 0 {
		opts.MaxAttempts = req.MaxAttempts
	}
}

var documentURLValidator = validation.NewURLValidator()

func requestSizeLimiter(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

func respondError(c *gin.Context, err error) {
	code := apperrors.GetStatusCode(err)
	errCode := apperrors.GetCode(err)
	if errors.Is(err, context.DeadlineExceeded) {
		code = http.StatusGatewayTimeout
		errCode = apperrors.CodeTimeout
	}

	logger.WithError(err).WithFields(logrus.Fields{
		"status_code": code,
		"error_code":  errCode,
		"path":        c.Request.URL.Path,
		"method":      c.Request.Method,
		"ip":          c.ClientIP(),
	}).Error("request failed")

	c.AbortWithStatusJSON(code, Envelope{
		Success: false,
		Error: &ErrorBody{
			Code:    errCode,
			Message: fmt.Sprintf("%v", err),
		},
	})
}
