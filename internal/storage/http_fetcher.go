package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DocumentFetcher retrieves a document blob by URL, returning the raw bytes
// and the content type reported by the source.
type DocumentFetcher interface {
	Fetch(ctx context.Context, documentURL string) ([]byte, string, error)
}

// HTTPDocumentFetcher fetches document blobs over HTTP with bounded retries
type HTTPDocumentFetcher struct {
	client   *http.Client
	maxBytes int64
}

// NewHTTPDocumentFetcher creates an HTTP fetcher that refuses bodies larger
// than maxBytes.
func NewHTTPDocumentFetcher(maxBytes int64) *HTTPDocumentFetcher {
	transport := &http.Transport{
		MaxIdleConns:          10,
		MaxIdleConnsPerHost:   2,
		IdleConnTimeout:       30 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &HTTPDocumentFetcher{
		client: &http.Client{
			Transport: transport,
			Timeout:   30 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("too many redirects (limit: 3)")
				}
				return nil
			},
		},
		maxBytes: maxBytes,
	}
}

// Fetch downloads the document. Transient failures (network errors, 5xx) are
// retried up to three attempts with linear backoff; 4xx responses fail
// immediately.
func (h *HTTPDocumentFetcher) Fetch(ctx context.Context, documentURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, documentURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("invalid URL: %w", err)
	}
	req.Header.Set("Accept", "image/jpeg, image/png, image/webp, application/pdf, */*")
	req.Header.Set("User-Agent", "go-id-extractor/1.0")

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, "", ctx.Err()
			case <-time.After(time.Duration(attempt) * time.Second):
			}
		}

		resp, err := h.client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		data, contentType, err := h.readBody(resp)
		if err == nil {
			return data, contentType, nil
		}
		lastErr = err

		// 4xx responses are not retryable
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			break
		}
	}
	return nil, "", fmt.Errorf("failed to fetch document after retries: %w", lastErr)
}

func (h *HTTPDocumentFetcher) readBody(resp *http.Response) ([]byte, string, error) {
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("unexpected status code %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, h.maxBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("reading document body: %w", err)
	}
	if int64(len(data)) > h.maxBytes {
		return nil, "", fmt.Errorf("document exceeds maximum size of %d bytes", h.maxBytes)
	}
	return data, resp.Header.Get("Content-Type"), nil
}
