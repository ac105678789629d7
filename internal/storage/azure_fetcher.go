package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
)

// AzureDocumentFetcher retrieves document blobs from Azure Blob Storage.
// URLs are of the form https://<account>.blob.core.windows.net/<container>?blob=<name>.
type AzureDocumentFetcher struct {
	client   *azblob.Client
	maxBytes int64
}

// NewAzureDocumentFetcher creates a fetcher with shared-key credentials
func NewAzureDocumentFetcher(accountName, accountKey string, maxBytes int64) (*AzureDocumentFetcher, error) {
	credential, err := azblob.NewSharedKeyCredential(accountName, accountKey)
	if err != nil {
		return nil, err
	}

	client, err := azblob.NewClientWithSharedKeyCredential(
		fmt.Sprintf("https://%s.blob.core.windows.net", accountName),
		credential,
		nil,
	)
	if err != nil {
		return nil, err
	}

	return &AzureDocumentFetcher{client: client, maxBytes: maxBytes}, nil
}

// Fetch downloads the blob named by the URL's container path and blob query
// parameter.
func (s *AzureDocumentFetcher) Fetch(ctx context.Context, documentURL string) ([]byte, string, error) {
	parsedURL, err := url.Parse(documentURL)
	if err != nil {
		return nil, "", fmt.Errorf("invalid blob URL: %w", err)
	}
	if len(parsedURL.Path) < 2 {
		return nil, "", fmt.Errorf("blob URL is missing a container path")
	}

	containerName := parsedURL.Path[1:]
	blobName := parsedURL.Query().Get("blob")
	if blobName == "" {
		return nil, "", fmt.Errorf("blob URL is missing the blob query parameter")
	}

	downloadResponse, err := s.client.DownloadStream(ctx, containerName, blobName, nil)
	if err != nil {
		return nil, "", fmt.Errorf("download failed: %w", err)
	}

	retryReader := downloadResponse.Body
	defer retryReader.Close()

	data, err := io.ReadAll(io.LimitReader(retryReader, s.maxBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("reading blob body: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return nil, "", fmt.Errorf("blob exceeds maximum size of %d bytes", s.maxBytes)
	}

	contentType := ""
	if downloadResponse.ContentType != nil {
		contentType = *downloadResponse.ContentType
	}
	return data, contentType, nil
}
