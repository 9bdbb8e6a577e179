package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"

	"github.com/HUPCF/Due-Diligence-Backend/internal/config"
	apperrors "github.com/HUPCF/Due-Diligence-Backend/internal/errors"
)

// Client talks to the CDN storage API: PUT/DELETE/GET with an AccessKey
// header. All object paths go through the shared PathResolver so the gateway
// and the URL signer can never drift apart.
type Client struct {
	httpClient *http.Client
	baseURL    string
	zone       string
	accessKey  string
	resolver   *PathResolver
}

// NewClient creates a storage client for the configured zone and region.
func NewClient(cfg config.StorageConfig, resolver *PathResolver) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		baseURL:    "https://" + RegionHost(cfg.Region),
		zone:       cfg.ZoneName,
		accessKey:  cfg.AccessKey,
		resolver:   resolver,
	}
}

func (c *Client) configured() bool {
	return c.zone != "" && c.accessKey != ""
}

// objectURL builds the storage API URL for a stored name. The path segment is
// percent-encoded for transport; the literal name stays the catalog key.
func (c *Client) objectURL(uniqueName string) string {
	return c.baseURL + "/" + c.zone + c.resolver.EncodedPath(uniqueName)
}

// Upload PUTs the blob under the configured base path and returns the unique
// name on any 2xx status.
func (c *Client) Upload(ctx context.Context, data []byte, uniqueName string) (string, error) {
	if !c.configured() {
		return "", apperrors.ErrStorageNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.objectURL(uniqueName), bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("AccessKey", c.accessKey)
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", uniqueName, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("upload %s: storage returned status %d", uniqueName, resp.StatusCode)
	}
	return uniqueName, nil
}

// Delete removes the blob. A 404 counts as success: catalog cleanup must not
// be blocked by storage drift.
func (c *Client) Delete(ctx context.Context, uniqueName string) error {
	if !c.configured() {
		return apperrors.ErrStorageNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.objectURL(uniqueName), nil)
	if err != nil {
		return fmt.Errorf("build delete request: %w", err)
	}
	req.Header.Set("AccessKey", c.accessKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("delete %s: %w", uniqueName, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode == http.StatusNotFound {
		return nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("delete %s: storage returned status %d", uniqueName, resp.StatusCode)
	}
	return nil
}

// Download GETs the blob and returns the body stream and content type. 403 and
// 404 map to ErrBlobNotFound so callers can answer with an accurate status.
// The caller owns closing the stream.
func (c *Client) Download(ctx context.Context, uniqueName string) (io.ReadCloser, string, error) {
	if !c.configured() {
		return nil, "", apperrors.ErrStorageNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.objectURL(uniqueName), nil)
	if err != nil {
		return nil, "", fmt.Errorf("build download request: %w", err)
	}
	req.Header.Set("AccessKey", c.accessKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("download %s: %w", uniqueName, err)
	}

	switch {
	case resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusNotFound:
		resp.Body.Close()
		return nil, "", apperrors.ErrBlobNotFound
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		resp.Body.Close()
		return nil, "", fmt.Errorf("download %s: storage returned status %d", uniqueName, resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return resp.Body, contentType, nil
}

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// UniqueName builds the globally unique stored name for an upload:
// <epoch-millis>_<sanitized original name>.
func UniqueName(originalName string) string {
	return fmt.Sprintf("%d_%s", time.Now().UnixMilli(), unsafeNameChars.ReplaceAllString(originalName, "_"))
}

// OriginalName recovers the client-facing name from a stored name by dropping
// the timestamp prefix.
func OriginalName(storedName string) string {
	for i := 0; i < len(storedName); i++ {
		if storedName[i] == '_' {
			return storedName[i+1:]
		}
	}
	return storedName
}
