package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/HUPCF/Due-Diligence-Backend/internal/errors"
)

func newTestClient(serverURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		baseURL:    serverURL,
		zone:       "dd-zone",
		accessKey:  "test-access-key",
		resolver:   NewPathResolver("uploads"),
	}
}

func TestClient_Upload(t *testing.T) {
	var gotPath, gotKey, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		gotPath = r.URL.EscapedPath()
		gotKey = r.Header.Get("AccessKey")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	name, err := c.Upload(context.Background(), []byte("file-bytes"), "1700_a report.pdf")
	require.NoError(t, err)

	assert.Equal(t, "1700_a report.pdf", name, "literal unique name stays the catalog key")
	assert.Equal(t, "/dd-zone/uploads/1700_a%20report.pdf", gotPath)
	assert.Equal(t, "test-access-key", gotKey)
	assert.Equal(t, "file-bytes", gotBody)
}

func TestClient_UploadFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Upload(context.Background(), []byte("x"), "1700_a.pdf")
	assert.ErrorContains(t, err, "status 401")
}

func TestClient_DeleteIdempotent(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{"deleted", http.StatusOK},
		{"already gone", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodDelete, r.Method)
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			err := newTestClient(srv.URL).Delete(context.Background(), "1700_a.pdf")
			assert.NoError(t, err)
		})
	}
}

func TestClient_DeleteFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := newTestClient(srv.URL).Delete(context.Background(), "1700_a.pdf")
	assert.ErrorContains(t, err, "status 500")
}

func TestClient_Download(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "test-access-key", r.Header.Get("AccessKey"))
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("pdf-bytes"))
	}))
	defer srv.Close()

	body, contentType, err := newTestClient(srv.URL).Download(context.Background(), "1700_a.pdf")
	require.NoError(t, err)
	defer body.Close()

	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, "pdf-bytes", string(data))
	assert.Equal(t, "application/pdf", contentType)
}

func TestClient_DownloadNotFound(t *testing.T) {
	for _, status := range []int{http.StatusForbidden, http.StatusNotFound} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		_, _, err := newTestClient(srv.URL).Download(context.Background(), "1700_a.pdf")
		assert.ErrorIs(t, err, apperrors.ErrBlobNotFound)
		srv.Close()
	}
}

func TestClient_Unconfigured(t *testing.T) {
	c := &Client{httpClient: http.DefaultClient, resolver: NewPathResolver("")}

	_, err := c.Upload(context.Background(), nil, "a")
	assert.ErrorIs(t, err, apperrors.ErrStorageNotConfigured)
	assert.ErrorIs(t, c.Delete(context.Background(), "a"), apperrors.ErrStorageNotConfigured)
	_, _, err = c.Download(context.Background(), "a")
	assert.ErrorIs(t, err, apperrors.ErrStorageNotConfigured)
}

func TestUniqueName(t *testing.T) {
	name := UniqueName("Q3 report (final).pdf")
	assert.Regexp(t, `^\d+_Q3_report__final_\.pdf$`, name)
}

func TestOriginalName(t *testing.T) {
	assert.Equal(t, "report.pdf", OriginalName("1700000000000_report.pdf"))
	assert.Equal(t, "plain.pdf", OriginalName("plain.pdf"))
}

func TestSignerAndClientShareResolvedPaths(t *testing.T) {
	// The path the gateway writes to and the path the signer signs must match
	// for every stored name, or every signed download 403s at the edge.
	resolver := NewPathResolver("/uploads/")
	for _, name := range []string{"1700_a.pdf", "uploads/1700_a.pdf", "1700_a b.pdf"} {
		assert.Equal(t, resolver.EncodedPath(name), resolver.EncodedPath(resolver.stripBase(name)))
		assert.Equal(t, resolver.SigningPath(name), resolver.SigningPath(resolver.stripBase(name)))
	}
}
