package storage

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HUPCF/Due-Diligence-Backend/internal/config"
	apperrors "github.com/HUPCF/Due-Diligence-Backend/internal/errors"
)

func newTestSigner(basePath string) *Signer {
	s := NewSigner(config.StorageConfig{
		PullZoneHost: "cdn.example.com",
		PullZoneKey:  "test-security-key",
	}, NewPathResolver(basePath))
	s.now = func() time.Time { return time.Unix(1700000000, 0) }
	return s
}

func expectedToken(key, decodedPath string, expires int64) string {
	digest := sha256.Sum256([]byte(key + decodedPath + strconv.FormatInt(expires, 10)))
	return base64.RawURLEncoding.EncodeToString(digest[:])
}

func TestSigner_Sign(t *testing.T) {
	tests := []struct {
		name        string
		basePath    string
		input       string
		wantDecoded string
		wantURL     string
	}{
		{
			name:        "bare name with base path",
			basePath:    "uploads",
			input:       "1700_report.pdf",
			wantDecoded: "/uploads/1700_report.pdf",
			wantURL:     "https://cdn.example.com/uploads/1700_report.pdf",
		},
		{
			name:        "bare name without base path",
			basePath:    "",
			input:       "1700_report.pdf",
			wantDecoded: "/1700_report.pdf",
			wantURL:     "https://cdn.example.com/1700_report.pdf",
		},
		{
			name:        "name already carrying base path is not double prefixed",
			basePath:    "uploads",
			input:       "uploads/1700_report.pdf",
			wantDecoded: "/uploads/1700_report.pdf",
			wantURL:     "https://cdn.example.com/uploads/1700_report.pdf",
		},
		{
			name:        "full URL input uses its path component",
			basePath:    "uploads",
			input:       "https://old-cdn.example.com/other/1700_report.pdf",
			wantDecoded: "/other/1700_report.pdf",
			wantURL:     "https://cdn.example.com/other/1700_report.pdf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSigner(tt.basePath)
			expires := s.now().Add(time.Hour).Unix()

			got, err := s.Sign(tt.input, time.Hour)
			require.NoError(t, err)

			token := expectedToken("test-security-key", tt.wantDecoded, expires)
			assert.Equal(t, fmt.Sprintf("%s?token=%s&expires=%d", tt.wantURL, token, expires), got)
		})
	}
}

func TestSigner_SignsDecodedPathForEscapedNames(t *testing.T) {
	s := newTestSigner("uploads")
	expires := s.now().Add(time.Hour).Unix()

	got, err := s.Sign("1700_annual report.pdf", time.Hour)
	require.NoError(t, err)

	// The URL carries the escape, the signature input does not.
	token := expectedToken("test-security-key", "/uploads/1700_annual report.pdf", expires)
	assert.Equal(t, fmt.Sprintf("https://cdn.example.com/uploads/1700_annual%%20report.pdf?token=%s&expires=%d", token, expires), got)
}

func TestSigner_Deterministic(t *testing.T) {
	s := newTestSigner("uploads")

	first, err := s.Sign("1700_report.pdf", time.Hour)
	require.NoError(t, err)
	second, err := s.Sign("1700_report.pdf", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	other, err := s.Sign("1700_report.pdf", 2*time.Hour)
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
}

func TestSigner_Unconfigured(t *testing.T) {
	s := NewSigner(config.StorageConfig{}, NewPathResolver(""))

	_, err := s.Sign("1700_report.pdf", time.Hour)
	assert.ErrorIs(t, err, apperrors.ErrStorageNotConfigured)
}
