package storage

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/HUPCF/Due-Diligence-Backend/internal/config"
	apperrors "github.com/HUPCF/Due-Diligence-Backend/internal/errors"
)

// Signer produces time-boxed, token-authenticated pull-zone URLs. The edge
// independently recomputes sha256(key + decodedPath + expires) to authorize
// the GET, so signing is a pure function of path, expiry and key.
type Signer struct {
	pullZoneHost string
	securityKey  string
	resolver     *PathResolver
	now          func() time.Time
}

// NewSigner creates a signer for the configured pull zone, sharing the path
// resolver with the storage gateway.
func NewSigner(cfg config.StorageConfig, resolver *PathResolver) *Signer {
	return &Signer{
		pullZoneHost: cfg.PullZoneHost,
		securityKey:  cfg.PullZoneKey,
		resolver:     resolver,
		now:          time.Now,
	}
}

// Sign returns a signed retrieval URL for a stored name or an already fully
// qualified URL, valid for the given duration. When the pull zone host or key
// is unconfigured it returns ErrStorageNotConfigured; this is a process-wide
// precondition, not a per-call failure.
func (s *Signer) Sign(fileNameOrURL string, expiry time.Duration) (string, error) {
	if s.pullZoneHost == "" || s.securityKey == "" {
		return "", apperrors.ErrStorageNotConfigured
	}

	decodedPath, encodedPath := s.paths(fileNameOrURL)
	expires := s.now().Add(expiry).Unix()

	// The signature input must never contain percent-escapes, even when the
	// URL itself does.
	digest := sha256.Sum256([]byte(s.securityKey + decodedPath + strconv.FormatInt(expires, 10)))
	token := base64.RawURLEncoding.EncodeToString(digest[:])

	return fmt.Sprintf("https://%s%s?token=%s&expires=%d", s.pullZoneHost, encodedPath, token, expires), nil
}

// paths resolves the decoded signing path and the encoded URL path for the
// input, which may be a bare stored name or a full URL.
func (s *Signer) paths(fileNameOrURL string) (decoded, encoded string) {
	if u, err := url.Parse(fileNameOrURL); err == nil && u.Scheme != "" && u.Host != "" {
		encoded = u.EscapedPath()
		decoded = u.Path
		if encoded == "" {
			encoded = "/"
			decoded = "/"
		}
		return decoded, encoded
	}
	return s.resolver.SigningPath(fileNameOrURL), s.resolver.EncodedPath(fileNameOrURL)
}
