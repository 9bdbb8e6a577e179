package storage

import (
	"net/url"
	"strings"
)

// regionHosts maps storage regions to their API hosts.
var regionHosts = map[string]string{
	"ny": "ny.storage.bunnycdn.com",
	"la": "la.storage.bunnycdn.com",
	"sg": "sg.storage.bunnycdn.com",
	"de": "de.storage.bunnycdn.com",
	"jh": "jh.storage.bunnycdn.com",
}

const defaultRegionHost = "ny.storage.bunnycdn.com"

// RegionHost returns the storage API host for a region, defaulting to ny.
func RegionHost(region string) string {
	if host, ok := regionHosts[region]; ok {
		return host
	}
	return defaultRegionHost
}

// PathResolver is the single source of truth for base-path prefixing and
// percent-encoding of stored names. The gateway and the URL signer must agree
// byte for byte on these paths: the pull-zone edge recomputes the signature
// over the decoded path, and any divergence turns into 403s on every download.
type PathResolver struct {
	basePath string
}

// NewPathResolver creates a resolver for the configured base path. Leading and
// trailing slashes in the base path are ignored.
func NewPathResolver(basePath string) *PathResolver {
	return &PathResolver{basePath: strings.Trim(basePath, "/")}
}

// stripBase removes the base-path prefix from names that already carry it, so
// a stored name is never double-prefixed.
func (r *PathResolver) stripBase(name string) string {
	if r.basePath != "" {
		name = strings.TrimPrefix(name, r.basePath+"/")
	}
	return strings.TrimPrefix(name, "/")
}

// SigningPath returns the leading-slash, percent-decoded path used as the
// signature input.
func (r *PathResolver) SigningPath(name string) string {
	name = r.stripBase(name)
	if r.basePath == "" {
		return "/" + name
	}
	return "/" + r.basePath + "/" + name
}

// EncodedPath returns the leading-slash path with the file name segment
// percent-encoded, suitable for use in a URL.
func (r *PathResolver) EncodedPath(name string) string {
	name = r.stripBase(name)
	if r.basePath == "" {
		return "/" + url.PathEscape(name)
	}
	return "/" + r.basePath + "/" + url.PathEscape(name)
}
