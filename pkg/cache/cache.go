// Package cache stores rendered planner artifacts keyed by a hash of the
// configuration that produced them.
//
// Backends implement [Cache]:
//   - [FileCache]: one file per entry under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for the API server
//   - [NullCache]: stores nothing, for --no-cache and tests
//
// Keys come from a [Keyer] so callers never build key strings by hand. A
// [ScopedKeyer] prefixes every key for tenant or environment isolation.
package cache

import (
	"context"
	"time"
)

// TTLArtifact is how long a rendered artifact stays cached.
const TTLArtifact = 7 * 24 * time.Hour

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the entry for key and whether it was found. A miss is not
	// an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	Delete(ctx context.Context, key string) error
	Close() error
}

// ArtifactKeyOpts are the render settings that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Format  string
	TopLeft bool     // annotation origin
	Kinds   []string // link graph filter
	Version string   // build version; output may change between releases
}

// Keyer derives cache keys.
type Keyer interface {
	// ArtifactKey identifies one rendered output of a configuration.
	ArtifactKey(configHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes key components into "artifact:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(configHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", configHash, opts)
}
