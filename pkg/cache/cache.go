// Package cache stores rendered artifacts keyed by the tree and render
// options that produced them.
//
// # Backends
//
//   - [NullCache]: caching disabled
//   - [FileCache]: one JSON file per entry under a directory, for the CLI
//   - [RedisCache]: shared cache for multi-instance server deployments
//
// All backends honor a per-entry TTL. A zero TTL means the entry never
// expires.
//
// # Keys
//
// Keys come from a [Keyer]. [DefaultKeyer] hashes the canonical tree hash
// and the render options into "artifact:<sha256>". [ScopedKeyer] prefixes
// every key, which separates the entries of different program versions
// or tenants sharing one backend.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiration.
type Cache interface {
	// Get returns the entry for key. hit is false on a miss or an expired
	// entry; a miss is not an error.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)

	// Set stores data under key. A ttl of zero stores without expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}

// Clearer is implemented by caches that can drop all of their entries.
type Clearer interface {
	Clear(ctx context.Context) error
}

// Keyer derives cache keys.
type Keyer interface {
	// ArtifactKey returns the key of a rendered artifact. treeHash
	// identifies the formula tree, typically [Hash] of its canonical JSON.
	ArtifactKey(treeHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the render options that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Format     string   `json:"format"`
	Standalone bool     `json:"standalone"`
	Libraries  []string `json:"libraries,omitempty"`
	Detailed   bool     `json:"detailed,omitempty"`
	Scale      float64  `json:"scale,omitempty"`
}

// DefaultKeyer hashes key material with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey returns "artifact:" followed by the SHA-256 of the tree hash and options.
func (DefaultKeyer) ArtifactKey(treeHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", treeHash, opts)
}

// DefaultTTL is how long artifacts are kept when no TTL is configured.
const DefaultTTL = 7 * 24 * time.Hour
