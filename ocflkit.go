// Package ocflkit implements the core data model and validation routines for
// OCFL (Oxford Common File Layout) objects: versioned, content-addressable
// storage units kept on a plain filesystem. The root package holds the
// inventory model and the structural and content validators; storage backends
// live under backend/ and digest algorithms under digest/.
package ocflkit

const (
	inventoryFile = "inventory.json"
	sidecarPrefix = inventoryFile + "."
	logsDir       = "logs"

	// DefaultContentDirectory is the content directory name used when an
	// inventory doesn't set contentDirectory.
	DefaultContentDirectory = "content"

	// DefaultDigestAlgorithm is the digest algorithm used for new objects.
	DefaultDigestAlgorithm = "sha512"
)

// Config carries object-wide defaults that components would otherwise read
// from ambient global state. The zero value is usable: accessors fall back to
// the package defaults.
type Config struct {
	// DigestAlgorithm is the default primary digest algorithm (e.g., "sha512")
	DigestAlgorithm string
	// ContentDirectory is the default name for version content directories
	ContentDirectory string
	// VNumPadding is the default zero-padding for version directory names,
	// used when the padding can't be inferred from an existing object.
	VNumPadding int
}

// Alg returns the configured digest algorithm name.
func (c Config) Alg() string {
	if c.DigestAlgorithm == "" {
		return DefaultDigestAlgorithm
	}
	return c.DigestAlgorithm
}

// ContentDir returns the configured content directory name.
func (c Config) ContentDir() string {
	if c.ContentDirectory == "" {
		return DefaultContentDirectory
	}
	return c.ContentDirectory
}
