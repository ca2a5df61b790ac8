package ocflkit

import (
	"errors"
	"fmt"
	"path"
	"time"

	"golang.org/x/exp/maps"
)

var (
	// ErrVersionImmutable is returned by mutation operations that target a
	// version other than the inventory's head.
	ErrVersionImmutable = errors.New("version is immutable")

	// ErrStateConflict is returned when adding a logical path that already
	// exists in the version state under a different digest.
	ErrStateConflict = errors.New("path exists with a different digest")

	// ErrNotFound is returned when a version, digest, or logical path lookup
	// has no result.
	ErrNotFound = errors.New("not found")
)

// Inventory is an OCFL object inventory: the object's manifest plus the state
// and metadata of each of its versions. The JSON representation matches the
// inventory.json document defined by the OCFL spec.
//
// An Inventory is not safe for concurrent mutation: callers must serialize
// all mutating calls against one instance.
type Inventory struct {
	ID               string               `json:"id"`
	Type             InventoryType        `json:"type"`
	DigestAlgorithm  string               `json:"digestAlgorithm"`
	Head             VNum                 `json:"head"`
	ContentDirectory string               `json:"contentDirectory,omitempty"`
	Manifest         DigestMap            `json:"manifest"`
	Versions         map[VNum]*Version    `json:"versions"`
	Fixity           map[string]DigestMap `json:"fixity,omitempty"`
}

// Version is the state and metadata of a single object version.
type Version struct {
	Created time.Time `json:"created"`
	State   DigestMap `json:"state"`
	Message string    `json:"message,omitempty"`
	User    *User     `json:"user,omitempty"`
}

// User identifies who created a version.
type User struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}

// NewInventory returns a new empty inventory for the object id, using the
// digest algorithm, content directory, and version padding from conf.
func NewInventory(id string, conf Config) *Inventory {
	return &Inventory{
		ID:               id,
		Type:             InventoryType{Spec1_1},
		DigestAlgorithm:  conf.Alg(),
		Head:             VNum{padding: conf.VNumPadding},
		ContentDirectory: conf.ContentDir(),
		Manifest:         DigestMap{},
		Versions:         map[VNum]*Version{},
	}
}

// ContentDir returns the inventory's content directory name, falling back to
// the spec default.
func (inv Inventory) ContentDir() string {
	if inv.ContentDirectory == "" {
		return DefaultContentDirectory
	}
	return inv.ContentDirectory
}

// VNums returns the inventory's version numbers in order.
func (inv *Inventory) VNums() VNums {
	vnums := VNums(maps.Keys(inv.Versions))
	vnums.Sort()
	return vnums
}

// Version returns version n or nil if n doesn't exist. It never modifies the
// inventory; use EnsureVersion to materialize a new version.
func (inv *Inventory) Version(n int) *Version {
	return inv.Versions[V(n, inv.Head.Padding())]
}

// EnsureVersion returns version n, materializing it first if necessary. A new
// version starts with an empty message and user, and its state is a deep copy
// of the previous version's state (or empty for version 1). Any missing
// versions below n are materialized too, so versions always form a contiguous
// sequence. The inventory's head advances to n if n is higher. EnsureVersion
// returns nil if n isn't a valid version number for the inventory's padding.
func (inv *Inventory) EnsureVersion(n int) *Version {
	vnum := V(n, inv.Head.Padding())
	if vnum.Valid() != nil {
		return nil
	}
	if ver, exists := inv.Versions[vnum]; exists {
		return ver
	}
	if inv.Versions == nil {
		inv.Versions = map[VNum]*Version{}
	}
	ver := &Version{
		Created: time.Now().UTC().Truncate(time.Second),
		State:   DigestMap{},
	}
	if n > 1 {
		prev := inv.EnsureVersion(n - 1)
		ver.State = prev.State.Clone()
	}
	inv.Versions[vnum] = ver
	if n > inv.Head.Num() {
		inv.Head = vnum
	}
	return ver
}

// head returns version n if n is the head version or its immediate successor
// (materializing the successor to start a new head), or an error otherwise:
// ErrVersionImmutable for versions below the head, ErrNotFound for versions
// beyond head+1. All mutation entry points go through this check.
func (inv *Inventory) head(n int) (*Version, error) {
	vnum := V(n, inv.Head.Padding())
	if err := vnum.Valid(); err != nil {
		return nil, err
	}
	if n < inv.Head.Num() {
		return nil, fmt.Errorf("%w: %s", ErrVersionImmutable, vnum)
	}
	if n > inv.Head.Num()+1 {
		return nil, fmt.Errorf("%w: version %d (head is %s)", ErrNotFound, n, inv.Head)
	}
	return inv.EnsureVersion(n), nil
}

// contentPath returns the manifest path allocated for a file added to version
// n: "<version>/<contentDirectory>/<name>".
func (inv *Inventory) contentPath(n int, name string) string {
	return path.Join(V(n, inv.Head.Padding()).String(), inv.ContentDir(), name)
}

// AddFile adds the logical path name with the given digest to version n. The
// version must be the inventory's head. If the digest is already present in
// the version state, name becomes an additional path for it. If name is
// already present under a different digest, AddFile fails with
// ErrStateConflict (use UpdateFile to replace it). The manifest gains a
// content path for the digest only if the digest is new to the manifest:
// manifest entries are never replaced.
func (inv *Inventory) AddFile(name string, digest string, n int) error {
	ver, err := inv.head(n)
	if err != nil {
		return err
	}
	if prev := ver.State.DigestFor(name); prev != "" && prev != digest {
		return fmt.Errorf("%w: %q", ErrStateConflict, name)
	}
	ver.State.Add(digest, name)
	if !inv.Manifest.HasDigest(digest) {
		if inv.Manifest == nil {
			inv.Manifest = DigestMap{}
		}
		inv.Manifest.Add(digest, inv.contentPath(n, name))
	}
	return nil
}

// UpdateFile sets the digest for the logical path name in version n,
// replacing any existing mapping for name.
func (inv *Inventory) UpdateFile(name string, digest string, n int) error {
	ver, err := inv.head(n)
	if err != nil {
		return err
	}
	if prev := ver.State.DigestFor(name); prev != "" {
		ver.State.Remove(prev, name)
	}
	return inv.AddFile(name, digest, n)
}

// DeleteFile removes the logical path name from version n's state. The digest
// itself remains in the manifest: object history never shrinks.
func (inv *Inventory) DeleteFile(name string, n int) error {
	ver, err := inv.head(n)
	if err != nil {
		return err
	}
	digest := ver.State.DigestFor(name)
	if digest == "" {
		return fmt.Errorf("%w: %q in %s", ErrNotFound, name, inv.Head)
	}
	ver.State.Remove(digest, name)
	return nil
}

// CopyFile adds dst to version n as another logical path for src's digest.
// If dst already exists it is replaced.
func (inv *Inventory) CopyFile(src, dst string, n int) error {
	ver, err := inv.head(n)
	if err != nil {
		return err
	}
	digest := ver.State.DigestFor(src)
	if digest == "" {
		return fmt.Errorf("%w: %q in %s", ErrNotFound, src, inv.Head)
	}
	if prev := ver.State.DigestFor(dst); prev != "" {
		ver.State.Remove(prev, dst)
	}
	return inv.AddFile(dst, digest, n)
}

// MoveFile renames the logical path src to dst in version n. Moving a path
// onto itself leaves the state unchanged; src must still exist.
func (inv *Inventory) MoveFile(src, dst string, n int) error {
	if src == dst {
		ver, err := inv.head(n)
		if err != nil {
			return err
		}
		if ver.State.DigestFor(src) == "" {
			return fmt.Errorf("%w: %q in %s", ErrNotFound, src, inv.Head)
		}
		return nil
	}
	if err := inv.CopyFile(src, dst, n); err != nil {
		return err
	}
	return inv.DeleteFile(src, n)
}

// GetDigest returns the digest for the logical path name in version n.
func (inv *Inventory) GetDigest(name string, n int) (string, error) {
	ver := inv.Version(n)
	if ver == nil {
		return "", fmt.Errorf("%w: version %d", ErrNotFound, n)
	}
	digest := ver.State.DigestFor(name)
	if digest == "" {
		return "", fmt.Errorf("%w: %q in %s", ErrNotFound, name, V(n, inv.Head.Padding()))
	}
	return digest, nil
}

// VersionFiles maps each logical path in version n's state to its content
// path in the manifest.
func (inv *Inventory) VersionFiles(n int) (PathMap, error) {
	ver := inv.Version(n)
	if ver == nil {
		return nil, fmt.Errorf("%w: version %d", ErrNotFound, n)
	}
	files := make(PathMap, ver.State.NumPaths())
	for digest, names := range ver.State {
		contentPaths := inv.Manifest[digest]
		if len(contentPaths) == 0 {
			return nil, fmt.Errorf("%w: manifest entry for %q", ErrNotFound, digest)
		}
		for _, name := range names {
			files[name] = contentPaths[0]
		}
	}
	return files, nil
}

// CurrentFiles maps each logical path in the head version's state to its
// content path.
func (inv *Inventory) CurrentFiles() (PathMap, error) {
	return inv.VersionFiles(inv.Head.Num())
}

// ContentPath returns the content path for the logical path name in version
// n's state.
func (inv *Inventory) ContentPath(n int, name string) (string, error) {
	digest, err := inv.GetDigest(name, n)
	if err != nil {
		return "", err
	}
	paths := inv.Manifest[digest]
	if len(paths) == 0 {
		return "", fmt.Errorf("%w: manifest entry for %q", ErrNotFound, digest)
	}
	return paths[0], nil
}

// SetState replaces version n's state. The new state must be internally
// valid and every digest it references must exist in the manifest.
func (inv *Inventory) SetState(n int, state DigestMap) error {
	ver, err := inv.head(n)
	if err != nil {
		return err
	}
	if err := state.Valid(); err != nil {
		return fmt.Errorf("new state for %s: %w", inv.Head, err)
	}
	for digest := range state {
		if !inv.Manifest.HasDigest(digest) {
			return fmt.Errorf("new state for %s: %w: manifest entry for %q", inv.Head, ErrNotFound, digest)
		}
	}
	ver.State = state.Clone()
	return nil
}
