package ocflkit

import (
	"fmt"
	"io/fs"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// DigestMap maps digest values to file paths. It is the shape of both an
// inventory's manifest (digest to content paths) and a version's state
// (digest to logical paths). Path lists are ordered and duplicate-free.
type DigestMap map[string][]string

// AllPaths returns a sorted slice of every path in m.
func (m DigestMap) AllPaths() []string {
	paths := make([]string, 0, m.NumPaths())
	for _, ps := range m {
		paths = append(paths, ps...)
	}
	slices.Sort(paths)
	return paths
}

// NumPaths returns the number of paths in m.
func (m DigestMap) NumPaths() int {
	var n int
	for _, ps := range m {
		n += len(ps)
	}
	return n
}

// Clone returns a deep copy of m.
func (m DigestMap) Clone() DigestMap {
	clone := maps.Clone(m)
	for d, ps := range clone {
		clone[d] = slices.Clone(ps)
	}
	return clone
}

// DigestFor returns the digest for path p, or an empty string if p is not
// present in m.
func (m DigestMap) DigestFor(p string) string {
	if p == "" {
		return ""
	}
	for d, ps := range m {
		if slices.Contains(ps, p) {
			return d
		}
	}
	return ""
}

// HasDigest reports whether digest is a key in m.
func (m DigestMap) HasDigest(digest string) bool {
	_, ok := m[digest]
	return ok
}

// Add appends p to the path list for digest if it isn't already present.
func (m DigestMap) Add(digest, p string) {
	if slices.Contains(m[digest], p) {
		return
	}
	m[digest] = append(m[digest], p)
}

// Remove removes p from digest's path list. If the list becomes empty, the
// digest key is deleted. Remove reports whether p was present.
func (m DigestMap) Remove(digest, p string) bool {
	idx := slices.Index(m[digest], p)
	if idx < 0 {
		return false
	}
	m[digest] = slices.Delete(m[digest], idx, idx+1)
	if len(m[digest]) == 0 {
		delete(m, digest)
	}
	return true
}

// PathMap inverts m into a path-to-digest map. The result may lose entries if
// m has path conflicts; use Valid to check first.
func (m DigestMap) PathMap() PathMap {
	pm := make(PathMap, m.NumPaths())
	for d, ps := range m {
		for _, p := range ps {
			pm[p] = d
		}
	}
	return pm
}

// Eq reports whether m and other associate the same digests with the same
// path sets.
func (m DigestMap) Eq(other DigestMap) bool {
	if len(m) != len(other) {
		return false
	}
	for d, ps := range m {
		otherPs, ok := other[d]
		if !ok || len(ps) != len(otherPs) {
			return false
		}
		ps, otherPs = slices.Clone(ps), slices.Clone(otherPs)
		slices.Sort(ps)
		slices.Sort(otherPs)
		if !slices.Equal(ps, otherPs) {
			return false
		}
	}
	return true
}

// Valid returns a non-nil error if m has digests with empty path lists,
// invalid paths, or the same path under multiple digests.
func (m DigestMap) Valid() error {
	for d, ps := range m {
		if len(ps) == 0 {
			return fmt.Errorf("no paths for digest %q", d)
		}
	}
	return validPaths(m.AllPaths())
}

// validPaths checks that all paths are valid, distinct, and that no path is
// also used as a directory by another path. paths must be sorted.
func validPaths(paths []string) error {
	for i, p := range paths {
		if p == "." || !fs.ValidPath(p) {
			return fmt.Errorf("invalid path: %q", p)
		}
		if i+1 < len(paths) {
			next := paths[i+1]
			if p == next || strings.HasPrefix(next, p+"/") {
				return fmt.Errorf("conflicting path: %q", p)
			}
		}
	}
	return nil
}

// PathMap maps file paths to digest values.
type PathMap map[string]string

// SortedPaths returns pm's paths in sorted order.
func (pm PathMap) SortedPaths() []string {
	paths := maps.Keys(pm)
	slices.Sort(paths)
	return paths
}

// DigestMap inverts pm into a DigestMap.
func (pm PathMap) DigestMap() DigestMap {
	dm := DigestMap{}
	for p, d := range pm {
		dm.Add(d, p)
	}
	return dm
}
