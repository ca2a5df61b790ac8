package ocflkit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"regexp"
	"strings"
)

const (
	// NamasteTypeObject is the type string in an OCFL object declaration.
	NamasteTypeObject = "ocfl_object"
)

var (
	ErrNamasteNotExist = fmt.Errorf("missing NAMASTE declaration: %w", fs.ErrNotExist)
	ErrNamasteInvalid  = errors.New("invalid NAMASTE declaration contents")
	ErrNamasteMultiple = errors.New("multiple NAMASTE declarations found")

	namasteRegexp = regexp.MustCompile(`^0=([a-z_]+)_([0-9]+\.[0-9]+)$`)
)

// Namaste is a NAMASTE declaration: a marker file whose name encodes the
// declared type and spec version of the directory holding it.
type Namaste struct {
	Type    string
	Version Spec
}

// ParseNamaste parses a filename as a NAMASTE declaration.
func ParseNamaste(name string) (Namaste, error) {
	m := namasteRegexp.FindStringSubmatch(name)
	if len(m) != 3 {
		return Namaste{}, ErrNamasteNotExist
	}
	return Namaste{Type: m[1], Version: MustParseSpec(m[2])}, nil
}

// FindNamaste returns the single NAMASTE declaration among the directory
// entries. An error is returned if the number of declarations isn't one.
func FindNamaste(entries []fs.DirEntry) (Namaste, error) {
	var found []Namaste
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if dec, err := ParseNamaste(e.Name()); err == nil {
			found = append(found, dec)
		}
	}
	switch len(found) {
	case 0:
		return Namaste{}, ErrNamasteNotExist
	case 1:
		return found[0], nil
	default:
		return Namaste{}, ErrNamasteMultiple
	}
}

// Name returns the declaration's filename ("0=TYPE_VERSION"), or an empty
// string if n is incomplete.
func (n Namaste) Name() string {
	if n.Type == "" || n.Version.Empty() {
		return ""
	}
	return "0=" + n.Type + "_" + n.Version.String()
}

// Body returns the expected file contents of the declaration.
func (n Namaste) Body() string {
	if n.Type == "" || n.Version.Empty() {
		return ""
	}
	return n.Type + "_" + n.Version.String() + "\n"
}

// ValidateNamaste reads the declaration file name in fsys and checks its
// contents against the name.
func ValidateNamaste(ctx context.Context, fsys FS, name string) error {
	base := name
	if idx := strings.LastIndexByte(name, '/'); idx >= 0 {
		base = name[idx+1:]
	}
	decl, err := ParseNamaste(base)
	if err != nil {
		return err
	}
	f, err := fsys.OpenFile(ctx, name)
	if err != nil {
		return fmt.Errorf("opening declaration: %w", err)
	}
	defer f.Close()
	cont, err := io.ReadAll(f)
	if err != nil {
		return fmt.Errorf("reading declaration: %w", err)
	}
	if string(cont) != decl.Body() {
		return ErrNamasteInvalid
	}
	return nil
}
