// Package local implements a writable storage backend over a local
// directory.
package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ocflkit/ocflkit"
)

const (
	dirPerm  = 0755
	filePerm = 0644
)

// FS is an ocflkit.WriteFS rooted at a directory on the local filesystem.
type FS struct {
	fs.FS
	dir string // absolute base directory
}

var _ ocflkit.WriteFS = (*FS)(nil)

// NewFS returns an FS rooted at dir.
func NewFS(dir string) (*FS, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("local backend: %w", err)
	}
	return &FS{dir: abs, FS: os.DirFS(abs)}, nil
}

// Root returns the backend's absolute base directory.
func (fsys *FS) Root() string {
	return fsys.dir
}

func (fsys *FS) OpenFile(ctx context.Context, name string) (fs.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, &fs.PathError{Op: "openfile", Path: name, Err: err}
	}
	return fsys.Open(name)
}

func (fsys *FS) ReadDir(ctx context.Context, name string) ([]fs.DirEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: err}
	}
	return fs.ReadDir(fsys.FS, name)
}

func (fsys *FS) Write(ctx context.Context, name string, src io.Reader) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, &fs.PathError{Op: "write", Path: name, Err: err}
	}
	if !fs.ValidPath(name) || name == "." {
		return 0, &fs.PathError{Op: "write", Path: name, Err: errors.New("invalid path")}
	}
	fullPath := filepath.Join(fsys.dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(fullPath), dirPerm); err != nil {
		return 0, &fs.PathError{Op: "write", Path: name, Err: err}
	}
	dst, err := os.OpenFile(fullPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, filePerm)
	if err != nil {
		return 0, err
	}
	n, writeErr := io.Copy(dst, src)
	closeErr := dst.Close()
	if writeErr != nil {
		return n, writeErr
	}
	return n, closeErr
}
