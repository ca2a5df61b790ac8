package ocflkit

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path"
)

// FS is a minimal, read-only storage abstraction, like the standard library's
// io/fs.FS except operations take a context so long directory walks and
// digests can be interrupted.
type FS interface {
	OpenFile(ctx context.Context, name string) (fs.File, error)
	ReadDir(ctx context.Context, name string) ([]fs.DirEntry, error)
}

// WriteFS is a storage abstraction that also supports writes.
type WriteFS interface {
	FS
	Write(ctx context.Context, name string, src io.Reader) (int64, error)
}

// NewFS wraps an io/fs.FS as an FS.
func NewFS(fsys fs.FS) FS {
	return &ioFS{FS: fsys}
}

// DirFS is shorthand for NewFS(os.DirFS(dir)).
func DirFS(dir string) FS {
	return NewFS(os.DirFS(dir))
}

type ioFS struct {
	fs.FS
}

func (fsys *ioFS) OpenFile(ctx context.Context, name string) (fs.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, &fs.PathError{Op: "openfile", Path: name, Err: err}
	}
	return fsys.Open(name)
}

func (fsys *ioFS) ReadDir(ctx context.Context, name string) ([]fs.DirEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: err}
	}
	return fs.ReadDir(fsys.FS, name)
}

// EachFile calls walkFn for every regular file under root, descending into
// directories depth-first. The context is checked at each directory listing.
func EachFile(ctx context.Context, fsys FS, root string, walkFn fs.WalkDirFunc) error {
	entries, err := fsys.ReadDir(ctx, root)
	if err != nil {
		return err
	}
	for _, e := range entries {
		next := path.Join(root, e.Name())
		switch {
		case e.Type().IsRegular():
			if err := walkFn(next, e, nil); err != nil {
				return err
			}
		case e.IsDir():
			if err := EachFile(ctx, fsys, next, walkFn); err != nil {
				return err
			}
		}
	}
	return nil
}
