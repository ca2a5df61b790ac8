// Package cloud implements a storage backend over a gocloud.dev blob bucket,
// so OCFL objects in S3 or Azure storage can be read and validated through
// the same FS interface as local objects.
package cloud

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"path"

	"github.com/ocflkit/ocflkit"
	"gocloud.dev/blob"
)

// FS is an ocflkit.WriteFS backed by a blob.Bucket.
type FS struct {
	*blob.Bucket
	writerOpts *blob.WriterOptions
	readerOpts *blob.ReaderOptions
}

var _ ocflkit.WriteFS = (*FS)(nil)

// NewFS returns an FS backed by bucket.
func NewFS(bucket *blob.Bucket) *FS {
	return &FS{Bucket: bucket}
}

// WriterOptions returns a copy of fsys using opts for writes.
func (fsys *FS) WriterOptions(opts *blob.WriterOptions) *FS {
	return &FS{Bucket: fsys.Bucket, writerOpts: opts, readerOpts: fsys.readerOpts}
}

// ReaderOptions returns a copy of fsys using opts for reads.
func (fsys *FS) ReaderOptions(opts *blob.ReaderOptions) *FS {
	return &FS{Bucket: fsys.Bucket, writerOpts: fsys.writerOpts, readerOpts: opts}
}

func (fsys *FS) OpenFile(ctx context.Context, name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "openfile", Path: name, Err: fs.ErrInvalid}
	}
	reader, err := fsys.Bucket.NewReader(ctx, name, fsys.readerOpts)
	if err != nil {
		return nil, &fs.PathError{Op: "openfile", Path: name, Err: err}
	}
	return &file{
		ReadCloser: reader,
		info: &fileInfo{
			name:    path.Base(name),
			size:    reader.Size(),
			modTime: reader.ModTime(),
		},
	}, nil
}

func (fsys *FS) ReadDir(ctx context.Context, name string) ([]fs.DirEntry, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrInvalid}
	}
	const pageSize = 1000
	opts := &blob.ListOptions{Delimiter: "/"}
	if name != "." {
		opts.Prefix = name + "/"
	}
	var (
		token   = blob.FirstPageToken
		results []fs.DirEntry
	)
	for {
		list, next, err := fsys.Bucket.ListPage(ctx, token, pageSize, opts)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, &fs.PathError{Op: "readdir", Path: name, Err: err}
		}
		for _, item := range list {
			inf := &fileInfo{
				name:    path.Base(item.Key),
				size:    item.Size,
				modTime: item.ModTime,
			}
			if item.IsDir {
				inf.mode = fs.ModeDir
			}
			results = append(results, inf)
		}
		token = next
		if len(token) == 0 {
			break
		}
	}
	// an empty listing means the directory doesn't exist, except for the
	// bucket's top-level directory
	if len(results) == 0 && name != "." {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrNotExist}
	}
	return results, nil
}

func (fsys *FS) Write(ctx context.Context, name string, src io.Reader) (int64, error) {
	writer, err := fsys.Bucket.NewWriter(ctx, name, fsys.writerOpts)
	if err != nil {
		return 0, err
	}
	n, writeErr := writer.ReadFrom(src)
	closeErr := writer.Close()
	if writeErr != nil {
		return n, writeErr
	}
	return n, closeErr
}
