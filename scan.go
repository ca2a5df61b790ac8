package ocflkit

import (
	"context"
	"io/fs"
	"path"

	"github.com/carlmjohnson/workgroup"
)

// ScanObjectsOpts configures ScanObjects.
type ScanObjectsOpts struct {
	Concurrency int // number of simultaneous readdir operations
}

// ScanObjects walks the directory tree under root in fsys, calling fn for
// each directory holding an OCFL object declaration. The walk doesn't
// descend into object roots. Directory listings run concurrently.
func ScanObjects(ctx context.Context, fsys FS, root string, fn func(*ObjectRoot) error, conf *ScanObjectsOpts) error {
	numWorkers := 4
	if conf != nil && conf.Concurrency > 0 {
		numWorkers = conf.Concurrency
	}
	readDirTask := func(dir string) ([]fs.DirEntry, error) {
		return fsys.ReadDir(ctx, dir)
	}
	scanMgr := func(dir string, entries []fs.DirEntry, err error) ([]string, error) {
		if err != nil {
			return nil, err
		}
		if _, err := FindNamaste(entries); err == nil {
			if err := fn(NewObjectRoot(fsys, dir, entries)); err != nil {
				return nil, err
			}
			return nil, nil
		}
		var subDirs []string
		for _, e := range entries {
			if e.IsDir() {
				subDirs = append(subDirs, path.Join(dir, e.Name()))
			}
		}
		return subDirs, nil
	}
	return workgroup.Do(numWorkers, readDirTask, scanMgr, root)
}
