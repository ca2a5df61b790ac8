package ocflkit

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"strings"
)

// ObjectRoot describes the contents of an OCFL object root directory as found
// on disk, before any conformance judgment.
type ObjectRoot struct {
	FS   FS     // storage holding the object
	Path string // object root directory in FS

	Spec         Spec     // spec version from the object's NAMASTE declaration
	VersionDirs  VNums    // version directories found in the root
	SidecarAlg   string   // digest algorithm from the inventory sidecar's name
	HasInventory bool     // root has an inventory.json
	NonConform   []string // entries that are none of the above (incl. "logs")
}

// GetObjectRoot reads the directory dir in fsys and returns an ObjectRoot
// describing it. An error is returned if dir has no object declaration.
func GetObjectRoot(ctx context.Context, fsys FS, dir string) (*ObjectRoot, error) {
	entries, err := fsys.ReadDir(ctx, dir)
	if err != nil {
		return nil, err
	}
	obj := NewObjectRoot(fsys, dir, entries)
	if obj.Spec.Empty() {
		return nil, fmt.Errorf("%s: %w", dir, ErrNamasteNotExist)
	}
	return obj, nil
}

// NewObjectRoot builds an ObjectRoot from a directory listing of dir.
func NewObjectRoot(fsys FS, dir string, entries []fs.DirEntry) *ObjectRoot {
	obj := &ObjectRoot{FS: fsys, Path: dir}
	for _, e := range entries {
		name := e.Name()
		switch {
		case e.IsDir():
			var v VNum
			if ParseVNum(name, &v) == nil {
				obj.VersionDirs = append(obj.VersionDirs, v)
				continue
			}
			obj.NonConform = append(obj.NonConform, name)
		case e.Type().IsRegular():
			switch {
			case name == inventoryFile:
				obj.HasInventory = true
			case strings.HasPrefix(name, sidecarPrefix):
				obj.SidecarAlg = strings.TrimPrefix(name, sidecarPrefix)
			default:
				if decl, err := ParseNamaste(name); err == nil && decl.Type == NamasteTypeObject {
					obj.Spec = decl.Version
					continue
				}
				obj.NonConform = append(obj.NonConform, name)
			}
		default:
			obj.NonConform = append(obj.NonConform, name)
		}
	}
	obj.VersionDirs.Sort()
	return obj
}

// HasSidecar reports whether the root has an inventory sidecar file.
func (obj *ObjectRoot) HasSidecar() bool {
	return obj.SidecarAlg != ""
}

// InventoryPath returns the path of the root inventory file.
func (obj *ObjectRoot) InventoryPath() string {
	return path.Join(obj.Path, inventoryFile)
}

// ValidateNamaste reads and checks the contents of the object declaration.
func (obj *ObjectRoot) ValidateNamaste(ctx context.Context) error {
	if obj.Spec.Empty() {
		return ErrNamasteNotExist
	}
	decl := Namaste{Type: NamasteTypeObject, Version: obj.Spec}
	return ValidateNamaste(ctx, obj.FS, path.Join(obj.Path, decl.Name()))
}
