package ocflkit

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/ocflkit/ocflkit/validation"
)

// check names reported with structural findings
const (
	checkVersionFormat = "version-format"
	checkRootFiles     = "root-files"
	checkRootDirs      = "root-directories"
	checkVersionDirs   = "version-directories"
)

// ValidateObjectRoot checks the physical layout of the object root dir in
// fsys against the OCFL structural rules, independent of file contents: the
// version naming format is inferred from the directories present, required
// root files and the contiguous version directory sequence are checked, and
// each version directory's contents are checked. Findings accumulate in the
// returned Result; validation is never cut short by the first error. The
// returned ObjectRoot describes what was found and feeds ValidateContent.
func ValidateObjectRoot(ctx context.Context, fsys FS, dir string, opts ...ValidationOption) (*ObjectRoot, *validation.Result) {
	vopts, result := validationSetup(opts)
	v := &objectValidator{
		Result: result,
		opts:   vopts,
		fsys:   fsys,
		dir:    dir,
	}
	v.validate(ctx)
	return v.obj, result
}

// objectValidator holds the state of one structural validation run.
type objectValidator struct {
	*validation.Result
	opts *validationOptions
	fsys FS
	dir  string

	obj     *ObjectRoot // set during validation
	padding int         // inferred or fallback version padding
	alg     string      // sniffed or fallback digest algorithm
}

func (v *objectValidator) validate(ctx context.Context) {
	lgr := v.opts.logger
	fatalsBefore := len(v.Fatal())
	entries, err := v.fsys.ReadDir(ctx, v.dir)
	if err != nil {
		v.LogFatal(lgr, err)
		return
	}
	v.obj = NewObjectRoot(v.fsys, v.dir, entries)
	v.inferVersionFormat(entries)
	v.validateRootFiles(ctx, entries)
	v.validateRootDirs(ctx, entries)
	for _, vnum := range v.obj.VersionDirs {
		v.validateVersionDir(ctx, vnum)
	}
	if len(v.Fatal()) == fatalsBefore {
		v.LogOK(lgr, fmt.Sprintf("%s: object root structure conforms to OCFL %s", v.dir, v.obj.Spec))
	}
}

// inferVersionFormat determines the object's version naming format from the
// directory names in the root. Inference failure is an error, but validation
// continues with the configured default padding after a warning.
func (v *objectValidator) inferVersionFormat(entries []fs.DirEntry) {
	lgr := v.opts.logger
	var dirNames []string
	for _, e := range entries {
		if e.IsDir() {
			dirNames = append(dirNames, e.Name())
		}
	}
	padding, err := InferPadding(dirNames)
	if err != nil {
		// no version directories at all is E008; directories that don't
		// start the sequence at v1 is E009
		code := validation.E008
		for _, name := range dirNames {
			var vnum VNum
			if ParseVNum(name, &vnum) == nil {
				code = validation.E009
				break
			}
		}
		v.LogFatal(lgr, validation.NewCodedErr(err, code, checkVersionFormat))
		v.padding = v.opts.conf.VNumPadding
		fallback := V(1, v.padding)
		v.LogWarn(lgr, fmt.Errorf("using default version format (%s) for remaining checks", fallback))
		return
	}
	v.padding = padding
	if padding > 0 {
		err := errors.New("version directory names are zero-padded")
		v.LogWarn(lgr, validation.NewCodedErr(err, validation.W001, checkVersionFormat))
	}
}

// validateRootFiles checks that the object root holds the root inventory, its
// digest sidecar, and the object declaration, and nothing else. The expected
// sidecar name comes from a text scan of the inventory for digestAlgorithm,
// so a inventory that can't be parsed still yields a best-effort name.
func (v *objectValidator) validateRootFiles(ctx context.Context, entries []fs.DirEntry) {
	lgr := v.opts.logger
	v.alg = v.opts.conf.Alg()
	if v.obj.HasInventory {
		if alg, err := SniffDigestAlgorithm(ctx, v.fsys, v.obj.InventoryPath()); err == nil {
			v.alg = alg
		}
	} else {
		err := fmt.Errorf("%s: %w", inventoryFile, fs.ErrNotExist)
		v.LogFatal(lgr, validation.NewCodedErr(err, validation.E063, checkRootFiles))
	}
	var files []fs.DirEntry
	for _, e := range entries {
		if !e.IsDir() {
			files = append(files, e)
		}
	}
	decl, err := FindNamaste(files)
	if err != nil || decl.Type != NamasteTypeObject {
		err := fmt.Errorf("object declaration: %w", ErrNamasteNotExist)
		v.LogFatal(lgr, validation.NewCodedErr(err, validation.E003, checkRootFiles))
	} else {
		v.obj.Spec = decl.Version
		if err := v.obj.ValidateNamaste(ctx); err != nil {
			v.LogFatal(lgr, validation.NewCodedErr(err, validation.E007, checkRootFiles))
		}
	}
	required := map[string]bool{
		inventoryFile:         true,
		sidecarPrefix + v.alg: true,
	}
	if decl.Name() != "" {
		required[decl.Name()] = true
	}
	found := map[string]bool{}
	for _, e := range files {
		name := e.Name()
		found[name] = true
		if !required[name] {
			err := fmt.Errorf("unexpected file in object root: %q", name)
			v.LogFatal(lgr, validation.NewCodedErr(err, validation.E001, checkRootFiles))
		}
	}
	if !found[sidecarPrefix+v.alg] {
		err := fmt.Errorf("inventory sidecar %s: %w", sidecarPrefix+v.alg, fs.ErrNotExist)
		v.LogFatal(lgr, validation.NewCodedErr(err, validation.E058, checkRootFiles))
	}
}

// validateRootDirs checks that all root directories are version directories
// in the inferred format (a "logs" directory is tolerated) and that the
// version directories form the complete sequence v1..vN.
func (v *objectValidator) validateRootDirs(ctx context.Context, entries []fs.DirEntry) {
	lgr := v.opts.logger
	var found []string
	maxNum := 0
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		name := e.Name()
		if name == logsDir {
			err := errors.New("object root includes a logs directory; its contents are not validated")
			v.LogWarn(lgr, validation.NewCodedErr(err, validation.W012, checkRootDirs))
			continue
		}
		var vnum VNum
		if ParseVNum(name, &vnum) != nil || vnum.Padding() != v.padding {
			err := fmt.Errorf("unexpected directory in object root: %q", name)
			v.LogFatal(lgr, validation.NewCodedErr(err, validation.E001, checkRootDirs))
			continue
		}
		found = append(found, name)
		if vnum.Num() > maxNum {
			maxNum = vnum.Num()
		}
	}
	// regenerate the expected sequence from the format and report each
	// missing name, rather than just checking each found name is valid
	v.obj.VersionDirs = nil
	for i := 1; i <= maxNum; i++ {
		expect := V(i, v.padding)
		if !slices.Contains(found, expect.String()) {
			err := fmt.Errorf("%w: %s", ErrVNumMissing, expect)
			v.LogFatal(lgr, validation.NewCodedErr(err, validation.E010, checkRootDirs))
			continue
		}
		v.obj.VersionDirs = append(v.obj.VersionDirs, expect)
	}
}

// validateVersionDir checks the contents of a single version directory: an
// optional inventory and sidecar, no other files, and exactly the designated
// content directory.
func (v *objectValidator) validateVersionDir(ctx context.Context, vnum VNum) {
	lgr := v.opts.logger
	vDir := path.Join(v.dir, vnum.String())
	entries, err := v.fsys.ReadDir(ctx, vDir)
	if err != nil {
		v.LogFatal(lgr, err)
		return
	}
	contentDir := v.opts.conf.ContentDir()
	var hasInventory, hasSidecar, hasContent bool
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() {
			if name == contentDir {
				hasContent = true
				continue
			}
			err := fmt.Errorf("%s: unexpected directory: %q", vnum, name)
			v.LogFatal(lgr, validation.NewCodedErr(err, validation.E022, checkVersionDirs))
			continue
		}
		switch {
		case name == inventoryFile:
			hasInventory = true
		case strings.HasPrefix(name, sidecarPrefix):
			hasSidecar = true
		default:
			err := fmt.Errorf("%s: unexpected file: %q", vnum, name)
			v.LogFatal(lgr, validation.NewCodedErr(err, validation.E015, checkVersionDirs))
		}
	}
	if !hasInventory || !hasSidecar {
		err := fmt.Errorf("%s: no version inventory and sidecar", vnum)
		v.LogWarn(lgr, validation.NewCodedErr(err, validation.W010, checkVersionDirs))
	}
	if !hasContent {
		err := fmt.Errorf("%s: no %q directory", vnum, contentDir)
		v.LogFatal(lgr, validation.NewCodedErr(err, validation.E016, checkVersionDirs))
	}
}
