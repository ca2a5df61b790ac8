package ocflkit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/ocflkit/ocflkit/digest"
	"github.com/ocflkit/ocflkit/digest/checksum"
	"github.com/ocflkit/ocflkit/validation"
)

const checkContentDigests = "content-digests"

// ValidateContent checks the object's on-disk content files against the
// digests claimed by inv's manifest: every file under each version's content
// directory is re-digested and cross-checked in both directions, so files
// missing from the manifest, files missing from disk, and digest mismatches
// are all reported. The version directories come from a prior
// ValidateObjectRoot run. By default the inventory's digest algorithm is
// used; ValidationAlg can request an alternate algorithm, which is permitted
// only if the inventory's fixity block has values for it.
func ValidateContent(ctx context.Context, obj *ObjectRoot, inv *Inventory, opts ...ValidationOption) *validation.Result {
	vopts, result := validationSetup(opts)
	lgr := vopts.logger
	fatalsBefore := len(result.Fatal())
	source := inv.Manifest
	algName := inv.DigestAlgorithm
	mismatchCode := validation.E092
	if vopts.alg != "" && vopts.alg != inv.DigestAlgorithm {
		// an alternate algorithm has no authoritative digests unless the
		// fixity block includes it
		fixity, ok := inv.Fixity[vopts.alg]
		if !ok {
			err := fmt.Errorf("algorithm %q is not in the inventory's fixity block", vopts.alg)
			return result.LogFatal(lgr, validation.NewCodedErr(err, validation.E093, checkContentDigests))
		}
		source = fixity
		algName = vopts.alg
		mismatchCode = validation.E093
	}
	alg, err := digest.Get(algName)
	if err != nil {
		return result.LogFatal(lgr, err)
	}
	onDisk, err := contentFiles(ctx, obj, inv.ContentDir())
	if err != nil {
		return result.LogFatal(lgr, err)
	}
	open := func(ctx context.Context, name string) (io.Reader, error) {
		return obj.FS.OpenFile(ctx, name)
	}
	sums, err := checksum.Files(ctx, open, alg, onDisk, vopts.numGos)
	if err != nil {
		return result.LogFatal(lgr, err)
	}
	// expected digest for each content path, rooted at the object directory
	expected := make(PathMap, source.NumPaths())
	for d, paths := range source {
		for _, p := range paths {
			expected[path.Join(obj.Path, p)] = strings.ToLower(d)
		}
	}
	for name, sum := range sums {
		want, ok := expected[name]
		if !ok {
			err := fmt.Errorf("file not referenced in manifest: %s", name)
			result.LogFatal(lgr, validation.NewCodedErr(err, validation.E023, checkContentDigests))
			continue
		}
		if want != strings.ToLower(sum) {
			err := fmt.Errorf("%s: digest mismatch: got %s, expected %s (%s)", name, sum, want, algName)
			result.LogFatal(lgr, validation.NewCodedErr(err, mismatchCode, checkContentDigests))
		}
	}
	for name := range expected {
		if _, ok := sums[name]; !ok {
			err := fmt.Errorf("content path missing on disk: %s", name)
			result.LogFatal(lgr, validation.NewCodedErr(err, mismatchCode, checkContentDigests))
		}
	}
	if len(result.Fatal()) == fatalsBefore {
		result.LogOK(lgr, fmt.Sprintf("%s: content matches %s digests for %d files", obj.Path, algName, len(sums)))
	}
	return result
}

// contentFiles lists every regular file under the content directory of each
// of the object's version directories. A version without a content directory
// is skipped: its absence is a structural finding, not a checksum one.
func contentFiles(ctx context.Context, obj *ObjectRoot, contentDir string) ([]string, error) {
	var names []string
	walkFn := func(name string, _ fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		names = append(names, name)
		return nil
	}
	for _, vnum := range obj.VersionDirs {
		dir := path.Join(obj.Path, vnum.String(), contentDir)
		if err := EachFile(ctx, obj.FS, dir, walkFn); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, err
		}
	}
	return names, nil
}
