package ocflkit_test

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/ocflkit/ocflkit"
	"github.com/ocflkit/ocflkit/validation"
)

const testInventoryJSON = `{
 "id": "ark:/12345/x54xz321",
 "type": "https://ocfl.io/1.1/spec/#inventory",
 "digestAlgorithm": "sha512",
 "head": "v1",
 "manifest": {},
 "versions": {}
}`

// objectFixture returns a structurally conforming object root under "obj".
func objectFixture() fstest.MapFS {
	return fstest.MapFS{
		"obj/0=ocfl_object_1.1":          &fstest.MapFile{Data: []byte("ocfl_object_1.1\n")},
		"obj/inventory.json":             &fstest.MapFile{Data: []byte(testInventoryJSON)},
		"obj/inventory.json.sha512":      &fstest.MapFile{Data: []byte("abc inventory.json\n")},
		"obj/v1/inventory.json":          &fstest.MapFile{Data: []byte(testInventoryJSON)},
		"obj/v1/inventory.json.sha512":   &fstest.MapFile{Data: []byte("abc inventory.json\n")},
		"obj/v1/content/a.txt":           &fstest.MapFile{Data: []byte("content")},
	}
}

func fatalCodes(result *validation.Result) map[string]int {
	codes := map[string]int{}
	for _, err := range result.Fatal() {
		var coded *validation.CodedErr
		if validation.AsCodedErr(err, &coded) {
			codes[coded.Code().Num]++
		} else {
			codes[""]++
		}
	}
	return codes
}

func validateFixture(t *testing.T, fsys fstest.MapFS) (*ocflkit.ObjectRoot, *validation.Result) {
	t.Helper()
	ctx := context.Background()
	return ocflkit.ValidateObjectRoot(ctx, ocflkit.NewFS(fsys), "obj")
}

func TestValidateObjectRootOK(t *testing.T) {
	obj, result := validateFixture(t, objectFixture())
	if !result.Valid() {
		t.Fatalf("expected a valid object root, got: %v", result.Fatal())
	}
	if len(result.OK()) != 1 {
		t.Errorf("expected a single pass record, got %d", len(result.OK()))
	}
	if obj.Spec != ocflkit.Spec1_1 {
		t.Errorf("expected spec 1.1, got %s", obj.Spec)
	}
	if len(obj.VersionDirs) != 1 || obj.VersionDirs[0].Num() != 1 {
		t.Errorf("unexpected version dirs: %v", obj.VersionDirs)
	}
}

func TestValidateObjectRootMissingVersion(t *testing.T) {
	fsys := objectFixture()
	// versions v2 and v4 exist but v3 is missing
	for _, v := range []string{"v2", "v4"} {
		fsys["obj/"+v+"/inventory.json"] = &fstest.MapFile{Data: []byte(testInventoryJSON)}
		fsys["obj/"+v+"/inventory.json.sha512"] = &fstest.MapFile{Data: []byte("abc inventory.json\n")}
		fsys["obj/"+v+"/content/b.txt"] = &fstest.MapFile{Data: []byte("more content")}
	}
	obj, result := validateFixture(t, fsys)
	codes := fatalCodes(result)
	if codes["E010"] != 1 {
		t.Errorf("expected one E010 finding, got %d (all: %v)", codes["E010"], result.Fatal())
	}
	if len(result.Fatal()) != 1 {
		t.Errorf("expected v3 to be the only error, got: %v", result.Fatal())
	}
	var found bool
	for _, err := range result.Fatal() {
		if strings.Contains(err.Error(), "v3") {
			found = true
		}
	}
	if !found {
		t.Error("expected the finding to name the missing v3 directory")
	}
	// the found version dirs still feed content validation
	if len(obj.VersionDirs) != 3 {
		t.Errorf("expected 3 version dirs, got %v", obj.VersionDirs)
	}
}

func TestValidateObjectRootFiles(t *testing.T) {
	t.Run("missing inventory", func(t *testing.T) {
		fsys := objectFixture()
		delete(fsys, "obj/inventory.json")
		_, result := validateFixture(t, fsys)
		if codes := fatalCodes(result); codes["E063"] != 1 {
			t.Errorf("expected one E063 finding, got: %v", result.Fatal())
		}
	})
	t.Run("missing sidecar", func(t *testing.T) {
		fsys := objectFixture()
		delete(fsys, "obj/inventory.json.sha512")
		_, result := validateFixture(t, fsys)
		if codes := fatalCodes(result); codes["E058"] != 1 {
			t.Errorf("expected one E058 finding, got: %v", result.Fatal())
		}
	})
	t.Run("missing declaration", func(t *testing.T) {
		fsys := objectFixture()
		delete(fsys, "obj/0=ocfl_object_1.1")
		_, result := validateFixture(t, fsys)
		if codes := fatalCodes(result); codes["E003"] != 1 {
			t.Errorf("expected one E003 finding, got: %v", result.Fatal())
		}
	})
	t.Run("bad declaration contents", func(t *testing.T) {
		fsys := objectFixture()
		fsys["obj/0=ocfl_object_1.1"] = &fstest.MapFile{Data: []byte("wrong\n")}
		_, result := validateFixture(t, fsys)
		if codes := fatalCodes(result); codes["E007"] != 1 {
			t.Errorf("expected one E007 finding, got: %v", result.Fatal())
		}
	})
	t.Run("extra root file", func(t *testing.T) {
		fsys := objectFixture()
		fsys["obj/extra.txt"] = &fstest.MapFile{Data: []byte("x")}
		_, result := validateFixture(t, fsys)
		if codes := fatalCodes(result); codes["E001"] != 1 {
			t.Errorf("expected one E001 finding, got: %v", result.Fatal())
		}
	})
	t.Run("sidecar name follows sniffed algorithm", func(t *testing.T) {
		fsys := objectFixture()
		inv := strings.Replace(testInventoryJSON, "sha512", "sha256", 1)
		fsys["obj/inventory.json"] = &fstest.MapFile{Data: []byte(inv)}
		delete(fsys, "obj/inventory.json.sha512")
		fsys["obj/inventory.json.sha256"] = &fstest.MapFile{Data: []byte("abc inventory.json\n")}
		_, result := validateFixture(t, fsys)
		if !result.Valid() {
			t.Errorf("expected a valid object root, got: %v", result.Fatal())
		}
	})
}

func TestValidateObjectRootDirs(t *testing.T) {
	t.Run("logs is a warning", func(t *testing.T) {
		fsys := objectFixture()
		fsys["obj/logs/audit.log"] = &fstest.MapFile{Data: []byte("x")}
		_, result := validateFixture(t, fsys)
		if !result.Valid() {
			t.Errorf("expected a valid object root, got: %v", result.Fatal())
		}
		if len(result.Warn()) == 0 {
			t.Error("expected a warning for the logs directory")
		}
	})
	t.Run("unexpected directory", func(t *testing.T) {
		fsys := objectFixture()
		fsys["obj/backup/old.txt"] = &fstest.MapFile{Data: []byte("x")}
		_, result := validateFixture(t, fsys)
		if codes := fatalCodes(result); codes["E001"] != 1 {
			t.Errorf("expected one E001 finding, got: %v", result.Fatal())
		}
	})
	t.Run("padding mismatch", func(t *testing.T) {
		fsys := fstest.MapFS{
			"obj/0=ocfl_object_1.1":           &fstest.MapFile{Data: []byte("ocfl_object_1.1\n")},
			"obj/inventory.json":              &fstest.MapFile{Data: []byte(testInventoryJSON)},
			"obj/inventory.json.sha512":       &fstest.MapFile{Data: []byte("abc inventory.json\n")},
			"obj/v0001/inventory.json":        &fstest.MapFile{Data: []byte(testInventoryJSON)},
			"obj/v0001/inventory.json.sha512": &fstest.MapFile{Data: []byte("abc inventory.json\n")},
			"obj/v0001/content/a.txt":         &fstest.MapFile{Data: []byte("content")},
			"obj/v2/content/b.txt":            &fstest.MapFile{Data: []byte("x")},
		}
		_, result := validateFixture(t, fsys)
		// v2 doesn't match the padded format inferred from v0001
		if codes := fatalCodes(result); codes["E001"] != 1 {
			t.Errorf("expected one E001 finding, got: %v", result.Fatal())
		}
	})
}

func TestValidateObjectRootFormatInference(t *testing.T) {
	t.Run("padded format", func(t *testing.T) {
		fsys := fstest.MapFS{
			"obj/0=ocfl_object_1.1":            &fstest.MapFile{Data: []byte("ocfl_object_1.1\n")},
			"obj/inventory.json":               &fstest.MapFile{Data: []byte(testInventoryJSON)},
			"obj/inventory.json.sha512":        &fstest.MapFile{Data: []byte("abc inventory.json\n")},
			"obj/v0001/inventory.json":         &fstest.MapFile{Data: []byte(testInventoryJSON)},
			"obj/v0001/inventory.json.sha512":  &fstest.MapFile{Data: []byte("abc inventory.json\n")},
			"obj/v0001/content/a.txt":          &fstest.MapFile{Data: []byte("content")},
			"obj/v0002/content/b.txt":          &fstest.MapFile{Data: []byte("content2")},
		}
		obj, result := validateFixture(t, fsys)
		if !result.Valid() {
			t.Errorf("expected a valid object root, got: %v", result.Fatal())
		}
		// zero-padding itself is warned against
		if len(result.Warn()) == 0 {
			t.Error("expected warnings for zero-padded names and missing version inventory")
		}
		if obj.VersionDirs.Padding() != 4 {
			t.Errorf("expected padding 4, got %d", obj.VersionDirs.Padding())
		}
	})
	t.Run("first version isn't v1", func(t *testing.T) {
		fsys := objectFixture()
		delete(fsys, "obj/v1/inventory.json")
		delete(fsys, "obj/v1/inventory.json.sha512")
		delete(fsys, "obj/v1/content/a.txt")
		fsys["obj/v2/content/a.txt"] = &fstest.MapFile{Data: []byte("content")}
		_, result := validateFixture(t, fsys)
		codes := fatalCodes(result)
		if codes["E009"] != 1 {
			t.Errorf("expected one E009 finding, got: %v", result.Fatal())
		}
		// inference failure degrades to the fallback format with a warning,
		// and the remaining checks still run
		if len(result.Warn()) == 0 {
			t.Error("expected a fallback warning")
		}
	})
}
