package checksum_test

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/ocflkit/ocflkit/digest"
	"github.com/ocflkit/ocflkit/digest/checksum"
)

func fsOpen(fsys fs.FS) checksum.OpenFunc {
	return func(_ context.Context, name string) (io.Reader, error) {
		return fsys.Open(name)
	}
}

func TestFiles(t *testing.T) {
	fsys := fstest.MapFS{}
	names := make([]string, 0, 100)
	want := map[string]string{}
	for i := 0; i < 100; i++ {
		name := fmt.Sprintf("dir/file-%02d.txt", i)
		content := fmt.Sprintf("content %d", i)
		fsys[name] = &fstest.MapFile{Data: []byte(content)}
		names = append(names, name)
		sum, err := digest.Reader(strings.NewReader(content), digest.SHA256)
		if err != nil {
			t.Fatal(err)
		}
		want[name] = sum
	}
	for _, numGos := range []int{0, 1, 4} {
		sums, err := checksum.Files(context.Background(), fsOpen(fsys), digest.SHA256, names, numGos)
		if err != nil {
			t.Fatal(err)
		}
		if len(sums) != len(want) {
			t.Fatalf("numGos=%d: got %d sums, want %d", numGos, len(sums), len(want))
		}
		for name, sum := range want {
			if sums[name] != sum {
				t.Errorf("numGos=%d: %s: got %s, want %s", numGos, name, sums[name], sum)
			}
		}
	}
}

func TestFilesOpenError(t *testing.T) {
	fsys := fstest.MapFS{
		"a.txt": &fstest.MapFile{Data: []byte("a")},
	}
	names := []string{"a.txt", "missing.txt"}
	_, err := checksum.Files(context.Background(), fsOpen(fsys), digest.SHA256, names, 2)
	if err == nil {
		t.Fatal("expected an error for the missing file")
	}
}

func TestFilesCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	fsys := fstest.MapFS{
		"a.txt": &fstest.MapFile{Data: []byte("a")},
	}
	_, err := checksum.Files(ctx, fsOpen(fsys), digest.SHA256, []string{"a.txt"}, 1)
	if err == nil {
		t.Fatal("expected a context error")
	}
}

func TestFilesEmpty(t *testing.T) {
	sums, err := checksum.Files(context.Background(), fsOpen(fstest.MapFS{}), digest.SHA256, nil, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(sums) != 0 {
		t.Fatalf("got %d sums", len(sums))
	}
}
