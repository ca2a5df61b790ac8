package local_test

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"strings"
	"testing"

	"github.com/ocflkit/ocflkit/backend/local"
)

func TestFSWriteRead(t *testing.T) {
	ctx := context.Background()
	fsys, err := local.NewFS(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	n, err := fsys.Write(ctx, "a/b/c.txt", strings.NewReader("content"))
	if err != nil {
		t.Fatal(err)
	}
	if n != int64(len("content")) {
		t.Errorf("wrote %d bytes", n)
	}
	f, err := fsys.OpenFile(ctx, "a/b/c.txt")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	got, err := io.ReadAll(f)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "content" {
		t.Errorf("read %q", got)
	}
	entries, err := fsys.ReadDir(ctx, "a")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "b" || !entries[0].IsDir() {
		t.Errorf("unexpected entries: %v", entries)
	}
}

func TestFSWriteOverwrites(t *testing.T) {
	ctx := context.Background()
	fsys, err := local.NewFS(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fsys.Write(ctx, "f.txt", strings.NewReader("first")); err != nil {
		t.Fatal(err)
	}
	if _, err := fsys.Write(ctx, "f.txt", strings.NewReader("second")); err != nil {
		t.Fatal(err)
	}
	f, err := fsys.OpenFile(ctx, "f.txt")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	got, _ := io.ReadAll(f)
	if string(got) != "second" {
		t.Errorf("read %q", got)
	}
}

func TestFSInvalidPaths(t *testing.T) {
	ctx := context.Background()
	fsys, err := local.NewFS(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{".", "../escape.txt", "/abs.txt", "a//b.txt"} {
		if _, err := fsys.Write(ctx, name, strings.NewReader("x")); err == nil {
			t.Errorf("expected an error writing to %q", name)
		}
	}
	if _, err := fsys.OpenFile(ctx, "missing.txt"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestFSCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	fsys, err := local.NewFS(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fsys.Write(ctx, "f.txt", strings.NewReader("x")); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if _, err := fsys.OpenFile(ctx, "f.txt"); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if _, err := fsys.ReadDir(ctx, "."); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
