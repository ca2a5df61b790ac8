package digest_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/ocflkit/ocflkit/digest"
)

func TestGet(t *testing.T) {
	for _, id := range []string{"sha512", "sha256", "sha224", "sha1", "md5", "blake2b-512"} {
		alg, err := digest.Get(id)
		if err != nil {
			t.Errorf("Get(%q): %v", id, err)
			continue
		}
		if alg.ID() != id {
			t.Errorf("Get(%q) returned %q", id, alg.ID())
		}
		if alg.New() == nil {
			t.Errorf("%s: nil hash", id)
		}
	}
	if _, err := digest.Get("sha3"); !errors.Is(err, digest.ErrUnknownAlg) {
		t.Errorf("expected ErrUnknownAlg, got %v", err)
	}
}

func TestReader(t *testing.T) {
	// empty-input digests, from the algorithm reference vectors
	empties := map[digest.Alg]string{
		digest.MD5:    "d41d8cd98f00b204e9800998ecf8427e",
		digest.SHA1:   "da39a3ee5e6b4b0d3255bfef95601890afd80709",
		digest.SHA256: "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
	}
	for alg, want := range empties {
		got, err := digest.Reader(strings.NewReader(""), alg)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("%s: got %s, want %s", alg, got, want)
		}
	}
	got, err := digest.Reader(strings.NewReader("abc"), digest.SHA256)
	if err != nil {
		t.Fatal(err)
	}
	want := "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	if got != want {
		t.Errorf("sha256(abc): got %s, want %s", got, want)
	}
}

func TestAlgMarshal(t *testing.T) {
	b, err := digest.SHA512.MarshalText()
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "sha512" {
		t.Errorf("got %s", b)
	}
	var alg digest.Alg
	if err := alg.UnmarshalText([]byte("blake2b-512")); err != nil {
		t.Fatal(err)
	}
	if alg != digest.BLAKE2B {
		t.Errorf("got %s", alg)
	}
	if err := alg.UnmarshalText([]byte("nope")); !errors.Is(err, digest.ErrUnknownAlg) {
		t.Errorf("expected ErrUnknownAlg, got %v", err)
	}
}
