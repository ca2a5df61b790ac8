// Package digest defines the digest algorithms available to OCFL objects.
package digest

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"

	"golang.org/x/crypto/blake2b"
)

var (
	SHA512  = Alg{id: `sha512`}
	SHA256  = Alg{id: `sha256`}
	SHA224  = Alg{id: `sha224`}
	SHA1    = Alg{id: `sha1`}
	MD5     = Alg{id: `md5`}
	BLAKE2B = Alg{id: `blake2b-512`}

	ErrUnknownAlg = errors.New("unsupported digest algorithm")

	algs = map[string]Alg{
		SHA512.id:  SHA512,
		SHA256.id:  SHA256,
		SHA224.id:  SHA224,
		SHA1.id:    SHA1,
		MD5.id:     MD5,
		BLAKE2B.id: BLAKE2B,
	}
)

// Alg is a supported digest algorithm (e.g., "sha512").
type Alg struct {
	id string
}

// Get returns the Alg with the given id or ErrUnknownAlg.
func Get(id string) (Alg, error) {
	alg, ok := algs[id]
	if !ok {
		return Alg{}, fmt.Errorf("%w: %q", ErrUnknownAlg, id)
	}
	return alg, nil
}

// New returns a new hash for the algorithm. It panics if a is not one of the
// package's defined algorithms.
func (a Alg) New() hash.Hash {
	switch a.id {
	case SHA512.id:
		return sha512.New()
	case SHA256.id:
		return sha256.New()
	case SHA224.id:
		return sha256.New224()
	case SHA1.id:
		return sha1.New()
	case MD5.id:
		return md5.New()
	case BLAKE2B.id:
		h, err := blake2b.New512(nil)
		if err != nil {
			panic("creating blake2b hash")
		}
		return h
	}
	panic(fmt.Errorf("%w: %q", ErrUnknownAlg, a.id))
}

// ID returns the algorithm's name.
func (a Alg) ID() string { return a.id }

func (a Alg) String() string { return a.id }

func (a Alg) MarshalText() ([]byte, error) {
	return []byte(a.id), nil
}

func (a *Alg) UnmarshalText(text []byte) error {
	alg, err := Get(string(text))
	if err != nil {
		return err
	}
	a.id = alg.id
	return nil
}

// Reader returns the hex-encoded digest of everything read from r.
func Reader(r io.Reader, alg Alg) (string, error) {
	h := alg.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
