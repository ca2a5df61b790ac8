package ocflkit

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"

	"github.com/ocflkit/ocflkit/digest"
)

var (
	ErrSidecarContents = errors.New("invalid contents of inventory sidecar file")

	sidecarRegexp   = regexp.MustCompile(`^([a-fA-F0-9]+)\s+inventory\.json[\n]?$`)
	digestAlgRegexp = regexp.MustCompile(`"digestAlgorithm"\s*:\s*"([^"]*)"`)
)

// ReadInventory reads and decodes the inventory file name in fsys.
func ReadInventory(ctx context.Context, fsys FS, name string) (*Inventory, error) {
	f, err := fsys.OpenFile(ctx, name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	byts, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("reading inventory: %w", err)
	}
	var inv Inventory
	if err := json.Unmarshal(byts, &inv); err != nil {
		return nil, fmt.Errorf("decoding inventory: %w", err)
	}
	return &inv, nil
}

// WriteInventory marshals inv and writes inventory.json plus its digest
// sidecar to each directory in dirs.
func WriteInventory(ctx context.Context, fsys WriteFS, inv *Inventory, dirs ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	alg, err := digest.Get(inv.DigestAlgorithm)
	if err != nil {
		return err
	}
	byts, err := json.MarshalIndent(inv, "", " ")
	if err != nil {
		return fmt.Errorf("encoding inventory: %w", err)
	}
	h := alg.New()
	if _, err := io.Copy(h, bytes.NewReader(byts)); err != nil {
		return err
	}
	sum := hex.EncodeToString(h.Sum(nil))
	for _, dir := range dirs {
		invFile := path.Join(dir, inventoryFile)
		if _, err := fsys.Write(ctx, invFile, bytes.NewReader(byts)); err != nil {
			return fmt.Errorf("writing inventory: %w", err)
		}
		sidecar := invFile + "." + inv.DigestAlgorithm
		if _, err := fsys.Write(ctx, sidecar, strings.NewReader(sum+" "+inventoryFile+"\n")); err != nil {
			return fmt.Errorf("writing inventory sidecar: %w", err)
		}
	}
	return nil
}

// ReadSidecarDigest reads the digest value stored in the inventory sidecar
// file name in fsys.
func ReadSidecarDigest(ctx context.Context, fsys FS, name string) (string, error) {
	f, err := fsys.OpenFile(ctx, name)
	if err != nil {
		return "", err
	}
	defer f.Close()
	cont, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}
	matches := sidecarRegexp.FindSubmatch(cont)
	if len(matches) != 2 {
		return "", fmt.Errorf("reading %s: %w", name, ErrSidecarContents)
	}
	return string(matches[1]), nil
}

// SniffDigestAlgorithm scans the inventory file name in fsys for its
// digestAlgorithm value without decoding the full document, so a malformed
// inventory still yields a best-effort algorithm name. The algorithm is used
// to predict the sidecar's filename, so the literal text value is returned
// even if it doesn't name a supported algorithm.
func SniffDigestAlgorithm(ctx context.Context, fsys FS, name string) (string, error) {
	f, err := fsys.OpenFile(ctx, name)
	if err != nil {
		return "", err
	}
	defer f.Close()
	cont, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}
	matches := digestAlgRegexp.FindSubmatch(cont)
	if len(matches) != 2 {
		return "", fmt.Errorf("%s: no digestAlgorithm found", name)
	}
	return string(matches[1]), nil
}
