// Package checksum computes file digests concurrently.
package checksum

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"runtime"
	"sync"

	"github.com/ocflkit/ocflkit/digest"
	"golang.org/x/sync/errgroup"
)

// OpenFunc opens a named file for reading. If the returned reader implements
// io.Closer it is closed after digesting.
type OpenFunc func(ctx context.Context, name string) (io.Reader, error)

// Files digests each named file with alg, running up to numGos digests
// concurrently (GOMAXPROCS if numGos < 1). It returns a name-to-digest map.
// The context cancels any digests not yet started.
func Files(ctx context.Context, open OpenFunc, alg digest.Alg, names []string, numGos int) (map[string]string, error) {
	if numGos < 1 {
		numGos = runtime.GOMAXPROCS(0)
	}
	grp, ctx := errgroup.WithContext(ctx)
	grp.SetLimit(numGos)
	var mu sync.Mutex
	sums := make(map[string]string, len(names))
	for _, name := range names {
		name := name
		grp.Go(func() error {
			sum, err := one(ctx, open, alg, name)
			if err != nil {
				return err
			}
			mu.Lock()
			sums[name] = sum
			mu.Unlock()
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}
	return sums, nil
}

func one(ctx context.Context, open OpenFunc, alg digest.Alg, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	r, err := open(ctx, name)
	if err != nil {
		return "", err
	}
	if closer, ok := r.(io.Closer); ok {
		defer closer.Close()
	}
	h := alg.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", fmt.Errorf("digesting %s: %w", name, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
