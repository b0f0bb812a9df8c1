// Package snapshot stores rendered HTML of committed cycles.
//
// Stores are keyed by short names. The cycle middleware writes the live
// document after every committed cycle under Key(seq). Three backends are
// provided: a directory, a bbolt database and an S3 bucket.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/vango-dev/vtree/pkg/app"
	"github.com/vango-dev/vtree/pkg/dom"
)

// Store errors.
var (
	ErrNotFound   = errors.New("snapshot: not found")
	ErrInvalidKey = errors.New("snapshot: invalid key")
)

// Store persists snapshots by key.
type Store interface {
	Put(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
}

// Key returns the key for the snapshot of cycle seq.
func Key(seq uint64) string {
	return fmt.Sprintf("cycle-%06d.html", seq)
}

// validKey rejects keys that could escape a directory or prefix.
func validKey(key string) error {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

// Middleware returns cycle middleware that stores doc's HTML after each
// committed cycle. Store failures are logged and do not fail the cycle.
func Middleware(store Store, doc *dom.Document, logger *slog.Logger) app.Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(ctx context.Context, c *app.Cycle, next func(context.Context) error) error {
		if err := next(ctx); err != nil {
			return err
		}
		key := Key(c.Seq)
		if err := store.Put(ctx, key, []byte(doc.HTML())); err != nil {
			logger.Error("snapshot failed", "key", key, "error", err)
			return nil
		}
		logger.Debug("snapshot stored", "key", key)
		return nil
	}
}
