// Package finalize seals segments once the allocator is done with them.
//
// A Finalizer reports success as a boolean. False means the segment must not
// be reused, not even for the allocator's rollback rewrite, and a replacement
// has to be opened. Sealing failures are never returned as errors.
package finalize

import (
	"context"
	"io"
	"log/slog"

	"github.com/joshuapare/mediakit/media/segment"
)

// Finalizer seals a segment.
type Finalizer interface {
	Finalize(seg *segment.Segment) bool
}

// Always is a Finalizer that seals nothing and always succeeds.
type Always struct{}

// Finalize implements Finalizer.
func (Always) Finalize(*segment.Segment) bool {
	return true
}

// Func adapts a plain function to Finalizer.
type Func func(seg *segment.Segment) bool

// Finalize implements Finalizer.
func (f Func) Finalize(seg *segment.Segment) bool {
	return f(seg)
}

// Sealer is the part of the media store a Store finalizer needs.
type Sealer interface {
	Seal(ctx context.Context) error
}

// Store seals the active image of a media store.
type Store struct {
	ctx    context.Context
	sealer Sealer
	log    *slog.Logger
}

// NewStore returns a finalizer that seals the active image of s. Seal calls
// use ctx; a nil logger discards.
func NewStore(ctx context.Context, s Sealer, log *slog.Logger) *Store {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{ctx: ctx, sealer: s, log: log}
}

// Finalize implements Finalizer. A seal error is logged and reported as false.
func (f *Store) Finalize(seg *segment.Segment) bool {
	if err := f.sealer.Seal(f.ctx); err != nil {
		f.log.Warn("seal failed", "segment", seg.ID(), "seq", seg.Seq(), "error", err)
		return false
	}
	f.log.Debug("segment sealed", "segment", seg.ID(), "seq", seg.Seq(), "used", seg.Used())
	return true
}

// Compile-time interface checks
var (
	_ Finalizer = Always{}
	_ Finalizer = Func(nil)
	_ Finalizer = (*Store)(nil)
)
