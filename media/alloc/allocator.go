package alloc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/joshuapare/mediakit/media"
	"github.com/joshuapare/mediakit/media/finalize"
	"github.com/joshuapare/mediakit/media/segment"
	"github.com/joshuapare/mediakit/media/source"
	"github.com/joshuapare/mediakit/media/validate"
	"github.com/joshuapare/mediakit/media/writer"
)

// Stats counts what a run did.
type Stats struct {
	Items            int `json:"items"`             // items pulled from the source
	Rejected         int `json:"rejected"`          // admission refusals
	Dropped          int `json:"dropped"`           // items skipped after a refusal
	Writes           int `json:"writes"`            // Write calls, rewrites included
	Written          int `json:"written"`           // successful Write calls
	Rewrites         int `json:"rewrites"`          // rollback/rollover writes
	SegmentsOpened   int `json:"segments_opened"`   // segments made active
	Finalizes        int `json:"finalizes"`         // Finalize calls
	FinalizeFailures int `json:"finalize_failures"` // Finalize calls returning false
}

// Allocator packs items from a source onto segments.
//
// NOT thread-safe. Each Allocator is meant for a single Run.
type Allocator[T media.Item] struct {
	src       source.Source[T]
	validator validate.Validator
	writer    writer.Writer[T]
	finalizer finalize.Finalizer
	cfg       config
	log       *slog.Logger

	active *segment.Segment
	seq    int
	stats  Stats
}

// New wires an allocator. Every collaborator is required.
func New[T media.Item](
	src source.Source[T],
	v validate.Validator,
	w writer.Writer[T],
	f finalize.Finalizer,
	opts ...Option,
) (*Allocator[T], error) {
	if src == nil || v == nil || w == nil || f == nil {
		return nil, errors.New("alloc: source, validator, writer and finalizer are required")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.segOpts.Validate(); err != nil {
		return nil, fmt.Errorf("alloc: segment options: %w", err)
	}
	if cfg.policy != RolloverAlways && cfg.policy != RolloverOnFailure {
		return nil, fmt.Errorf("alloc: unknown policy %v", cfg.policy)
	}

	a := &Allocator[T]{
		src:       src,
		validator: v,
		writer:    w,
		finalizer: f,
		cfg:       cfg,
		log:       cfg.log.With("policy", cfg.policy.String()),
	}
	if cfg.initial != nil {
		a.active = cfg.initial
		a.seq = cfg.initial.Seq() + 1
	}
	return a, nil
}

// Active returns the current segment, nil before the run starts.
func (a *Allocator[T]) Active() *segment.Segment {
	return a.active
}

// Stats returns the counters accumulated so far.
func (a *Allocator[T]) Stats() Stats {
	return a.stats
}

// Run pulls items until the source is exhausted, an item cannot be placed,
// the source fails or ctx is cancelled. The context is only checked between
// items; an item in flight always completes its rollback/rollover sequence.
func (a *Allocator[T]) Run(ctx context.Context) (Stats, error) {
	if a.active == nil {
		if err := a.open(); err != nil {
			return a.stats, err
		}
	}

	for {
		if err := ctx.Err(); err != nil {
			a.log.Info("run cancelled", "items", a.stats.Items)
			return a.stats, err
		}

		item, ok, err := a.src.Next()
		if err != nil {
			return a.stats, fmt.Errorf("alloc: next item: %w", err)
		}
		if !ok {
			break
		}
		a.stats.Items++

		if err := a.place(item); err != nil {
			a.log.Error("run stopped", "item", media.Label(item), "error", err)
			return a.stats, err
		}
	}

	a.log.Debug("run complete",
		"items", a.stats.Items,
		"written", a.stats.Written,
		"dropped", a.stats.Dropped,
		"segments", a.stats.SegmentsOpened)
	return a.stats, nil
}

// place runs one item through admission and the configured policy.
func (a *Allocator[T]) place(item T) error {
	if item.Duration() < 0 {
		return fmt.Errorf("%w: %q has %s", ErrBadItem, media.Label(item), item.Duration())
	}

	if !a.validator.Validate(a.active) {
		a.stats.Rejected++
		a.emit(ItemRejected, item, nil)
		a.finalize() // the segment is abandoned either way
		if err := a.open(); err != nil {
			return err
		}
		if !a.cfg.retryRejected || !a.validator.Validate(a.active) {
			a.stats.Dropped++
			a.emit(ItemDropped, item, nil)
			a.log.Warn("item dropped", "item", media.Label(item), "segment", a.active.Seq())
			return nil
		}
	}
	a.emit(ItemAdmitted, item, nil)

	if a.cfg.policy == RolloverOnFailure {
		return a.placeOnFailure(item)
	}
	return a.placeAlways(item)
}

// placeAlways writes, then unconditionally undoes the consumption, finalizes
// and rewrites. remaining never exceeds total because only consumption that
// was applied is undone.
func (a *Allocator[T]) placeAlways(item T) error {
	d := item.Duration()
	seg := a.active

	var overflow *CapacityOverflowError
	consumed := false
	if err := a.write(item); err != nil {
		overflow = a.overflow(item, seg, StageWrite, err)
		a.emit(WriteFailed, item, err)
	} else {
		seg.AdjustCapacity(d)
		consumed = true
		a.emit(ItemWritten, item, nil)
	}

	if consumed {
		seg.AdjustCapacity(-d)
		a.emit(CapacityRestored, item, nil)
	}
	if !a.finalize() {
		if err := a.open(); err != nil {
			return errors.Join(asError(overflow), err)
		}
	}

	a.stats.Rewrites++
	if err := a.write(item); err != nil {
		a.emit(RewriteFailed, item, err)
		if overflow != nil {
			overflow.RewriteErr = err
		} else {
			overflow = a.overflow(item, a.active, StageRewrite, err)
		}
	} else {
		a.emit(ItemRewritten, item, nil)
	}

	return asError(overflow)
}

// placeOnFailure keeps successful writes and rolls only when a write fails
// or the item does not fit what is left of the active segment.
func (a *Allocator[T]) placeOnFailure(item T) error {
	d := item.Duration()
	if d > a.active.Total() {
		return fmt.Errorf("%w: %q is %s, segments hold %s",
			ErrItemTooLong, media.Label(item), d, a.active.Total())
	}
	if d > a.active.Remaining() {
		a.emit(SegmentExhausted, item, nil)
		a.finalize()
		if err := a.open(); err != nil {
			return err
		}
	}

	err := a.write(item)
	if err == nil {
		a.active.AdjustCapacity(d)
		a.emit(ItemWritten, item, nil)
		return nil
	}
	overflow := a.overflow(item, a.active, StageWrite, err)
	a.emit(WriteFailed, item, err)

	// The segment that refused the write is not reused, sealed or not.
	a.finalize()
	if err := a.open(); err != nil {
		return errors.Join(overflow, err)
	}

	a.stats.Rewrites++
	if err := a.write(item); err != nil {
		a.emit(RewriteFailed, item, err)
		overflow.RewriteErr = err
		return overflow
	}
	a.active.AdjustCapacity(d)
	a.emit(ItemRewritten, item, nil)
	return nil
}

func (a *Allocator[T]) write(item T) error {
	a.stats.Writes++
	if err := a.writer.Write(item); err != nil {
		return err
	}
	a.stats.Written++
	return nil
}

// finalize seals the active segment and reports whether it may stay active.
func (a *Allocator[T]) finalize() bool {
	a.stats.Finalizes++
	if a.finalizer.Finalize(a.active) {
		a.emit(SegmentFinalized, nil, nil)
		return true
	}
	a.stats.FinalizeFailures++
	a.emit(FinalizeFailed, nil, nil)
	a.log.Warn("finalize failed", "segment", a.active.Seq(), "id", a.active.ID())
	return false
}

// open replaces the active segment with a fresh one.
func (a *Allocator[T]) open() error {
	seg, err := segment.NewSeq(a.cfg.segOpts, a.seq)
	if err != nil {
		return fmt.Errorf("alloc: open segment: %w", err)
	}
	a.seq++
	a.active = seg
	a.stats.SegmentsOpened++
	a.emit(SegmentOpened, nil, nil)
	a.log.Debug("segment opened", "segment", seg.Seq(), "id", seg.ID(), "capacity", seg.Total())
	return nil
}

func (a *Allocator[T]) overflow(item T, seg *segment.Segment, stage Stage, err error) *CapacityOverflowError {
	return &CapacityOverflowError{
		Item:    item,
		Segment: seg.Info(),
		Stage:   stage,
		Err:     err,
	}
}

func (a *Allocator[T]) emit(kind EventKind, item media.Item, err error) {
	if len(a.cfg.hooks) == 0 {
		return
	}
	ev := Event{Kind: kind, Segment: a.active.Info(), Item: item, Err: err}
	for _, h := range a.cfg.hooks {
		h.OnEvent(ev)
	}
}

// asError avoids returning a typed nil.
func asError(e *CapacityOverflowError) error {
	if e == nil {
		return nil
	}
	return e
}
