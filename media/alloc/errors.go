package alloc

import (
	"errors"
	"fmt"

	"github.com/joshuapare/mediakit/media"
	"github.com/joshuapare/mediakit/media/segment"
)

var (
	// ErrCapacityOverflow matches every *CapacityOverflowError via errors.Is.
	ErrCapacityOverflow = errors.New("alloc: capacity overflow")

	// ErrItemTooLong indicates an item longer than a whole segment. Only
	// returned under RolloverOnFailure, which never lets a segment go negative.
	ErrItemTooLong = errors.New("alloc: item longer than segment capacity")

	// ErrBadItem indicates an item with a negative duration.
	ErrBadItem = errors.New("alloc: negative item duration")
)

// Stage identifies which write attempt failed.
type Stage int

const (
	// StageWrite is the first write of an item to the active segment.
	StageWrite Stage = iota
	// StageRewrite is the write performed by the rollback/rollover sequence.
	StageRewrite
)

// String implements fmt.Stringer.
func (s Stage) String() string {
	switch s {
	case StageWrite:
		return "write"
	case StageRewrite:
		return "rewrite"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// CapacityOverflowError reports a write that failed against a segment the
// allocator believed writable. Err is the writer's error; RewriteErr is set
// when the rollback rewrite failed as well.
type CapacityOverflowError struct {
	Item       media.Item
	Segment    segment.Info
	Stage      Stage
	Err        error
	RewriteErr error
}

// Error implements error.
func (e *CapacityOverflowError) Error() string {
	msg := fmt.Sprintf("alloc: could not %s %q to segment #%d, the capacity has been exceeded: %v",
		e.Stage, media.Label(e.Item), e.Segment.Seq, e.Err)
	if e.RewriteErr != nil {
		msg += fmt.Sprintf(" (rewrite: %v)", e.RewriteErr)
	}
	return msg
}

// Is reports whether target is ErrCapacityOverflow.
func (e *CapacityOverflowError) Is(target error) bool {
	return target == ErrCapacityOverflow
}

// Unwrap returns the underlying write errors.
func (e *CapacityOverflowError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	if e.RewriteErr != nil {
		errs = append(errs, e.RewriteErr)
	}
	return errs
}
