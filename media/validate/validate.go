// Package validate decides whether a segment may accept another item.
//
// The admission rule lives apart from the allocation loop so the policy
// (the threshold, or a more involved rule) can be swapped without touching
// media/alloc.
package validate

import (
	"time"

	"github.com/joshuapare/mediakit/media/segment"
)

// Validator is an admission predicate over the active segment. It must not
// modify the segment.
type Validator interface {
	Validate(seg *segment.Segment) bool
}

// Capacity admits a segment when it is writable, that is when its remaining
// capacity is at least its own threshold.
type Capacity struct{}

// Validate implements Validator.
func (Capacity) Validate(seg *segment.Segment) bool {
	return seg.IsWritable()
}

// Headroom admits a segment when at least Min capacity remains, ignoring the
// segment's own threshold.
type Headroom struct {
	Min time.Duration
}

// Validate implements Validator.
func (h Headroom) Validate(seg *segment.Segment) bool {
	return seg.Remaining() >= h.Min
}

// Func adapts a plain function to Validator.
type Func func(seg *segment.Segment) bool

// Validate implements Validator.
func (f Func) Validate(seg *segment.Segment) bool {
	return f(seg)
}

// Compile-time interface checks
var (
	_ Validator = Capacity{}
	_ Validator = Headroom{}
	_ Validator = Func(nil)
)
