// Package segment tracks the capacity of a single fixed-size storage unit.
//
// # Overview
//
// A Segment models one medium (a disc, a tape side, an image file) in terms
// of playing time. It knows its total capacity, how much of it remains, and
// the writable threshold below which it is considered too full to accept
// another item even though some capacity is left:
//
//	seg, err := segment.New(segment.DefaultOptions())
//	seg.AdjustCapacity(4 * time.Minute)  // consume
//	seg.AdjustCapacity(-4 * time.Minute) // restore
//	seg.IsWritable()                     // remaining >= threshold
//
// # Defaults
//
//	Capacity:  10h (36000s)
//	Threshold: 5m  (300s)
//
// # Invariants
//
// 0 <= Remaining() <= Total() under correct use. AdjustCapacity does not
// clamp; keeping the invariant is the caller's job (see media/alloc).
//
// # Thread Safety
//
// Segment is NOT thread-safe. A segment is owned by exactly one allocator.
package segment
