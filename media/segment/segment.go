package segment

import (
	"fmt"
	"time"

	"github.com/rs/xid"
)

const (
	// DefaultCapacity is the playing time of a fresh segment.
	DefaultCapacity = 36000 * time.Second

	// DefaultThreshold is the minimum remaining capacity for a segment to be writable.
	DefaultThreshold = 300 * time.Second
)

// Options configures new segments.
type Options struct {
	Capacity  time.Duration // Total capacity, must be > 0
	Threshold time.Duration // Writable threshold, 0 <= Threshold <= Capacity
}

// DefaultOptions returns a 10h segment with a 5m writable threshold.
func DefaultOptions() Options {
	return Options{
		Capacity:  DefaultCapacity,
		Threshold: DefaultThreshold,
	}
}

// Validate checks the options for consistency.
func (o Options) Validate() error {
	if o.Capacity <= 0 {
		return fmt.Errorf("%w: got %s", ErrBadCapacity, o.Capacity)
	}
	if o.Threshold < 0 || o.Threshold > o.Capacity {
		return fmt.Errorf("%w: got %s for capacity %s", ErrBadThreshold, o.Threshold, o.Capacity)
	}
	return nil
}

// Segment tracks the total and remaining capacity of one storage unit.
//
// NOT thread-safe.
type Segment struct {
	id        xid.ID
	seq       int
	total     time.Duration
	remaining time.Duration
	threshold time.Duration
}

// New creates an empty segment with remaining capacity equal to its total.
func New(opts Options) (*Segment, error) {
	return NewSeq(opts, 0)
}

// NewSeq creates an empty segment carrying the given open-order sequence number.
func NewSeq(opts Options, seq int) (*Segment, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Segment{
		id:        xid.New(),
		seq:       seq,
		total:     opts.Capacity,
		remaining: opts.Capacity,
		threshold: opts.Threshold,
	}, nil
}

// AdjustCapacity subtracts delta from the remaining capacity. A negative
// delta restores capacity. No clamping is applied.
func (s *Segment) AdjustCapacity(delta time.Duration) {
	s.remaining -= delta
}

// IsWritable reports whether the remaining capacity is at least the threshold.
func (s *Segment) IsWritable() bool {
	return s.remaining >= s.threshold
}

// ID returns the globally unique segment identifier.
func (s *Segment) ID() string { return s.id.String() }

// Seq returns the open-order sequence number within a run.
func (s *Segment) Seq() int { return s.seq }

// Total returns the fixed total capacity.
func (s *Segment) Total() time.Duration { return s.total }

// Remaining returns the capacity left.
func (s *Segment) Remaining() time.Duration { return s.remaining }

// Threshold returns the writable threshold.
func (s *Segment) Threshold() time.Duration { return s.threshold }

// Used returns the consumed capacity.
func (s *Segment) Used() time.Duration { return s.total - s.remaining }

// Info is a point-in-time snapshot of a segment.
type Info struct {
	ID        string        `json:"id"`
	Seq       int           `json:"seq"`
	Total     time.Duration `json:"total"`
	Remaining time.Duration `json:"remaining"`
	Threshold time.Duration `json:"threshold"`
}

// Info returns a snapshot of the segment. A nil segment yields the zero Info.
func (s *Segment) Info() Info {
	if s == nil {
		return Info{}
	}
	return Info{
		ID:        s.ID(),
		Seq:       s.seq,
		Total:     s.total,
		Remaining: s.remaining,
		Threshold: s.threshold,
	}
}

// String implements fmt.Stringer.
func (s *Segment) String() string {
	return fmt.Sprintf("segment #%d (%s/%s remaining)", s.seq, s.remaining, s.total)
}
