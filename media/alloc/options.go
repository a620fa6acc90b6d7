package alloc

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/joshuapare/mediakit/media/segment"
)

// Policy selects what happens around a write.
type Policy int

const (
	// RolloverAlways undoes the consumption, finalizes and rewrites after
	// every write attempt, successful or not.
	RolloverAlways Policy = iota

	// RolloverOnFailure keeps successful writes and only finalizes, replaces
	// the segment and rewrites when a write fails. Items that do not fit the
	// remaining capacity roll the segment before they are written.
	RolloverOnFailure
)

// String implements fmt.Stringer.
func (p Policy) String() string {
	switch p {
	case RolloverAlways:
		return "always"
	case RolloverOnFailure:
		return "on-failure"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy parses "always" or "on-failure".
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "always":
		return RolloverAlways, nil
	case "on-failure":
		return RolloverOnFailure, nil
	default:
		return RolloverAlways, fmt.Errorf("alloc: unknown policy %q", s)
	}
}

type config struct {
	policy        Policy
	retryRejected bool
	segOpts       segment.Options
	log           *slog.Logger
	hooks         []Hook
	initial       *segment.Segment
}

func defaultConfig() config {
	return config{
		policy:  RolloverAlways,
		segOpts: segment.DefaultOptions(),
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// Option configures an Allocator.
type Option func(*config)

// WithPolicy selects the rollover policy. The default is RolloverAlways.
func WithPolicy(p Policy) Option {
	return func(c *config) { c.policy = p }
}

// WithRetryRejected makes an item refused by admission try once more on the
// freshly opened segment instead of being dropped.
func WithRetryRejected(retry bool) Option {
	return func(c *config) { c.retryRejected = retry }
}

// WithSegmentOptions sets the capacity and threshold of new segments.
func WithSegmentOptions(o segment.Options) Option {
	return func(c *config) { c.segOpts = o }
}

// WithLogger sets the logger. A nil logger keeps the default, which discards.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.log = l
		}
	}
}

// WithHook adds an event observer. Hooks are called in the order added.
func WithHook(h Hook) Option {
	return func(c *config) {
		if h != nil {
			c.hooks = append(c.hooks, h)
		}
	}
}

// WithInitialSegment makes seg the active segment at the start of the run
// instead of a fresh one.
func WithInitialSegment(seg *segment.Segment) Option {
	return func(c *config) { c.initial = seg }
}
