package alloc

import (
	"fmt"

	"github.com/joshuapare/mediakit/media"
	"github.com/joshuapare/mediakit/media/segment"
)

// EventKind identifies an allocator decision.
type EventKind int

const (
	SegmentOpened    EventKind = iota + 1 // a new segment became active
	SegmentExhausted                      // item does not fit the remaining capacity (RolloverOnFailure)
	ItemAdmitted                          // validator accepted the active segment
	ItemRejected                          // validator refused the active segment
	ItemDropped                           // item skipped for this run after a rejection
	ItemWritten                           // first write succeeded
	WriteFailed                           // first write failed
	CapacityRestored                      // consumption undone by the rollback sequence
	SegmentFinalized                      // finalizer returned true
	FinalizeFailed                        // finalizer returned false
	ItemRewritten                         // rollback rewrite succeeded
	RewriteFailed                         // rollback rewrite failed
)

var eventKindNames = map[EventKind]string{
	SegmentOpened:    "segment_opened",
	SegmentExhausted: "segment_exhausted",
	ItemAdmitted:     "item_admitted",
	ItemRejected:     "item_rejected",
	ItemDropped:      "item_dropped",
	ItemWritten:      "item_written",
	WriteFailed:      "write_failed",
	CapacityRestored: "capacity_restored",
	SegmentFinalized: "segment_finalized",
	FinalizeFailed:   "finalize_failed",
	ItemRewritten:    "item_rewritten",
	RewriteFailed:    "rewrite_failed",
}

// String implements fmt.Stringer.
func (k EventKind) String() string {
	if s, ok := eventKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Event is one allocator decision. Segment is a snapshot taken after the
// decision was applied. Item is nil for segment-only events.
type Event struct {
	Kind    EventKind
	Segment segment.Info
	Item    media.Item
	Err     error
}

// Hook observes allocator events. Hooks run synchronously on the
// allocator's goroutine and must not block.
type Hook interface {
	OnEvent(e Event)
}

// HookFunc adapts a plain function to Hook.
type HookFunc func(e Event)

// OnEvent implements Hook.
func (f HookFunc) OnEvent(e Event) {
	f(e)
}
