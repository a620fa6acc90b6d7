// Package source produces the items the allocator packs.
//
// A Source is pulled one item at a time with Next, which answers "is there a
// next item" and "what is it" in a single call, so the two can never
// disagree. Every implementation here is produce-once, consume-once: items are
// materialized up front and each is handed out exactly once.
package source

// Source yields items until exhausted. After ok is false, further calls
// keep returning ok == false.
type Source[T any] interface {
	Next() (item T, ok bool, err error)
}

// Slice is a buffered Source over a fixed list of items.
type Slice[T any] struct {
	items []T
	pos   int
}

// NewSlice returns a source yielding items in order. The slice is copied.
func NewSlice[T any](items ...T) *Slice[T] {
	return &Slice[T]{items: append([]T(nil), items...)}
}

// Next implements Source.
func (s *Slice[T]) Next() (T, bool, error) {
	var zero T
	if s.pos >= len(s.items) {
		return zero, false, nil
	}
	item := s.items[s.pos]
	s.items[s.pos] = zero // drop the reference once handed out
	s.pos++
	return item, true, nil
}

// Len returns the number of items not yet pulled.
func (s *Slice[T]) Len() int {
	return len(s.items) - s.pos
}

// Compile-time interface check
var _ Source[int] = (*Slice[int])(nil)
