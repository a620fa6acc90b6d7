// Package writer performs the physical write of one item.
//
// A Writer persists an item to whatever segment is active at the storage
// layer. The allocator never passes the segment along; the storage target is
// implicit. A nil error means the write happened.
package writer

import (
	"io"
	"log/slog"

	"github.com/joshuapare/mediakit/media"
	"github.com/joshuapare/mediakit/media/store"
)

// Writer writes one item.
type Writer[T any] interface {
	Write(item T) error
}

// Func adapts a plain function to Writer.
type Func[T any] func(item T) error

// Write implements Writer.
func (f Func[T]) Write(item T) error {
	return f(item)
}

// Log is a Writer that only logs each item. It never fails.
type Log[T media.Item] struct {
	log *slog.Logger
}

// NewLog returns a logging writer. A nil logger discards.
func NewLog[T media.Item](log *slog.Logger) *Log[T] {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Log[T]{log: log}
}

// Write implements Writer.
func (w *Log[T]) Write(item T) error {
	w.log.Info("item written to media", "item", media.Label(item), "duration", item.Duration())
	return nil
}

// Appender is the part of the media store a Store writer needs.
type Appender interface {
	Append(r store.Record) error
}

// Store writes songs as records into the active image of a media store.
type Store struct {
	app Appender
}

// NewStore returns a writer appending to a.
func NewStore(a Appender) *Store {
	return &Store{app: a}
}

// Write implements Writer.
func (w *Store) Write(s media.Song) error {
	return w.app.Append(store.Record{
		Title:    s.Title,
		Artist:   s.Artist,
		Path:     s.Path,
		Duration: s.Length,
	})
}

// Compile-time interface checks
var (
	_ Writer[media.Song] = Func[media.Song](nil)
	_ Writer[media.Song] = (*Log[media.Song])(nil)
	_ Writer[media.Song] = (*Store)(nil)
	_ Appender           = (*store.Store)(nil)
)
