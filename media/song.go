package media

import (
	"path/filepath"
	"time"
)

// Item is a unit of work for the allocator. Duration must not be negative.
type Item interface {
	Duration() time.Duration
}

// Song is a single track to be written to media.
type Song struct {
	ID     string        // Optional source-assigned identifier
	Title  string        // Display title
	Artist string        // Performing artist, may be empty
	Path   string        // Location of the audio file
	Length time.Duration // Playing time
}

// Duration returns the playing time of the song.
func (s Song) Duration() time.Duration {
	return s.Length
}

// String returns "Artist - Title", falling back to the title alone and then
// to the base name of the path.
func (s Song) String() string {
	switch {
	case s.Artist != "" && s.Title != "":
		return s.Artist + " - " + s.Title
	case s.Title != "":
		return s.Title
	case s.Path != "":
		return filepath.Base(s.Path)
	default:
		return s.ID
	}
}

// Label returns a human-readable name for any item. Items implementing
// fmt.Stringer use their own representation.
func Label(it Item) string {
	if it == nil {
		return ""
	}
	if s, ok := it.(interface{ String() string }); ok {
		return s.String()
	}
	return it.Duration().String()
}

// Compile-time interface check
var _ Item = Song{}
