package pack

import (
	"time"

	"github.com/joshuapare/mediakit/media"
)

// DefaultSongs is the built-in item list used by Process.
func DefaultSongs() []media.Song {
	return []media.Song{
		{ID: "1", Artist: "Miles Davis", Title: "So What", Length: 9*time.Minute + 22*time.Second},
		{ID: "2", Artist: "John Coltrane", Title: "Giant Steps", Length: 4*time.Minute + 43*time.Second},
		{ID: "3", Artist: "Nina Simone", Title: "Sinnerman", Length: 10*time.Minute + 21*time.Second},
		{ID: "4", Artist: "Bill Evans", Title: "Peace Piece", Length: 6*time.Minute + 42*time.Second},
		{ID: "5", Artist: "Dave Brubeck", Title: "Take Five", Length: 5*time.Minute + 24*time.Second},
	}
}
