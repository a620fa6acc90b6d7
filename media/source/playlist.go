package source

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joshuapare/mediakit/internal/m3u"
	"github.com/joshuapare/mediakit/media"
)

// ErrNoDuration indicates a playlist entry without a positive #EXTINF duration.
var ErrNoDuration = errors.New("source: playlist entry has no duration")

// Playlist is a Source of songs read from an M3U playlist.
type Playlist struct {
	*Slice[media.Song]
	name     string
	total    time.Duration
	numSongs int
}

// OpenPlaylist reads the playlist at path. The encoding follows the extension
// (.m3u8 is UTF-8, anything else Windows-1252) and relative entry paths are
// resolved against the playlist's directory.
func OpenPlaylist(path string) (*Playlist, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p, err := ParsePlaylist(f, m3u.EncodingForPath(path), filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	p.name = path
	return p, nil
}

// ParsePlaylist reads a playlist from r. Relative paths are joined to baseDir
// unless baseDir is empty.
func ParsePlaylist(r io.Reader, enc m3u.Encoding, baseDir string) (*Playlist, error) {
	entries, err := m3u.Parse(r, enc)
	if err != nil {
		return nil, err
	}

	songs := make([]media.Song, 0, len(entries))
	var total time.Duration
	for _, e := range entries {
		if e.Duration <= 0 {
			return nil, fmt.Errorf("line %d (%s): %w", e.Line, e.Path, ErrNoDuration)
		}
		songs = append(songs, media.Song{
			ID:     fmt.Sprintf("%d", len(songs)+1),
			Title:  e.Title,
			Artist: e.Artist,
			Path:   resolve(baseDir, e.Path),
			Length: e.Duration,
		})
		total += e.Duration
	}
	return &Playlist{
		Slice:    NewSlice(songs...),
		total:    total,
		numSongs: len(songs),
	}, nil
}

// Name returns the playlist path, empty for playlists parsed from a reader.
func (p *Playlist) Name() string { return p.name }

// Songs returns the number of songs in the playlist.
func (p *Playlist) Songs() int { return p.numSongs }

// Total returns the summed playing time of all songs.
func (p *Playlist) Total() time.Duration { return p.total }

func resolve(baseDir, p string) string {
	if baseDir == "" || filepath.IsAbs(p) || strings.Contains(p, "://") {
		return p
	}
	return filepath.Join(baseDir, filepath.FromSlash(p))
}

// Compile-time interface check
var _ Source[media.Song] = (*Playlist)(nil)
