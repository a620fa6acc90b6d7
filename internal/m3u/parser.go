package m3u

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// ErrBadInfo indicates an #EXTINF line whose duration cannot be parsed.
var ErrBadInfo = errors.New("m3u: bad #EXTINF line")

// Encoding is the character encoding of a playlist file.
type Encoding int

const (
	// Windows1252 is the legacy encoding of .m3u files.
	Windows1252 Encoding = iota
	// UTF8 is the encoding of .m3u8 files.
	UTF8
)

// EncodingForPath picks the encoding from the file extension.
func EncodingForPath(p string) Encoding {
	if strings.EqualFold(filepath.Ext(p), ".m3u8") {
		return UTF8
	}
	return Windows1252
}

// Entry is one playlist entry.
type Entry struct {
	Path     string        // Location exactly as written in the playlist
	Title    string        // From #EXTINF, or derived from Path
	Artist   string        // From #EXTINF "<artist> - <title>", may be empty
	Duration time.Duration // From #EXTINF; 0 when absent or unknown
	Line     int           // 1-based line number of the path line
}

// Parse reads all entries from r.
func Parse(r io.Reader, enc Encoding) ([]Entry, error) {
	if enc == Windows1252 {
		r = transform.NewReader(r, charmap.Windows1252.NewDecoder())
	}

	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, ScannerInitialBufferSize)
	scanner.Buffer(buf, ScannerMaxLineSize)

	var (
		entries []Entry
		pending *Entry // set by #EXTINF, consumed by the next path line
		lineNo  int
	)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if lineNo == 1 {
			line = strings.TrimPrefix(line, utf8BOM)
		}

		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, InfoTag):
			info, err := parseInfo(line[len(InfoTag):])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			pending = &info
		case strings.HasPrefix(line, CommentPrefix):
			continue
		default:
			e := Entry{}
			if pending != nil {
				e = *pending
				pending = nil
			}
			e.Path = line
			e.Line = lineNo
			if e.Title == "" {
				e.Title = titleFromPath(line)
			}
			entries = append(entries, e)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("m3u: read: %w", err)
	}
	return entries, nil
}

// parseInfo parses "<seconds>[ attrs],<display>".
func parseInfo(s string) (Entry, error) {
	head, display, ok := strings.Cut(s, ",")
	if !ok {
		return Entry{}, fmt.Errorf("%w: missing ',' in %q", ErrBadInfo, s)
	}
	// Attributes such as tvg-id="x" follow the duration after a space.
	if i := strings.IndexByte(head, ' '); i >= 0 {
		head = head[:i]
	}
	secs, err := strconv.ParseFloat(strings.TrimSpace(head), 64)
	if err != nil || math.IsNaN(secs) || math.IsInf(secs, 0) {
		return Entry{}, fmt.Errorf("%w: duration %q", ErrBadInfo, head)
	}

	var e Entry
	if secs > 0 {
		e.Duration = time.Duration(secs * float64(time.Second)).Round(time.Millisecond)
	}
	display = strings.TrimSpace(display)
	if artist, title, found := strings.Cut(display, TitleSeparator); found {
		e.Artist = strings.TrimSpace(artist)
		e.Title = strings.TrimSpace(title)
	} else {
		e.Title = display
	}
	return e, nil
}

// titleFromPath derives a title from a file path or URL.
func titleFromPath(p string) string {
	base := path.Base(filepath.ToSlash(p))
	return strings.TrimSuffix(base, path.Ext(base))
}
