package store

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/joshuapare/mediakit/internal/format"
)

const (
	// DefaultImageSize is the byte size of each image.
	DefaultImageSize = 4 << 20

	// DefaultPrefix is the image file name prefix.
	DefaultPrefix = "media"
)

// FlushMode controls durability guarantees when an image is sealed or closed.
type FlushMode int

const (
	// FlushAuto msyncs dirty records and the header, then fsyncs the file.
	FlushAuto FlushMode = iota

	// FlushDataOnly only msyncs dirty records and the header.
	// The caller is responsible for syncing the file later.
	FlushDataOnly

	// FlushFull msyncs the whole image, not just the dirty range, then fsyncs.
	FlushFull
)

// String implements fmt.Stringer.
func (m FlushMode) String() string {
	switch m {
	case FlushAuto:
		return "auto"
	case FlushDataOnly:
		return "data"
	case FlushFull:
		return "full"
	default:
		return fmt.Sprintf("FlushMode(%d)", int(m))
	}
}

// ParseFlushMode parses "auto", "data" or "full".
func ParseFlushMode(s string) (FlushMode, error) {
	switch s {
	case "", "auto":
		return FlushAuto, nil
	case "data":
		return FlushDataOnly, nil
	case "full":
		return FlushFull, nil
	default:
		return FlushAuto, fmt.Errorf("%w: unknown flush mode %q", ErrBadOptions, s)
	}
}

// Options configures a Store.
type Options struct {
	Dir         string        // Output directory, created if missing
	Prefix      string        // Image file name prefix
	ImageSize   int           // Bytes per image, at least format.MinImageSize
	MaxDuration time.Duration // Playing time limit per image, 0 for none
	FlushMode   FlushMode     // Durability on Seal and Close
	Logger      *slog.Logger  // Optional; nil discards
}

// DefaultOptions returns options for 4 MiB images in dir with no duration limit.
func DefaultOptions(dir string) Options {
	return Options{
		Dir:       dir,
		Prefix:    DefaultPrefix,
		ImageSize: DefaultImageSize,
	}
}

func (o Options) validate() error {
	if o.Dir == "" {
		return fmt.Errorf("%w: empty directory", ErrBadOptions)
	}
	if o.Prefix == "" {
		return fmt.Errorf("%w: empty prefix", ErrBadOptions)
	}
	if o.ImageSize < format.MinImageSize {
		return fmt.Errorf("%w: image size %d below minimum %d", ErrBadOptions, o.ImageSize, format.MinImageSize)
	}
	if o.MaxDuration < 0 {
		return fmt.Errorf("%w: negative duration limit %s", ErrBadOptions, o.MaxDuration)
	}
	return nil
}
