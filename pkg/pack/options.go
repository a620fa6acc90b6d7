package pack

import (
	"log/slog"
	"time"

	"github.com/joshuapare/mediakit/media/alloc"
	"github.com/joshuapare/mediakit/media/segment"
	"github.com/joshuapare/mediakit/media/store"
)

// Options controls a pack run.
type Options struct {
	// Playlist is the M3U/M3U8 file to pack. Ignored by RunSource.
	Playlist string

	// OutDir receives the image files. Must not already hold images with
	// the same Prefix.
	OutDir string

	// Prefix names image files <Prefix>.<NNN>.img.
	// Default: store.DefaultPrefix
	Prefix string

	// ImageSize is the byte size of each image.
	// Default: store.DefaultImageSize
	ImageSize int

	// MaxImageDuration caps the playing time of one image. 0 means no cap.
	MaxImageDuration time.Duration

	// Capacity and Threshold configure allocator segments.
	// Default: segment.DefaultCapacity and segment.DefaultThreshold
	Capacity  time.Duration
	Threshold time.Duration

	// Policy selects the rollover behavior around each write.
	Policy alloc.Policy

	// RetryRejected retries an item refused by admission on the new segment.
	RetryRejected bool

	// FlushMode controls durability when images are sealed.
	FlushMode store.FlushMode

	// LedgerPath records allocator events to this SQLite file when set.
	LedgerPath string

	// Logger receives run logs. Nil discards.
	Logger *slog.Logger

	// DryRun logs items instead of writing images.
	DryRun bool
}

// DefaultOptions returns options writing to the current directory.
func DefaultOptions() Options {
	return Options{
		OutDir:    ".",
		Prefix:    store.DefaultPrefix,
		ImageSize: store.DefaultImageSize,
		Capacity:  segment.DefaultCapacity,
		Threshold: segment.DefaultThreshold,
	}
}

// withDefaults fills zero values from DefaultOptions. A zero Threshold is
// kept when Capacity is set explicitly.
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.OutDir == "" {
		o.OutDir = d.OutDir
	}
	if o.Prefix == "" {
		o.Prefix = d.Prefix
	}
	if o.ImageSize == 0 {
		o.ImageSize = d.ImageSize
	}
	if o.Capacity == 0 {
		o.Capacity = d.Capacity
		if o.Threshold == 0 {
			o.Threshold = d.Threshold
		}
	}
	return o
}

func (o Options) segmentOptions() segment.Options {
	return segment.Options{Capacity: o.Capacity, Threshold: o.Threshold}
}
