package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joshuapare/mediakit/internal/format"
	"github.com/joshuapare/mediakit/internal/mmfile"
)

// Record is one stored song.
type Record = format.Record

// ImageInfo summarizes one image.
type ImageInfo struct {
	Index    int           `json:"index"`
	Path     string        `json:"path"`
	Records  int           `json:"records"`
	Duration time.Duration `json:"duration"`
	Used     int           `json:"used"` // bytes, header included
	Size     int           `json:"size"`
	Sealed   bool          `json:"sealed"`
	SealedAt time.Time     `json:"sealed_at,omitzero"`
}

// Store writes records into a sequence of fixed-size images.
//
// NOT thread-safe.
type Store struct {
	opts   Options
	log    *slog.Logger
	now    func() time.Time
	next   int         // index of the next image to create
	active *image      // nil until the first append after open or seal
	done   []ImageInfo // sealed or closed images, in index order
	closed bool
}

// image is the active, mapped image.
type image struct {
	index     int
	m         *mmfile.Mapping
	hdr       format.ImageHeader
	dirtyFrom int // first record byte not yet flushed
}

// Open prepares a store in opts.Dir. No image is created until the first
// Append or Seal. A directory that already holds images with the same prefix
// is rejected with ErrExists.
func Open(opts Options) (*Store, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("store: create %s: %w", opts.Dir, err)
	}
	existing, err := filepath.Glob(filepath.Join(opts.Dir, opts.Prefix+".*.img"))
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, fmt.Errorf("%w: %d image(s) with prefix %q in %s", ErrExists, len(existing), opts.Prefix, opts.Dir)
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{
		opts: opts,
		log:  log,
		now:  time.Now,
	}, nil
}

// ImagePath returns the path of the image with the given index.
func (s *Store) ImagePath(index int) string {
	return filepath.Join(s.opts.Dir, fmt.Sprintf("%s.%03d.img", s.opts.Prefix, index))
}

// Append writes r to the active image, opening one if needed.
func (s *Store) Append(r Record) error {
	if s.closed {
		return ErrClosed
	}
	// Images store milliseconds; truncate so the header total matches the records.
	r.Duration = r.Duration.Truncate(time.Millisecond)
	if r.Duration <= 0 {
		return fmt.Errorf("%w: non-positive duration %s", ErrBadRecord, r.Duration)
	}
	if err := s.ensureActive(); err != nil {
		return err
	}
	img := s.active

	if limit := s.opts.MaxDuration; limit > 0 && img.hdr.Duration+r.Duration > limit {
		return fmt.Errorf("%w: image %d holds %s, record needs %s, limit %s",
			ErrDurationLimit, img.index, img.hdr.Duration, r.Duration, limit)
	}

	data := img.m.Bytes()
	off := int(img.hdr.DataEnd)
	if need := r.Size(); off+need > len(data) {
		return fmt.Errorf("%w: image %d has %d bytes left, record needs %d",
			ErrNoSpace, img.index, len(data)-off, need)
	}
	n, err := format.EncodeRecord(data[off:], r)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBadRecord, err)
	}

	img.hdr.RecordCount++
	img.hdr.DataEnd += uint64(n)
	img.hdr.Duration += r.Duration
	if err := format.EncodeImageHeader(data, img.hdr); err != nil {
		return err
	}
	return nil
}

// Seal finalizes the active image. With no active image an empty one is
// created and sealed. The next Append opens a new image.
//
// The image is closed even when sealing fails or ctx is already cancelled;
// it is never written again.
func (s *Store) Seal(ctx context.Context) error {
	if s.closed {
		return ErrClosed
	}
	if err := ctx.Err(); err != nil {
		// A refused image is never appended to again.
		if img := s.active; img != nil {
			s.active = nil
			ferr := s.flush(context.Background(), img, false)
			if cerr := img.m.Close(); ferr == nil {
				ferr = cerr
			}
			s.done = append(s.done, s.info(img))
			if ferr != nil {
				return errors.Join(err, fmt.Errorf("store: retire image %d: %w", img.index, ferr))
			}
		}
		return err
	}
	if err := s.ensureActive(); err != nil {
		return err
	}
	img := s.active
	s.active = nil

	img.hdr.Flags |= format.FlagSealed
	img.hdr.SealedAt = s.now()
	err := s.flush(ctx, img, true)
	if err != nil {
		img.hdr.Flags &^= format.FlagSealed
		img.hdr.SealedAt = time.Time{}
	}
	if cerr := img.m.Close(); err == nil {
		err = cerr
	}
	s.done = append(s.done, s.info(img))
	if err != nil {
		return fmt.Errorf("store: seal image %d: %w", img.index, err)
	}
	s.log.Debug("image sealed", "index", img.index, "records", img.hdr.RecordCount, "duration", img.hdr.Duration)
	return nil
}

// Close flushes and closes the active image without sealing it. Further
// operations fail with ErrClosed. Closing twice is a no-op.
func (s *Store) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	img := s.active
	if img == nil {
		return nil
	}
	s.active = nil
	err := s.flush(context.Background(), img, false)
	if cerr := img.m.Close(); err == nil {
		err = cerr
	}
	s.done = append(s.done, s.info(img))
	return err
}

// Images returns a summary of every image created so far, the active one last.
func (s *Store) Images() []ImageInfo {
	out := make([]ImageInfo, 0, len(s.done)+1)
	out = append(out, s.done...)
	if s.active != nil {
		out = append(out, s.info(s.active))
	}
	return out
}

func (s *Store) ensureActive() error {
	if s.active != nil {
		return nil
	}
	index := s.next
	path := s.ImagePath(index)
	m, err := mmfile.Create(path, s.opts.ImageSize)
	if err != nil {
		return fmt.Errorf("store: create image %d: %w", index, err)
	}
	img := &image{
		index:     index,
		m:         m,
		hdr:       format.NewImageHeader(uint32(index), uint64(s.opts.ImageSize)),
		dirtyFrom: format.ImageHeaderSize,
	}
	if err := format.EncodeImageHeader(m.Bytes(), img.hdr); err != nil {
		_ = m.Close()
		return err
	}
	s.next++
	s.active = img
	s.log.Debug("image opened", "index", index, "path", path)
	return nil
}

// flush writes dirty records, then the header, then optionally syncs the
// file, in that order so a header never describes records that are not on
// disk.
func (s *Store) flush(ctx context.Context, img *image, sync bool) error {
	data := img.m.Bytes()
	end := int(img.hdr.DataEnd)

	from := img.dirtyFrom
	if s.opts.FlushMode == FlushFull {
		from = format.ImageHeaderSize
	}
	if err := img.m.Flush(from, end-from); err != nil {
		return fmt.Errorf("flush records: %w", err)
	}
	img.dirtyFrom = end

	if err := ctx.Err(); err != nil {
		return err
	}

	if err := format.EncodeImageHeader(data, img.hdr); err != nil {
		return err
	}
	if err := img.m.Flush(0, format.ImageHeaderSize); err != nil {
		return fmt.Errorf("flush header: %w", err)
	}

	if sync && s.opts.FlushMode != FlushDataOnly {
		if err := img.m.Sync(); err != nil {
			return fmt.Errorf("sync: %w", err)
		}
	}
	return nil
}

func (s *Store) info(img *image) ImageInfo {
	return ImageInfo{
		Index:    img.index,
		Path:     s.ImagePath(img.index),
		Records:  int(img.hdr.RecordCount),
		Duration: img.hdr.Duration,
		Used:     int(img.hdr.DataEnd),
		Size:     s.opts.ImageSize,
		Sealed:   img.hdr.Sealed(),
		SealedAt: img.hdr.SealedAt,
	}
}

// ReadImage validates the image at path and returns its summary and records.
func ReadImage(path string) (ImageInfo, []Record, error) {
	data, cleanup, err := mmfile.Map(path)
	if err != nil {
		return ImageInfo{}, nil, err
	}
	defer func() { _ = cleanup() }()

	hdr, err := format.DecodeImageHeader(data)
	if err != nil {
		return ImageInfo{}, nil, fmt.Errorf("%w: %s: %w", ErrCorrupt, path, err)
	}
	if hdr.Size != uint64(len(data)) {
		return ImageInfo{}, nil, fmt.Errorf("%w: %s: header size %d, file size %d", ErrCorrupt, path, hdr.Size, len(data))
	}

	records := make([]Record, 0, hdr.RecordCount)
	var total time.Duration
	off := format.ImageHeaderSize
	for off < int(hdr.DataEnd) {
		r, n, err := format.DecodeRecord(data[off:hdr.DataEnd])
		if err != nil {
			return ImageInfo{}, nil, fmt.Errorf("%w: %s: record at 0x%x: %w", ErrCorrupt, path, off, err)
		}
		records = append(records, r)
		total += r.Duration
		off += n
	}
	if len(records) != int(hdr.RecordCount) {
		return ImageInfo{}, nil, fmt.Errorf("%w: %s: header counts %d records, found %d",
			ErrCorrupt, path, hdr.RecordCount, len(records))
	}
	if total != hdr.Duration {
		return ImageInfo{}, nil, fmt.Errorf("%w: %s: header duration %s, records sum to %s",
			ErrCorrupt, path, hdr.Duration, total)
	}

	info := ImageInfo{
		Index:    int(hdr.Index),
		Path:     path,
		Records:  len(records),
		Duration: hdr.Duration,
		Used:     int(hdr.DataEnd),
		Size:     len(data),
		Sealed:   hdr.Sealed(),
		SealedAt: hdr.SealedAt,
	}
	return info, records, nil
}

// IsFull reports whether err means the medium itself is out of room.
func IsFull(err error) bool {
	return errors.Is(err, ErrNoSpace) || errors.Is(err, ErrDurationLimit)
}
