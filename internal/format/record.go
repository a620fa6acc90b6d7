package format

import (
	"fmt"
	"time"
)

// Record is the decoded form of one stored item.
type Record struct {
	Title    string        `json:"title"`
	Artist   string        `json:"artist,omitempty"`
	Path     string        `json:"path,omitempty"`
	Duration time.Duration `json:"duration"`
}

// Size returns the encoded, aligned size of r.
func (r Record) Size() int {
	return RecordSize(len(r.Title), len(r.Artist), len(r.Path))
}

// RecordSize returns the aligned size of a record with the given field lengths.
func RecordSize(titleLen, artistLen, pathLen int) int {
	return Align8(RecordHeaderSize + titleLen + artistLen + pathLen)
}

// EncodeRecord writes r at the start of b and returns the number of bytes used.
func EncodeRecord(b []byte, r Record) (int, error) {
	for _, f := range []string{r.Title, r.Artist, r.Path} {
		if len(f) > MaxFieldLen {
			return 0, fmt.Errorf("%w: %d bytes", ErrFieldTooLong, len(f))
		}
	}
	size := r.Size()
	if len(b) < size {
		return 0, ErrTruncated
	}
	clear(b[:size])
	PutU32(b, RecordSizeOffset, uint32(size))
	PutU64(b, RecordDurationOffset, DurationToMillis(r.Duration))
	PutU16(b, RecordTitleLenOffset, uint16(len(r.Title)))
	PutU16(b, RecordArtistLenOffset, uint16(len(r.Artist)))
	PutU16(b, RecordPathLenOffset, uint16(len(r.Path)))
	off := RecordHeaderSize
	off += copy(b[off:], r.Title)
	off += copy(b[off:], r.Artist)
	copy(b[off:], r.Path)
	return size, nil
}

// DecodeRecord parses the record at the start of b and returns it with its size.
func DecodeRecord(b []byte) (Record, int, error) {
	if len(b) < RecordHeaderSize {
		return Record{}, 0, ErrTruncated
	}
	size := int(ReadU32(b, RecordSizeOffset))
	titleLen := int(ReadU16(b, RecordTitleLenOffset))
	artistLen := int(ReadU16(b, RecordArtistLenOffset))
	pathLen := int(ReadU16(b, RecordPathLenOffset))
	if size != RecordSize(titleLen, artistLen, pathLen) {
		return Record{}, 0, fmt.Errorf("%w: size %d does not match field lengths", ErrBadRecord, size)
	}
	if len(b) < size {
		return Record{}, 0, ErrTruncated
	}
	off := RecordHeaderSize
	r := Record{Duration: MillisToDuration(ReadU64(b, RecordDurationOffset))}
	r.Title = string(b[off : off+titleLen])
	off += titleLen
	r.Artist = string(b[off : off+artistLen])
	off += artistLen
	r.Path = string(b[off : off+pathLen])
	return r, size, nil
}
