package format

import (
	"bytes"
	"fmt"
	"hash/crc32"
	"time"
)

// ImageHeader is the decoded form of an image header.
type ImageHeader struct {
	Version     uint16
	Flags       uint16
	Index       uint32
	RecordCount uint32
	DataEnd     uint64
	Duration    time.Duration
	SealedAt    time.Time
	Size        uint64
	Checksum    uint32
}

// Sealed reports whether the sealed flag is set.
func (h ImageHeader) Sealed() bool {
	return h.Flags&FlagSealed != 0
}

// NewImageHeader returns the header of an empty, open image.
func NewImageHeader(index uint32, size uint64) ImageHeader {
	return ImageHeader{
		Version: ImageVersion,
		Index:   index,
		DataEnd: ImageHeaderSize,
		Size:    size,
	}
}

// EncodeImageHeader writes h into b[0:ImageHeaderSize] and stamps the checksum.
// The Checksum field of h is ignored.
func EncodeImageHeader(b []byte, h ImageHeader) error {
	if len(b) < ImageHeaderSize {
		return ErrTruncated
	}
	clear(b[:ImageHeaderSize])
	copy(b[ImageSignatureOffset:], ImageSignature)
	PutU16(b, ImageVersionOffset, h.Version)
	PutU16(b, ImageFlagsOffset, h.Flags)
	PutU32(b, ImageIndexOffset, h.Index)
	PutU32(b, ImageRecordCountOffset, h.RecordCount)
	PutU64(b, ImageDataEndOffset, h.DataEnd)
	PutU64(b, ImageDurationOffset, DurationToMillis(h.Duration))
	PutU64(b, ImageSealedAtOffset, TimeToUnixNano(h.SealedAt))
	PutU64(b, ImageSizeOffset, h.Size)
	PutU32(b, ImageChecksumOffset, HeaderChecksum(b))
	return nil
}

// DecodeImageHeader parses and verifies the header at the start of b.
func DecodeImageHeader(b []byte) (ImageHeader, error) {
	if len(b) < ImageHeaderSize {
		return ImageHeader{}, ErrTruncated
	}
	if !bytes.Equal(b[ImageSignatureOffset:ImageSignatureOffset+4], ImageSignature) {
		return ImageHeader{}, ErrSignatureMismatch
	}
	h := ImageHeader{
		Version:     ReadU16(b, ImageVersionOffset),
		Flags:       ReadU16(b, ImageFlagsOffset),
		Index:       ReadU32(b, ImageIndexOffset),
		RecordCount: ReadU32(b, ImageRecordCountOffset),
		DataEnd:     ReadU64(b, ImageDataEndOffset),
		Duration:    MillisToDuration(ReadU64(b, ImageDurationOffset)),
		SealedAt:    UnixNanoToTime(ReadU64(b, ImageSealedAtOffset)),
		Size:        ReadU64(b, ImageSizeOffset),
		Checksum:    ReadU32(b, ImageChecksumOffset),
	}
	if h.Version != ImageVersion {
		return h, fmt.Errorf("%w: %d", ErrUnsupported, h.Version)
	}
	if sum := HeaderChecksum(b); sum != h.Checksum {
		return h, fmt.Errorf("%w: stored 0x%08x, computed 0x%08x", ErrChecksum, h.Checksum, sum)
	}
	if h.DataEnd < ImageHeaderSize || h.DataEnd > h.Size {
		return h, fmt.Errorf("%w: data end %d outside [%d, %d]", ErrTruncated, h.DataEnd, ImageHeaderSize, h.Size)
	}
	return h, nil
}

// HeaderChecksum computes the CRC32 of the checksummed header region.
func HeaderChecksum(b []byte) uint32 {
	return crc32.ChecksumIEEE(b[:ImageChecksumOffset])
}
