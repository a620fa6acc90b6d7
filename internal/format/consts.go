// Package format houses the low-level encoders and decoders for media image
// files. It knows byte offsets and nothing else; higher-level packages
// (media/store) decide when and where images are written.
//
// Image layout (little-endian):
//
//	0x00  'M' 'K' 'S' 'G'       signature
//	0x04  u16                   version
//	0x06  u16                   flags (bit 0: sealed)
//	0x08  u32                   image index within the store
//	0x0C  u32                   record count
//	0x10  u64                   data end (absolute offset of the next record)
//	0x18  u64                   total playing time of all records, in ms
//	0x20  u64                   sealed-at, unix nanoseconds (0 while open)
//	0x28  u64                   image size in bytes
//	0x30  ...                   reserved
//	0x3C  u32                   CRC32 (IEEE) of bytes [0x00, 0x3C)
//	0x40  records...
//
// Record layout, 8-byte aligned:
//
//	0x00  u32                   record size including padding
//	0x04  u64                   duration in ms
//	0x0C  u16                   title length
//	0x0E  u16                   artist length
//	0x10  u16                   path length
//	0x12  u16                   reserved
//	0x14  title | artist | path
package format

// ImageSignature is the four-byte signature at the start of every image.
var ImageSignature = []byte{'M', 'K', 'S', 'G'}

const (
	// ImageVersion is the only image version this package writes and reads.
	ImageVersion uint16 = 1

	// ImageHeaderSize is the size of the image header; records start right after it.
	ImageHeaderSize = 0x40

	// FlagSealed marks an image as finalized.
	FlagSealed uint16 = 1 << 0
)

// Image header field offsets.
const (
	ImageSignatureOffset   = 0x00
	ImageVersionOffset     = 0x04
	ImageFlagsOffset       = 0x06
	ImageIndexOffset       = 0x08
	ImageRecordCountOffset = 0x0C
	ImageDataEndOffset     = 0x10
	ImageDurationOffset    = 0x18
	ImageSealedAtOffset    = 0x20
	ImageSizeOffset        = 0x28
	ImageChecksumOffset    = 0x3C
)

// Record field offsets.
const (
	RecordSizeOffset      = 0x00
	RecordDurationOffset  = 0x04
	RecordTitleLenOffset  = 0x0C
	RecordArtistLenOffset = 0x0E
	RecordPathLenOffset   = 0x10
	RecordHeaderSize      = 0x14
)

const (
	// RecordAlignment is the alignment of every record.
	RecordAlignment     = 8
	recordAlignmentMask = RecordAlignment - 1

	// MaxFieldLen bounds title, artist and path lengths (u16 length fields).
	MaxFieldLen = 1<<16 - 1

	// MinImageSize is the smallest image that can hold a header and one empty record.
	MinImageSize = ImageHeaderSize + (RecordHeaderSize+recordAlignmentMask)&^recordAlignmentMask
)
