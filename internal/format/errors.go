package format

import "errors"

var (
	// ErrSignatureMismatch indicates an image without the MKSG signature.
	ErrSignatureMismatch = errors.New("format: signature mismatch")
	// ErrTruncated indicates the buffer lacked the bytes required for a structure.
	ErrTruncated = errors.New("format: truncated buffer")
	// ErrChecksum indicates a header whose CRC32 does not match its contents.
	ErrChecksum = errors.New("format: header checksum mismatch")
	// ErrUnsupported indicates an image version this package cannot read.
	ErrUnsupported = errors.New("format: unsupported image version")
	// ErrFieldTooLong indicates a string field longer than MaxFieldLen.
	ErrFieldTooLong = errors.New("format: field too long")
	// ErrBadRecord indicates a record whose size field disagrees with its contents.
	ErrBadRecord = errors.New("format: bad record")
)
