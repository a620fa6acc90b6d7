package store

import "errors"

var (
	// ErrNoSpace indicates the record does not fit in the bytes left in the active image.
	ErrNoSpace = errors.New("store: no space left in image")

	// ErrDurationLimit indicates the record would exceed the image's maximum playing time.
	ErrDurationLimit = errors.New("store: image duration limit exceeded")

	// ErrBadRecord indicates a record with a non-positive duration or oversized fields.
	ErrBadRecord = errors.New("store: bad record")

	// ErrClosed indicates an operation on a closed store.
	ErrClosed = errors.New("store: closed")

	// ErrExists indicates the output directory already holds images with the same prefix.
	ErrExists = errors.New("store: images already exist")

	// ErrCorrupt indicates an image that failed validation on read.
	ErrCorrupt = errors.New("store: corrupt image")

	// ErrBadOptions indicates invalid store options.
	ErrBadOptions = errors.New("store: bad options")
)
