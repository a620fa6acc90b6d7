package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageHeader_RoundTrip(t *testing.T) {
	buf := make([]byte, ImageHeaderSize)
	sealedAt := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	h := ImageHeader{
		Version:     ImageVersion,
		Flags:       FlagSealed,
		Index:       7,
		RecordCount: 3,
		DataEnd:     ImageHeaderSize + 96,
		Duration:    12*time.Minute + 500*time.Millisecond,
		SealedAt:    sealedAt,
		Size:        4096,
	}
	require.NoError(t, EncodeImageHeader(buf, h))

	got, err := DecodeImageHeader(buf)
	require.NoError(t, err)
	assert.True(t, got.Sealed())
	assert.Equal(t, uint32(7), got.Index)
	assert.Equal(t, uint32(3), got.RecordCount)
	assert.Equal(t, h.DataEnd, got.DataEnd)
	assert.Equal(t, h.Duration, got.Duration)
	assert.True(t, sealedAt.Equal(got.SealedAt))
	assert.Equal(t, uint64(4096), got.Size)
}

func TestNewImageHeader(t *testing.T) {
	h := NewImageHeader(2, 8192)
	assert.False(t, h.Sealed())
	assert.Equal(t, uint64(ImageHeaderSize), h.DataEnd)
	assert.True(t, h.SealedAt.IsZero())
}

func TestDecodeImageHeader_Errors(t *testing.T) {
	valid := make([]byte, ImageHeaderSize)
	require.NoError(t, EncodeImageHeader(valid, NewImageHeader(0, 4096)))

	t.Run("truncated", func(t *testing.T) {
		_, err := DecodeImageHeader(valid[:ImageHeaderSize-1])
		require.ErrorIs(t, err, ErrTruncated)
	})

	t.Run("bad signature", func(t *testing.T) {
		b := append([]byte(nil), valid...)
		b[0] = 'X'
		_, err := DecodeImageHeader(b)
		require.ErrorIs(t, err, ErrSignatureMismatch)
	})

	t.Run("checksum mismatch", func(t *testing.T) {
		b := append([]byte(nil), valid...)
		PutU32(b, ImageRecordCountOffset, 99)
		_, err := DecodeImageHeader(b)
		require.ErrorIs(t, err, ErrChecksum)
	})

	t.Run("unsupported version", func(t *testing.T) {
		b := make([]byte, ImageHeaderSize)
		h := NewImageHeader(0, 4096)
		h.Version = 9
		require.NoError(t, EncodeImageHeader(b, h))
		_, err := DecodeImageHeader(b)
		require.ErrorIs(t, err, ErrUnsupported)
	})

	t.Run("data end beyond size", func(t *testing.T) {
		b := make([]byte, ImageHeaderSize)
		h := NewImageHeader(0, 128)
		h.DataEnd = 256
		require.NoError(t, EncodeImageHeader(b, h))
		_, err := DecodeImageHeader(b)
		require.ErrorIs(t, err, ErrTruncated)
	})
}

func TestAlign8(t *testing.T) {
	for in, want := range map[int]int{0: 0, 1: 8, 8: 8, 9: 16, 20: 24} {
		assert.Equal(t, want, Align8(in), "Align8(%d)", in)
	}
	assert.Equal(t, 88, MinImageSize)
}
