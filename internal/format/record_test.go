package format

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_EncodeDecode(t *testing.T) {
	r := Record{
		Title:    "Blue in Green",
		Artist:   "Miles Davis",
		Path:     "/music/kind-of-blue/03.flac",
		Duration: 5*time.Minute + 37*time.Second,
	}
	buf := make([]byte, 256)

	n, err := EncodeRecord(buf, r)
	require.NoError(t, err)
	assert.Equal(t, r.Size(), n)
	assert.Zero(t, n%RecordAlignment, "records must be 8-byte aligned")

	got, size, err := DecodeRecord(buf)
	require.NoError(t, err)
	assert.Equal(t, n, size)
	assert.Equal(t, r, got)
}

func TestRecord_EmptyFields(t *testing.T) {
	buf := make([]byte, 64)
	n, err := EncodeRecord(buf, Record{Duration: time.Second})
	require.NoError(t, err)
	assert.Equal(t, 24, n)

	got, _, err := DecodeRecord(buf)
	require.NoError(t, err)
	assert.Equal(t, time.Second, got.Duration)
	assert.Empty(t, got.Title)
}

func TestEncodeRecord_Errors(t *testing.T) {
	_, err := EncodeRecord(make([]byte, 8), Record{Title: "x"})
	require.ErrorIs(t, err, ErrTruncated)

	_, err = EncodeRecord(make([]byte, 1<<17), Record{Title: strings.Repeat("a", MaxFieldLen+1)})
	require.ErrorIs(t, err, ErrFieldTooLong)
}

func TestDecodeRecord_Errors(t *testing.T) {
	_, _, err := DecodeRecord(make([]byte, RecordHeaderSize-1))
	require.ErrorIs(t, err, ErrTruncated)

	buf := make([]byte, 64)
	_, err = EncodeRecord(buf, Record{Title: "abc"})
	require.NoError(t, err)

	bad := append([]byte(nil), buf...)
	PutU32(bad, RecordSizeOffset, 200)
	_, _, err = DecodeRecord(bad)
	require.ErrorIs(t, err, ErrBadRecord)

	_, _, err = DecodeRecord(buf[:RecordHeaderSize+1])
	require.ErrorIs(t, err, ErrTruncated)
}

func TestDurationMillis(t *testing.T) {
	assert.Equal(t, uint64(1500), DurationToMillis(1500*time.Millisecond))
	assert.Equal(t, uint64(0), DurationToMillis(-time.Second))
	assert.Equal(t, 2*time.Second, MillisToDuration(2000))
}
