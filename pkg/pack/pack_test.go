package pack

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/mediakit/internal/format"
	"github.com/joshuapare/mediakit/media"
	"github.com/joshuapare/mediakit/media/alloc"
	"github.com/joshuapare/mediakit/media/ledger"
	"github.com/joshuapare/mediakit/media/source"
	"github.com/joshuapare/mediakit/media/store"
)

// writePlaylist writes an M3U8 playlist of n four-minute songs.
func writePlaylist(t *testing.T, dir string, n int) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("#EXTM3U\n")
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, "#EXTINF:240,Artist %d - Song %d\nmusic/song%02d.flac\n", i, i, i)
	}
	path := filepath.Join(dir, "mix.m3u8")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
	return path
}

func recordCount(images []store.ImageInfo) int {
	n := 0
	for _, img := range images {
		n += img.Records
	}
	return n
}

func TestProcess(t *testing.T) {
	require.NoError(t, Process())
}

func TestRunSource_DryRun(t *testing.T) {
	songs := DefaultSongs()
	report, err := RunSource(context.Background(), source.NewSlice(songs...), Options{DryRun: true})
	require.NoError(t, err)

	assert.True(t, report.DryRun)
	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, "always", report.Policy)
	assert.Equal(t, len(songs), report.Stats.Items)
	assert.Equal(t, 2*len(songs), report.Stats.Written)
	assert.Empty(t, report.Images)
}

func TestRun_OnFailureFillsOneImage(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")

	opts := DefaultOptions()
	opts.Playlist = writePlaylist(t, dir, 5)
	opts.OutDir = out
	opts.Policy = alloc.RolloverOnFailure

	report, err := Run(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, 5, report.Songs)
	assert.Equal(t, 20*time.Minute, report.Total)
	require.Len(t, report.Images, 1)
	assert.Equal(t, 5, report.Images[0].Records)
	assert.False(t, report.Images[0].Sealed)

	info, records, err := store.ReadImage(report.Images[0].Path)
	require.NoError(t, err)
	assert.Equal(t, 20*time.Minute, info.Duration)
	require.Len(t, records, 5)
	assert.Equal(t, "Song 1", records[0].Title)
	assert.Equal(t, "Artist 1", records[0].Artist)
	assert.Equal(t, filepath.Join(dir, "music", "song01.flac"), records[0].Path)
}

// Under the default policy every item rolls the image and is written twice.
func TestRun_AlwaysRollsEveryItem(t *testing.T) {
	dir := t.TempDir()

	opts := DefaultOptions()
	opts.Playlist = writePlaylist(t, dir, 3)
	opts.OutDir = filepath.Join(dir, "out")

	report, err := Run(context.Background(), opts)
	require.NoError(t, err)

	require.Len(t, report.Images, 4)
	assert.Equal(t, 6, recordCount(report.Images))
	for _, img := range report.Images[:3] {
		assert.True(t, img.Sealed, "image %d", img.Index)
	}
	assert.False(t, report.Images[3].Sealed)
	assert.Equal(t, 1, report.Images[3].Records)
}

func TestRun_DurationLimitRollsImage(t *testing.T) {
	dir := t.TempDir()

	opts := DefaultOptions()
	opts.Playlist = writePlaylist(t, dir, 3)
	opts.OutDir = filepath.Join(dir, "out")
	opts.Policy = alloc.RolloverOnFailure
	opts.MaxImageDuration = 9 * time.Minute

	report, err := Run(context.Background(), opts)
	require.NoError(t, err)

	require.Len(t, report.Images, 2)
	assert.Equal(t, 2, report.Images[0].Records)
	assert.True(t, report.Images[0].Sealed)
	assert.Equal(t, 1, report.Images[1].Records)
	assert.Equal(t, 1, report.Stats.Rewrites)
}

func TestRun_Ledger(t *testing.T) {
	dir := t.TempDir()

	opts := DefaultOptions()
	opts.Playlist = writePlaylist(t, dir, 2)
	opts.OutDir = filepath.Join(dir, "out")
	opts.LedgerPath = filepath.Join(dir, "ledger.sqlite3")

	report, err := Run(context.Background(), opts)
	require.NoError(t, err)

	rows, err := ledger.ReadEvents(opts.LedgerPath, report.RunID)
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	assert.Equal(t, "segment_opened", rows[0].Kind)
}

func TestRun_Overflow(t *testing.T) {
	dir := t.TempDir()

	opts := DefaultOptions()
	opts.Playlist = writePlaylist(t, dir, 2)
	opts.OutDir = filepath.Join(dir, "out")
	opts.ImageSize = format.MinImageSize // no record fits

	report, err := Run(context.Background(), opts)
	require.Error(t, err)
	assert.ErrorIs(t, err, alloc.ErrCapacityOverflow)
	assert.ErrorIs(t, err, store.ErrNoSpace)

	var overflow *alloc.CapacityOverflowError
	require.ErrorAs(t, err, &overflow)
	assert.Error(t, overflow.RewriteErr)
	assert.Equal(t, "Artist 1 - Song 1", media.Label(overflow.Item))

	require.NotNil(t, report)
	assert.Equal(t, 1, report.Stats.Items)
}

func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Run(context.Background(), Options{Playlist: filepath.Join(dir, "missing.m3u")})
	assert.True(t, errors.Is(err, os.ErrNotExist))

	opts := DefaultOptions()
	opts.Playlist = writePlaylist(t, dir, 1)
	opts.OutDir = filepath.Join(dir, "out")
	_, err = Run(context.Background(), opts)
	require.NoError(t, err)

	// a second run into the same directory would overwrite images
	_, err = Run(context.Background(), opts)
	assert.ErrorIs(t, err, store.ErrExists)
}

func TestRunSource_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := RunSource(ctx, source.NewSlice(DefaultSongs()...), Options{DryRun: true})
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, report.Stats.Items)
}

func TestOptions_WithDefaults(t *testing.T) {
	o := Options{}.withDefaults()
	assert.Equal(t, DefaultOptions(), o)

	o = Options{Capacity: time.Hour}.withDefaults()
	assert.Equal(t, time.Duration(0), o.Threshold)
}
