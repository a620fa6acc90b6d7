package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/mediakit/media/alloc"
	"github.com/joshuapare/mediakit/media/ledger"
	"github.com/joshuapare/mediakit/media/store"
	"github.com/joshuapare/mediakit/pkg/pack"
)

func TestPackCommand(t *testing.T) {
	tests := []struct {
		name        string
		songs       int
		policy      string
		dryRun      bool
		wantImages  int
		wantErr     bool
		wantContain []string
	}{
		{
			name:        "always policy",
			songs:       3,
			policy:      "always",
			wantImages:  4,
			wantContain: []string{"Pack Summary", "Policy: always", "Songs processed: 3", "media.003.img"},
		},
		{
			name:        "on-failure policy",
			songs:       3,
			policy:      "on-failure",
			wantImages:  1,
			wantContain: []string{"Policy: on-failure", "media.000.img", "3 songs", "open"},
		},
		{
			name:        "dry run",
			songs:       2,
			policy:      "always",
			dryRun:      true,
			wantContain: []string{"Dry run: no images written"},
		},
		{
			name:    "unknown policy",
			songs:   1,
			policy:  "never",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags(t)
			dir := t.TempDir()
			packOut = filepath.Join(dir, "out")
			packPolicy = tt.policy
			packDryRun = tt.dryRun

			playlist := writePlaylist(t, dir, tt.songs, 200)
			output, err := captureOutput(t, func() error {
				return runPack(context.Background(), []string{playlist})
			})
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err, output)
			assertContains(t, output, tt.wantContain)

			images, _ := filepath.Glob(filepath.Join(packOut, "*.img"))
			assert.Len(t, images, tt.wantImages)
		})
	}
}

func TestPackCommand_JSON(t *testing.T) {
	resetFlags(t)
	dir := t.TempDir()
	packOut = filepath.Join(dir, "out")
	packLedger = filepath.Join(dir, "events.sqlite3")
	jsonOut = true

	playlist := writePlaylist(t, dir, 2, 100)
	output, err := captureOutput(t, func() error {
		return runPack(context.Background(), []string{playlist})
	})
	require.NoError(t, err)
	assertJSON(t, output)

	var report pack.Report
	require.NoError(t, json.Unmarshal([]byte(output), &report))
	assert.Equal(t, 2, report.Songs)
	assert.Equal(t, 2, report.Stats.Items)

	rows, err := ledger.ReadEvents(packLedger, report.RunID)
	require.NoError(t, err)
	assert.NotEmpty(t, rows)
}

func TestPackCommand_Overflow(t *testing.T) {
	resetFlags(t)
	dir := t.TempDir()
	packOut = filepath.Join(dir, "out")
	packImageSize = 96 // header plus a few bytes

	playlist := writePlaylist(t, dir, 2, 100)
	output, err := captureOutput(t, func() error {
		return runPack(context.Background(), []string{playlist})
	})
	require.ErrorIs(t, err, alloc.ErrCapacityOverflow)
	require.ErrorIs(t, err, store.ErrNoSpace)
	assert.Contains(t, err.Error(), "pack stopped after 1 songs")
	// the partial summary is still printed
	assert.Contains(t, output, "Pack Summary")
}

func TestPackCommand_ExistingImages(t *testing.T) {
	resetFlags(t)
	dir := t.TempDir()
	packOut = filepath.Join(dir, "out")
	require.NoError(t, os.MkdirAll(packOut, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(packOut, "media.000.img"), nil, 0o644))

	playlist := writePlaylist(t, dir, 1, 100)
	_, err := captureOutput(t, func() error {
		return runPack(context.Background(), []string{playlist})
	})
	require.ErrorIs(t, err, store.ErrExists)
}
