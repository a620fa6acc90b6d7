package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/mediakit/media/segment"
	"github.com/joshuapare/mediakit/media/store"
)

// writePlaylist writes an M3U8 playlist of n songs of secs seconds each.
func writePlaylist(t *testing.T, dir string, n, secs int) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("#EXTM3U\n")
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, "#EXTINF:%d,Band %d - Tune %d\ntunes/%02d.ogg\n", secs, i, i, i)
	}
	path := filepath.Join(dir, "list.m3u8")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
	return path
}

// resetFlags restores every command flag variable to its default.
func resetFlags(t *testing.T) {
	t.Helper()
	verbose, quiet, jsonOut = false, false, false
	logDir, envFile = "", ""
	packOut, packPrefix = ".", store.DefaultPrefix
	packImageSize = store.DefaultImageSize
	packImageDuration, packCapacity, packThreshold = 0, segment.DefaultCapacity, segment.DefaultThreshold
	packPolicy, packFlush, packLedger = "always", "auto", ""
	packRetryRejected, packDryRun = false, false
	inspectRecords = true
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	// Save original stdout
	origStdout := os.Stdout

	// Create a pipe to capture output
	r, w, err := os.Pipe()
	require.NoError(t, err, "failed to create pipe")

	// Redirect stdout to pipe
	os.Stdout = w

	// Drain concurrently so large outputs cannot fill the pipe
	done := make(chan []byte)
	go func() {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(r)
		done <- buf.Bytes()
	}()

	// Run function
	fnErr := fn()

	// Close write end and restore stdout
	w.Close()
	os.Stdout = origStdout

	return string(<-done), fnErr
}

// assertJSON checks that output is valid JSON
func assertJSON(t *testing.T, output string) {
	t.Helper()
	var result any
	assert.NoError(t, json.Unmarshal([]byte(output), &result), "invalid JSON output:\n%s", output)
}

// assertContains checks that output contains all expected strings
func assertContains(t *testing.T, output string, expected []string) {
	t.Helper()
	for _, want := range expected {
		assert.Contains(t, output, want)
	}
}
