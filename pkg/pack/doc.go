/*
Package pack is the high-level API for packing a playlist onto media images.

# Quick Start

Pack an M3U playlist into images under ./out:

	report, err := pack.Run(ctx, pack.Options{
	    Playlist: "mix.m3u8",
	    OutDir:   "out",
	})

# Policies

The default policy rolls the active segment after every item and writes each
item twice (once before and once after the rollover). Use
alloc.RolloverOnFailure to fill segments instead:

	opts := pack.DefaultOptions()
	opts.Playlist = "mix.m3u8"
	opts.Policy = alloc.RolloverOnFailure

# Dry Runs

With DryRun set no images are written: items are logged and every segment
finalizes successfully. Process runs a dry run over DefaultSongs.

# Error Handling

A write that fails against a writable segment stops the run with an
*alloc.CapacityOverflowError. The partial Report is returned alongside it:

	report, err := pack.Run(ctx, opts)
	if errors.Is(err, alloc.ErrCapacityOverflow) {
	    fmt.Println("stopped after", report.Stats.Items, "songs")
	}
*/
package pack
