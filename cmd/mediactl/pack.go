package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/joshuapare/mediakit/internal/logger"
	"github.com/joshuapare/mediakit/media/alloc"
	"github.com/joshuapare/mediakit/media/segment"
	"github.com/joshuapare/mediakit/media/store"
	"github.com/joshuapare/mediakit/pkg/pack"
)

var (
	packOut           string
	packPrefix        string
	packImageSize     int
	packImageDuration time.Duration
	packCapacity      time.Duration
	packThreshold     time.Duration
	packPolicy        string
	packRetryRejected bool
	packFlush         string
	packLedger        string
	packDryRun        bool
)

func init() {
	cmd := newPackCmd()
	cmd.Flags().StringVarP(&packOut, "out", "o", ".", "Output directory for images")
	cmd.Flags().StringVar(&packPrefix, "prefix", store.DefaultPrefix, "Image file name prefix")
	cmd.Flags().IntVar(&packImageSize, "image-size", store.DefaultImageSize, "Bytes per image")
	cmd.Flags().DurationVar(&packImageDuration, "image-duration", 0, "Playing time limit per image (0 for none)")
	cmd.Flags().DurationVar(&packCapacity, "capacity", segment.DefaultCapacity, "Segment capacity")
	cmd.Flags().DurationVar(&packThreshold, "threshold", segment.DefaultThreshold, "Minimum remaining capacity for a segment to take another song")
	cmd.Flags().StringVar(&packPolicy, "policy", "always", "Rollover policy: always or on-failure")
	cmd.Flags().BoolVar(&packRetryRejected, "retry-rejected", false, "Retry a refused song on the new segment instead of dropping it")
	cmd.Flags().StringVar(&packFlush, "flush", "auto", "Flush mode when sealing: auto, data or full")
	cmd.Flags().StringVar(&packLedger, "ledger", "", "Record allocator events to this SQLite file")
	cmd.Flags().BoolVar(&packDryRun, "dry-run", false, "Log songs instead of writing images")
	rootCmd.AddCommand(cmd)
}

func newPackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pack <playlist>",
		Short: "Pack a playlist onto media images",
		Long: `The pack command reads an M3U or M3U8 playlist and allocates its songs
onto media segments, writing each segment as a fixed-size image file.

Example:
  mediactl pack mix.m3u8 --out ./images
  mediactl pack mix.m3u --policy on-failure --image-duration 80m
  mediactl pack mix.m3u8 --dry-run --verbose
  mediactl pack mix.m3u8 --ledger run.sqlite3 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPack(cmd.Context(), args)
		},
	}
	return cmd
}

func runPack(ctx context.Context, args []string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	policy, err := alloc.ParsePolicy(packPolicy)
	if err != nil {
		return err
	}
	flush, err := store.ParseFlushMode(packFlush)
	if err != nil {
		return err
	}

	opts := pack.Options{
		Playlist:         args[0],
		OutDir:           packOut,
		Prefix:           packPrefix,
		ImageSize:        packImageSize,
		MaxImageDuration: packImageDuration,
		Capacity:         packCapacity,
		Threshold:        packThreshold,
		Policy:           policy,
		RetryRejected:    packRetryRejected,
		FlushMode:        flush,
		LedgerPath:       packLedger,
		Logger:           logger.L,
		DryRun:           packDryRun,
	}

	printVerbose("Packing playlist: %s\n", opts.Playlist)

	report, runErr := pack.Run(ctx, opts)
	if report == nil {
		return fmt.Errorf("failed to pack: %w", runErr)
	}

	if jsonOut {
		if err := printJSON(report); err != nil {
			return err
		}
	} else {
		printReport(report)
	}

	if runErr != nil {
		return fmt.Errorf("pack stopped after %d songs: %w", report.Stats.Items, runErr)
	}
	return nil
}

func printReport(r *pack.Report) {
	printInfo("\nPack Summary:\n")
	printInfo("  Run: %s\n", r.RunID)
	printInfo("  Playlist: %s (%d songs, %s)\n", r.Playlist, r.Songs, r.Total)
	printInfo("  Policy: %s\n", r.Policy)
	if r.DryRun {
		printInfo("  Dry run: no images written\n")
	}
	printInfo("  Songs processed: %d\n", r.Stats.Items)
	printInfo("  Writes: %d (%d rewrites, %d failed)\n", r.Stats.Writes, r.Stats.Rewrites, r.Stats.Writes-r.Stats.Written)
	printInfo("  Dropped: %d\n", r.Stats.Dropped)
	printInfo("  Segments: %d opened, %d finalizes (%d failed)\n",
		r.Stats.SegmentsOpened, r.Stats.Finalizes, r.Stats.FinalizeFailures)

	if len(r.Images) > 0 {
		printInfo("\nImages:\n")
		for _, img := range r.Images {
			state := "open"
			if img.Sealed {
				state = "sealed"
			}
			printInfo("  %s  %d songs  %s  %s  %s\n",
				img.Path, img.Records, img.Duration, formatBytes(img.Used), state)
		}
	}
	if r.LedgerPath != "" {
		printInfo("\nLedger: %s\n", r.LedgerPath)
	}
	printVerbose("Elapsed: %s\n", r.Elapsed)
}
