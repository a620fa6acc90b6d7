package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/mediakit/media/store"
)

var inspectRecords bool

func init() {
	cmd := newInspectCmd()
	cmd.Flags().BoolVar(&inspectRecords, "records", true, "List the songs stored in each image")
	rootCmd.AddCommand(cmd)
}

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <image>...",
		Short: "Validate images and list their contents",
		Long: `The inspect command validates image files written by pack (signature,
checksum and record bounds) and prints their header and songs.

Example:
  mediactl inspect out/media.000.img
  mediactl inspect out/*.img --records=false
  mediactl inspect out/media.000.img --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(args)
		},
	}
	return cmd
}

type inspectResult struct {
	store.ImageInfo
	Songs []store.Record `json:"songs,omitempty"`
}

func runInspect(args []string) error {
	results := make([]inspectResult, 0, len(args))
	for _, path := range args {
		printVerbose("Reading image: %s\n", path)
		info, records, err := store.ReadImage(path)
		if err != nil {
			return fmt.Errorf("failed to read image: %w", err)
		}
		res := inspectResult{ImageInfo: info}
		if inspectRecords {
			res.Songs = records
		}
		results = append(results, res)
	}

	if jsonOut {
		return printJSON(results)
	}

	for _, res := range results {
		printInfo("\nImage Information:\n")
		printInfo("  File: %s\n", res.Path)
		printInfo("  Index: %d\n", res.Index)
		printInfo("  Size: %s (%s used)\n", formatBytes(res.Size), formatBytes(res.Used))
		printInfo("  Songs: %d\n", res.Records)
		printInfo("  Duration: %s\n", res.Duration)
		if res.Sealed {
			printInfo("  Sealed: %s\n", res.SealedAt.Format("2006-01-02 15:04:05"))
		} else {
			printInfo("  Sealed: no\n")
		}
		for i, r := range res.Songs {
			printInfo("  %3d. %s  [%s]  %s\n", i+1, songLabel(r), r.Duration, r.Path)
		}
	}
	return nil
}

func songLabel(r store.Record) string {
	switch {
	case r.Artist != "" && r.Title != "":
		return r.Artist + " - " + r.Title
	case r.Title != "":
		return r.Title
	default:
		return "(untitled)"
	}
}
