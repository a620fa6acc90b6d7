package pack

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/rs/xid"

	"github.com/joshuapare/mediakit/internal/logger"
	"github.com/joshuapare/mediakit/media"
	"github.com/joshuapare/mediakit/media/alloc"
	"github.com/joshuapare/mediakit/media/finalize"
	"github.com/joshuapare/mediakit/media/ledger"
	"github.com/joshuapare/mediakit/media/source"
	"github.com/joshuapare/mediakit/media/store"
	"github.com/joshuapare/mediakit/media/validate"
	"github.com/joshuapare/mediakit/media/writer"
)

// Report summarizes a run.
type Report struct {
	RunID      string            `json:"run_id"`
	Playlist   string            `json:"playlist,omitempty"`
	Songs      int               `json:"songs"`
	Total      time.Duration     `json:"total"`
	Policy     string            `json:"policy"`
	DryRun     bool              `json:"dry_run"`
	Stats      alloc.Stats       `json:"stats"`
	Images     []store.ImageInfo `json:"images,omitempty"`
	LedgerPath string            `json:"ledger,omitempty"`
	Elapsed    time.Duration     `json:"elapsed"`
}

// Run packs opts.Playlist. See RunSource.
func Run(ctx context.Context, opts Options) (*Report, error) {
	pl, err := source.OpenPlaylist(opts.Playlist)
	if err != nil {
		return nil, err
	}
	report, err := RunSource(ctx, pl, opts)
	if report != nil {
		report.Playlist = pl.Name()
		report.Songs = pl.Songs()
		report.Total = pl.Total()
	}
	return report, err
}

// RunSource packs every song src yields. The report is returned even when
// the run fails part way.
func RunSource(ctx context.Context, src source.Source[media.Song], opts Options) (*Report, error) {
	opts = opts.withDefaults()
	start := time.Now()
	runID := xid.New().String()

	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	log = log.With("run", runID)

	report := &Report{
		RunID:      runID,
		Policy:     opts.Policy.String(),
		DryRun:     opts.DryRun,
		LedgerPath: opts.LedgerPath,
	}

	var (
		w  writer.Writer[media.Song]
		f  finalize.Finalizer
		st *store.Store
	)
	if opts.DryRun {
		w = writer.NewLog[media.Song](log)
		f = finalize.Always{}
	} else {
		var err error
		st, err = store.Open(store.Options{
			Dir:         opts.OutDir,
			Prefix:      opts.Prefix,
			ImageSize:   opts.ImageSize,
			MaxDuration: opts.MaxImageDuration,
			FlushMode:   opts.FlushMode,
			Logger:      log,
		})
		if err != nil {
			return nil, err
		}
		w = writer.NewStore(st)
		f = finalize.NewStore(ctx, st, log)
	}

	allocOpts := []alloc.Option{
		alloc.WithPolicy(opts.Policy),
		alloc.WithRetryRejected(opts.RetryRejected),
		alloc.WithSegmentOptions(opts.segmentOptions()),
		alloc.WithLogger(log),
	}

	var led *ledger.Ledger
	if opts.LedgerPath != "" {
		var err error
		led, err = ledger.Open(opts.LedgerPath, runID)
		if err != nil {
			return nil, errors.Join(err, closeStore(st))
		}
		allocOpts = append(allocOpts, alloc.WithHook(led))
	}

	a, err := alloc.New(src, validate.Capacity{}, w, f, allocOpts...)
	if err != nil {
		return nil, errors.Join(err, closeStore(st), closeLedger(led))
	}

	log.Info("pack started", "policy", opts.Policy.String(), "dry_run", opts.DryRun, "out", opts.OutDir)
	stats, runErr := a.Run(ctx)

	closeErr := errors.Join(closeStore(st), closeLedger(led))
	report.Stats = stats
	if st != nil {
		report.Images = st.Images()
	}
	report.Elapsed = time.Since(start)

	log.Info("pack finished",
		"items", stats.Items,
		"written", stats.Written,
		"dropped", stats.Dropped,
		"images", len(report.Images),
		"elapsed", report.Elapsed)

	if closeErr != nil {
		return report, errors.Join(runErr, closeErr)
	}
	return report, runErr
}

// Process runs the built-in song list through a log writer and an always
// succeeding finalizer, logging to logger.L.
func Process() error {
	_, err := RunSource(context.Background(), source.NewSlice(DefaultSongs()...), Options{
		DryRun: true,
		Logger: logger.L,
	})
	if err != nil {
		return fmt.Errorf("pack: %w", err)
	}
	return nil
}

func closeStore(st *store.Store) error {
	if st == nil {
		return nil
	}
	return st.Close()
}

func closeLedger(l *ledger.Ledger) error {
	if l == nil {
		return nil
	}
	return l.Close()
}
