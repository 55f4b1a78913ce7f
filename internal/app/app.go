package app

import (
	"context"
	"io"

	"go.uber.org/zap"

	"github.com/randombyte-developer/crates-generator/internal/args"
	"github.com/randombyte-developer/crates-generator/internal/config"
	"github.com/randombyte-developer/crates-generator/internal/mixxx"
)

// Options captures the validated generate arguments.
type Options struct {
	TracksFolders   []string
	PriorityFolders []string
	ExcludedCrates  []string
	Destination     string
}

// OptionsFromArgs converts a validated argument set.
func OptionsFromArgs(set args.Set) Options {
	return Options{
		TracksFolders:   set.Get(args.TracksTopLevelFolders),
		PriorityFolders: set.Get(args.PriorityTopLevelFolders),
		ExcludedCrates:  set.Get(args.ExcludedCrates),
		Destination:     set.Destination(),
	}
}

// Generate writes one playlist per crate and prints the priority report to out.
func Generate(cfg config.Config, opts Options, out io.Writer, log *zap.SugaredLogger) (Report, error) {
	r, err := newRunner(cfg, opts, out, log)
	if err != nil {
		return Report{}, err
	}
	return r.Execute()
}

// Clear empties the crates table of the local Mixxx database and returns
// the database path and the number of rows removed.
func Clear(ctx context.Context, cfg config.Config, goos string, log *zap.SugaredLogger) (string, int64, error) {
	path, err := mixxx.Locate(cfg.MixxxDir, goos)
	if err != nil {
		return "", 0, err
	}
	log.Debugw("clearing crates", "database", path)

	if cfg.DBTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.DBTimeout)
		defer cancel()
	}

	n, err := mixxx.ClearCrates(ctx, path)
	if err != nil {
		return path, 0, err
	}
	log.Infow("cleared crates", "database", path, "rows", n)
	return path, n, nil
}
