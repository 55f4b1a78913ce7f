package app

import (
	"fmt"
	"io"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/randombyte-developer/crates-generator/internal/config"
	"github.com/randombyte-developer/crates-generator/internal/playlist"
	"github.com/randombyte-developer/crates-generator/internal/scan"
)

// Crate is one directory exported as a playlist.
type Crate struct {
	Name   string
	Dir    string
	Tracks []string
}

// Report summarizes a generate run.
type Report struct {
	// PriorityWithoutDuplicate lists priority track names that never
	// appeared in the normal pass, in priority order.
	PriorityWithoutDuplicate []string
	Stats                    RunStats
}

// RunStats counts what a run produced.
type RunStats struct {
	Crates            int
	EntriesWritten    int
	EntriesOverridden int
	DuplicateCrates   int
}

type runner struct {
	cfg      config.Config
	opts     Options
	log      *zap.SugaredLogger
	out      io.Writer
	scanner  *scan.Scanner
	writer   *playlist.Writer
	excluded map[string]bool
	written  map[string]string
	stats    RunStats
}

func newRunner(cfg config.Config, opts Options, out io.Writer, log *zap.SugaredLogger) (*runner, error) {
	extensions := scan.DefaultExtensions()
	if len(cfg.AudioExtensions) > 0 {
		extensions = scan.NewExtensions(cfg.AudioExtensions...)
	}
	scanner, err := scan.New(extensions, cfg.IgnorePatterns)
	if err != nil {
		return nil, err
	}

	excluded := make(map[string]bool, len(opts.ExcludedCrates))
	for _, name := range opts.ExcludedCrates {
		excluded[name] = true
	}

	return &runner{
		cfg:      cfg,
		opts:     opts,
		log:      log,
		out:      out,
		scanner:  scanner,
		writer:   playlist.NewWriter(opts.Destination),
		excluded: excluded,
		written:  make(map[string]string),
	}, nil
}

func (r *runner) Execute() (Report, error) {
	r.log.Infow("generating crates", "destination", r.writer.Dir())

	priorityNames, err := r.writeCrates(r.opts.PriorityFolders, nil)
	if err != nil {
		return Report{}, err
	}

	overriding := make(map[string]bool, len(priorityNames))
	for _, name := range priorityNames {
		overriding[name] = true
	}

	normalNames, err := r.writeCrates(r.opts.TracksFolders, overriding)
	if err != nil {
		return Report{}, err
	}

	report := Report{
		PriorityWithoutDuplicate: withoutDuplicate(priorityNames, normalNames),
		Stats:                    r.stats,
	}
	if err := r.printReport(report); err != nil {
		return report, err
	}

	r.log.Infow("generation complete",
		"crates", r.stats.Crates,
		"entries", r.stats.EntriesWritten,
		"overridden", r.stats.EntriesOverridden,
	)
	return report, nil
}

// writeCrates writes a playlist for every non-excluded directory below the
// given top-level folders. Tracks whose base name is in overriding are left
// out. The base names of all scanned tracks are returned, overridden or not.
func (r *runner) writeCrates(folders []string, overriding map[string]bool) ([]string, error) {
	var allNames []string

	for _, folder := range folders {
		crates, err := r.cratesIn(folder)
		if err != nil {
			return nil, err
		}

		for _, crate := range crates {
			var entries []string
			for _, track := range crate.Tracks {
				name := scan.BaseName(track)
				allNames = append(allNames, name)
				if overriding[name] {
					r.stats.EntriesOverridden++
					r.log.Debugw("track overridden by priority folder", "crate", crate.Name, "track", track)
					continue
				}
				entries = append(entries, track)
			}

			if err := r.writeCrate(crate, entries); err != nil {
				return nil, err
			}
		}
	}

	return allNames, nil
}

func (r *runner) cratesIn(folder string) ([]Crate, error) {
	dirs, err := r.scanner.Dirs(folder)
	if err != nil {
		return nil, fmt.Errorf("read top-level folder %q: %w", folder, err)
	}

	var crates []Crate
	for _, dir := range dirs {
		name := filepath.Base(dir)
		if r.excluded[name] {
			r.log.Debugw("skipping excluded crate", "dir", dir)
			continue
		}
		tracks, err := r.scanner.AudioFiles(dir)
		if err != nil {
			return nil, err
		}
		crates = append(crates, Crate{Name: name, Dir: dir, Tracks: tracks})
	}
	return crates, nil
}

func (r *runner) writeCrate(crate Crate, entries []string) error {
	if prev, ok := r.written[crate.Name]; ok {
		r.stats.DuplicateCrates++
		r.log.Warnw("crate name used by more than one directory, playlist overwritten",
			"crate", crate.Name, "previous", prev, "dir", crate.Dir)
	}

	path, err := r.writer.Write(crate.Name, entries)
	if err != nil {
		return err
	}
	r.written[crate.Name] = crate.Dir
	r.stats.Crates++
	r.stats.EntriesWritten += len(entries)
	r.log.Debugw("wrote playlist", "crate", crate.Name, "path", path, "entries", len(entries))
	return nil
}

func (r *runner) printReport(report Report) error {
	if len(report.PriorityWithoutDuplicate) == 0 {
		return nil
	}
	if _, err := fmt.Fprint(r.out, "Priority files without any duplicate (they overrode nothing):\n\n"); err != nil {
		return err
	}
	for _, name := range report.PriorityWithoutDuplicate {
		if _, err := fmt.Fprintln(r.out, name); err != nil {
			return err
		}
	}
	return nil
}

func withoutDuplicate(priority, normal []string) []string {
	seen := make(map[string]bool, len(normal))
	for _, name := range normal {
		seen[name] = true
	}
	var out []string
	for _, name := range priority {
		if !seen[name] {
			out = append(out, name)
		}
	}
	return out
}
