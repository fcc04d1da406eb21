package migrate

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"

	"transmute/internal/checkpoint"
	"transmute/internal/config"
	"transmute/internal/exportimport"
	"transmute/internal/item"
	"transmute/internal/pipeline"
	"transmute/internal/steps"
)

// ReportFileName is the audit CSV written into the destination directory.
const ReportFileName = "report_transmute.csv"

// Options controls a single run.
type Options struct {
	// Src is the source export directory.
	Src string
	// Dst is the destination directory; created when missing.
	Dst string
	// WriteReport writes the per-item audit CSV into Dst.
	WriteReport bool
	// CleanUp empties Dst before writing.
	CleanUp bool
	// UI renders a progress bar on stderr.
	UI bool
	// Incremental skips content files already recorded in the checkpoint
	// store and records this run when it finishes.
	Incremental bool
}

// RegisterFunc binds step implementations to a registry for one run.
type RegisterFunc func(reg *pipeline.Registry, cfg *config.Config, filter *pipeline.PathFilter)

// Runner executes migration runs against one loaded configuration.
type Runner struct {
	cfg      *config.Config
	log      *slog.Logger
	register RegisterFunc
}

// NewRunner builds a runner with the built-in step set.
func NewRunner(cfg *config.Config, log *slog.Logger) *Runner {
	if log == nil {
		log = slog.Default()
	}
	return &Runner{
		cfg: cfg,
		log: log,
		register: func(reg *pipeline.Registry, cfg *config.Config, filter *pipeline.PathFilter) {
			steps.Register(reg, cfg, filter, nil)
		},
	}
}

// SetRegisterFunc replaces the step registration hook. Later calls win; the
// hook runs once per Run with that run's live path filter.
func (r *Runner) SetRegisterFunc(fn RegisterFunc) {
	if fn != nil {
		r.register = fn
	}
}

// Run executes one migration. The returned state is valid even when the
// audit report or checkpoint recording fails.
func (r *Runner) Run(ctx context.Context, opts Options) (*State, error) {
	started := time.Now()

	src, err := config.ExpandPath(opts.Src)
	if err != nil {
		return nil, fmt.Errorf("source path: %w", err)
	}
	dst, err := config.ExpandPath(opts.Dst)
	if err != nil {
		return nil, fmt.Errorf("destination path: %w", err)
	}
	info, err := os.Stat(src)
	if err != nil {
		return nil, fmt.Errorf("source %s: %w", src, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("source %s: not a directory", src)
	}
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return nil, fmt.Errorf("destination %s: %w", dst, err)
	}

	// The lock lives next to the destination, not inside it, so clean-up
	// cannot remove it mid-run.
	lock := flock.New(dst + ".lock")
	held, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock destination: %w", err)
	}
	if !held {
		return nil, fmt.Errorf("destination %s: already locked by another run", dst)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	if opts.CleanUp {
		if err := exportimport.RemoveContents(dst, r.log); err != nil {
			return nil, err
		}
	}

	files, err := exportimport.ScanSource(src)
	if err != nil {
		return nil, err
	}
	md, err := exportimport.InitializeContext(files)
	if err != nil {
		return nil, err
	}

	contentFiles := files.Content
	var store *checkpoint.Store
	skipped := 0
	if opts.Incremental {
		store, err = checkpoint.Open(r.cfg.Checkpoint.Path)
		if err != nil {
			return nil, err
		}
		defer store.Close()
		pending, err := store.FilterPending(ctx, contentFiles)
		if err != nil {
			return nil, err
		}
		skipped = len(contentFiles) - len(pending)
		contentFiles = pending
	}

	runID := uuid.NewString()
	r.log.Info("run started",
		"run_id", runID,
		"src", src,
		"dst", dst,
		"files", len(contentFiles),
		"skipped", skipped,
	)

	filter := pipeline.NewPathFilter(r.cfg.Paths.Filter.Allowed, r.cfg.Paths.Filter.Drop)
	registry := pipeline.NewRegistry()
	r.register(registry, r.cfg, filter)
	stepList, err := registry.ResolveAll(r.cfg.Pipeline.Steps)
	if err != nil {
		return nil, err
	}
	engine := pipeline.NewEngine(stepList, md, filter, r.cfg.Pipeline.DoNotAddDrop, r.log)

	state := newState(len(contentFiles))
	state.Skipped = skipped

	var bar *progressbar.ProgressBar
	if opts.UI {
		bar = progressbar.NewOptions(state.Total,
			progressbar.OptionSetDescription("migrating"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	type exportEntry struct {
		path string
		it   item.Item
	}
	var retained []exportEntry

	for _, path := range contentFiles {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("run cancelled: %w", err)
		}
		raw, err := exportimport.ReadItem(path)
		if err != nil {
			return nil, err
		}
		origPath := raw.Path()
		srcUID := raw.UID()
		srcType := raw.Type()
		srcState := raw.ReviewState()
		filename := filepath.Base(path)

		outcomes, err := engine.Process(raw)
		if err != nil {
			return nil, fmt.Errorf("file %s: %w", filename, err)
		}

		// Steps mutate the source item in place, so the cleaned audit path
		// is available on it after processing.
		srcPath := raw.String("_@id")
		if srcPath == "" {
			srcPath = origPath
		}

		for _, outcome := range outcomes {
			state.Processed++
			report := ItemReport{
				Filename: filename,
				SrcPath:  srcPath,
				SrcUID:   srcUID,
				SrcType:  srcType,
				SrcState: srcState,
				LastStep: outcome.LastStep,
			}
			if outcome.Synthesized {
				// Synthesized items have no source record of their own;
				// the path of the file that spawned them is kept for the
				// audit trail.
				state.Total++
				report.SrcUID = placeholder
				report.SrcType = placeholder
				report.SrcState = placeholder
				if bar != nil {
					bar.ChangeMax(state.Total)
				}
			}
			if outcome.Item == nil {
				state.Dropped++
				state.DroppedByStep[outcome.LastStep]++
				report.Dropped = true
				report.DstPath = placeholder
				report.DstUID = placeholder
				report.DstType = placeholder
				report.DstState = placeholder
			} else {
				final := outcome.Item
				state.ExportedByType[final.Type()]++
				report.DstPath = final.Path()
				report.DstUID = final.UID()
				report.DstType = final.Type()
				report.DstState = final.ReviewState()
				retained = append(retained, exportEntry{path: final.Path(), it: final})
			}
			emptyToPlaceholder(&report)
			state.Transforms = append(state.Transforms, report)
			if bar != nil {
				_ = bar.Add(1)
			}
		}
	}
	if bar != nil {
		_ = bar.Finish()
	}

	// Items are written in path order so parent containers land before
	// their children in the data file list.
	sort.SliceStable(retained, func(i, j int) bool {
		return retained[i].path < retained[j].path
	})
	contentDir := filepath.Join(dst, "content")
	for _, entry := range retained {
		final := entry.it
		oldUID := final.PopString("_UID")
		written, err := exportimport.ExportItem(final, contentDir)
		if err != nil {
			return nil, err
		}
		uid := final.UID()
		state.Exported++
		state.Seen[uid] = struct{}{}
		state.UIDs[uid] = uid
		if oldUID != "" {
			state.UIDs[oldUID] = uid
		}
		md.DataFiles = append(md.DataFiles, written.Data)
		md.BlobFiles = append(md.BlobFiles, written.BlobFiles...)
	}

	state.MetadataPath, err = exportimport.ExportContext(md, dst, exportimport.ExportOptions{
		UIDs:             state.UIDs,
		Seen:             state.Seen,
		KeepDefaultPages: r.cfg.DefaultPages.Keep,
		Debug:            r.cfg.Debug,
	})
	if err != nil {
		return nil, err
	}

	if opts.WriteReport {
		state.ReportPath = filepath.Join(dst, ReportFileName)
		rows := make([][]string, 0, len(state.Transforms))
		for _, report := range state.Transforms {
			rows = append(rows, report.row())
		}
		if err := exportimport.WriteCSV(state.ReportPath, reportHeader, rows); err != nil {
			return nil, err
		}
	}

	state.Elapsed = time.Since(started)

	if store != nil {
		if err := store.RecordFiles(ctx, runID, contentFiles); err != nil {
			return nil, err
		}
		if err := store.RecordRun(ctx, checkpoint.RunRecord{
			ID:        runID,
			Src:       src,
			Dst:       dst,
			Started:   started,
			Finished:  time.Now(),
			Processed: state.Processed,
			Exported:  state.Exported,
			Dropped:   state.Dropped,
		}); err != nil {
			return nil, err
		}
	}

	r.log.Info("run finished",
		"run_id", runID,
		"processed", state.Processed,
		"exported", state.Exported,
		"dropped", state.Dropped,
		"elapsed", state.Elapsed,
	)
	return state, nil
}

func emptyToPlaceholder(report *ItemReport) {
	fields := []*string{
		&report.SrcPath, &report.SrcUID, &report.SrcType, &report.SrcState,
		&report.DstPath, &report.DstUID, &report.DstType, &report.DstState,
		&report.LastStep,
	}
	for _, field := range fields {
		if *field == "" {
			*field = placeholder
		}
	}
}
