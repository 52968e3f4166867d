package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/moorings-io/fathom/pkg/internal/assembler"
	"github.com/moorings-io/fathom/pkg/internal/fatigue"
	"github.com/moorings-io/fathom/pkg/internal/monitor"
	"github.com/moorings-io/fathom/pkg/internal/rainflow"
	"github.com/moorings-io/fathom/pkg/internal/reader"
	"github.com/moorings-io/fathom/pkg/internal/spectral"
	"github.com/moorings-io/fathom/pkg/internal/stats"
	"github.com/moorings-io/fathom/pkg/internal/transferfunc"
	"github.com/moorings-io/fathom/pkg/internal/types"
)

// accelChannel names the synthetic channel holding the gravity-contaminated acceleration
// derived from the excitation logger's displacement and rotation series.
const accelChannel = "Acceleration"

// runPlan is the validated pre-run picture: the logger set, the S-N curves built up front
// so bad fatigue parameters fail before any file is opened, the transfer-function deriver
// when a pairing is configured, and the timestamp of the first sample.
type runPlan struct {
	configs []*types.LoggerConfig
	curves  map[string]*fatigue.SNCurve
	deriver types.TransferDeriver
	start   time.Time
}

// loggerRun is the working state of one logger's pass through the pipeline. Each worker
// owns its loggerRun outright; nothing here is shared until the merge at the end.
type loggerRun struct {
	cfg    *types.LoggerConfig
	runID  string
	result *types.LoggerResult

	reader   types.Reader
	asm      types.WindowAssembler
	stats    types.StatisticsReducer
	spectral types.SpectralReducer
	rainflow types.RainflowReducer
	accel    types.SpectralReducer // Excitation-side PSD accumulator, transfer runs only.
	deriver  types.TransferDeriver

	dt           float64
	warnings     int
	reducing     bool
	spectralDown bool // Latched after a non-recoverable spectral failure.
	transferDown bool // Latched after the excitation derivation breaks.
}

// prepare validates the run configuration and assembles the plan. Every failure here is a
// pre-run configuration error and aborts Run before any file I/O.
func (o *Orchestrator) prepare() (*runPlan, error) {
	if o.catalog == nil || o.catalog.Len() == 0 {
		return nil, fmt.Errorf("orchestrator: no loggers registered")
	}
	if o.exporter == nil {
		return nil, fmt.Errorf("orchestrator: no export writer attached")
	}
	if err := o.exporter.Prepare(); err != nil {
		return nil, fmt.Errorf("orchestrator: preparing export tree: %w", err)
	}

	plan := &runPlan{
		configs: o.catalog.Loggers(),
		curves:  make(map[string]*fatigue.SNCurve),
		start:   o.startTime,
	}
	if plan.start.IsZero() {
		plan.start = time.Now().UTC().Truncate(time.Second)
	}

	for _, cfg := range plan.configs {
		if !cfg.Fatigue.Enabled {
			continue
		}
		curve, err := fatigue.NewSNCurve(cfg.Fatigue.Segments, cfg.Fatigue.Rule)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: logger %s: %w", cfg.ID, err)
		}
		plan.curves[cfg.ID] = curve
	}

	if o.transfer.Enabled {
		if err := o.validateTransfer(); err != nil {
			return nil, err
		}
		opts := []types.Option[types.TransferDeriver]{
			transferfunc.WithSeaStates(o.transfer.SeaStates...),
			transferfunc.WithLogger(o.snapshotLoggers()...),
		}
		if o.transfer.RotationRadians {
			opts = append(opts, transferfunc.WithRotationRadians(true))
		}
		if o.transfer.Gravity > 0 {
			opts = append(opts, transferfunc.WithGravity(o.transfer.Gravity))
		}
		plan.deriver = transferfunc.NewDeriver(opts...)
	}

	return plan, nil
}

// validateTransfer checks the transfer-function pairing against the catalog.
func (o *Orchestrator) validateTransfer() error {
	t := o.transfer
	if _, ok := o.catalog.Get(t.ExcitationLoggerID); !ok {
		return fmt.Errorf("orchestrator: transfer excitation logger %q not registered", t.ExcitationLoggerID)
	}
	resp, ok := o.catalog.Get(t.ResponseLoggerID)
	if !ok {
		return fmt.Errorf("orchestrator: transfer response logger %q not registered", t.ResponseLoggerID)
	}
	if t.DisplacementChannel == "" || t.RotationChannel == "" {
		return fmt.Errorf("orchestrator: transfer pairing needs a displacement and a rotation channel")
	}
	if !resp.Spectral.Enabled {
		return fmt.Errorf("orchestrator: transfer response logger %q has no spectral reducer enabled", resp.ID)
	}
	return nil
}

// runLogger screens one logger end to end: list, read file by file, window, reduce, and
// export. Per-file failures are recorded and skipped; only cancellation stops the loop.
func (o *Orchestrator) runLogger(ctx context.Context, plan *runPlan, runID string, meter *monitor.RunMeter, cfg *types.LoggerConfig) {
	run := &loggerRun{
		cfg:    cfg,
		runID:  runID,
		result: &types.LoggerResult{Logger: cfg},
	}

	loggers := o.snapshotLoggers()
	monitors := o.snapshotMonitors()

	run.reader = reader.NewReader(
		reader.WithLoggerConfig(cfg),
		reader.WithLogger(loggers...),
	)

	files, err := run.reader.ListFiles()
	if err != nil {
		o.warnf(run, "raw files could not be listed: %v", err)
		run.result.Diagnostics = append(run.result.Diagnostics,
			fmt.Sprintf("raw files could not be listed: %v", err))
		o.finishLogger(plan, run)
		return
	}

	o.setState(cfg.ID, types.StateWindowing)
	o.notifyLoggerStart(cfg.ID, len(files))

	if len(files) == 0 {
		run.result.Diagnostics = append(run.result.Diagnostics,
			fmt.Sprintf("no raw files found under %s", cfg.Path))
		o.finishLogger(plan, run)
		return
	}

	base := plan.start
	for i, path := range files {
		if ctx.Err() != nil {
			o.cancelLogger(run, i, len(files))
			return
		}

		table, quality, err := run.reader.ReadFile(path, base)
		if err != nil {
			o.recordBadFile(run, path, "unreadable", err.Error())
			o.progress(run, meter, i, path, len(files))
			continue
		}
		run.result.Quality = append(run.result.Quality, *quality)
		run.warnings += len(quality.Warnings)

		if run.asm == nil {
			if err := o.buildPipeline(run, plan, loggers, monitors); err != nil {
				o.warnf(run, "%v", err)
				run.result.Diagnostics = append(run.result.Diagnostics, err.Error())
				break
			}
		}
		base = base.Add(rowsDuration(quality.Rows, run.dt))

		if exp := cfg.ExpectedSamples; exp > 0 && quality.Rows != exp {
			o.recordBadFile(run, path, "point count mismatch",
				fmt.Sprintf("expected %d rows, read %d", exp, quality.Rows))
		}

		windows, err := run.asm.Ingest(table)
		if err != nil {
			o.recordBadFile(run, path, "schema mismatch", err.Error())
			o.progress(run, meter, i, path, len(files))
			continue
		}
		run.result.FilesProcessed++
		for _, w := range windows {
			o.reduceWindow(run, w)
		}
		o.progress(run, meter, i, path, len(files))
	}

	if run.asm != nil {
		if w := run.asm.Flush(); w != nil {
			o.reduceWindow(run, w)
		}
		run.result.WindowsEmitted = run.asm.WindowsEmitted()
	}

	if curve := plan.curves[cfg.ID]; curve != nil && run.rainflow != nil {
		for _, set := range run.rainflow.Sets() {
			run.result.Damage = append(run.result.Damage, types.ChannelDamage{
				Channel: set.Channel,
				Damage:  curve.Damage(set.Aggregate),
			})
		}
	}

	o.finishLogger(plan, run)
}

// buildPipeline resolves the sampling frequency off the first readable file and wires the
// logger's assembler and reducers. A frequency or window length that cannot be resolved
// here abandons the logger; there is nothing to window against.
func (o *Orchestrator) buildPipeline(run *loggerRun, plan *runPlan, loggers []types.Logger, monitors []types.Monitor) error {
	fs := run.reader.SampleFrequency()
	if fs <= 0 {
		return fmt.Errorf("sampling frequency could not be resolved from the first readable file")
	}
	target := run.cfg.WindowLength(fs)
	if target <= 0 {
		return fmt.Errorf("window length of %v s is unresolvable at %v Hz", run.cfg.WindowSeconds, fs)
	}
	run.dt = 1 / fs

	run.asm = assembler.NewWindowAssembler(
		assembler.WithLoggerID(run.cfg.ID),
		assembler.WithTargetLength(target),
		assembler.WithSampleFrequency(fs),
		assembler.WithLogger(loggers...),
		assembler.WithMonitor(monitors...),
	)
	if run.cfg.Statistics {
		run.stats = stats.NewReducer(
			stats.WithLogger(loggers...),
			stats.WithMonitor(monitors...),
		)
	}
	if run.cfg.Spectral.Enabled {
		run.spectral = spectral.NewReducer(
			spectral.WithSettings(run.cfg.Spectral),
			spectral.WithLogger(loggers...),
			spectral.WithMonitor(monitors...),
		)
	}
	if run.cfg.Rainflow.Enabled {
		run.rainflow = rainflow.NewReducer(
			rainflow.WithSettings(run.cfg.Rainflow),
			rainflow.WithLogger(loggers...),
			rainflow.WithMonitor(monitors...),
		)
	}
	if plan.deriver != nil && run.cfg.ID == o.transfer.ExcitationLoggerID {
		run.deriver = plan.deriver
		run.accel = spectral.NewReducer(
			spectral.WithSettings(run.cfg.Spectral),
			spectral.WithLogger(loggers...),
		)
	}
	return nil
}

// reduceWindow hands one window to every enabled reducer. Reducer failures never stop the
// loop; a short terminal window is skipped quietly for spectra, anything else latches the
// reducer off so a deterministic configuration problem does not warn once per window.
func (o *Orchestrator) reduceWindow(run *loggerRun, w *types.Window) {
	if !run.reducing {
		run.reducing = true
		o.setState(run.cfg.ID, types.StateReducing)
	}

	if run.stats != nil {
		run.stats.Reduce(w)
	}
	if run.spectral != nil && !run.spectralDown {
		if _, err := run.spectral.Reduce(w); err != nil {
			if errors.Is(err, spectral.ErrShortWindow) {
				o.warnf(run, "window %d skipped for spectral analysis: %v", w.Seq, err)
			} else {
				run.spectralDown = true
				o.warnf(run, "spectral reduction disabled: %v", err)
				run.result.Diagnostics = append(run.result.Diagnostics,
					fmt.Sprintf("spectral reduction disabled after window %d: %v", w.Seq, err))
			}
		}
	}
	if run.rainflow != nil {
		if _, err := run.rainflow.Reduce(w); err != nil {
			o.warnf(run, "window %d rainflow reduction failed: %v", w.Seq, err)
		}
	}

	o.accumulateExcitation(run, w)
}

// accumulateExcitation derives the gravity-contaminated acceleration for one window of the
// excitation logger and folds its PSD into the dedicated excitation spectrogram.
func (o *Orchestrator) accumulateExcitation(run *loggerRun, w *types.Window) {
	if run.accel == nil || run.transferDown {
		return
	}

	disp := w.ChannelByName(o.transfer.DisplacementChannel)
	rot := w.ChannelByName(o.transfer.RotationChannel)
	if disp == nil || rot == nil {
		run.transferDown = true
		o.warnf(run, "transfer derivation disabled: displacement or rotation channel not present")
		return
	}

	accel, _, err := run.deriver.DeriveAcceleration(disp, rot, run.dt)
	if err != nil {
		o.warnf(run, "window %d acceleration derivation failed: %v", w.Seq, err)
		return
	}

	// The derivative drops both endpoints, so the synthetic window carries n-2 rows.
	n := len(w.Table.Timestamps)
	aw := &types.Window{
		LoggerID:        run.cfg.ID,
		Seq:             w.Seq,
		Start:           w.Start,
		End:             w.End,
		SampleFrequency: w.SampleFrequency,
		Table: &types.SampleTable{
			Channels:   []types.Channel{{Name: accelChannel, Unit: "m/s^2"}},
			Timestamps: w.Table.Timestamps[1 : n-1],
			Values:     [][]float64{accel},
		},
		Short: w.Short,
	}
	if _, err := run.accel.Reduce(aw); err != nil {
		if errors.Is(err, spectral.ErrShortWindow) {
			o.warnf(run, "window %d skipped for excitation spectrum: %v", w.Seq, err)
		} else {
			run.transferDown = true
			o.warnf(run, "transfer derivation disabled: %v", err)
		}
	}
}

// finishLogger assembles the logger's result, exports it, and merges it into the run. An
// export failure keeps the logger out of the merged results but its counts still reach the
// summary.
func (o *Orchestrator) finishLogger(plan *runPlan, run *loggerRun) {
	res := run.result
	res.Channels = run.reader.Channels()
	if run.stats != nil {
		res.Statistics = run.stats.Table()
	}
	if run.spectral != nil {
		res.Spectrograms = run.spectral.Spectrograms()
	}
	if run.rainflow != nil {
		res.Histograms = run.rainflow.Sets()
	}

	if err := o.exporter.ExportLogger(res); err != nil {
		o.warnf(run, "export failed: %v", err)
		res.Diagnostics = append(res.Diagnostics, fmt.Sprintf("export failed: %v", err))
		o.mergeRun(run, false)
		return
	}

	res.State = types.StateExported
	o.setState(run.cfg.ID, types.StateExported)
	o.mergeRun(run, true)
	o.notifyLoggerExported(res)
}

// cancelLogger records a cooperative stop between files. The logger does not export; work
// already exported by other loggers stays on disk.
func (o *Orchestrator) cancelLogger(run *loggerRun, processed, total int) {
	if run.asm != nil {
		run.result.WindowsEmitted = run.asm.WindowsEmitted()
	}
	run.result.Diagnostics = append(run.result.Diagnostics,
		fmt.Sprintf("cancelled after %d of %d files", processed, total))
	o.notifyCancel(run.cfg.ID)
	o.markCancelled()
	o.mergeRun(run, false)
}

// mergeRun folds one logger's counters into the run totals, and on export success appends
// the result in completion order.
func (o *Orchestrator) mergeRun(run *loggerRun, exported bool) {
	var excitation *types.Spectrogram
	if exported && run.accel != nil && !run.transferDown {
		if specs := run.accel.Spectrograms(); len(specs) == 1 && specs[0].Len() > 0 {
			excitation = specs[0]
		}
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	o.filesProcessed += run.result.FilesProcessed
	o.windowsEmitted += run.result.WindowsEmitted
	o.badFiles += len(run.result.BadFiles)
	o.warnings += run.warnings
	if exported {
		o.results = append(o.results, run.result)
		o.byID[run.cfg.ID] = run.result
		if excitation != nil {
			o.excitation = excitation
		}
	}
}

// deriveTransferFunctions runs the post-pass pairing the excitation spectrogram with the
// response logger's spectrograms, and exports the per-sea-state and weighted-average sets.
func (o *Orchestrator) deriveTransferFunctions(plan *runPlan) {
	if plan.deriver == nil {
		return
	}

	o.mu.Lock()
	excitation := o.excitation
	response := o.byID[o.transfer.ResponseLoggerID]
	o.mu.Unlock()

	if excitation == nil || excitation.Len() == 0 {
		o.runWarnf(o.transfer.ExcitationLoggerID, "transfer functions skipped: no excitation spectra accumulated")
		return
	}
	if response == nil {
		o.runWarnf(o.transfer.ResponseLoggerID, "transfer functions skipped: response logger did not export")
		return
	}

	specs := selectSpectrograms(response.Spectrograms, o.transfer.ResponseChannels)
	if len(specs) == 0 {
		o.runWarnf(o.transfer.ResponseLoggerID, "transfer functions skipped: no response spectrograms accumulated")
		return
	}

	perLocation := make([][]*types.TransferFunction, 0, len(specs))
	weighted := make([]*types.TransferFunction, 0, len(specs))
	for _, spec := range specs {
		fns, err := plan.deriver.Functions(excitation, spec)
		if err != nil {
			o.runWarnf(o.transfer.ResponseLoggerID,
				"transfer functions for %s failed: %v", spec.Channel.Name, err)
			continue
		}
		perLocation = append(perLocation, fns)

		// A failed weighted average keeps the per-window functions; only the
		// aggregate column goes missing.
		if avg, err := plan.deriver.WeightedAverage(fns); err != nil {
			o.runWarnf(o.transfer.ResponseLoggerID,
				"weighted average for %s failed: %v", spec.Channel.Name, err)
		} else {
			weighted = append(weighted, avg)
		}
	}
	if len(perLocation) == 0 {
		return
	}

	// Regroup location-major into sea-state-major, the layout the export files use.
	perSeaState := make([][]*types.TransferFunction, len(perLocation[0]))
	for si := range perSeaState {
		row := make([]*types.TransferFunction, 0, len(perLocation))
		for _, fns := range perLocation {
			if si < len(fns) {
				row = append(row, fns[si])
			}
		}
		perSeaState[si] = row
	}

	if err := o.exporter.ExportTransferFunctions(o.transfer.ExcitationLoggerID, perSeaState, weighted); err != nil {
		o.runWarnf(o.transfer.ExcitationLoggerID, "transfer function export failed: %v", err)
	}
}

// selectSpectrograms filters the response spectrograms down to the configured location
// channels; an empty selection means all of them.
func selectSpectrograms(specs []*types.Spectrogram, names []string) []*types.Spectrogram {
	if len(names) == 0 {
		return specs
	}
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	out := make([]*types.Spectrogram, 0, len(names))
	for _, s := range specs {
		if want[s.Channel.Name] {
			out = append(out, s)
		}
	}
	return out
}

// buildSummary snapshots the run totals into the summary handed to monitors and the report.
func (o *Orchestrator) buildSummary(runID string, meter *monitor.RunMeter, plan *runPlan) *types.RunSummary {
	meter.Sample()

	o.mu.Lock()
	defer o.mu.Unlock()
	return &types.RunSummary{
		RunID:          runID,
		Start:          meter.Start(),
		Elapsed:        meter.Elapsed(),
		LoggersTotal:   len(plan.configs),
		LoggersDone:    len(o.results),
		FilesProcessed: o.filesProcessed,
		WindowsEmitted: o.windowsEmitted,
		BadFiles:       o.badFiles,
		Warnings:       o.warnings,
		Cancelled:      o.cancelled,
		PeakCPUPercent: meter.PeakCPUPercent(),
		PeakRAMPercent: meter.PeakRAMPercent(),
	}
}

// uploadExports pushes the export tree to the configured object store. Cancelled runs keep
// their partial tree local; upload failures are warnings, never fatal.
func (o *Orchestrator) uploadExports(ctx context.Context, summary *types.RunSummary) {
	if o.sink == nil || !o.sink.Enabled() {
		return
	}
	if summary.Cancelled {
		o.NotifyLoggers(types.InfoLevel,
			"Upload skipped for cancelled run",
			"component", o.componentMetadata,
			"event", "Upload",
			"result", "SKIPPED",
			"runId", summary.RunID,
		)
		return
	}

	if err := o.sink.Connect(ctx); err != nil {
		o.runWarnf("", "object store connection failed: %v", err)
		return
	}
	uploaded, err := o.sink.UploadTree(ctx, o.exporter.Root())
	if err != nil {
		o.runWarnf("", "export upload failed after %d objects: %v", uploaded, err)
		return
	}
	o.NotifyLoggers(types.InfoLevel,
		"Export tree uploaded",
		"component", o.componentMetadata,
		"event", "Upload",
		"result", "SUCCESS",
		"runId", summary.RunID,
		"objects", uploaded,
	)
}

// progress samples the resource meter and fans out the per-file snapshot.
func (o *Orchestrator) progress(run *loggerRun, meter *monitor.RunMeter, idx int, path string, total int) {
	meter.Sample()
	o.notifyFileProcessed(types.ProgressSnapshot{
		RunID:          run.runID,
		LoggerID:       run.cfg.ID,
		FileIndex:      idx,
		Filename:       filepath.Base(path),
		FilesProcessed: idx + 1,
		TotalFiles:     total,
		Elapsed:        meter.Elapsed(),
	})
}

// recordBadFile appends to the logger's bad-file registry and fans the event out.
func (o *Orchestrator) recordBadFile(run *loggerRun, path, reason, detail string) {
	bad := types.BadFile{
		LoggerID: run.cfg.ID,
		Filename: filepath.Base(path),
		Reason:   reason,
		Detail:   detail,
	}
	run.result.BadFiles = append(run.result.BadFiles, bad)
	o.notifyBadFile(bad)
}

// warnf records a per-logger warning and fans it out to loggers and monitors.
func (o *Orchestrator) warnf(run *loggerRun, format string, args ...interface{}) {
	run.warnings++
	o.notifyWarning(run.cfg.ID, fmt.Sprintf(format, args...))
}

// runWarnf records a run-level warning outside any logger worker.
func (o *Orchestrator) runWarnf(loggerID, format string, args ...interface{}) {
	o.mu.Lock()
	o.warnings++
	o.mu.Unlock()
	o.notifyWarning(loggerID, fmt.Sprintf(format, args...))
}

func (o *Orchestrator) setState(loggerID string, s types.LoggerState) {
	o.mu.Lock()
	o.states[loggerID] = s
	o.mu.Unlock()
}

func (o *Orchestrator) markCancelled() {
	o.mu.Lock()
	o.cancelled = true
	o.mu.Unlock()
}

// rowsDuration converts a row count to recording time at the resolved sampling step.
func rowsDuration(rows int, dt float64) time.Duration {
	return time.Duration(float64(rows) * dt * float64(time.Second))
}
