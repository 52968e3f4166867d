package orchestrator_test

import (
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/moorings-io/fathom/pkg/internal/catalog"
	"github.com/moorings-io/fathom/pkg/internal/export"
	"github.com/moorings-io/fathom/pkg/internal/monitor"
	"github.com/moorings-io/fathom/pkg/internal/orchestrator"
	"github.com/moorings-io/fathom/pkg/internal/types"
)

var runStart = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

// writeHeaveFile writes one raw file with a Time column and a single Heave channel sampled
// at 10 Hz. start offsets the waveform so consecutive files continue the same signal.
func writeHeaveFile(t *testing.T, dir, name string, rows int, start float64) {
	t.Helper()
	var b strings.Builder
	b.WriteString("Time,Heave\n")
	b.WriteString("s,m\n")
	for i := 0; i < rows; i++ {
		ts := float64(i) * 0.1
		fmt.Fprintf(&b, "%.2f,%.4f\n", ts, 0.5*math.Sin(2*math.Pi*0.5*(start+ts)))
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte(b.String()), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
}

func heaveConfig(id, dir string) *types.LoggerConfig {
	return &types.LoggerConfig{
		ID:              id,
		Name:            "Fore Deck Motion",
		Path:            dir,
		Extension:       ".csv",
		Delimiter:       ",",
		Header:          types.HeaderLayout{ChannelRow: 0, UnitsRow: 1, FirstDataRow: 2},
		TimeColumn:      0,
		SelectedColumns: []int{1},
		ChannelNames:    []string{"Heave"},
		ChannelUnits:    []string{"m"},
		SampleFrequency: 10,
		WindowSeconds:   2,
		Statistics:      true,
	}
}

func newCatalog(t *testing.T, configs ...*types.LoggerConfig) types.Catalog {
	t.Helper()
	cat := catalog.NewCatalog()
	for _, cfg := range configs {
		if err := cat.Register(cfg); err != nil {
			t.Fatalf("registering %s: %v", cfg.ID, err)
		}
	}
	return cat
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening %s: %v", path, err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return records
}

func TestRunExportsStatistics(t *testing.T) {
	raw := t.TempDir()
	out := t.TempDir()
	writeHeaveFile(t, raw, "motion_0001.csv", 30, 0)
	writeHeaveFile(t, raw, "motion_0002.csv", 30, 3)

	orc := orchestrator.NewOrchestrator(
		orchestrator.WithCatalog(newCatalog(t, heaveConfig("lg-01", raw))),
		orchestrator.WithExporter(export.NewWriter(export.WithRoot(out))),
		orchestrator.WithStartTime(runStart),
	)

	summary, err := orc.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.LoggersTotal != 1 || summary.LoggersDone != 1 {
		t.Fatalf("loggers done = %d of %d, want 1 of 1", summary.LoggersDone, summary.LoggersTotal)
	}
	if summary.FilesProcessed != 2 {
		t.Errorf("files processed = %d, want 2", summary.FilesProcessed)
	}
	if summary.WindowsEmitted != 3 {
		t.Errorf("windows emitted = %d, want 3", summary.WindowsEmitted)
	}
	if summary.Cancelled {
		t.Error("run reported cancelled")
	}
	if got := orc.StateOf("lg-01"); got != types.StateExported {
		t.Errorf("state = %v, want %v", got, types.StateExported)
	}

	results := orc.Results()
	if len(results) != 1 {
		t.Fatalf("results = %d, want 1", len(results))
	}
	if results[0].Statistics == nil || results[0].Statistics.Len() != 3 {
		t.Fatalf("statistics table missing or wrong length: %+v", results[0].Statistics)
	}

	records := readCSV(t, filepath.Join(out, "statistics", "lg-01_statistics.csv"))
	if len(records) != 5 {
		t.Errorf("statistics rows = %d, want header, units and 3 windows", len(records))
	}
	if _, err := os.Stat(filepath.Join(out, "screening_report.txt")); err != nil {
		t.Errorf("screening report missing: %v", err)
	}
}

func TestRunZeroFilesExportsDiagnostic(t *testing.T) {
	raw := t.TempDir()
	out := t.TempDir()

	orc := orchestrator.NewOrchestrator(
		orchestrator.WithCatalog(newCatalog(t, heaveConfig("lg-01", raw))),
		orchestrator.WithExporter(export.NewWriter(export.WithRoot(out))),
		orchestrator.WithStartTime(runStart),
	)

	summary, err := orc.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.LoggersDone != 1 {
		t.Fatalf("loggers done = %d, want 1", summary.LoggersDone)
	}
	if summary.FilesProcessed != 0 || summary.WindowsEmitted != 0 {
		t.Errorf("counted %d files and %d windows for an empty logger",
			summary.FilesProcessed, summary.WindowsEmitted)
	}

	results := orc.Results()
	if len(results) != 1 {
		t.Fatalf("results = %d, want 1", len(results))
	}
	diag := strings.Join(results[0].Diagnostics, "; ")
	if !strings.Contains(diag, "no raw files") {
		t.Errorf("diagnostics = %q, want a no-raw-files entry", diag)
	}
	if _, err := os.Stat(filepath.Join(out, "statistics", "lg-01_statistics.csv")); !os.IsNotExist(err) {
		t.Errorf("statistics file written for an empty logger (stat err %v)", err)
	}
}

func TestRunRequiresCollaborators(t *testing.T) {
	out := t.TempDir()

	orc := orchestrator.NewOrchestrator(
		orchestrator.WithExporter(export.NewWriter(export.WithRoot(out))),
	)
	if _, err := orc.Run(context.Background()); err == nil {
		t.Error("expected error for a run without a catalog")
	}

	orc = orchestrator.NewOrchestrator(
		orchestrator.WithCatalog(newCatalog(t, heaveConfig("lg-01", t.TempDir()))),
	)
	if _, err := orc.Run(context.Background()); err == nil {
		t.Error("expected error for a run without an export writer")
	}
}

func TestRunRejectsInvalidCurveBeforeAnyRead(t *testing.T) {
	raw := t.TempDir()
	out := t.TempDir()
	writeHeaveFile(t, raw, "motion_0001.csv", 30, 0)

	cfg := heaveConfig("lg-01", raw)
	cfg.Rainflow = types.RainflowSettings{Enabled: true, BinSize: 1}
	cfg.Fatigue = types.FatigueSettings{
		Enabled:  true,
		Segments: []types.SNSegment{{A: 1e12, K: 3, TransitionCycles: 1e7, SCF: 0}},
	}

	orc := orchestrator.NewOrchestrator(
		orchestrator.WithCatalog(newCatalog(t, cfg)),
		orchestrator.WithExporter(export.NewWriter(export.WithRoot(out))),
	)

	_, err := orc.Run(context.Background())
	if err == nil {
		t.Fatal("expected a pre-run error for the invalid S-N segment")
	}
	if !strings.Contains(err.Error(), "lg-01") {
		t.Errorf("error %q does not name the logger", err)
	}
	if got := orc.StateOf("lg-01"); got != types.StateIdle {
		t.Errorf("state = %v, want %v before any read", got, types.StateIdle)
	}
}

func TestRunRecordsUnreadableFileAndContinues(t *testing.T) {
	raw := t.TempDir()
	out := t.TempDir()
	if err := os.WriteFile(filepath.Join(raw, "motion_0001.csv"), []byte("Time,Heave\ns,m\n"), 0o644); err != nil {
		t.Fatalf("writing header-only file: %v", err)
	}
	writeHeaveFile(t, raw, "motion_0002.csv", 30, 0)

	var bad []types.BadFile
	mon := monitor.NewMonitor(
		monitor.WithOnBadFileFunc(func(c types.ComponentMetadata, b types.BadFile) {
			bad = append(bad, b)
		}),
	)

	orc := orchestrator.NewOrchestrator(
		orchestrator.WithCatalog(newCatalog(t, heaveConfig("lg-01", raw))),
		orchestrator.WithExporter(export.NewWriter(export.WithRoot(out))),
		orchestrator.WithMonitor(mon),
		orchestrator.WithStartTime(runStart),
	)

	summary, err := orc.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.BadFiles != 1 {
		t.Fatalf("bad files = %d, want 1", summary.BadFiles)
	}
	if summary.FilesProcessed != 1 {
		t.Errorf("files processed = %d, want 1", summary.FilesProcessed)
	}
	// 30 rows at a 20-sample target: one full window plus the flushed remainder.
	if summary.WindowsEmitted != 2 {
		t.Errorf("windows emitted = %d, want 2", summary.WindowsEmitted)
	}
	if len(bad) != 1 || bad[0].Filename != "motion_0001.csv" || bad[0].Reason != "unreadable" {
		t.Errorf("bad file callback = %+v, want motion_0001.csv unreadable", bad)
	}
	if got := orc.StateOf("lg-01"); got != types.StateExported {
		t.Errorf("state = %v, want %v", got, types.StateExported)
	}
}

func TestRunFlagsPointCountMismatchButStillWindows(t *testing.T) {
	raw := t.TempDir()
	out := t.TempDir()
	writeHeaveFile(t, raw, "motion_0001.csv", 30, 0)
	writeHeaveFile(t, raw, "motion_0002.csv", 25, 3)

	cfg := heaveConfig("lg-01", raw)
	cfg.ExpectedSamples = 30

	orc := orchestrator.NewOrchestrator(
		orchestrator.WithCatalog(newCatalog(t, cfg)),
		orchestrator.WithExporter(export.NewWriter(export.WithRoot(out))),
		orchestrator.WithStartTime(runStart),
	)

	summary, err := orc.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.FilesProcessed != 2 {
		t.Errorf("files processed = %d, want both despite the mismatch", summary.FilesProcessed)
	}
	// 55 rows at a 20-sample target: two full windows plus the flushed remainder.
	if summary.WindowsEmitted != 3 {
		t.Errorf("windows emitted = %d, want 3", summary.WindowsEmitted)
	}

	results := orc.Results()
	if len(results) != 1 {
		t.Fatalf("results = %d, want 1", len(results))
	}
	if len(results[0].BadFiles) != 1 {
		t.Fatalf("bad files = %+v, want exactly the short file", results[0].BadFiles)
	}
	got := results[0].BadFiles[0]
	if got.Reason != "point count mismatch" || got.Detail != "expected 30 rows, read 25" {
		t.Errorf("bad file = %+v, want point count mismatch with row detail", got)
	}
}

func TestRunCancelBetweenFilesSkipsExport(t *testing.T) {
	raw := t.TempDir()
	out := t.TempDir()
	writeHeaveFile(t, raw, "motion_0001.csv", 30, 0)
	writeHeaveFile(t, raw, "motion_0002.csv", 30, 3)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var cancelled []string
	mon := monitor.NewMonitor(
		monitor.WithOnFileProcessedFunc(func(c types.ComponentMetadata, s types.ProgressSnapshot) {
			cancel()
		}),
		monitor.WithOnCancelFunc(func(c types.ComponentMetadata, loggerID string) {
			cancelled = append(cancelled, loggerID)
		}),
	)

	orc := orchestrator.NewOrchestrator(
		orchestrator.WithCatalog(newCatalog(t, heaveConfig("lg-01", raw))),
		orchestrator.WithExporter(export.NewWriter(export.WithRoot(out))),
		orchestrator.WithMonitor(mon),
		orchestrator.WithStartTime(runStart),
	)

	summary, err := orc.Run(ctx)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !summary.Cancelled {
		t.Error("summary not marked cancelled")
	}
	if summary.LoggersDone != 0 {
		t.Errorf("loggers done = %d, want 0", summary.LoggersDone)
	}
	if summary.FilesProcessed != 1 {
		t.Errorf("files processed = %d, want 1 before the stop", summary.FilesProcessed)
	}
	if len(orc.Results()) != 0 {
		t.Errorf("results = %d, want none for a cancelled logger", len(orc.Results()))
	}
	if len(cancelled) != 1 || cancelled[0] != "lg-01" {
		t.Errorf("cancel callbacks = %v, want [lg-01]", cancelled)
	}
	if _, err := os.Stat(filepath.Join(out, "statistics", "lg-01_statistics.csv")); !os.IsNotExist(err) {
		t.Errorf("cancelled logger still exported statistics (stat err %v)", err)
	}
}

func TestRunCancellationPreservesCompletedExports(t *testing.T) {
	rawA := t.TempDir()
	rawB := t.TempDir()
	out := t.TempDir()
	writeHeaveFile(t, rawA, "motion_0001.csv", 30, 0)
	writeHeaveFile(t, rawB, "motion_0001.csv", 30, 0)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mon := monitor.NewMonitor(
		monitor.WithOnLoggerExportedFunc(func(c types.ComponentMetadata, r *types.LoggerResult) {
			cancel()
		}),
	)

	orc := orchestrator.NewOrchestrator(
		orchestrator.WithCatalog(newCatalog(t, heaveConfig("lg-a", rawA), heaveConfig("lg-b", rawB))),
		orchestrator.WithExporter(export.NewWriter(export.WithRoot(out))),
		orchestrator.WithMonitor(mon),
		orchestrator.WithStartTime(runStart),
	)

	summary, err := orc.Run(ctx)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !summary.Cancelled {
		t.Error("summary not marked cancelled")
	}
	if summary.LoggersDone != 1 {
		t.Fatalf("loggers done = %d, want 1", summary.LoggersDone)
	}

	results := orc.Results()
	if len(results) != 1 || results[0].Logger.ID != "lg-a" {
		t.Fatalf("results = %+v, want only lg-a", results)
	}
	if got := orc.StateOf("lg-b"); got != types.StateIdle {
		t.Errorf("lg-b state = %v, want untouched %v", got, types.StateIdle)
	}
	if _, err := os.Stat(filepath.Join(out, "statistics", "lg-a_statistics.csv")); err != nil {
		t.Errorf("exported statistics for lg-a missing after cancellation: %v", err)
	}
}

func TestRunDerivesTransferFunctions(t *testing.T) {
	rawMotion := t.TempDir()
	rawResponse := t.TempDir()
	out := t.TempDir()

	writeMotionFile := func(name string) {
		var b strings.Builder
		b.WriteString("Time,Disp,Rot\n")
		b.WriteString("s,m,deg\n")
		for i := 0; i < 40; i++ {
			ts := float64(i) * 0.1
			fmt.Fprintf(&b, "%.2f,%.5f,%.5f\n", ts, 0.1*math.Sin(2*math.Pi*0.5*ts), 0.0)
		}
		if err := os.WriteFile(filepath.Join(rawMotion, name), []byte(b.String()), 0o644); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
	writeResponseFile := func(name string) {
		var b strings.Builder
		b.WriteString("Time,BM\n")
		b.WriteString("s,kNm\n")
		for i := 0; i < 40; i++ {
			ts := float64(i) * 0.1
			fmt.Fprintf(&b, "%.2f,%.3f\n", ts, 250*math.Sin(2*math.Pi*0.5*ts+0.4))
		}
		if err := os.WriteFile(filepath.Join(rawResponse, name), []byte(b.String()), 0o644); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
	writeMotionFile("motion_0001.csv")
	writeResponseFile("bending_0001.csv")

	motion := &types.LoggerConfig{
		ID:              "mot-01",
		Name:            "Deck Motion",
		Path:            rawMotion,
		Extension:       ".csv",
		Delimiter:       ",",
		Header:          types.HeaderLayout{ChannelRow: 0, UnitsRow: 1, FirstDataRow: 2},
		TimeColumn:      0,
		SelectedColumns: []int{1, 2},
		ChannelNames:    []string{"Disp", "Rot"},
		ChannelUnits:    []string{"m", "deg"},
		SampleFrequency: 10,
		WindowSeconds:   2,
		Spectral:        types.SpectralSettings{Enabled: true, SegmentLength: 16},
	}
	response := &types.LoggerConfig{
		ID:              "bm-01",
		Name:            "Midship Bending",
		Path:            rawResponse,
		Extension:       ".csv",
		Delimiter:       ",",
		Header:          types.HeaderLayout{ChannelRow: 0, UnitsRow: 1, FirstDataRow: 2},
		TimeColumn:      0,
		SelectedColumns: []int{1},
		ChannelNames:    []string{"BM"},
		ChannelUnits:    []string{"kNm"},
		SampleFrequency: 10,
		WindowSeconds:   2,
		Spectral:        types.SpectralSettings{Enabled: true, SegmentLength: 16},
	}

	orc := orchestrator.NewOrchestrator(
		orchestrator.WithCatalog(newCatalog(t, motion, response)),
		orchestrator.WithExporter(export.NewWriter(export.WithRoot(out))),
		orchestrator.WithStartTime(runStart),
		orchestrator.WithTransferSettings(types.TransferSettings{
			Enabled:             true,
			ExcitationLoggerID:  "mot-01",
			DisplacementChannel: "Disp",
			RotationChannel:     "Rot",
			ResponseLoggerID:    "bm-01",
			SeaStates: []types.SeaState{
				{Label: "SS1", Hs: 1.0, Tp: 5.0, PercOccurrence: 60},
				{Label: "SS2", Hs: 2.0, Tp: 7.0, PercOccurrence: 40},
			},
		}),
	)

	summary, err := orc.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.LoggersDone != 2 {
		t.Fatalf("loggers done = %d, want 2", summary.LoggersDone)
	}

	dir := filepath.Join(out, "transfer_functions")
	for _, name := range []string{"mot-01_SS1_tf.csv", "mot-01_SS2_tf.csv", "mot-01_weighted_average_tf.csv"} {
		records := readCSV(t, filepath.Join(dir, name))
		// Header plus one row per frequency bin of the 16-sample segments.
		if len(records) != 10 {
			t.Errorf("%s rows = %d, want 10", name, len(records))
		}
		if len(records) > 0 && (records[0][0] != "Frequency" || records[0][1] != "BM") {
			t.Errorf("%s header = %v, want Frequency,BM", name, records[0])
		}
	}
}

func TestRunConcurrentLoggers(t *testing.T) {
	out := t.TempDir()
	ids := []string{"lg-a", "lg-b", "lg-c"}
	configs := make([]*types.LoggerConfig, 0, len(ids))
	for _, id := range ids {
		raw := t.TempDir()
		writeHeaveFile(t, raw, "motion_0001.csv", 40, 0)
		configs = append(configs, heaveConfig(id, raw))
	}

	orc := orchestrator.NewOrchestrator(
		orchestrator.WithCatalog(newCatalog(t, configs...)),
		orchestrator.WithExporter(export.NewWriter(export.WithRoot(out))),
		orchestrator.WithLoggerConcurrency(3),
		orchestrator.WithStartTime(runStart),
	)

	summary, err := orc.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.LoggersDone != 3 {
		t.Fatalf("loggers done = %d, want 3", summary.LoggersDone)
	}

	seen := make(map[string]bool)
	for _, res := range orc.Results() {
		seen[res.Logger.ID] = true
	}
	for _, id := range ids {
		if !seen[id] {
			t.Errorf("logger %s missing from results", id)
		}
		if got := orc.StateOf(id); got != types.StateExported {
			t.Errorf("%s state = %v, want %v", id, got, types.StateExported)
		}
		if _, err := os.Stat(filepath.Join(out, "statistics", id+"_statistics.csv")); err != nil {
			t.Errorf("statistics for %s missing: %v", id, err)
		}
	}
}

func TestRunDetectsSampleFrequencyFromFirstFile(t *testing.T) {
	raw := t.TempDir()
	out := t.TempDir()
	writeHeaveFile(t, raw, "motion_0001.csv", 30, 0)

	cfg := heaveConfig("lg-01", raw)
	cfg.SampleFrequency = 0

	orc := orchestrator.NewOrchestrator(
		orchestrator.WithCatalog(newCatalog(t, cfg)),
		orchestrator.WithExporter(export.NewWriter(export.WithRoot(out))),
		orchestrator.WithStartTime(runStart),
	)

	summary, err := orc.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.WindowsEmitted != 2 {
		t.Errorf("windows emitted = %d, want a full window and the flushed remainder", summary.WindowsEmitted)
	}

	results := orc.Results()
	if len(results) != 1 || len(results[0].Quality) != 1 {
		t.Fatalf("results = %+v, want one logger with one quality record", results)
	}
	if fs := results[0].Quality[0].SampleFrequency; math.Abs(fs-10) > 1e-6 {
		t.Errorf("detected sample frequency = %v, want 10", fs)
	}
}

func TestRunAbandonsLoggerWithoutFrequency(t *testing.T) {
	raw := t.TempDir()
	out := t.TempDir()
	var b strings.Builder
	b.WriteString("Time,Heave\n")
	b.WriteString("s,m\n")
	for i := 0; i < 30; i++ {
		fmt.Fprintf(&b, "x,%.4f\n", 0.5*math.Sin(float64(i)))
	}
	if err := os.WriteFile(filepath.Join(raw, "motion_0001.csv"), []byte(b.String()), 0o644); err != nil {
		t.Fatalf("writing raw file: %v", err)
	}

	cfg := heaveConfig("lg-01", raw)
	cfg.SampleFrequency = 0

	orc := orchestrator.NewOrchestrator(
		orchestrator.WithCatalog(newCatalog(t, cfg)),
		orchestrator.WithExporter(export.NewWriter(export.WithRoot(out))),
		orchestrator.WithStartTime(runStart),
	)

	summary, err := orc.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.WindowsEmitted != 0 {
		t.Errorf("windows emitted = %d, want 0 for an abandoned logger", summary.WindowsEmitted)
	}
	if summary.LoggersDone != 1 {
		t.Fatalf("loggers done = %d, want the abandoned logger to finish with diagnostics", summary.LoggersDone)
	}

	diag := strings.Join(orc.Results()[0].Diagnostics, "; ")
	if !strings.Contains(diag, "sampling frequency") {
		t.Errorf("diagnostics = %q, want a sampling-frequency entry", diag)
	}
}
