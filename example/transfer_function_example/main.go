package main

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/moorings-io/fathom/pkg/builder"
)

// Pairs a motion logger (heave + pitch) with a bending-moment logger and derives the
// motion-to-response transfer functions: one per sea state plus the occurrence-weighted
// average. Sea states align one-to-one with the excitation logger's analysis windows.

func writeMotion(dir string) error {
	rng := rand.New(rand.NewSource(7))
	var sb strings.Builder
	sb.WriteString("Time,Heave,Pitch\ns,m,deg\n")
	for i := 0; i < 1200; i++ {
		ts := float64(i) * 0.1
		heave := 2.1*math.Sin(2*math.Pi*0.09*ts) + 0.1*rng.NormFloat64()
		pitch := 2.8*math.Sin(2*math.Pi*0.09*ts+0.4) + 0.1*rng.NormFloat64()
		sb.WriteString(fmt.Sprintf("%.1f,%.4f,%.4f\n", ts, heave, pitch))
	}
	return os.WriteFile(filepath.Join(dir, "motion_000.csv"), []byte(sb.String()), 0o644)
}

func writeBending(dir string) error {
	rng := rand.New(rand.NewSource(11))
	var sb strings.Builder
	sb.WriteString("Time,BM_Fore\ns,kNm\n")
	for i := 0; i < 1200; i++ {
		ts := float64(i) * 0.1
		bm := 850*math.Sin(2*math.Pi*0.09*ts+1.1) + 40*rng.NormFloat64()
		sb.WriteString(fmt.Sprintf("%.1f,%.2f\n", ts, bm))
	}
	return os.WriteFile(filepath.Join(dir, "bending_000.csv"), []byte(sb.String()), 0o644)
}

func main() {
	motionDir, err := os.MkdirTemp("", "fathom-motion-")
	if err != nil {
		fmt.Fprintf(os.Stderr, "temp dir: %v\n", err)
		os.Exit(1)
	}
	bendingDir, err := os.MkdirTemp("", "fathom-bending-")
	if err != nil {
		fmt.Fprintf(os.Stderr, "temp dir: %v\n", err)
		os.Exit(1)
	}
	outDir, err := os.MkdirTemp("", "fathom-exports-")
	if err != nil {
		fmt.Fprintf(os.Stderr, "temp dir: %v\n", err)
		os.Exit(1)
	}
	if err := writeMotion(motionDir); err != nil {
		fmt.Fprintf(os.Stderr, "writing motion data: %v\n", err)
		os.Exit(1)
	}
	if err := writeBending(bendingDir); err != nil {
		fmt.Fprintf(os.Stderr, "writing bending data: %v\n", err)
		os.Exit(1)
	}

	log := builder.NewLogger(builder.LoggerWithLevel("warn"))

	// Both loggers share the sampling frequency and Welch parameters; the ratio step
	// rejects mismatched frequency axes.
	welch := builder.SpectralSettings{Enabled: true, SegmentLength: 256, WindowName: "hann"}

	cat := builder.NewCatalog(builder.CatalogWithLogger(log))
	if err := cat.Register(&builder.LoggerConfig{
		ID:              "mot-01",
		Name:            "Fore Deck Motion",
		Path:            motionDir,
		Extension:       ".csv",
		Delimiter:       ",",
		Header:          builder.HeaderLayout{ChannelRow: 0, UnitsRow: 1, FirstDataRow: 2},
		TimeColumn:      0,
		SelectedColumns: []int{1, 2},
		SampleFrequency: 10,
		WindowSeconds:   60,
		Statistics:      true,
		Spectral:        welch,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "register: %v\n", err)
		os.Exit(1)
	}
	if err := cat.Register(&builder.LoggerConfig{
		ID:              "bm-01",
		Name:            "Midship Bending",
		Path:            bendingDir,
		Extension:       ".csv",
		Delimiter:       ",",
		Header:          builder.HeaderLayout{ChannelRow: 0, UnitsRow: 1, FirstDataRow: 2},
		TimeColumn:      0,
		SelectedColumns: []int{1},
		SampleFrequency: 10,
		WindowSeconds:   60,
		Statistics:      true,
		Spectral:        welch,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "register: %v\n", err)
		os.Exit(1)
	}

	writer := builder.NewExportWriter(
		builder.ExportWithLogger(log),
		builder.ExportWithRoot(outDir),
		builder.ExportWithFormats(builder.FormatCSV),
	)

	orch := builder.NewOrchestrator(
		builder.OrchestratorWithLogger(log),
		builder.OrchestratorWithCatalog(cat),
		builder.OrchestratorWithExporter(writer),
		builder.OrchestratorWithStartTime(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)),
		builder.OrchestratorWithTransferSettings(builder.TransferSettings{
			Enabled:             true,
			ExcitationLoggerID:  "mot-01",
			DisplacementChannel: "Heave",
			RotationChannel:     "Pitch",
			ResponseLoggerID:    "bm-01",
			SeaStates: []builder.SeaState{
				{Label: "SS1", Hs: 2.5, Tp: 8.0, PercOccurrence: 60},
				{Label: "SS2", Hs: 4.0, Tp: 10.5, PercOccurrence: 40},
			},
		}),
	)

	summary, err := orch.Run(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "run failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%d loggers exported, %d warnings\n", summary.LoggersDone, summary.Warnings)

	entries, err := os.ReadDir(filepath.Join(outDir, "transfer_functions"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "listing transfer functions: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("transfer function files:")
	for _, e := range entries {
		fmt.Printf("  %s\n", e.Name())
	}
}
