// Command fathom screens logger time-series against a yaml control file: it assembles
// windows across raw file boundaries, runs the configured reducers, and writes the export
// tree. Interrupts cancel the run between files, keeping finished exports on disk.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/moorings-io/fathom/pkg/builder"
)

const version = "0.9.0"

func main() {
	showVersion := flag.Bool("version", false, "print the version and exit")
	flag.Usage = usage
	flag.Parse()

	if *showVersion {
		fmt.Println("fathom " + version)
		return
	}
	if flag.NArg() != 1 {
		usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "fathom: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: fathom [flags] <control-file>")
	flag.PrintDefaults()
}

func run(ctx context.Context, controlPath string) error {
	ctl, err := builder.LoadControl(controlPath)
	if err != nil {
		return err
	}

	log := builder.NewLogger(builder.LoggerWithLevel(ctl.LogLevel))

	cat := builder.NewCatalog(builder.CatalogWithLogger(log))
	for _, cfg := range ctl.LoggerConfigs() {
		if err := cat.Register(cfg); err != nil {
			return err
		}
	}

	mon := builder.NewMonitor(
		builder.MonitorWithLogger(log),
		builder.MonitorWithOnLoggerStartFunc(func(_ builder.ComponentMetadata, loggerID string, totalFiles int) {
			fmt.Printf("%s: screening %d files\n", loggerID, totalFiles)
		}),
		builder.MonitorWithOnFileProcessedFunc(func(_ builder.ComponentMetadata, s builder.ProgressSnapshot) {
			fmt.Printf("%s: %s (%d/%d)\n", s.LoggerID, s.Filename, s.FilesProcessed, s.TotalFiles)
		}),
		builder.MonitorWithOnBadFileFunc(func(_ builder.ComponentMetadata, bad builder.BadFile) {
			fmt.Fprintf(os.Stderr, "%s: bad file %s: %s\n", bad.LoggerID, bad.Filename, bad.Reason)
		}),
		builder.MonitorWithOnLoggerExportedFunc(func(_ builder.ComponentMetadata, r *builder.LoggerResult) {
			fmt.Printf("%s: exported %d windows from %d files\n", r.Logger.ID, r.WindowsEmitted, r.FilesProcessed)
		}),
		builder.MonitorWithOnCancelFunc(func(_ builder.ComponentMetadata, loggerID string) {
			fmt.Fprintf(os.Stderr, "%s: cancelled\n", loggerID)
		}),
	)

	writer := builder.NewExportWriter(
		builder.ExportWithLogger(log),
		builder.ExportWithMonitor(mon),
		builder.ExportWithRoot(ctl.Output.Root),
		builder.ExportWithFormats(ctl.OutputFormats()...),
		builder.ExportWithCompression(ctl.Output.Compress),
	)

	orch := builder.NewOrchestrator(
		builder.OrchestratorWithLogger(log),
		builder.OrchestratorWithMonitor(mon),
		builder.OrchestratorWithCatalog(cat),
		builder.OrchestratorWithExporter(writer),
	)
	if !ctl.StartTime.IsZero() {
		orch.SetStartTime(ctl.StartTime)
	}
	if ctl.Concurrency > 0 {
		orch.SetLoggerConcurrency(ctl.Concurrency)
	}
	if ctl.Transfer.Enabled {
		orch.SetTransferSettings(ctl.TransferSettings())
	}
	if ctl.S3.Enabled {
		orch.SetSink(builder.NewS3Uploader(
			builder.S3SinkWithLogger(log),
			builder.S3SinkWithMonitor(mon),
			builder.S3SinkWithSettings(ctl.SinkSettings()),
		))
	}

	summary, err := orch.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("run %s: %d/%d loggers exported, %d files, %d windows, %d bad files, %d warnings in %s\n",
		summary.RunID, summary.LoggersDone, summary.LoggersTotal, summary.FilesProcessed,
		summary.WindowsEmitted, summary.BadFiles, summary.Warnings, summary.Elapsed.Round(time.Millisecond))
	if summary.Cancelled {
		return errors.New("screening run cancelled")
	}
	return nil
}
