package builder

import (
	"github.com/moorings-io/fathom/pkg/internal/assembler"
	"github.com/moorings-io/fathom/pkg/internal/types"
)

// NewWindowAssembler creates a window assembler with the provided configuration options.
func NewWindowAssembler(options ...types.Option[types.WindowAssembler]) types.WindowAssembler {
	return assembler.NewWindowAssembler(options...)
}

// AssemblerWithLogger adds one or more loggers to the assembler.
func AssemblerWithLogger(logger ...types.Logger) types.Option[types.WindowAssembler] {
	return assembler.WithLogger(logger...)
}

// AssemblerWithMonitor adds one or more monitors to the assembler.
func AssemblerWithMonitor(monitor ...types.Monitor) types.Option[types.WindowAssembler] {
	return assembler.WithMonitor(monitor...)
}

// AssemblerWithLoggerID assigns the owning logger's id to emitted windows.
func AssemblerWithLoggerID(id string) types.Option[types.WindowAssembler] {
	return assembler.WithLoggerID(id)
}

// AssemblerWithTargetLength sets the window length in samples.
func AssemblerWithTargetLength(n int) types.Option[types.WindowAssembler] {
	return assembler.WithTargetLength(n)
}

// AssemblerWithSampleFrequency sets the sampling frequency stamped on emitted windows.
func AssemblerWithSampleFrequency(fs float64) types.Option[types.WindowAssembler] {
	return assembler.WithSampleFrequency(fs)
}
