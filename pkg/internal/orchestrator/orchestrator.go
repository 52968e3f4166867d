// Package orchestrator drives a full screening run. Every registered logger's raw files
// are read in index order, windowed, fed through the enabled reducers, and exported, with
// per-file progress, bad-file and warning events fanned out to attached monitors. Loggers
// are independent of each other; an optional concurrency bound screens several at once,
// each worker owning its own reader, assembler and accumulators, and results merge into
// the run total only once a logger reaches Exported. Cancellation is cooperative and
// checked between files, never mid-file, so exports already on disk survive a cancelled
// run untouched.
//
// The orchestrator fails fast on configuration: missing collaborators, an unpreparable
// export tree, an invalid S-N curve or a dangling transfer-function pairing abort Run
// before any raw file is opened. Everything after that point is a per-file or per-logger
// problem and lands in the screening report instead of an error return.
package orchestrator

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/moorings-io/fathom/pkg/internal/monitor"
	"github.com/moorings-io/fathom/pkg/internal/types"
	"github.com/moorings-io/fathom/pkg/internal/utils"
)

// Orchestrator is the concrete implementation behind types.Orchestrator.
type Orchestrator struct {
	componentMetadata types.ComponentMetadata
	metadataLock      sync.Mutex

	// Collaborators and run settings, assigned before Run and read-only afterwards.
	catalog   types.Catalog
	exporter  types.Exporter
	sink      types.S3Sink
	transfer  types.TransferSettings
	startTime time.Time
	workers   int

	mu             sync.Mutex
	states         map[string]types.LoggerState
	results        []*types.LoggerResult // Exported results in completion order.
	byID           map[string]*types.LoggerResult
	excitation     *types.Spectrogram // Derived-acceleration PSD accumulator.
	filesProcessed int
	windowsEmitted int
	badFiles       int
	warnings       int
	cancelled      bool

	loggers     []types.Logger
	loggersLock sync.Mutex
	loggerCount int32

	monitors    []types.Monitor
	monitorLock sync.Mutex
	mntrCount   int32
}

// NewOrchestrator constructs an orchestrator configured with the provided options.
func NewOrchestrator(options ...types.Option[types.Orchestrator]) types.Orchestrator {
	o := &Orchestrator{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "ORCHESTRATOR",
		},
		states: make(map[string]types.LoggerState),
		byID:   make(map[string]*types.LoggerResult),
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}

	return o
}

// Run processes every registered logger and returns the run summary. The error is non-nil
// only for pre-run configuration failures; per-file problems are recorded in the screening
// report instead.
func (o *Orchestrator) Run(ctx context.Context) (*types.RunSummary, error) {
	o.resetRunState()

	plan, err := o.prepare()
	if err != nil {
		o.notifyRunRejected(err)
		return nil, err
	}

	meter := monitor.NewRunMeter()
	runID := uuid.NewString()
	o.notifyRunStarted(runID, len(plan.configs))

	jobs := make(chan *types.LoggerConfig, len(plan.configs))
	for _, cfg := range plan.configs {
		jobs <- cfg
	}
	close(jobs)

	workers := o.workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(plan.configs) {
		workers = len(plan.configs)
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for cfg := range jobs {
				if ctx.Err() != nil {
					o.markCancelled()
					continue
				}
				o.runLogger(ctx, plan, runID, meter, cfg)
			}
		}()
	}
	wg.Wait()

	if ctx.Err() != nil {
		o.markCancelled()
	} else {
		o.deriveTransferFunctions(plan)
	}

	summary := o.buildSummary(runID, meter, plan)

	if err := o.exporter.ExportReport(o.Results(), *summary); err != nil {
		o.runWarnf("", "screening report write failed: %v", err)
	}
	o.uploadExports(ctx, summary)

	o.notifyRunComplete(*summary)
	return summary, nil
}

// resetRunState clears the per-run accumulators so a second Run starts from scratch.
func (o *Orchestrator) resetRunState() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.states = make(map[string]types.LoggerState)
	o.results = nil
	o.byID = make(map[string]*types.LoggerResult)
	o.excitation = nil
	o.filesProcessed = 0
	o.windowsEmitted = 0
	o.badFiles = 0
	o.warnings = 0
	o.cancelled = false
}
