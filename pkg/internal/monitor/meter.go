package monitor

import (
	"sync"
	"time"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
)

// RunMeter tracks a run's wall-clock time and peak host resource usage. The orchestrator
// samples it between files; errors from the host probes are ignored, a missing sample is
// just a zero in the run summary.
type RunMeter struct {
	start time.Time

	mu      sync.Mutex
	peakCPU float64
	peakRAM float64
}

// NewRunMeter starts a meter at the current time.
func NewRunMeter() *RunMeter {
	return &RunMeter{start: time.Now()}
}

// Sample probes current CPU and memory usage and folds them into the peaks. The CPU probe
// measures utilisation since the previous call, so the first sample reads zero.
func (r *RunMeter) Sample() {
	cpuPercentages, _ := cpu.Percent(0, false)
	memStats, _ := mem.VirtualMemory()

	r.mu.Lock()
	defer r.mu.Unlock()
	if len(cpuPercentages) > 0 && cpuPercentages[0] > r.peakCPU {
		r.peakCPU = cpuPercentages[0]
	}
	if memStats != nil && memStats.UsedPercent > r.peakRAM {
		r.peakRAM = memStats.UsedPercent
	}
}

// Elapsed returns the wall-clock time since the meter started.
func (r *RunMeter) Elapsed() time.Duration {
	return time.Since(r.start)
}

// Start returns the meter's start time.
func (r *RunMeter) Start() time.Time {
	return r.start
}

// PeakCPUPercent returns the highest sampled CPU utilisation.
func (r *RunMeter) PeakCPUPercent() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.peakCPU
}

// PeakRAMPercent returns the highest sampled memory utilisation.
func (r *RunMeter) PeakRAMPercent() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.peakRAM
}
