// Package builder is the public facade over the internal components: constructors and
// functional options re-exported under component-prefixed names, plus aliases for the
// shared types a caller needs to assemble a screening run.
package builder

import (
	"github.com/moorings-io/fathom/pkg/internal/types"
)

type ComponentMetadata = types.ComponentMetadata

type LoggerConfig = types.LoggerConfig

type HeaderLayout = types.HeaderLayout

type Channel = types.Channel

type Window = types.Window

type LoggerResult = types.LoggerResult

type LoggerState = types.LoggerState

type RunSummary = types.RunSummary

type ProgressSnapshot = types.ProgressSnapshot

type BadFile = types.BadFile

type SpectralSettings = types.SpectralSettings

type RainflowSettings = types.RainflowSettings

type FatigueSettings = types.FatigueSettings

type SNSegment = types.SNSegment

type SegmentRule = types.SegmentRule

type TransferSettings = types.TransferSettings

type SeaState = types.SeaState

type TransferFunction = types.TransferFunction

type Spectrogram = types.Spectrogram

type HistogramSet = types.HistogramSet

type StatisticsTable = types.StatisticsTable

// Segment-selection rules for piecewise S-N curves.
const (
	SelectSmallestExceeding = types.SelectSmallestExceeding
	SelectLegacyLastMatch   = types.SelectLegacyLastMatch
)

// Logger states as reported by the orchestrator.
const (
	StateIdle      = types.StateIdle
	StateWindowing = types.StateWindowing
	StateReducing  = types.StateReducing
	StateExported  = types.StateExported
)
