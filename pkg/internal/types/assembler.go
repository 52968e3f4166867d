package types

// WindowAssembler buffers raw sample tables and emits fixed-length analysis windows across
// file boundaries. At most one partially-filled buffer exists per logger at any time; rows
// are consumed in arrival order and a window is emitted the moment the buffer reaches the
// target length, so a single Ingest call may emit several windows.
type WindowAssembler interface {
	// Ingest appends rows from the table to the buffer, emitting every window completed
	// along the way. It returns an error, consuming nothing, when the table's channel set
	// differs from the set established by earlier ingests.
	Ingest(table *SampleTable) ([]*Window, error)

	// Flush emits the terminal short window from any remaining buffered rows, or nil when
	// the buffer is empty. The assembler is reset either way.
	Flush() *Window

	// Buffered returns the number of rows currently held in the partial buffer.
	Buffered() int

	// TargetLength returns the configured window length in samples.
	TargetLength() int

	// WindowsEmitted returns the number of windows emitted so far, Flush included.
	WindowsEmitted() int

	// SetLoggerID assigns the logger id stamped onto emitted windows.
	SetLoggerID(id string)

	// SetTargetLength assigns the window length in samples.
	SetTargetLength(n int)

	// SetSampleFrequency assigns the sampling frequency stamped onto emitted windows.
	SetSampleFrequency(fs float64)

	ConnectLogger(...Logger)
	ConnectMonitor(...Monitor)
	GetComponentMetadata() ComponentMetadata
}
