package reader

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/moorings-io/fathom/pkg/internal/types"
)

// ListFiles returns the logger's raw files in processing order: every regular file under
// the configured path carrying the configured extension (or its .zst-compressed variant),
// sorted by name. Name order is the file-index order for loggers that stamp an index or
// timestamp into the filename.
func (r *Reader) ListFiles() ([]string, error) {
	if r.config == nil {
		return nil, fmt.Errorf("reader: no logger configuration")
	}

	entries, err := os.ReadDir(r.config.Path)
	if err != nil {
		return nil, fmt.Errorf("reader: listing %s: %w", r.config.Path, err)
	}

	ext := r.config.Extension
	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if ext == "" || strings.HasSuffix(name, ext) || strings.HasSuffix(name, ext+".zst") {
			files = append(files, filepath.Join(r.config.Path, name))
		}
	}
	sort.Strings(files)

	r.notifyFilesListed(len(files))
	return files, nil
}

// ReadFile parses one raw file into a SampleTable whose first sample is stamped at base.
func (r *Reader) ReadFile(path string, base time.Time) (*types.SampleTable, *types.FileQuality, error) {
	if r.config == nil {
		return nil, nil, fmt.Errorf("reader: no logger configuration")
	}

	raw, err := r.parseFile(path)
	if err != nil {
		r.notifyReadFailure(path, err)
		return nil, nil, err
	}
	if len(raw.rows) == 0 {
		err := fmt.Errorf("reader: %s: no data rows", filepath.Base(path))
		r.notifyReadFailure(path, err)
		return nil, nil, err
	}

	quality := &types.FileQuality{
		Filename: filepath.Base(path),
		Rows:     len(raw.rows),
	}

	channels := r.resolveChannels(raw.headerNames, raw.headerUnits)
	table := r.buildTable(raw, channels, base, quality)

	if exp := r.config.ExpectedSamples; exp > 0 && quality.Rows != exp {
		quality.Warnings = append(quality.Warnings,
			fmt.Sprintf("expected %d samples, read %d", exp, quality.Rows))
	}

	r.mu.Lock()
	if r.channels == nil {
		r.channels = channels
	}
	r.mu.Unlock()

	r.notifyFileRead(path, quality)
	return table, quality, nil
}

// SampleFrequency returns the resolved sampling frequency in Hz, 0 until resolution
// succeeds.
func (r *Reader) SampleFrequency() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.fs
}

// Channels returns the resolved channel set, nil until the first file is read.
func (r *Reader) Channels() []types.Channel {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.channels == nil {
		return nil
	}
	out := make([]types.Channel, len(r.channels))
	copy(out, r.channels)
	return out
}

// ConnectLogger attaches loggers for diagnostics.
func (r *Reader) ConnectLogger(logger ...types.Logger) {
	r.loggersLock.Lock()
	defer r.loggersLock.Unlock()
	for _, l := range logger {
		if l == nil {
			continue
		}
		r.loggers = append(r.loggers, l)
		atomic.AddInt32(&r.loggerCount, 1)
	}
}

// GetComponentMetadata returns the component's metadata.
func (r *Reader) GetComponentMetadata() types.ComponentMetadata {
	r.metadataLock.Lock()
	defer r.metadataLock.Unlock()
	return r.componentMetadata
}

// SetComponentMetadata overrides the component's name and id.
func (r *Reader) SetComponentMetadata(name string, id string) {
	r.metadataLock.Lock()
	defer r.metadataLock.Unlock()
	r.componentMetadata.Name = name
	r.componentMetadata.ID = id
}
