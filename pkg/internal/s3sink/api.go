package s3sink

import (
	"sync/atomic"

	s3api "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/moorings-io/fathom/pkg/internal/types"
)

// Enabled reports whether the sink is configured for upload.
func (u *Uploader) Enabled() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.enabledLocked()
}

// SetSettings assigns the sink configuration.
func (u *Uploader) SetSettings(s types.S3SinkSettings) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.settings = s
}

// SetClient injects a prebuilt client, bypassing Connect. Used with emulators.
func (u *Uploader) SetClient(cli *s3api.Client) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.cli = cli
}

// ConnectLogger attaches loggers for diagnostics.
func (u *Uploader) ConnectLogger(logger ...types.Logger) {
	u.loggersLock.Lock()
	defer u.loggersLock.Unlock()
	for _, l := range logger {
		if l == nil {
			continue
		}
		u.loggers = append(u.loggers, l)
		atomic.AddInt32(&u.loggerCount, 1)
	}
}

// ConnectMonitor attaches monitors observing upload progress.
func (u *Uploader) ConnectMonitor(monitor ...types.Monitor) {
	u.monitorLock.Lock()
	defer u.monitorLock.Unlock()
	for _, m := range monitor {
		if m == nil {
			continue
		}
		u.monitors = append(u.monitors, m)
		atomic.AddInt32(&u.mntrCount, 1)
	}
}

// GetComponentMetadata returns the component's metadata.
func (u *Uploader) GetComponentMetadata() types.ComponentMetadata {
	u.metadataLock.Lock()
	defer u.metadataLock.Unlock()
	return u.componentMetadata
}
