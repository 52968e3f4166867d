package types

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3SinkSettings configures the optional post-export upload of the output tree. The sink
// stays disabled until a bucket is configured. Credential modes, in precedence order:
// assume-role when RoleARN is set, static keys when AccessKey is set, otherwise the
// default shared-config provider chain.
type S3SinkSettings struct {
	Enabled        bool
	Region         string
	Bucket         string
	Prefix         string // Key prefix ahead of the export tree's relative paths.
	Endpoint       string // Optional S3/STS endpoint override for emulators.
	ForcePathStyle bool

	AccessKey    string
	SecretKey    string
	SessionToken string

	RoleARN     string
	SessionName string
	ExternalID  string
	Duration    time.Duration
}

// S3Sink uploads the finished export tree to object storage once loggers reach Exported.
// Upload failures surface as warnings and never abort the screening run.
type S3Sink interface {
	// Connect builds the S3 client for the configured credential mode. Connecting a
	// disabled sink is an error; connecting twice is a no-op.
	Connect(ctx context.Context) error

	// SetClient injects a prebuilt client, bypassing Connect. Used with emulators.
	SetClient(cli *s3.Client)

	// UploadTree walks root and puts every regular file under bucket/prefix, preserving
	// relative paths. It returns the number of files uploaded; individual object failures
	// are reported as warnings and skipped.
	UploadTree(ctx context.Context, root string) (int, error)

	// Enabled reports whether the sink is configured for upload.
	Enabled() bool

	SetSettings(s S3SinkSettings)
	ConnectLogger(...Logger)
	ConnectMonitor(...Monitor)
	GetComponentMetadata() ComponentMetadata
}
