package builder

import (
	s3api "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/moorings-io/fathom/pkg/internal/s3sink"
	"github.com/moorings-io/fathom/pkg/internal/types"
)

type S3SinkSettings = types.S3SinkSettings

// NewS3Uploader creates an object-store uploader for the finished export tree.
func NewS3Uploader(options ...types.Option[types.S3Sink]) types.S3Sink {
	return s3sink.NewUploader(options...)
}

// S3SinkWithLogger adds one or more loggers to the uploader.
func S3SinkWithLogger(logger ...types.Logger) types.Option[types.S3Sink] {
	return s3sink.WithLogger(logger...)
}

// S3SinkWithMonitor adds one or more monitors to the uploader.
func S3SinkWithMonitor(monitor ...types.Monitor) types.Option[types.S3Sink] {
	return s3sink.WithMonitor(monitor...)
}

// S3SinkWithSettings assigns the bucket, prefix, and credential settings.
func S3SinkWithSettings(settings types.S3SinkSettings) types.Option[types.S3Sink] {
	return s3sink.WithSettings(settings)
}

// S3SinkWithClient injects a prebuilt client, bypassing Connect. Used with emulators.
func S3SinkWithClient(cli *s3api.Client) types.Option[types.S3Sink] {
	return s3sink.WithClient(cli)
}
