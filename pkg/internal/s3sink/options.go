// Package s3sink provides options for configuring S3Sink components.
package s3sink

import (
	s3api "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/moorings-io/fathom/pkg/internal/types"
)

// WithLogger creates an option to add a logger to an S3Sink.
func WithLogger(logger ...types.Logger) types.Option[types.S3Sink] {
	return func(s types.S3Sink) {
		s.ConnectLogger(logger...)
	}
}

// WithMonitor creates an option to add a monitor to an S3Sink.
func WithMonitor(monitor ...types.Monitor) types.Option[types.S3Sink] {
	return func(s types.S3Sink) {
		s.ConnectMonitor(monitor...)
	}
}

// WithSettings creates an option assigning the sink configuration.
func WithSettings(settings types.S3SinkSettings) types.Option[types.S3Sink] {
	return func(s types.S3Sink) {
		s.SetSettings(settings)
	}
}

// WithClient creates an option injecting a prebuilt S3 client.
func WithClient(cli *s3api.Client) types.Option[types.S3Sink] {
	return func(s types.S3Sink) {
		s.SetClient(cli)
	}
}
