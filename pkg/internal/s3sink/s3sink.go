// Package s3sink uploads a finished export tree to S3-compatible object storage. The sink
// is an optional post-export stage: it walks the output root, preserves relative paths
// under a configurable key prefix, and treats individual object failures as warnings so a
// flaky upload can never undo a completed screening run.
package s3sink

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	s3api "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/moorings-io/fathom/pkg/internal/types"
	"github.com/moorings-io/fathom/pkg/internal/utils"
)

// Uploader is the concrete implementation behind types.S3Sink.
type Uploader struct {
	componentMetadata types.ComponentMetadata
	metadataLock      sync.Mutex

	mu       sync.Mutex
	settings types.S3SinkSettings
	cli      *s3api.Client

	loggers     []types.Logger
	loggersLock sync.Mutex
	loggerCount int32

	monitors    []types.Monitor
	monitorLock sync.Mutex
	mntrCount   int32
}

// NewUploader constructs an S3 sink configured with the provided options.
func NewUploader(options ...types.Option[types.S3Sink]) types.S3Sink {
	u := &Uploader{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "S3_SINK",
		},
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(u)
	}

	return u
}

// Connect builds the S3 client for the configured credential mode. Connecting a disabled
// sink is an error; connecting twice (or after SetClient) is a no-op.
func (u *Uploader) Connect(ctx context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if !u.enabledLocked() {
		return fmt.Errorf("s3 sink is not configured")
	}
	if u.cli != nil {
		return nil
	}

	cli, err := buildClient(ctx, u.settings)
	if err != nil {
		return fmt.Errorf("build s3 client: %w", err)
	}
	u.cli = cli

	u.NotifyLoggers(
		types.InfoLevel,
		"S3 sink connected",
		"component", u.componentMetadata,
		"event", "Connect",
		"result", "SUCCESS",
		"bucket", u.settings.Bucket,
		"prefix", u.settings.Prefix,
	)
	return nil
}

// UploadTree walks root and puts every regular file under bucket/prefix, preserving
// relative paths. Individual object failures are reported as warnings and skipped; only a
// missing client or a broken walk aborts the upload.
func (u *Uploader) UploadTree(ctx context.Context, root string) (int, error) {
	u.mu.Lock()
	cli := u.cli
	settings := u.settings
	u.mu.Unlock()

	if cli == nil {
		return 0, fmt.Errorf("s3 sink not connected")
	}

	uploaded := 0
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		key := path.Join(settings.Prefix, filepath.ToSlash(rel))

		if putErr := u.putFile(ctx, cli, settings.Bucket, key, p); putErr != nil {
			u.notifyUploadFailure(key, putErr)
			return nil
		}
		uploaded++
		return nil
	})
	if err != nil {
		return uploaded, fmt.Errorf("upload export tree: %w", err)
	}

	u.notifyUploaded(root, uploaded)
	return uploaded, nil
}

func (u *Uploader) putFile(ctx context.Context, cli *s3api.Client, bucket, key, p string) error {
	data, err := os.ReadFile(p)
	if err != nil {
		return err
	}

	_, err = cli.PutObject(ctx, &s3api.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentTypeFor(p)),
	})
	return err
}

func (u *Uploader) enabledLocked() bool {
	return u.settings.Enabled && u.settings.Bucket != ""
}
