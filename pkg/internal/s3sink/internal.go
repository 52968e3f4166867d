package s3sink

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/credentials/stscreds"
	s3api "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/moorings-io/fathom/pkg/internal/types"
)

// sharedResolver maps both S3 and STS to the same endpoint override, so assume-role flows
// against an emulator never leak to real AWS.
func sharedResolver(endpoint string) aws.EndpointResolverWithOptionsFunc {
	return func(service, region string, _ ...interface{}) (aws.Endpoint, error) {
		switch service {
		case s3api.ServiceID, sts.ServiceID:
			return aws.Endpoint{URL: endpoint, HostnameImmutable: true}, nil
		default:
			return aws.Endpoint{}, &aws.EndpointNotFoundError{}
		}
	}
}

// buildClient constructs the S3 client for the configured credential mode: assume-role
// when RoleARN is set, static keys when AccessKey is set, otherwise the default
// shared-config provider chain.
func buildClient(ctx context.Context, s types.S3SinkSettings) (*s3api.Client, error) {
	var loaders []func(*config.LoadOptions) error
	if s.Region != "" {
		loaders = append(loaders, config.WithRegion(s.Region))
	}
	if s.AccessKey != "" {
		loaders = append(loaders, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(s.AccessKey, s.SecretKey, s.SessionToken),
		))
	}
	if s.Endpoint != "" {
		loaders = append(loaders, config.WithEndpointResolverWithOptions(sharedResolver(s.Endpoint)))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loaders...)
	if err != nil {
		return nil, err
	}

	if s.RoleARN != "" {
		stsClient := sts.NewFromConfig(cfg)
		provider := stscreds.NewAssumeRoleProvider(stsClient, s.RoleARN, func(o *stscreds.AssumeRoleOptions) {
			if s.SessionName != "" {
				o.RoleSessionName = s.SessionName
			}
			if s.Duration > 0 {
				o.Duration = s.Duration
			}
			if s.ExternalID != "" {
				externalID := s.ExternalID
				o.ExternalID = &externalID
			}
		})
		cfg.Credentials = aws.NewCredentialsCache(provider)
	}

	return s3api.NewFromConfig(cfg, func(o *s3api.Options) {
		o.UsePathStyle = s.ForcePathStyle
	}), nil
}

// contentTypeFor maps an export filename to its upload content type.
func contentTypeFor(p string) string {
	lower := strings.ToLower(p)
	switch {
	case strings.HasSuffix(lower, ".csv"):
		return "text/csv"
	case strings.HasSuffix(lower, ".zst"):
		return "application/zstd"
	case strings.HasSuffix(lower, ".xlsx"):
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case strings.HasSuffix(lower, ".parquet"):
		return "application/parquet"
	case strings.HasSuffix(lower, ".txt"):
		return "text/plain"
	default:
		return "application/octet-stream"
	}
}
