package s3

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/olusolaa/flagsync/internal/core/domain"
	"github.com/olusolaa/flagsync/internal/core/ports"
	"github.com/olusolaa/flagsync/internal/errors"
)

type Config struct {
	Bucket string `mapstructure:"bucket"`
	Prefix string `mapstructure:"prefix"`
	Region string `mapstructure:"region"`
}

// Enabled reports whether an upload target is configured.
func (c Config) Enabled() bool {
	return c.Bucket != ""
}

// PutObjectAPI is the slice of the S3 client the sink needs.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Sink uploads audit reports to s3://<bucket>/<prefix>/<organization>/<environment>/<file>.
type Sink struct {
	config Config
	client PutObjectAPI
	logger ports.Logger
}

var _ ports.ReportSink = (*Sink)(nil)

type Option func(*Sink)

func WithS3Client(client PutObjectAPI) Option {
	return func(s *Sink) {
		s.client = client
	}
}

func NewSink(ctx context.Context, cfg Config, logger ports.Logger, opts ...Option) (*Sink, error) {
	if logger == nil {
		return nil, errors.New(errors.CodeConfigValidation, "logger cannot be nil for S3 report sink")
	}
	if !cfg.Enabled() {
		return nil, errors.New(errors.CodeConfigValidation, "S3 report sink requires a bucket")
	}

	s := &Sink{config: cfg, logger: logger}
	for _, opt := range opts {
		opt(s)
	}

	if s.client == nil {
		var loadOpts []func(*config.LoadOptions) error
		if cfg.Region != "" {
			loadOpts = append(loadOpts, config.WithRegion(cfg.Region))
		}
		awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeConfigValidation, "failed to load default AWS config")
		}
		s.client = s3.NewFromConfig(awsCfg)
	}
	return s, nil
}

// ObjectKey is where a report file for result lands in the bucket.
func (s *Sink) ObjectKey(file string, result domain.RunResult) string {
	return path.Join(strings.Trim(s.config.Prefix, "/"), result.Organization, result.Environment, filepath.Base(file))
}

func (s *Sink) Publish(ctx context.Context, file string, result domain.RunResult) error {
	f, err := os.Open(file)
	if err != nil {
		return errors.Wrap(err, errors.CodeReportUploadError, "failed to open report "+file)
	}
	defer f.Close()

	key := s.ObjectKey(file, result)
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.config.Bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return handleS3Error(ctx, s.config.Bucket, key, err)
	}

	s.logger.Infof(ctx, "Uploaded diff report to s3://%s/%s", s.config.Bucket, key)
	return nil
}
