package json

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/olusolaa/flagsync/internal/core/domain"
	"github.com/olusolaa/flagsync/internal/core/ports"
	"github.com/olusolaa/flagsync/internal/errors"
)

const ReporterTypeJSON = "json"

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

type Config struct {
	OutputDir string `mapstructure:"output_dir"`
}

// Reporter writes the audit file diff_<organization>_<environment>.json and
// optionally hands it to a sink for upload.
type Reporter struct {
	config Config
	sink   ports.ReportSink
	logger ports.Logger
}

var _ ports.Reporter = (*Reporter)(nil)

type Option func(*Reporter)

func WithSink(sink ports.ReportSink) Option {
	return func(r *Reporter) {
		r.sink = sink
	}
}

func NewReporter(cfg Config, logger ports.Logger, opts ...Option) (*Reporter, error) {
	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}
	r := &Reporter{config: cfg, logger: logger}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

type auditReport struct {
	Summary auditSummary `json:"summary"`
	domain.RunResult
}

type auditSummary struct {
	Create     int `json:"create"`
	Update     int `json:"update"`
	Remove     int `json:"remove"`
	TagChanges int `json:"tag_changes"`
	Succeeded  int `json:"succeeded"`
	Failed     int `json:"failed"`
}

// FileName is the audit file name for one organization and environment.
func FileName(organization, environment string) string {
	clean := strings.NewReplacer("/", "-", "\\", "-", " ", "-")
	return fmt.Sprintf("diff_%s_%s.json", clean.Replace(organization), clean.Replace(environment))
}

// Path returns where Report writes the audit file for result.
func (r *Reporter) Path(result domain.RunResult) string {
	return filepath.Join(r.config.OutputDir, FileName(result.Organization, result.Environment))
}

func (r *Reporter) Report(ctx context.Context, result domain.RunResult) error {
	report := auditReport{RunResult: result}
	for _, k := range result.Kinds {
		report.Summary.Create += len(k.Diff.Create)
		report.Summary.Update += len(k.Diff.Update)
		report.Summary.Remove += len(k.Diff.Remove)
		report.Summary.TagChanges += len(k.TagDiff.Create) + len(k.TagDiff.Update)
		report.Summary.Succeeded += len(k.Apply.Succeeded)
		report.Summary.Failed += len(k.Apply.Failed)
	}

	raw, err := jsonAPI.MarshalIndent(report, "", "  ")
	if err != nil {
		r.logger.Errorf(ctx, err, "Failed to encode JSON report")
		return errors.Wrap(err, errors.CodeReportWriteError, "failed to encode JSON report")
	}

	if err := os.MkdirAll(r.config.OutputDir, 0o755); err != nil {
		return errors.Wrap(err, errors.CodeReportWriteError, "failed to create report directory "+r.config.OutputDir)
	}
	path := r.Path(result)
	if err := os.WriteFile(path, append(raw, '\n'), 0o644); err != nil {
		return errors.Wrap(err, errors.CodeReportWriteError, "failed to write report "+path)
	}
	r.logger.Infof(ctx, "Diff report written to %s", path)

	if r.sink != nil {
		if err := r.sink.Publish(ctx, path, result); err != nil {
			r.logger.Errorf(ctx, err, "Failed to publish diff report %s", path)
		}
	}
	return nil
}
