package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/viper"

	"github.com/olusolaa/flagsync/internal/adapters/remote/unleash"
	"github.com/olusolaa/flagsync/internal/adapters/reportsink/s3"
	"github.com/olusolaa/flagsync/internal/adapters/state/declfs"
	"github.com/olusolaa/flagsync/internal/config"
	"github.com/olusolaa/flagsync/internal/core/ports"
	"github.com/olusolaa/flagsync/internal/core/service"
	"github.com/olusolaa/flagsync/internal/errors"
	"github.com/olusolaa/flagsync/internal/lint"
	"github.com/olusolaa/flagsync/internal/log"
	"github.com/olusolaa/flagsync/internal/policy"
	"github.com/olusolaa/flagsync/internal/reporting"
	jsonreporter "github.com/olusolaa/flagsync/internal/reporting/json"
	"github.com/olusolaa/flagsync/internal/reporting/text"
)

// Mode says how much of the stack a command needs.
type Mode int

const (
	// ModeLocal builds the loader, linters and policy scanner only.
	ModeLocal Mode = iota
	// ModeRemote also builds the flag service client, reporters and engine.
	ModeRemote
)

type buildOptions struct {
	logWriter    io.Writer
	reportWriter io.Writer
	remoteOpts   []unleash.Option
	sinkOpts     []s3.Option
}

type BuildOption func(*buildOptions)

// WithLogWriter sends log output somewhere other than stderr.
func WithLogWriter(w io.Writer) BuildOption {
	return func(o *buildOptions) { o.logWriter = w }
}

// WithReportWriter sends the console summary somewhere other than stdout.
func WithReportWriter(w io.Writer) BuildOption {
	return func(o *buildOptions) { o.reportWriter = w }
}

func WithRemoteOptions(opts ...unleash.Option) BuildOption {
	return func(o *buildOptions) { o.remoteOpts = append(o.remoteOpts, opts...) }
}

func WithSinkOptions(opts ...s3.Option) BuildOption {
	return func(o *buildOptions) { o.sinkOpts = append(o.sinkOpts, opts...) }
}

func BuildApplicationFromViper(ctx context.Context, v *viper.Viper, mode Mode, opts ...BuildOption) (*Application, error) {
	bo := buildOptions{logWriter: os.Stderr}
	for _, opt := range opts {
		opt(&bo)
	}

	cfg, err := loadConfig(v)
	if err != nil {
		return nil, err
	}

	logger, err := log.NewLoggerWithWriter(log.Config{Level: cfg.Settings.LogLevel, Format: cfg.Settings.LogFormat}, bo.logWriter)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to initialize logger: %v\n", err)
		return nil, errors.Wrap(err, errors.CodeInternal, "logger initialization failed")
	}
	logger.Debugf(ctx, "Logger initialized (Level: %s, Format: %s)", cfg.Settings.LogLevel, cfg.Settings.LogFormat)
	if v.ConfigFileUsed() != "" {
		logger.Debugf(ctx, "Using configuration file: %s", v.ConfigFileUsed())
	} else {
		logger.Debugf(ctx, "No configuration file found, using defaults/env/flags.")
	}

	if err := cfg.Validate(ctx, mode == ModeRemote); err != nil {
		logger.Errorf(ctx, err, "Configuration validation failed")
		return nil, err
	}
	logger.Debugf(ctx, "Configuration validated successfully")

	kinds, err := cfg.ResourceKinds()
	if err != nil {
		return nil, err
	}

	registry := service.NewKindRegistry()
	if err := registry.RegisterValidator(lint.NewToggleLinter(logger.WithFields(map[string]any{"component": "linter"}))); err != nil {
		return nil, err
	}
	if err := registry.RegisterValidator(lint.NewAccountLinter(logger.WithFields(map[string]any{"component": "linter"}))); err != nil {
		return nil, err
	}
	scanner := policy.NewScanner(cfg.Policy, logger.WithFields(map[string]any{"component": "policy"}))
	if err := registry.RegisterPolicyGate(scanner); err != nil {
		return nil, err
	}
	logger.Debugf(ctx, "Kind registry initialized")

	declCfg := cfg.Declarations
	declCfg.OwnerTagType = cfg.Ownership.TagType
	loader, err := declfs.NewLoader(declCfg, logger.WithFields(map[string]any{"component": "loader"}))
	if err != nil {
		return nil, err
	}

	checker, err := service.NewChecker(loader, registry, logger, cfg.Target.Organization, kinds)
	if err != nil {
		return nil, err
	}

	application := &Application{
		Config:  cfg,
		Logger:  logger,
		Checker: checker,
		Scanner: scanner,
	}
	if mode == ModeLocal {
		logger.Debugf(ctx, "Application bootstrap complete (local mode)")
		return application, nil
	}

	remoteCfg := cfg.Remote
	if remoteCfg.Concurrency <= 0 {
		remoteCfg.Concurrency = cfg.Settings.Concurrency
	}
	remoteLog := logger.WithFields(map[string]any{"component": "remote", "base_url": remoteCfg.BaseURL})
	remote, err := unleash.NewClient(ctx, remoteCfg, remoteLog, bo.remoteOpts...)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeConfigValidation, "failed to initialize flag service client")
	}

	reporter, err := buildReporters(ctx, cfg, logger, bo)
	if err != nil {
		return nil, err
	}

	engine, err := service.NewReconciliationEngine(loader, registry, remote, reporter,
		logger.WithFields(map[string]any{"component": "engine"}),
		service.RunOptions{
			Organization: cfg.Target.Organization,
			Environment:  cfg.Target.Environment,
			DryRun:       cfg.Target.DryRun,
			Kinds:        kinds,
			Normalize:    cfg.NormalizeOptions(),
			OwnerTagType: cfg.Ownership.TagType,
		})
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to initialize reconciliation engine")
	}
	application.Engine = engine

	logger.Debugf(ctx, "Application bootstrap complete")
	return application, nil
}

func loadConfig(v *viper.Viper) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, errors.CodeConfigParseError, "failed to unmarshal configuration")
	}
	cfg.Kinds = splitKinds(cfg.Kinds)
	return cfg, nil
}

func buildReporters(ctx context.Context, cfg *config.Config, logger ports.Logger, bo buildOptions) (ports.Reporter, error) {
	reportLog := logger.WithFields(map[string]any{"component": "reporter", "type": jsonreporter.ReporterTypeJSON})

	var jsonOpts []jsonreporter.Option
	if cfg.Report.S3.Enabled() {
		sink, err := s3.NewSink(ctx, cfg.Report.S3, logger.WithFields(map[string]any{"component": "report_sink", "bucket": cfg.Report.S3.Bucket}), bo.sinkOpts...)
		if err != nil {
			return nil, err
		}
		jsonOpts = append(jsonOpts, jsonreporter.WithSink(sink))
		reportLog.Debugf(ctx, "Diff reports will be uploaded to bucket %s", cfg.Report.S3.Bucket)
	}
	audit, err := jsonreporter.NewReporter(jsonreporter.Config{OutputDir: cfg.Report.OutputDir}, reportLog, jsonOpts...)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to initialize JSON reporter")
	}

	var textOpts []text.Option
	if bo.reportWriter != nil {
		textOpts = append(textOpts, text.WithWriter(bo.reportWriter))
	}
	console, err := text.NewReporter(text.Config{NoColor: cfg.Settings.NoColor, ShowDetails: cfg.Settings.ShowDetails},
		logger.WithFields(map[string]any{"component": "reporter", "type": text.ReporterTypeText}), textOpts...)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to initialize Text reporter")
	}

	return reporting.Multi{audit, console}, nil
}
