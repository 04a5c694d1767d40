package config

import (
	"github.com/olusolaa/flagsync/internal/adapters/remote/unleash"
	"github.com/olusolaa/flagsync/internal/adapters/reportsink/s3"
	"github.com/olusolaa/flagsync/internal/adapters/state/declfs"
	"github.com/olusolaa/flagsync/internal/core/domain"
	"github.com/olusolaa/flagsync/internal/log"
	"github.com/olusolaa/flagsync/internal/policy"
)

const DefaultOwnerTagType = "owner"

type Config struct {
	Settings     SettingsConfig  `mapstructure:"settings"`
	Target       TargetConfig    `mapstructure:"target"`
	Declarations declfs.Config   `mapstructure:"declarations"`
	Remote       unleash.Config  `mapstructure:"remote"`
	Policy       policy.Config   `mapstructure:"policy"`
	Report       ReportConfig    `mapstructure:"report"`
	Ownership    OwnershipConfig `mapstructure:"ownership"`
	Kinds        []string        `mapstructure:"kinds"`
}

type SettingsConfig struct {
	LogLevel  log.Level  `mapstructure:"log_level" validate:"omitempty,oneof=debug info warn error"`
	LogFormat log.Format `mapstructure:"log_format" validate:"omitempty,oneof=text json"`
	// EnableConstraint keeps strategy constraints; when false they are
	// stripped before comparing and before applying.
	EnableConstraint bool `mapstructure:"enable_constraint"`
	Concurrency      int  `mapstructure:"concurrency" validate:"gte=1,lte=64"`
	NoColor          bool `mapstructure:"no_color"`
	ShowDetails      bool `mapstructure:"show_details"`
}

type TargetConfig struct {
	Organization string `mapstructure:"organization" validate:"required"`
	Environment  string `mapstructure:"environment" validate:"required"`
	DryRun       bool   `mapstructure:"dry_run"`
}

type ReportConfig struct {
	OutputDir string    `mapstructure:"output_dir" validate:"required"`
	S3        s3.Config `mapstructure:"s3"`
}

type OwnershipConfig struct {
	TagType string `mapstructure:"tag_type" validate:"required"`
}

// ResourceKinds parses the configured kinds, defaulting to every kind.
func (c *Config) ResourceKinds() ([]domain.ResourceKind, error) {
	if len(c.Kinds) == 0 {
		return domain.AllKinds, nil
	}
	seen := make(map[domain.ResourceKind]struct{}, len(c.Kinds))
	kinds := make([]domain.ResourceKind, 0, len(c.Kinds))
	for _, raw := range c.Kinds {
		kind, err := domain.ParseKind(raw)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[kind]; dup {
			continue
		}
		seen[kind] = struct{}{}
		kinds = append(kinds, kind)
	}
	return kinds, nil
}

func (c *Config) NormalizeOptions() domain.NormalizeOptions {
	return domain.NormalizeOptions{StripConstraints: !c.Settings.EnableConstraint}
}

func DefaultConfig() *Config {
	return &Config{
		Settings: SettingsConfig{
			LogLevel:         log.LevelInfo,
			LogFormat:        log.FormatText,
			EnableConstraint: true,
			Concurrency:      8,
		},
		Declarations: declfs.Config{
			TogglesDir:  "toggles",
			AccountsDir: "accounts",
		},
		Remote: unleash.Config{
			RequestsPerSecond: 20,
		},
		Policy: policy.DefaultConfig(),
		Report: ReportConfig{
			OutputDir: ".",
		},
		Ownership: OwnershipConfig{TagType: DefaultOwnerTagType},
	}
}
