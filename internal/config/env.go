package config

import (
	stderrs "errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/olusolaa/flagsync/internal/errors"
)

// envKeys lists the settings that may come from FLAGSYNC_* variables alone.
// Viper only unmarshals keys it knows about, so each one is bound explicitly.
var envKeys = []string{
	"settings.log_level",
	"settings.log_format",
	"settings.enable_constraint",
	"settings.concurrency",
	"settings.no_color",
	"settings.show_details",
	"target.organization",
	"target.environment",
	"target.dry_run",
	"declarations.toggles_dir",
	"declarations.accounts_dir",
	"remote.base_url",
	"remote.token",
	"remote.timeout",
	"remote.requests_per_second",
	"remote.concurrency",
	"policy.disallowed_strategies",
	"policy.organization_context",
	"policy.baseline_path",
	"report.output_dir",
	"report.s3.bucket",
	"report.s3.prefix",
	"report.s3.region",
	"ownership.tag_type",
	"kinds",
}

func BindEnv(v *viper.Viper) error {
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return errors.Wrap(err, errors.CodeConfigReadError, "failed to bind environment variable for "+key)
		}
	}
	return nil
}

// LoadDotEnv exports the variables in path, typically FLAGSYNC_REMOTE_TOKEN,
// into the process environment. Variables already set win. A missing file
// is not an error; the boolean reports whether one was read.
func LoadDotEnv(path string) (bool, error) {
	if path == "" {
		return false, nil
	}
	if _, err := os.Stat(path); stderrs.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err := godotenv.Load(path); err != nil {
		return false, errors.Wrap(err, errors.CodeConfigReadError, "failed to read environment file "+path)
	}
	return true, nil
}
