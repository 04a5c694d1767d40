package config

import (
	"context"
	stderrs "errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/olusolaa/flagsync/internal/errors"
)

// Validate checks the configuration. The remote section is only checked when
// the command talks to the flag service.
func (c *Config) Validate(ctx context.Context, requireRemote bool) error {
	validate := validator.New(validator.WithRequiredStructEnabled())

	var err error
	if requireRemote {
		err = validate.StructCtx(ctx, c)
	} else {
		err = validate.StructExceptCtx(ctx, c, "Remote")
	}
	if err == nil {
		_, err = c.ResourceKinds()
		if err != nil {
			return errors.WrapUserFacing(err, errors.CodeConfigValidation, err.Error(),
				"Use 'toggles' or 'accounts' in --kinds.")
		}
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !stderrs.As(err, &validationErrors) {
		return errors.Wrap(err, errors.CodeConfigValidation, "configuration validation failed")
	}

	var details strings.Builder
	details.WriteString("Configuration validation failed:")
	for _, fe := range validationErrors {
		details.WriteString(fmt.Sprintf("\n - Field '%s': Failed on '%s' validation (value: '%v')", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return errors.NewUserFacing(errors.CodeConfigValidation, details.String(), "Please check your configuration file, FLAGSYNC_* environment or flags.")
}
