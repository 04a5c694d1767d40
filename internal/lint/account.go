package lint

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/olusolaa/flagsync/internal/core/domain"
	"github.com/olusolaa/flagsync/internal/core/ports"
	"github.com/olusolaa/flagsync/internal/errors"
)

// AccountLinter decodes account declarations and checks them against the
// validate tags on domain.Account.
type AccountLinter struct {
	logger   ports.Logger
	validate *validator.Validate
}

var _ ports.DeclarationValidator = (*AccountLinter)(nil)

func NewAccountLinter(logger ports.Logger) *AccountLinter {
	return &AccountLinter{
		logger:   logger,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (l *AccountLinter) Kind() domain.ResourceKind {
	return domain.KindAccount
}

func (l *AccountLinter) Validate(ctx context.Context, state domain.DesiredState) (domain.Snapshot, error) {
	snapshot := make(domain.Snapshot, len(state.Declarations))
	for _, decl := range state.Declarations {
		var account domain.Account
		if err := Decode(decl.Fields, &account); err != nil {
			return nil, schemaError(decl, err)
		}
		if err := l.validate.StructCtx(ctx, account); err != nil {
			return nil, schemaError(decl, describeValidation(err))
		}
		snapshot[account.Key()] = account
	}
	l.logger.Debugf(ctx, "Validated %d account declarations", len(snapshot))
	return snapshot, nil
}

// describeValidation keeps only the first failed rule.
func describeValidation(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return err
	}
	fe := validationErrors[0]
	return fmt.Errorf("field '%s' failed on '%s' validation (value: '%v')", fe.Field(), fe.Tag(), fe.Value())
}
