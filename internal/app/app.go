package app

import (
	"context"

	"github.com/olusolaa/flagsync/internal/config"
	"github.com/olusolaa/flagsync/internal/core/domain"
	"github.com/olusolaa/flagsync/internal/core/ports"
	"github.com/olusolaa/flagsync/internal/core/service"
	"github.com/olusolaa/flagsync/internal/errors"
	"github.com/olusolaa/flagsync/internal/policy"
)

// Application holds the components a command runs against. Engine is nil
// when the application was built in ModeLocal.
type Application struct {
	Config  *config.Config
	Logger  ports.Logger
	Checker *service.Checker
	Scanner *policy.Scanner
	Engine  ports.Reconciler
}

// Run executes a full reconciliation.
func (a *Application) Run(ctx context.Context) (domain.RunResult, error) {
	if a.Engine == nil {
		return domain.RunResult{}, errors.New(errors.CodeInternal, "application was built without a reconciliation engine")
	}
	a.Logger.Infof(ctx, "Starting reconciliation...")

	result, err := a.Engine.Run(ctx)
	if err != nil {
		a.Logger.Errorf(ctx, err, "Reconciliation failed")
		return result, err
	}

	if result.Status == domain.StatusCompletedWithPartialFailures {
		a.Logger.Warnf(ctx, "Reconciliation completed with %d failed operations", len(result.Failures()))
	} else {
		a.Logger.Infof(ctx, "Reconciliation completed successfully")
	}
	return result, nil
}

// Lint loads and validates declarations and runs the policy gates without
// contacting the flag service.
func (a *Application) Lint(ctx context.Context) error {
	desired, err := a.Checker.Validate(ctx)
	if err != nil {
		return err
	}
	if err := a.Checker.Enforce(ctx, desired); err != nil {
		return err
	}
	for _, kind := range a.Checker.Kinds() {
		a.Logger.Infof(ctx, "%d %s declarations are valid", len(desired[kind].Snapshot), kind)
	}
	return nil
}

// Scan reports the toggles that use disallowed organization targeting. With
// writeBaseline the current findings replace the baseline file; otherwise
// they are checked against it.
func (a *Application) Scan(ctx context.Context, writeBaseline bool) (domain.Snapshot, error) {
	desired, err := a.Checker.Validate(ctx)
	if err != nil {
		return nil, err
	}

	toggles, ok := desired[domain.KindToggle]
	if !ok {
		return nil, errors.NewUserFacing(errors.CodeConfigValidation, "policy scan needs toggle declarations",
			"Include toggles in --kinds.")
	}
	found := a.Scanner.Scan(toggles.Snapshot)
	a.Logger.Infof(ctx, "Found %d toggles with organization targeting", len(found))

	if writeBaseline {
		path := a.Config.Policy.BaselinePath
		if err := policy.WriteBaseline(path, found); err != nil {
			return found, err
		}
		a.Logger.Infof(ctx, "Policy baseline written to %s", path)
		return found, nil
	}

	baseline, err := policy.LoadBaseline(a.Config.Policy.BaselinePath)
	if err != nil {
		return found, err
	}
	return found, a.Scanner.Check(ctx, found, baseline)
}
