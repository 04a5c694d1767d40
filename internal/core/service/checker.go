package service

import (
	"context"

	"github.com/olusolaa/flagsync/internal/core/domain"
	"github.com/olusolaa/flagsync/internal/core/ports"
	"github.com/olusolaa/flagsync/internal/errors"
)

// Desired is the validated local side of one kind.
type Desired struct {
	Snapshot domain.Snapshot
	Tags     map[string]domain.Tag
}

// Checker runs the local phases of a reconciliation: load, validate and
// policy. It never talks to the remote service.
type Checker struct {
	loader       ports.DeclarationLoader
	registry     *KindRegistry
	logger       ports.Logger
	organization string
	kinds        []domain.ResourceKind
}

func NewChecker(loader ports.DeclarationLoader, registry *KindRegistry, logger ports.Logger, organization string, kinds []domain.ResourceKind) (*Checker, error) {
	if loader == nil {
		return nil, errors.New(errors.CodeConfigValidation, "declaration loader cannot be nil")
	}
	if registry == nil {
		return nil, errors.New(errors.CodeConfigValidation, "kind registry cannot be nil")
	}
	if organization == "" {
		return nil, errors.NewUserFacing(errors.CodeConfigValidation, "organization is required",
			"Pass --organization or set FLAGSYNC_TARGET_ORGANIZATION.")
	}
	if len(kinds) == 0 {
		kinds = domain.AllKinds
	}
	return &Checker{
		loader:       loader,
		registry:     registry,
		logger:       logger,
		organization: organization,
		kinds:        kinds,
	}, nil
}

func (c *Checker) Kinds() []domain.ResourceKind {
	return c.kinds
}

// Validate loads and validates every selected kind, stopping at the first
// failure. Load failures are reported as CodeLoadError.
func (c *Checker) Validate(ctx context.Context) (map[domain.ResourceKind]Desired, error) {
	out := make(map[domain.ResourceKind]Desired, len(c.kinds))
	for _, kind := range c.kinds {
		log := c.logger.WithFields(map[string]any{"resource_kind": kind})

		state, err := c.loader.Load(ctx, kind, c.organization)
		if err != nil {
			log.Errorf(ctx, err, "loading declarations failed")
			return nil, errors.Wrap(err, errors.CodeLoadError, "failed to load declarations")
		}
		log.Debugf(ctx, "Loaded %d declarations", len(state.Declarations))

		validator, err := c.registry.GetValidator(kind)
		if err != nil {
			return nil, err
		}
		snapshot, err := validator.Validate(ctx, state)
		if err != nil {
			log.Errorf(ctx, err, "declaration validation failed")
			return nil, err
		}

		out[kind] = Desired{Snapshot: snapshot, Tags: state.Tags}
	}
	return out, nil
}

// Enforce runs the policy gate of every selected kind that has one.
func (c *Checker) Enforce(ctx context.Context, desired map[domain.ResourceKind]Desired) error {
	for _, kind := range c.kinds {
		gate, ok := c.registry.GetPolicyGate(kind)
		if !ok {
			continue
		}
		if err := gate.Enforce(ctx, desired[kind].Snapshot); err != nil {
			c.logger.Errorf(ctx, err, "policy check failed for kind %s", kind)
			return err
		}
	}
	return nil
}
