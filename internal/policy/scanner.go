package policy

import (
	"context"
	"fmt"
	"strings"

	"github.com/olusolaa/flagsync/internal/core/domain"
	"github.com/olusolaa/flagsync/internal/core/ports"
	"github.com/olusolaa/flagsync/internal/errors"
	"github.com/olusolaa/flagsync/pkg/compare"
)

const (
	StrategyOrganization       = "strategy_organization"
	StrategyVariant            = "strategy_variant"
	DefaultOrganizationContext = "organization"
)

type Config struct {
	DisallowedStrategies []string `mapstructure:"disallowed_strategies"`
	OrganizationContext  string   `mapstructure:"organization_context"`
	BaselinePath         string   `mapstructure:"baseline_path"`
}

func DefaultConfig() Config {
	return Config{
		DisallowedStrategies: []string{StrategyOrganization, StrategyVariant},
		OrganizationContext:  DefaultOrganizationContext,
	}
}

// Scanner flags toggles that target by organization, either through a
// disallowed strategy or through a constraint on the organization context.
type Scanner struct {
	disallowed map[string]struct{}
	orgContext string
	baseline   string
	logger     ports.Logger
}

var _ ports.PolicyGate = (*Scanner)(nil)

func NewScanner(cfg Config, logger ports.Logger) *Scanner {
	disallowed := make(map[string]struct{}, len(cfg.DisallowedStrategies))
	for _, name := range cfg.DisallowedStrategies {
		disallowed[name] = struct{}{}
	}
	orgContext := cfg.OrganizationContext
	if orgContext == "" {
		orgContext = DefaultOrganizationContext
	}
	return &Scanner{
		disallowed: disallowed,
		orgContext: orgContext,
		baseline:   cfg.BaselinePath,
		logger:     logger,
	}
}

func (s *Scanner) Kind() domain.ResourceKind {
	return domain.KindToggle
}

// Scan returns the toggles in snapshot that use a disallowed targeting
// capability. It makes no remote calls.
func (s *Scanner) Scan(snapshot domain.Snapshot) domain.Snapshot {
	found := make(domain.Snapshot)
	for key, res := range snapshot {
		toggle, ok := res.(domain.Toggle)
		if !ok {
			continue
		}
		if s.violates(toggle) {
			found[key] = toggle
		}
	}
	return found
}

func (s *Scanner) violates(toggle domain.Toggle) bool {
	for _, strategy := range toggle.Strategies {
		if _, bad := s.disallowed[strategy.Name]; bad {
			return true
		}
		for _, c := range strategy.Constraints {
			if c.ContextName == s.orgContext {
				return true
			}
		}
	}
	return false
}

// Check fails on any key in found that the baseline does not list. Listed
// keys whose definition changed are only logged: the baseline accepts a key,
// not a particular definition.
func (s *Scanner) Check(ctx context.Context, found domain.Snapshot, baseline Baseline) error {
	for _, key := range found.Keys() {
		accepted, ok := baseline[key]
		if !ok {
			continue
		}
		opts := domain.NormalizeOptions{}
		if !compare.Equal(found[key].Normalize(opts), accepted.Normalize(opts)) {
			s.logger.Warnf(ctx, "Toggle %q is in the policy baseline but its targeting changed since it was accepted", key)
		}
	}

	if same, details := compare.Sets(baseline.Keys(), found.Keys()); !same {
		s.logger.Debugf(ctx, "Policy findings differ from baseline: %s", details)
	}

	newKeys := compare.Missing(found.Keys(), baseline.Keys())
	if len(newKeys) == 0 {
		return nil
	}
	return errors.NewUserFacing(errors.CodePolicyViolation,
		fmt.Sprintf("new toggles use disallowed organization targeting: %s", strings.Join(newKeys, ", ")),
		"Remove the organization targeting, or get the toggles accepted and recorded with `flagsync scan --write-baseline`.",
	).WithResources(newKeys...)
}

// Enforce scans desired state and checks the result against the configured
// baseline file.
func (s *Scanner) Enforce(ctx context.Context, desired domain.Snapshot) error {
	found := s.Scan(desired)
	if len(found) == 0 {
		s.logger.Debugf(ctx, "No policy violations found")
		return nil
	}
	baseline, err := LoadBaseline(s.baseline)
	if err != nil {
		return err
	}
	s.logger.Debugf(ctx, "Found %d toggles with organization targeting, %d accepted in baseline", len(found), len(baseline))
	return s.Check(ctx, found, baseline)
}
