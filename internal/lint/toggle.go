package lint

import (
	"context"
	"fmt"

	"github.com/olusolaa/flagsync/internal/core/domain"
	"github.com/olusolaa/flagsync/internal/core/ports"
	"github.com/olusolaa/flagsync/internal/errors"
	"github.com/olusolaa/flagsync/pkg/convert"
	"github.com/olusolaa/flagsync/pkg/reflectutil"
)

// ToggleLinter checks toggle declarations field by field on the raw data, so
// that a string "true" for enabled is caught before decoding coerces it.
type ToggleLinter struct {
	logger ports.Logger
}

var _ ports.DeclarationValidator = (*ToggleLinter)(nil)

func NewToggleLinter(logger ports.Logger) *ToggleLinter {
	return &ToggleLinter{logger: logger}
}

func (l *ToggleLinter) Kind() domain.ResourceKind {
	return domain.KindToggle
}

// Validate returns the decoded toggles, or the first violation found.
func (l *ToggleLinter) Validate(ctx context.Context, state domain.DesiredState) (domain.Snapshot, error) {
	snapshot := make(domain.Snapshot, len(state.Declarations))
	for _, decl := range state.Declarations {
		if err := CheckToggle(decl.Fields); err != nil {
			return nil, schemaError(decl, err)
		}

		var toggle domain.Toggle
		if err := Decode(decl.Fields, &toggle); err != nil {
			return nil, errors.WrapUserFacing(err, errors.CodeDecodeError,
				fmt.Sprintf("toggle %q in %s could not be decoded", decl.Key, decl.Source),
				"Check field types against the toggle schema.").WithResources(decl.Key)
		}
		snapshot[toggle.Key()] = toggle
	}
	l.logger.Debugf(ctx, "Validated %d toggle declarations", len(snapshot))
	return snapshot, nil
}

// CheckToggle applies the required-field rules to one raw toggle and returns
// the first rule broken.
func CheckToggle(fields map[string]any) error {
	for _, field := range []string{"name", "type", "description"} {
		if v, ok := fields[field]; !ok || v == nil {
			return fmt.Errorf("field %q is required", field)
		}
	}
	if name, ok := fields["name"].(string); !ok || name == "" {
		return fmt.Errorf("field \"name\" must be a non-empty string")
	}
	if !reflectutil.IsBool(fields["enabled"]) {
		return fmt.Errorf("field \"enabled\" must be a boolean, got %T", fields["enabled"])
	}

	for _, field := range []string{"variants", "strategies"} {
		v, ok := fields[field]
		if !ok || v == nil {
			return fmt.Errorf("field %q is required (use an empty list for none)", field)
		}
		if _, err := convert.ToSliceOfMap(v); err != nil {
			return fmt.Errorf("field %q: %w", field, err)
		}
	}

	strategies, _ := convert.ToSliceOfMap(fields["strategies"])
	for i, s := range strategies {
		if err := checkStrategy(s); err != nil {
			return fmt.Errorf("strategies[%d]: %w", i, err)
		}
	}
	return nil
}

func checkStrategy(s map[string]any) error {
	name, _ := s["name"].(string)
	if name == "" {
		return fmt.Errorf("field \"name\" must be a non-empty string")
	}

	params, err := convert.ToMap(s["parameters"])
	if err != nil {
		return fmt.Errorf("field \"parameters\": %w", err)
	}
	if name != domain.DefaultStrategyName && len(params) == 0 {
		return fmt.Errorf("strategy %q requires parameters", name)
	}
	for _, key := range domain.SortedKeys(params) {
		if !reflectutil.IsTruthy(params[key]) {
			return fmt.Errorf("parameter %q of strategy %q must have a value", key, name)
		}
	}

	constraints, err := convert.ToSliceOfMap(s["constraints"])
	if err != nil {
		return fmt.Errorf("field \"constraints\": %w", err)
	}
	for i, c := range constraints {
		if values, ok := c["values"]; ok && values != nil {
			if _, err := convert.ToSliceOfString(values); err != nil {
				return fmt.Errorf("constraints[%d]: field \"values\" must be a list", i)
			}
		}
		for _, key := range domain.SortedKeys(c) {
			v := c[key]
			if reflectutil.IsTruthy(v) || v == false {
				continue
			}
			return fmt.Errorf("constraints[%d]: field %q must have a value or be false", i, key)
		}
	}
	return nil
}

func schemaError(decl domain.Declaration, cause error) error {
	return errors.NewUserFacing(errors.CodeSchemaValidation,
		fmt.Sprintf("%s %q (team %s, %s): %v", decl.Kind, decl.Key, decl.Team, decl.Source, cause),
		"Fix the declaration and run `flagsync lint` again.").WithResources(decl.Key)
}
