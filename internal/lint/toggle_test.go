package lint_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olusolaa/flagsync/internal/core/domain"
	portsmocks "github.com/olusolaa/flagsync/internal/core/ports/mocks"
	apperrors "github.com/olusolaa/flagsync/internal/errors"
	"github.com/olusolaa/flagsync/internal/lint"
)

func validToggle(name string) map[string]any {
	return map[string]any{
		"name":        name,
		"description": "rollout of " + name,
		"type":        "release",
		"enabled":     true,
		"stale":       false,
		"variants":    []any{},
		"strategies": []any{
			map[string]any{"name": "default"},
			map[string]any{
				"name":       "flexibleRollout",
				"parameters": map[string]any{"rollout": 50, "groupId": name},
				"constraints": []any{
					map[string]any{"contextName": "region", "operator": "IN", "values": []any{"eu"}, "inverted": false},
				},
			},
		},
	}
}

func toggleState(fields ...map[string]any) domain.DesiredState {
	state := domain.DesiredState{Kind: domain.KindToggle, Organization: "acme"}
	for _, f := range fields {
		state.Declarations = append(state.Declarations, domain.Declaration{
			Kind: domain.KindToggle, Key: f["name"].(string), Team: "core", Source: "toggles/core/acme.yaml", Fields: f,
		})
	}
	return state
}

func TestToggleLinter_DecodesValidToggles(t *testing.T) {
	linter := lint.NewToggleLinter(portsmocks.NewQuietLogger(t))

	snapshot, err := linter.Validate(context.Background(), toggleState(validToggle("a"), validToggle("b")))

	require.NoError(t, err)
	require.Len(t, snapshot, 2)
	a := snapshot["a"].(domain.Toggle)
	assert.True(t, a.Enabled)
	require.Len(t, a.Strategies, 2)
	assert.Equal(t, "50", a.Strategies[1].Parameters["rollout"])
	assert.Equal(t, []string{"eu"}, a.Strategies[1].Constraints[0].Values)
}

func TestToggleLinter_FailFast(t *testing.T) {
	first := validToggle("first")
	first["enabled"] = "yes"
	second := validToggle("second")
	delete(second, "type")

	linter := lint.NewToggleLinter(portsmocks.NewQuietLogger(t))
	_, err := linter.Validate(context.Background(), toggleState(first, second))

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeSchemaValidation))
	assert.Equal(t, []string{"first"}, apperrors.GetResources(err))
	assert.Contains(t, err.Error(), "enabled")
}

func TestCheckToggle_Rules(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(m map[string]any)
		wantErr string
	}{
		{"valid", func(m map[string]any) {}, ""},
		{"missing description", func(m map[string]any) { delete(m, "description") }, `"description" is required`},
		{"empty name", func(m map[string]any) { m["name"] = "" }, `"name" must be a non-empty string`},
		{"enabled as number", func(m map[string]any) { m["enabled"] = 1 }, `"enabled" must be a boolean`},
		{"missing variants", func(m map[string]any) { delete(m, "variants") }, `"variants" is required`},
		{"strategies not a list", func(m map[string]any) { m["strategies"] = "default" }, `"strategies"`},
		{"strategy without name", func(m map[string]any) {
			m["strategies"] = []any{map[string]any{"parameters": map[string]any{"a": "b"}}}
		}, `strategies[0]: field "name"`},
		{"non-default strategy without parameters", func(m map[string]any) {
			m["strategies"] = []any{map[string]any{"name": "userWithId"}}
		}, `requires parameters`},
		{"empty parameter value", func(m map[string]any) {
			m["strategies"] = []any{map[string]any{"name": "userWithId", "parameters": map[string]any{"userIds": ""}}}
		}, `parameter "userIds"`},
		{"empty constraint value", func(m map[string]any) {
			m["strategies"] = []any{map[string]any{
				"name":        "userWithId",
				"parameters":  map[string]any{"userIds": "1"},
				"constraints": []any{map[string]any{"contextName": "", "operator": "IN"}},
			}}
		}, `field "contextName" must have a value or be false`},
		{"constraint values not a list", func(m map[string]any) {
			m["strategies"] = []any{map[string]any{
				"name":        "userWithId",
				"parameters":  map[string]any{"userIds": "1"},
				"constraints": []any{map[string]any{"contextName": "region", "operator": "IN", "values": "eu"}},
			}}
		}, `field "values" must be a list`},
		{"default strategy may omit parameters", func(m map[string]any) {
			m["strategies"] = []any{map[string]any{"name": "default", "constraints": []any{}}}
		}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := validToggle("t")
			tt.mutate(fields)
			err := lint.CheckToggle(fields)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
