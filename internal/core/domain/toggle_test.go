package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olusolaa/flagsync/internal/core/domain"
)

func sampleToggle() domain.Toggle {
	return domain.Toggle{
		Name:        "checkout-v2",
		Description: "new checkout",
		Type:        "release",
		Enabled:     true,
		Variants:    []domain.Variant{{Name: "blue", Weight: 1000, Payload: &domain.VariantPayload{Type: "string", Value: "b"}}},
		Strategies: []domain.Strategy{
			{Name: "default"},
			{Name: "userWithId", Parameters: map[string]string{"userIds": "1,2"}},
			{Name: "flexibleRollout", Parameters: map[string]string{"rollout": "50", "groupId": "a"},
				Constraints: []domain.Constraint{{ContextName: "region", Operator: "IN", Values: []string{"eu"}}}},
			{Name: "flexibleRollout", Parameters: map[string]string{"rollout": "100", "groupId": "a"}},
		},
	}
}

func TestToggleNormalize_StrategyOrderIsTotal(t *testing.T) {
	a := sampleToggle()
	b := sampleToggle()
	b.Strategies = []domain.Strategy{b.Strategies[3], b.Strategies[0], b.Strategies[2], b.Strategies[1]}

	na := a.Normalize(domain.NormalizeOptions{}).(domain.Toggle)
	nb := b.Normalize(domain.NormalizeOptions{}).(domain.Toggle)

	assert.Equal(t, na, nb)
	require.Len(t, na.Strategies, 4)
	assert.Equal(t, "userWithId", na.Strategies[0].Name)
	assert.Equal(t, "flexibleRollout", na.Strategies[1].Name)
	assert.Equal(t, "50", na.Strategies[1].Parameters["rollout"], "ties break on serialized parameters descending")
	assert.Equal(t, "100", na.Strategies[2].Parameters["rollout"])
	assert.Equal(t, "default", na.Strategies[3].Name)
}

func TestToggleNormalize_DoesNotMutateReceiver(t *testing.T) {
	in := sampleToggle()
	out := in.Normalize(domain.NormalizeOptions{StripConstraints: true}).(domain.Toggle)

	assert.Equal(t, "default", in.Strategies[0].Name)
	assert.Len(t, in.Strategies[2].Constraints, 1)

	out.Variants[0].Payload.Value = "changed"
	assert.Equal(t, "b", in.Variants[0].Payload.Value)
}

func TestToggleNormalize_StripConstraints(t *testing.T) {
	a := sampleToggle()
	b := sampleToggle()
	b.Strategies[2].Constraints = []domain.Constraint{{ContextName: "appName", Operator: "IN", Values: []string{"web"}}}

	opts := domain.NormalizeOptions{StripConstraints: true}
	na := a.Normalize(opts).(domain.Toggle)
	nb := b.Normalize(opts).(domain.Toggle)

	assert.Equal(t, na, nb)
	for _, s := range na.Strategies {
		assert.NotNil(t, s.Constraints)
		assert.Empty(t, s.Constraints)
	}

	kept := a.Normalize(domain.NormalizeOptions{}).(domain.Toggle)
	assert.NotEqual(t, kept, b.Normalize(domain.NormalizeOptions{}))
}

func TestToggleNormalize_EmptyCollections(t *testing.T) {
	n := domain.Toggle{Name: "bare"}.Normalize(domain.NormalizeOptions{}).(domain.Toggle)
	assert.NotNil(t, n.Strategies)
	assert.NotNil(t, n.Variants)
	assert.Equal(t, "bare", n.Key())
	assert.False(t, n.IsExempt())
}

func TestSortStrategies_Stable(t *testing.T) {
	s := []domain.Strategy{
		{Name: "a", Parameters: map[string]string{"k": "1"}},
		{Name: "a", Parameters: map[string]string{"k": "1"}, Constraints: []domain.Constraint{{ContextName: "x"}}},
	}
	domain.SortStrategies(s)
	assert.Empty(t, s[0].Constraints)
	assert.Len(t, s[1].Constraints, 1)
}
