package service_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olusolaa/flagsync/internal/core/domain"
	"github.com/olusolaa/flagsync/internal/core/service"
)

func toggle(name string, strategies ...domain.Strategy) domain.Toggle {
	return domain.Toggle{Name: name, Description: name + " toggle", Type: "release", Strategies: strategies}
}

func strategy(name string, params map[string]string, constraints ...domain.Constraint) domain.Strategy {
	return domain.Strategy{Name: name, Parameters: params, Constraints: constraints}
}

func snapshotOf(resources ...domain.Resource) domain.Snapshot {
	s := make(domain.Snapshot, len(resources))
	for _, r := range resources {
		s[r.Key()] = r
	}
	return s
}

func TestDiff_Partition(t *testing.T) {
	desired := map[string]int{"a": 1, "b": 2, "c": 3, "e": 5}
	actual := map[string]int{"b": 2, "c": 30, "d": 4, "f": 6}

	res := service.Diff(desired, actual, func(x, y int) bool { return x == y })

	assert.Equal(t, map[string]int{"a": 1, "e": 5}, res.Create)
	assert.Equal(t, map[string]int{"c": 3}, res.Update)
	assert.Equal(t, []string{"d", "f"}, res.Remove)

	seen := map[string]int{}
	for k := range res.Create {
		seen[k]++
	}
	for k := range res.Update {
		seen[k]++
	}
	for _, k := range res.Remove {
		seen[k]++
	}
	for k, n := range seen {
		assert.Equal(t, 1, n, "key %s appears in more than one set", k)
	}
	for k := range desired {
		if actual[k] == desired[k] {
			assert.NotContains(t, seen, k, "equal key %s must be absent", k)
		} else {
			assert.Contains(t, seen, k)
		}
	}
	for k := range actual {
		if _, ok := desired[k]; !ok {
			assert.Contains(t, seen, k)
		}
	}
}

func TestDiff_EmptyInputs(t *testing.T) {
	res := service.Diff[int](nil, nil, func(x, y int) bool { return x == y })
	assert.True(t, res.IsEmpty())
	assert.NotNil(t, res.Remove)
}

func TestDiffSnapshots_Idempotent(t *testing.T) {
	opts := domain.NormalizeOptions{}
	var resources []domain.Resource
	for i := 0; i < 20; i++ {
		resources = append(resources, toggle(fmt.Sprintf("t%02d", i),
			strategy("default", nil),
			strategy("userWithId", map[string]string{"userIds": fmt.Sprint(i)})))
	}
	s := service.CanonicalSnapshot(snapshotOf(resources...), opts)

	res := service.DiffSnapshots(s, service.CanonicalSnapshot(snapshotOf(resources...), opts))

	assert.True(t, res.IsEmpty())
	assert.Zero(t, res.Len())
}

func TestDiffSnapshots_StrategyOrderIsNotAChange(t *testing.T) {
	opts := domain.NormalizeOptions{}
	desired := toggle("A", strategy("s1", map[string]string{"x": "1"}), strategy("s2", map[string]string{"y": "2"}))
	actual := toggle("A", strategy("s2", map[string]string{"y": "2"}), strategy("s1", map[string]string{"x": "1"}))

	res := service.DiffSnapshots(
		service.CanonicalSnapshot(snapshotOf(desired), opts),
		service.CanonicalSnapshot(snapshotOf(actual), opts),
	)
	assert.True(t, res.IsEmpty())
}

func TestDiffSnapshots_NilAndEmptyEqual(t *testing.T) {
	a := domain.Toggle{Name: "A", Strategies: []domain.Strategy{{Name: "default"}}}
	b := domain.Toggle{Name: "A", Strategies: []domain.Strategy{{Name: "default", Parameters: map[string]string{}, Constraints: []domain.Constraint{}}}, Variants: []domain.Variant{}}

	assert.True(t, service.Equal(a, b))
}

// Remote entries carry a service id; matching content on both sides must
// yield no create or update, and the remote-only entry is removed.
func TestDiffScenario_RemoteIDIgnored(t *testing.T) {
	opts := domain.NormalizeOptions{}
	desired := snapshotOf(toggle("A", strategy("s1", map[string]string{"x": "1"})))
	remote := []domain.RemoteResource{
		{Resource: toggle("A", strategy("s1", map[string]string{"x": "1"})), Ref: domain.RemoteRef{Key: "A", RemoteID: "id-991"}},
		{Resource: toggle("B", strategy("default", nil)), Ref: domain.RemoteRef{Key: "B", RemoteID: "B"}},
	}

	have, refs := service.CanonicalRemote(remote, opts)
	res := service.DiffSnapshots(service.CanonicalSnapshot(desired, opts), have)

	assert.Empty(t, res.Create)
	assert.Empty(t, res.Update)
	assert.Equal(t, []string{"B"}, res.Remove)
	assert.Equal(t, "id-991", refs["A"].RemoteID)
}

func TestDiffSnapshots_ConstraintStripping(t *testing.T) {
	desired := snapshotOf(toggle("A", strategy("s1", map[string]string{"x": "1"},
		domain.Constraint{ContextName: "region", Operator: "IN", Values: []string{"eu"}})))
	actual := snapshotOf(toggle("A", strategy("s1", map[string]string{"x": "1"})))

	stripped := domain.NormalizeOptions{StripConstraints: true}
	res := service.DiffSnapshots(service.CanonicalSnapshot(desired, stripped), service.CanonicalSnapshot(actual, stripped))
	assert.True(t, res.IsEmpty())

	kept := domain.NormalizeOptions{}
	res = service.DiffSnapshots(service.CanonicalSnapshot(desired, kept), service.CanonicalSnapshot(actual, kept))
	require.Contains(t, res.Update, "A")
	assert.Len(t, res.Update["A"].(domain.Toggle).Strategies[0].Constraints, 1)
}

func TestCanonicalRemote_AdminNeverRemoved(t *testing.T) {
	remote := []domain.RemoteResource{
		{Resource: domain.Account{Email: "root@example.com", Name: "Root", RootRole: domain.RoleAdmin, ID: "1", Username: "admin"}, Ref: domain.RemoteRef{RemoteID: "1"}},
		{Resource: domain.Account{Email: "old@example.com", Name: "Old", RootRole: domain.RoleViewer, ID: "7"}, Ref: domain.RemoteRef{RemoteID: "7"}},
	}

	have, refs := service.CanonicalRemote(remote, domain.NormalizeOptions{})
	res := service.DiffSnapshots(domain.Snapshot{}, have)

	assert.Equal(t, []string{"old@example.com"}, res.Remove)
	assert.NotContains(t, refs, "root@example.com")
	assert.Equal(t, domain.RemoteRef{Key: "old@example.com", RemoteID: "7"}, refs["old@example.com"])
}

func TestDiffTags(t *testing.T) {
	desired := map[string]domain.Tag{
		"a": {Key: "a", Type: "owner", Value: "team-x"},
		"b": {Key: "b", Type: "owner", Value: "team-y"},
	}
	actual := map[string]domain.Tag{
		"b": {Key: "b", Type: "owner", Value: "team-z"},
	}

	res := service.DiffTags(desired, actual)

	assert.Contains(t, res.Create, "a")
	assert.Equal(t, "team-y", res.Update["b"].Value)
	assert.Empty(t, res.Remove)
}

func TestDescribe(t *testing.T) {
	a := toggle("A", strategy("s1", map[string]string{"x": "1"}))
	b := toggle("A", strategy("s1", map[string]string{"x": "2"}))

	out := service.Describe(a, b)
	assert.Contains(t, out, `"1"`)
	assert.Contains(t, out, `"2"`)
	assert.Empty(t, service.Describe(a, a))
}
