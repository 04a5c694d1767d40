package declfs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olusolaa/flagsync/internal/adapters/state/declfs"
	"github.com/olusolaa/flagsync/internal/core/domain"
	portsmocks "github.com/olusolaa/flagsync/internal/core/ports/mocks"
	apperrors "github.com/olusolaa/flagsync/internal/errors"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func newLoader(t *testing.T, root string) *declfs.Loader {
	t.Helper()
	loader, err := declfs.NewLoader(declfs.Config{
		TogglesDir:   filepath.Join(root, "toggles"),
		AccountsDir:  filepath.Join(root, "accounts"),
		OwnerTagType: "owner",
	}, portsmocks.NewQuietLogger(t))
	require.NoError(t, err)
	return loader
}

func TestLoader_MergesTeamsLastWriteWins(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "toggles", "alpha", "acme.yaml"), `
- name: shared
  description: from alpha
  type: release
  enabled: true
  variants: []
  strategies: []
- name: alpha-only
  description: a
  type: release
  enabled: false
  variants: []
  strategies:
    - name: flexibleRollout
      parameters:
        rollout: 25
`)
	writeFile(t, filepath.Join(root, "toggles", "beta", "acme.json"), `{"toggles": [
  {"name": "shared", "description": "from beta", "type": "release", "enabled": true, "variants": [], "strategies": []}
]}`)
	writeFile(t, filepath.Join(root, "toggles", "gamma", "other-org.yaml"), `- name: elsewhere`)
	writeFile(t, filepath.Join(root, "toggles", "README.md"), "not a team")

	state, err := newLoader(t, root).Load(context.Background(), domain.KindToggle, "acme")

	require.NoError(t, err)
	require.Len(t, state.Declarations, 2)
	assert.Equal(t, "shared", state.Declarations[0].Key)
	assert.Equal(t, "beta", state.Declarations[0].Team)
	assert.Equal(t, "from beta", state.Declarations[0].Fields["description"])
	assert.Equal(t, "alpha-only", state.Declarations[1].Key)

	assert.Equal(t, domain.Tag{Key: "shared", Type: "owner", Value: "beta"}, state.Tags["shared"])
	assert.Equal(t, "alpha", state.Tags["alpha-only"].Value)
	assert.NotContains(t, state.Tags, "elsewhere")
}

func TestLoader_HCL(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "toggles", "payments", "acme.hcl"), `
toggle "checkout-v2" {
  description = "new checkout"
  type        = "release"
  enabled     = true
  stale       = false
  variants    = []
  strategies = [
    { name = "default" },
    { name = "flexibleRollout", parameters = { rollout = 50 }, constraints = [
      { contextName = "region", operator = "IN", values = ["eu", "us"] },
    ] },
  ]
}
`)

	state, err := newLoader(t, root).Load(context.Background(), domain.KindToggle, "acme")

	require.NoError(t, err)
	require.Len(t, state.Declarations, 1)
	fields := state.Declarations[0].Fields
	assert.Equal(t, "checkout-v2", fields["name"])
	assert.Equal(t, true, fields["enabled"])
	strategies := fields["strategies"].([]any)
	require.Len(t, strategies, 2)
	rollout := strategies[1].(map[string]any)["parameters"].(map[string]any)["rollout"]
	assert.Equal(t, int64(50), rollout)
	assert.Equal(t, "payments", state.Tags["checkout-v2"].Value)
}

func TestLoader_TOML(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "toggles", "search", "acme.toml"), `
[[toggles]]
name = "fuzzy-search"
description = "typo tolerant search"
type = "experiment"
enabled = false
variants = []

[[toggles.strategies]]
name = "flexibleRollout"
parameters = { rollout = 10, stickiness = "userId" }
`)

	state, err := newLoader(t, root).Load(context.Background(), domain.KindToggle, "acme")

	require.NoError(t, err)
	require.Len(t, state.Declarations, 1)
	decl := state.Declarations[0]
	assert.Equal(t, "fuzzy-search", decl.Key)
	assert.Equal(t, false, decl.Fields["enabled"])
	assert.Equal(t, "search", state.Tags["fuzzy-search"].Value)
}

func TestLoader_Accounts(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "accounts", "platform", "acme.yml"), `
accounts:
  - email: dev@example.com
    name: Dev
    rootRole: Editor
`)
	writeFile(t, filepath.Join(root, "accounts", "sre", "acme.hcl"), `
account "ops@example.com" {
  name     = "Ops"
  rootRole = "Admin"
}
`)

	state, err := newLoader(t, root).Load(context.Background(), domain.KindAccount, "acme")

	require.NoError(t, err)
	require.Len(t, state.Declarations, 2)
	assert.Equal(t, "dev@example.com", state.Declarations[0].Key)
	assert.Equal(t, "ops@example.com", state.Declarations[1].Fields["email"])
	assert.Empty(t, state.Tags)
}

func TestLoader_Errors(t *testing.T) {
	tests := []struct {
		name     string
		files    map[string]string
		links    map[string]string
		kind     domain.ResourceKind
		wantCode apperrors.Code
	}{
		{"missing root", nil, nil, domain.KindToggle, apperrors.CodeLoadError},
		{"bad yaml", map[string]string{"toggles/a/acme.yaml": "- name: [unclosed"}, nil, domain.KindToggle, apperrors.CodeLoadError},
		{"bad json", map[string]string{"toggles/a/acme.json": "{"}, nil, domain.KindToggle, apperrors.CodeLoadError},
		{"bad hcl", map[string]string{"toggles/a/acme.hcl": "toggle {"}, nil, domain.KindToggle, apperrors.CodeLoadError},
		{"wrong section", map[string]string{"toggles/a/acme.yaml": "accounts: []"}, nil, domain.KindToggle, apperrors.CodeLoadError},
		{"scalar document", map[string]string{"toggles/a/acme.yaml": "hello"}, nil, domain.KindToggle, apperrors.CodeLoadError},
		{"missing key", map[string]string{"accounts/a/acme.yaml": "- name: Nobody"}, nil, domain.KindAccount, apperrors.CodeSchemaValidation},
		{
			"looping organization file",
			map[string]string{"toggles/alpha/acme.yaml": "- name: checkout-v2\n  enabled: true"},
			map[string]string{"toggles/beta/acme.yaml": "acme.yaml"},
			domain.KindToggle, apperrors.CodeLoadError,
		},
		{
			"dangling organization file",
			map[string]string{"toggles/alpha/acme.yaml": "- name: checkout-v2\n  enabled: true"},
			map[string]string{"toggles/beta/acme.json": "missing.json"},
			domain.KindToggle, apperrors.CodeLoadError,
		},
		{
			"dangling team directory",
			map[string]string{"toggles/alpha/acme.yaml": "- name: checkout-v2\n  enabled: true"},
			map[string]string{"toggles/beta": "nowhere"},
			domain.KindToggle, apperrors.CodeLoadError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			for rel, content := range tt.files {
				writeFile(t, filepath.Join(root, rel), content)
			}
			for rel, target := range tt.links {
				link := filepath.Join(root, rel)
				require.NoError(t, os.MkdirAll(filepath.Dir(link), 0o755))
				require.NoError(t, os.Symlink(target, link))
			}
			_, err := newLoader(t, root).Load(context.Background(), tt.kind, "acme")
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, apperrors.GetCode(err))
		})
	}
}

func TestLoader_FollowsSymlinkedTeamDirectory(t *testing.T) {
	root := t.TempDir()
	shared := filepath.Join(root, "shared", "payments")
	writeFile(t, filepath.Join(shared, "acme.yaml"), "- name: checkout-v2\n  enabled: true")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "toggles"), 0o755))
	require.NoError(t, os.Symlink(shared, filepath.Join(root, "toggles", "payments")))

	state, err := newLoader(t, root).Load(context.Background(), domain.KindToggle, "acme")

	require.NoError(t, err)
	require.Len(t, state.Declarations, 1)
	assert.Equal(t, "checkout-v2", state.Declarations[0].Key)
	assert.Equal(t, "payments", state.Declarations[0].Team)
	assert.Equal(t, "payments", state.Tags["checkout-v2"].Value)
}

func TestLoader_TeamWithoutOrganizationFileIsSkipped(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "toggles", "empty-team"), 0o755))
	writeFile(t, filepath.Join(root, "toggles", "core", "acme.yaml"), "")

	state, err := newLoader(t, root).Load(context.Background(), domain.KindToggle, "acme")

	require.NoError(t, err)
	assert.Empty(t, state.Declarations)
	assert.Equal(t, "acme", state.Organization)
}

func TestNewLoader_RequiresDirectory(t *testing.T) {
	_, err := declfs.NewLoader(declfs.Config{}, portsmocks.NewQuietLogger(t))
	assert.True(t, apperrors.Is(err, apperrors.CodeConfigValidation))
}
