package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/olusolaa/flagsync/internal/core/domain"
)

func TestAccountNormalize_DropsRemoteFields(t *testing.T) {
	a := domain.Account{Email: "dev@example.com", Name: "Dev", RootRole: domain.RoleEditor, ID: "42", Username: "dev"}

	n := a.Normalize(domain.NormalizeOptions{})

	assert.Equal(t, domain.Account{Email: "dev@example.com", Name: "Dev", RootRole: domain.RoleEditor}, n)
	assert.Equal(t, "dev@example.com", n.Key())
	assert.Equal(t, domain.KindAccount, n.Kind())
	assert.Equal(t, "42", a.ID)
}

func TestAccountIsExempt(t *testing.T) {
	assert.True(t, domain.Account{Username: domain.AdminUsername}.IsExempt())
	assert.False(t, domain.Account{Username: "administrator"}.IsExempt())
	assert.False(t, domain.Account{Email: "admin@example.com"}.IsExempt())
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    domain.ResourceKind
		wantErr bool
	}{
		{"toggles", domain.KindToggle, false},
		{" Toggle ", domain.KindToggle, false},
		{"features", domain.KindToggle, false},
		{"ACCOUNTS", domain.KindAccount, false},
		{"users", domain.KindAccount, false},
		{"segments", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := domain.ParseKind(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApplyReport(t *testing.T) {
	r := domain.NewApplyReport(false)
	assert.False(t, r.HasFailures())

	r.RecordSuccess(domain.KindToggle, "a", domain.OpCreate)
	r.RecordFailure(domain.KindToggle, "b", domain.OpRemove, assert.AnError)

	assert.True(t, r.HasFailures())
	assert.Equal(t, assert.AnError.Error(), r.Failed[0].Error)

	run := domain.RunResult{Kinds: []domain.KindResult{{Apply: r}, {Apply: domain.NewApplyReport(false)}}}
	assert.Len(t, run.Failures(), 1)
}
