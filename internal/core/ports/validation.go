package ports

import (
	"context"

	"github.com/olusolaa/flagsync/internal/core/domain"
)

// DeclarationValidator checks raw declarations of one kind and decodes them
// into typed resources. It stops at the first violation.
//
//go:generate mockery --name DeclarationValidator --output ./mocks --outpkg mocks --case underscore
type DeclarationValidator interface {
	Kind() domain.ResourceKind
	Validate(ctx context.Context, state domain.DesiredState) (domain.Snapshot, error)
}

// PolicyGate rejects desired state that introduces a new governance violation.
//
//go:generate mockery --name PolicyGate --output ./mocks --outpkg mocks --case underscore
type PolicyGate interface {
	Kind() domain.ResourceKind
	Enforce(ctx context.Context, desired domain.Snapshot) error
}
