package ports

import (
	"context"

	"github.com/olusolaa/flagsync/internal/core/domain"
)

// DeclarationLoader reads the desired state of one kind for an organization.
//
//go:generate mockery --name DeclarationLoader --output ./mocks --outpkg mocks --case underscore
type DeclarationLoader interface {
	Load(ctx context.Context, kind domain.ResourceKind, organization string) (domain.DesiredState, error)
}

// RemoteClient is the CRUD surface of the flag service.
//
//go:generate mockery --name RemoteClient --output ./mocks --outpkg mocks --case underscore
type RemoteClient interface {
	FetchResources(ctx context.Context, kind domain.ResourceKind) ([]domain.RemoteResource, error)
	CreateResource(ctx context.Context, kind domain.ResourceKind, res domain.Resource) error
	UpdateResource(ctx context.Context, kind domain.ResourceKind, ref domain.RemoteRef, res domain.Resource) error
	RemoveResource(ctx context.Context, kind domain.ResourceKind, ref domain.RemoteRef) error
	// FetchTags returns the owner tag of each key that has one.
	FetchTags(ctx context.Context, tagType string, keys []string) (map[string]domain.Tag, error)
	// UpdateTags sets the desired tag on key, replacing previous when non-nil.
	UpdateTags(ctx context.Context, key string, desired domain.Tag, previous *domain.Tag) error
}
