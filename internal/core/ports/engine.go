package ports

import (
	"context"

	"github.com/olusolaa/flagsync/internal/core/domain"
)

//go:generate mockery --name Reconciler --output ./mocks --outpkg mocks --case underscore
type Reconciler interface {
	Run(ctx context.Context) (domain.RunResult, error)
}
