package ports

import (
	"context"

	"github.com/olusolaa/flagsync/internal/core/domain"
)

//go:generate mockery --name Reporter --output ./mocks --outpkg mocks --case underscore
type Reporter interface {
	Report(ctx context.Context, result domain.RunResult) error
}

// ReportSink publishes a written report file somewhere outside the working
// directory.
//
//go:generate mockery --name ReportSink --output ./mocks --outpkg mocks --case underscore
type ReportSink interface {
	Publish(ctx context.Context, path string, result domain.RunResult) error
}
