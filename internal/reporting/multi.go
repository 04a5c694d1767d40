package reporting

import (
	"context"
	stderrs "errors"

	"github.com/olusolaa/flagsync/internal/core/domain"
	"github.com/olusolaa/flagsync/internal/core/ports"
)

// Multi fans a result out to several reporters. Every reporter runs even if
// an earlier one fails.
type Multi []ports.Reporter

func (m Multi) Report(ctx context.Context, result domain.RunResult) error {
	var errs []error
	for _, r := range m {
		if err := r.Report(ctx, result); err != nil {
			errs = append(errs, err)
		}
	}
	return stderrs.Join(errs...)
}
