package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/olusolaa/flagsync/internal/core/domain"
	"github.com/olusolaa/flagsync/internal/core/ports"
	"github.com/olusolaa/flagsync/internal/errors"
	"golang.org/x/sync/errgroup"
)

// RunOptions selects what a reconciliation run targets.
type RunOptions struct {
	Organization string
	Environment  string
	DryRun       bool
	Kinds        []domain.ResourceKind
	Normalize    domain.NormalizeOptions
	// OwnerTagType is the tag type used for team attribution.
	OwnerTagType string
}

// ReconciliationEngine drives one run:
// Load, Validate, Scan, Fetch, Normalize, Diff, Apply (or record), Report.
type ReconciliationEngine struct {
	checker  *Checker
	remote   ports.RemoteClient
	applier  *Applier
	reporter ports.Reporter
	logger   ports.Logger
	opts     RunOptions
}

var _ ports.Reconciler = (*ReconciliationEngine)(nil)

func NewReconciliationEngine(
	loader ports.DeclarationLoader,
	registry *KindRegistry,
	remote ports.RemoteClient,
	reporter ports.Reporter,
	logger ports.Logger,
	opts RunOptions,
) (*ReconciliationEngine, error) {
	if remote == nil {
		return nil, errors.New(errors.CodeConfigValidation, "remote client cannot be nil")
	}
	if reporter == nil {
		return nil, errors.New(errors.CodeConfigValidation, "reporter cannot be nil")
	}
	checker, err := NewChecker(loader, registry, logger, opts.Organization, opts.Kinds)
	if err != nil {
		return nil, err
	}
	opts.Kinds = checker.Kinds()

	return &ReconciliationEngine{
		checker:  checker,
		remote:   remote,
		applier:  NewApplier(remote, logger),
		reporter: reporter,
		logger:   logger,
		opts:     opts,
	}, nil
}

// actualKind is the fetched remote side of one kind.
type actualKind struct {
	resources []domain.RemoteResource
	tags      map[string]domain.Tag
}

// Run executes one reconciliation. Validation and policy failures return
// before any remote call. Per-resource apply failures do not fail the run;
// they show up in the result with StatusCompletedWithPartialFailures.
func (e *ReconciliationEngine) Run(ctx context.Context) (domain.RunResult, error) {
	result := domain.RunResult{
		RunID:        uuid.NewString(),
		Organization: e.opts.Organization,
		Environment:  e.opts.Environment,
		DryRun:       e.opts.DryRun,
	}
	e.logger.Infof(ctx, "Starting reconciliation %s for organization %q environment %q (dry run: %t)",
		result.RunID, e.opts.Organization, e.opts.Environment, e.opts.DryRun)

	desired, err := e.checker.Validate(ctx)
	if err != nil {
		result.Status = domain.StatusAbortedValidation
		return result, err
	}

	if err := e.checker.Enforce(ctx, desired); err != nil {
		result.Status = domain.StatusAbortedPolicy
		return result, err
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}

	actual, err := e.fetchActual(ctx, desired)
	if err != nil {
		return result, err
	}

	for _, kind := range e.opts.Kinds {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		result.Kinds = append(result.Kinds, e.reconcileKind(ctx, kind, desired[kind], actual[kind]))
	}

	result.Status = domain.StatusCompleted
	if len(result.Failures()) > 0 {
		result.Status = domain.StatusCompletedWithPartialFailures
	}

	if err := e.reporter.Report(ctx, result); err != nil {
		return result, errors.Wrap(err, errors.CodeReportWriteError, "failed to write reconciliation report")
	}

	e.logger.Infof(ctx, "Reconciliation finished with status %s", result.Status)
	return result, nil
}

// fetchActual reads the remote state of every kind concurrently. Any failure
// is fatal since nothing can be diffed without it.
func (e *ReconciliationEngine) fetchActual(ctx context.Context, desired map[domain.ResourceKind]Desired) (map[domain.ResourceKind]actualKind, error) {
	out := make(map[domain.ResourceKind]actualKind, len(e.opts.Kinds))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for _, kind := range e.opts.Kinds {
		kind := kind
		g.Go(func() error {
			resources, err := e.remote.FetchResources(gctx, kind)
			if err != nil {
				return errors.WrapWithCode(err, errors.CodeRemoteFetchError, fmt.Sprintf("failed to fetch remote %s resources", kind))
			}

			var tags map[string]domain.Tag
			if want := desired[kind].Tags; len(want) > 0 {
				tags, err = e.remote.FetchTags(gctx, e.opts.OwnerTagType, domain.SortedKeys(want))
				if err != nil {
					return errors.WrapWithCode(err, errors.CodeRemoteFetchError, fmt.Sprintf("failed to fetch remote %s tags", kind))
				}
			}

			e.logger.Debugf(gctx, "Fetched %d remote resources and %d tags of kind %s", len(resources), len(tags), kind)
			mu.Lock()
			out[kind] = actualKind{resources: resources, tags: tags}
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		e.logger.Errorf(ctx, err, "remote state fetch failed")
		return nil, err
	}
	return out, nil
}

func (e *ReconciliationEngine) reconcileKind(ctx context.Context, kind domain.ResourceKind, desired Desired, actual actualKind) domain.KindResult {
	log := e.logger.WithFields(map[string]any{"resource_kind": kind})

	want := CanonicalSnapshot(desired.Snapshot, e.opts.Normalize)
	have, refs := CanonicalRemote(actual.resources, e.opts.Normalize)

	diff := DiffSnapshots(want, have)
	tagDiff := DiffTags(desired.Tags, actual.tags)
	log.Infof(ctx, "Diff: %d create, %d update, %d remove, %d tag changes",
		len(diff.Create), len(diff.Update), len(diff.Remove), len(tagDiff.Create)+len(tagDiff.Update))

	details := make(map[string]string, len(diff.Update))
	for key, res := range diff.Update {
		details[key] = Describe(have[key], res)
	}

	plan := Plan{
		Kind:       kind,
		Diff:       diff,
		Refs:       refs,
		TagDiff:    tagDiff,
		ActualTags: actual.tags,
	}
	report := e.applier.Apply(ctx, plan, ApplyOptions{DryRun: e.opts.DryRun})

	return domain.KindResult{
		Kind:    kind,
		Diff:    diff,
		TagDiff: tagDiff,
		Details: details,
		Apply:   report,
	}
}
