package service

import (
	"context"

	"github.com/olusolaa/flagsync/internal/core/domain"
	"github.com/olusolaa/flagsync/internal/core/ports"
	"github.com/olusolaa/flagsync/internal/errors"
)

// Plan is the input of one apply pass for a single kind.
type Plan struct {
	Kind       domain.ResourceKind
	Diff       domain.DiffResult[domain.Resource]
	Refs       map[string]domain.RemoteRef
	TagDiff    domain.DiffResult[domain.Tag]
	ActualTags map[string]domain.Tag
}

type ApplyOptions struct {
	DryRun bool
}

// Applier executes plans against the remote service one call at a time.
type Applier struct {
	remote ports.RemoteClient
	logger ports.Logger
}

func NewApplier(remote ports.RemoteClient, logger ports.Logger) *Applier {
	return &Applier{remote: remote, logger: logger}
}

// Apply runs creates, then updates, then removes, then the tag pass. A failed
// call is recorded and the loop moves on. A dry run issues no calls.
func (a *Applier) Apply(ctx context.Context, plan Plan, opts ApplyOptions) domain.ApplyReport {
	report := domain.NewApplyReport(opts.DryRun)
	log := a.logger.WithFields(map[string]any{"resource_kind": plan.Kind})

	if opts.DryRun {
		log.Infof(ctx, "Dry run: %d create, %d update, %d remove, %d tag changes not applied",
			len(plan.Diff.Create), len(plan.Diff.Update), len(plan.Diff.Remove),
			len(plan.TagDiff.Create)+len(plan.TagDiff.Update))
		return report
	}

	for _, key := range domain.SortedKeys(plan.Diff.Create) {
		err := a.remote.CreateResource(ctx, plan.Kind, plan.Diff.Create[key])
		a.record(ctx, log, &report, plan.Kind, key, domain.OpCreate, err)
	}

	for _, key := range domain.SortedKeys(plan.Diff.Update) {
		err := a.remote.UpdateResource(ctx, plan.Kind, plan.ref(key), plan.Diff.Update[key])
		a.record(ctx, log, &report, plan.Kind, key, domain.OpUpdate, err)
	}

	for _, key := range plan.Diff.Remove {
		err := a.remote.RemoveResource(ctx, plan.Kind, plan.ref(key))
		a.record(ctx, log, &report, plan.Kind, key, domain.OpRemove, err)
	}

	for _, key := range domain.SortedKeys(plan.TagDiff.Create) {
		err := a.remote.UpdateTags(ctx, key, plan.TagDiff.Create[key], nil)
		a.record(ctx, log, &report, plan.Kind, key, domain.OpTag, err)
	}

	for _, key := range domain.SortedKeys(plan.TagDiff.Update) {
		var previous *domain.Tag
		if tag, ok := plan.ActualTags[key]; ok {
			previous = &tag
		}
		err := a.remote.UpdateTags(ctx, key, plan.TagDiff.Update[key], previous)
		a.record(ctx, log, &report, plan.Kind, key, domain.OpTag, err)
	}

	return report
}

func (a *Applier) record(ctx context.Context, log ports.Logger, report *domain.ApplyReport,
	kind domain.ResourceKind, key string, op domain.Operation, err error) {
	if err == nil {
		report.RecordSuccess(kind, key, op)
		log.Infof(ctx, "%s %s: ok", op, key)
		return
	}
	err = errors.WrapWithCode(err, errors.CodeRemoteMutationError, "remote call failed")
	report.RecordFailure(kind, key, op, err)
	log.Errorf(ctx, err, "%s %s failed", op, key)
}

func (p Plan) ref(key string) domain.RemoteRef {
	if ref, ok := p.Refs[key]; ok {
		return ref
	}
	return domain.RemoteRef{Key: key, RemoteID: key}
}
