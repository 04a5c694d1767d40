package service

import (
	"github.com/olusolaa/flagsync/internal/core/domain"
)

// CanonicalSnapshot returns a new snapshot holding the canonical form of every
// non-exempt resource. The input is left untouched.
func CanonicalSnapshot(in domain.Snapshot, opts domain.NormalizeOptions) domain.Snapshot {
	out := make(domain.Snapshot, len(in))
	for key, res := range in {
		if res == nil || res.IsExempt() {
			continue
		}
		out[key] = res.Normalize(opts)
	}
	return out
}

// CanonicalRemote builds the actual-state snapshot and the addressing table
// used for updates and removals. Exempt resources appear in neither.
func CanonicalRemote(remote []domain.RemoteResource, opts domain.NormalizeOptions) (domain.Snapshot, map[string]domain.RemoteRef) {
	snapshot := make(domain.Snapshot, len(remote))
	refs := make(map[string]domain.RemoteRef, len(remote))
	for _, rr := range remote {
		if rr.Resource == nil || rr.Resource.IsExempt() {
			continue
		}
		key := rr.Resource.Key()
		snapshot[key] = rr.Resource.Normalize(opts)
		ref := rr.Ref
		if ref.Key == "" {
			ref.Key = key
		}
		refs[key] = ref
	}
	return snapshot, refs
}
