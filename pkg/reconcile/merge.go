// Package reconcile merges the local entry cache with the remote entry
// service under a last-writer-wins policy and owns the session's sync state.
package reconcile

import "tableflip.dev/daybook/pkg/entry"

// Merge combines the local set with the remote listing. A remote entry wins
// only when it is strictly newer than the local one by UpdatedAt; ties keep
// local. Unknown remote ids are added. Nothing is ever removed: remote
// deletions simply stop appearing in the listing and are not reconciled.
//
// The result depends only on the UpdatedAt stamps, so it is deterministic,
// per-key commutative, and idempotent.
func Merge(local entry.Set, remote []*entry.Entry) entry.Set {
	result := local.Clone()
	for _, r := range remote {
		if r == nil || r.ID == "" {
			continue
		}
		l, ok := result[r.ID]
		if !ok || r.UpdatedAt > l.UpdatedAt {
			result[r.ID] = r
		}
	}
	return result
}

// changed reports whether merged differs from local, which is the condition
// for persisting the merge result.
func changed(local, merged entry.Set) bool {
	if len(local) != len(merged) {
		return true
	}
	for id, m := range merged {
		if local[id] != m {
			return true
		}
	}
	return false
}
