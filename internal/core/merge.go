package core

type ChangeKind int

const (
	ChangeAdd ChangeKind = iota
	ChangeUpdate
	ChangeDelete
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeAdd:
		return "add"
	case ChangeUpdate:
		return "update"
	case ChangeDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Change is one key touched by a reconciliation.
type Change struct {
	Provider ProviderID
	Key      string
	Kind     ChangeKind
	Old      string
	New      string
}

// Result is the mapping to persist plus what changed on the way.
type Result struct {
	Mapping *Mapping
	Changes []Change
}

func (r Result) Changed() bool { return len(r.Changes) > 0 }

// NeedsConfirmation is true when writing would wipe every key of a file that had some.
func (r Result) NeedsConfirmation() bool {
	return r.Changed() && r.Mapping.Len() == 0
}

// Reconcile computes the new persisted mapping from disk state and the form.
// Keys not owned by any descriptor are carried over untouched. Legacy alias keys
// are never written; clearing a field drops the alias too so it cannot resurface.
// A cleared field whose only stored key was the alias therefore counts as a
// change (a delete of the alias), and may trigger the empty-file confirmation.
func Reconcile(disk *Mapping, form FormState, descriptors []Descriptor) Result {
	out := disk.Clone()
	var changes []Change
	for _, d := range descriptors {
		cand := form.Effective(d)
		cur, had := out.Get(d.CanonicalKey)
		if cand != "" {
			if had && cur == cand {
				continue
			}
			kind := ChangeAdd
			if had {
				kind = ChangeUpdate
			}
			out.Set(d.CanonicalKey, cand)
			changes = append(changes, Change{Provider: d.ID, Key: d.CanonicalKey, Kind: kind, Old: cur, New: cand})
			continue
		}
		if out.Delete(d.CanonicalKey) {
			changes = append(changes, Change{Provider: d.ID, Key: d.CanonicalKey, Kind: ChangeDelete, Old: cur})
		}
		if d.LegacyAliasKey != "" {
			old, _ := out.Get(d.LegacyAliasKey)
			if out.Delete(d.LegacyAliasKey) {
				changes = append(changes, Change{Provider: d.ID, Key: d.LegacyAliasKey, Kind: ChangeDelete, Old: old})
			}
		}
	}
	return Result{Mapping: out, Changes: changes}
}
