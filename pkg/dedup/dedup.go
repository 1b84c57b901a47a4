// Package dedup tracks which derived-id entities have already been emitted
// during one import run. The tracker is scoped to a single run and never
// persisted; identity derivation is a pure function of content, so a fresh
// tracker over the same source reproduces the same first-seen decisions.
package dedup

// Kind names an entity class with its own seen set.
type Kind string

const (
	KindLocation     Kind = "location"
	KindPhoneNumber  Kind = "phone_number"
	KindTaxonomyTerm Kind = "taxonomy_term"
)

// Tracker records derived ids seen so far in the current run.
type Tracker struct {
	seen map[Kind]map[string]struct{}
}

// NewTracker creates an empty run-scoped tracker.
func NewTracker() *Tracker {
	return &Tracker{seen: make(map[Kind]map[string]struct{})}
}

// HasBeenSeen reports whether the id was already marked this run.
func (t *Tracker) HasBeenSeen(kind Kind, id string) bool {
	_, ok := t.seen[kind][id]
	return ok
}

// MarkSeen records the id for the rest of the run.
func (t *Tracker) MarkSeen(kind Kind, id string) {
	set, ok := t.seen[kind]
	if !ok {
		set = make(map[string]struct{})
		t.seen[kind] = set
	}
	set[id] = struct{}{}
}

// SeenCount returns how many distinct ids of a kind were marked.
func (t *Tracker) SeenCount(kind Kind) int {
	return len(t.seen[kind])
}
