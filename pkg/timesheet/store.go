// Package timesheet holds the in-memory reconciliation core: the canonical
// entry list and the calendar rows derived from it. Both views mutate
// synchronously so the UI never waits on the network to reflect an edit.
package timesheet

import (
	"tableflip.dev/punch/pkg/entry"
)

// Store is the canonical list of timesheet entries for the loaded date
// range, plus the derived calendar rows. All operations are total: absent
// IDs are no-ops, never errors. The store is mutated only from the event
// loop that owns it and carries no locking of its own.
type Store struct {
	entries []*entry.Entry
	byID    map[string]*entry.Entry

	rows []*Row

	// placeholder is the key of the one empty row the user is actively
	// editing. Pruning skips it; everything else empty goes away.
	placeholder string
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{byID: make(map[string]*entry.Entry)}
}

// Len returns the number of entries.
func (s *Store) Len() int { return len(s.entries) }

// Entries returns the entries in store order. The slice is a copy; the
// entries are the live values.
func (s *Store) Entries() []*entry.Entry {
	out := make([]*entry.Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Get returns the entry for id.
func (s *Store) Get(id string) (*entry.Entry, bool) {
	e, ok := s.byID[id]
	return e, ok
}

// ReplaceAll swaps in a fresh entry set, typically after a load from the
// remote store, and rebuilds the calendar rows from scratch.
func (s *Store) ReplaceAll(entries []*entry.Entry) {
	s.entries = make([]*entry.Entry, 0, len(entries))
	s.byID = make(map[string]*entry.Entry, len(entries))
	for _, e := range entries {
		if e == nil {
			continue
		}
		cp := e.Clone()
		s.entries = append(s.entries, cp)
		s.byID[cp.ID] = cp
	}
	s.placeholder = ""
	s.rebuildRows()
}

// ClearAll empties the store and the calendar rows.
func (s *Store) ClearAll() {
	s.ReplaceAll(nil)
}

// Insert adds a new entry at the front of the ordering and updates the
// calendar rows incrementally.
func (s *Store) Insert(e *entry.Entry) {
	if e == nil {
		return
	}
	if _, ok := s.byID[e.ID]; ok {
		return
	}
	cp := e.Clone()
	s.entries = append([]*entry.Entry{cp}, s.entries...)
	s.byID[cp.ID] = cp
	s.onInserted(cp)
	s.prune()
}

// UpdateByID merges the patch into the entry matching id. If the patch
// touches key-affecting fields the entry is migrated between calendar rows.
// Unknown IDs are ignored.
func (s *Store) UpdateByID(id string, p Patch) {
	e, ok := s.byID[id]
	if !ok {
		return
	}
	if !p.KeyAffecting() {
		p.apply(e)
		return
	}
	oldKey := keyOf(e)
	oldHeadless := e.Headless()
	p.apply(e)
	s.migrate(e, oldKey, oldHeadless)
	s.prune()
}

// DeleteByIDs removes all matching entries and prunes rows left empty.
func (s *Store) DeleteByIDs(ids ...string) {
	if len(ids) == 0 {
		return
	}
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		if _, ok := s.byID[id]; ok {
			drop[id] = true
			delete(s.byID, id)
		}
	}
	if len(drop) == 0 {
		return
	}
	kept := s.entries[:0]
	for _, e := range s.entries {
		if !drop[e.ID] {
			kept = append(kept, e)
		}
	}
	s.entries = kept
	for _, r := range s.rows {
		for id := range drop {
			r.removeMember(id)
		}
	}
	s.prune()
}

// ReconcileID renames an entry in place after the server assigns its
// durable ID. Row membership follows atomically so the UI never sees the
// entry leave and rejoin its row.
func (s *Store) ReconcileID(oldID, newID string) {
	if oldID == newID || newID == "" {
		return
	}
	e, ok := s.byID[oldID]
	if !ok {
		return
	}
	delete(s.byID, oldID)
	e.ID = newID
	s.byID[newID] = e
	for _, r := range s.rows {
		for i, id := range r.Members {
			if id == oldID {
				r.Members[i] = newID
			}
		}
	}
}

// SetSelected flips the transient selection flag for id.
func (s *Store) SetSelected(id string, selected bool) {
	if e, ok := s.byID[id]; ok {
		e.Selected = selected
	}
}

// Selected returns the entries currently flagged selected, in store order.
func (s *Store) Selected() []*entry.Entry {
	var out []*entry.Entry
	for _, e := range s.entries {
		if e.Selected {
			out = append(out, e)
		}
	}
	return out
}
