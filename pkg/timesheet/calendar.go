package timesheet

import (
	"strings"

	"tableflip.dev/punch/pkg/entry"
)

// keySep joins the key components. A unit separator cannot appear in
// project, team, or task names.
const keySep = "\x1f"

// RowKey builds the composite key for a (project-or-team, task, billable)
// triple.
func RowKey(group, task string, billable entry.BillableType) string {
	return strings.Join([]string{
		strings.TrimSpace(group),
		strings.TrimSpace(task),
		string(billable),
	}, keySep)
}

func keyOf(e *entry.Entry) string {
	return RowKey(e.GroupRef(), e.Task, e.Billable)
}

// Row is a derived calendar grouping: every entry sharing the row's
// (project-or-team, task, billable) triple, in store order of arrival.
type Row struct {
	Key      string
	Project  string
	Team     string
	Task     string
	Billable entry.BillableType
	Members  []string
}

// GroupRef resolves the row's project-or-team, preferring team.
func (r *Row) GroupRef() string {
	if t := strings.TrimSpace(r.Team); t != "" {
		return t
	}
	return strings.TrimSpace(r.Project)
}

func (r *Row) hasMember(id string) bool {
	for _, m := range r.Members {
		if m == id {
			return true
		}
	}
	return false
}

// appendMember adds id once; appending an existing member is a no-op.
func (r *Row) appendMember(id string) {
	if r.hasMember(id) {
		return
	}
	r.Members = append(r.Members, id)
}

func (r *Row) removeMember(id string) {
	for i, m := range r.Members {
		if m == id {
			r.Members = append(r.Members[:i], r.Members[i+1:]...)
			return
		}
	}
}

func rowFor(e *entry.Entry) *Row {
	return &Row{
		Key:      keyOf(e),
		Project:  strings.TrimSpace(e.Project),
		Team:     strings.TrimSpace(e.Team),
		Task:     strings.TrimSpace(e.Task),
		Billable: e.Billable,
	}
}

// Rows returns the calendar rows in first-seen order. The slice is a copy;
// the rows are the live values.
func (s *Store) Rows() []*Row {
	out := make([]*Row, len(s.rows))
	copy(out, s.rows)
	return out
}

// RowByKey returns the row with the exact composite key.
func (s *Store) RowByKey(key string) (*Row, bool) {
	for _, r := range s.rows {
		if r.Key == key {
			return r, true
		}
	}
	return nil, false
}

// findRow is the two-phase lookup: exact key match first, then a semantic
// match on the triple itself. The fallback tolerates entries that arrive
// holding a display name where the row holds an ID (or vice versa) before
// name resolution completes.
func (s *Store) findRow(group, task string, billable entry.BillableType) *Row {
	key := RowKey(group, task, billable)
	if r, ok := s.RowByKey(key); ok {
		return r
	}
	for _, r := range s.rows {
		if r.Billable == billable &&
			strings.EqualFold(r.GroupRef(), strings.TrimSpace(group)) &&
			strings.EqualFold(r.Task, strings.TrimSpace(task)) {
			return r
		}
	}
	return nil
}

// rebuildRows regroups every non-headless entry by key in first-seen order.
func (s *Store) rebuildRows() {
	s.rows = nil
	for _, e := range s.entries {
		if e.Headless() {
			continue
		}
		if r, ok := s.RowByKey(keyOf(e)); ok {
			r.appendMember(e.ID)
			continue
		}
		r := rowFor(e)
		r.Members = []string{e.ID}
		s.rows = append(s.rows, r)
	}
}

func (s *Store) onInserted(e *entry.Entry) {
	if e.Headless() {
		return
	}
	if r := s.findRow(e.GroupRef(), e.Task, e.Billable); r != nil {
		r.appendMember(e.ID)
		s.unprotect(r.Key)
		return
	}
	r := rowFor(e)
	r.Members = []string{e.ID}
	s.rows = append(s.rows, r)
	s.unprotect(r.Key)
}

// migrate moves an entry between rows after a key-affecting update. The
// headless sides are each skipped individually: headless-to-keyed only
// joins, keyed-to-headless only leaves.
func (s *Store) migrate(e *entry.Entry, oldKey string, oldHeadless bool) {
	newKey := keyOf(e)
	if !oldHeadless && oldKey == newKey && !e.Headless() {
		return
	}
	// A semantically-matched member lives in a row whose key differs from
	// the entry's own old key, so eviction scans membership instead of
	// looking the old row up by key.
	for _, r := range s.rows {
		r.removeMember(e.ID)
	}
	if !e.Headless() {
		s.onInserted(e)
	}
}

// prune drops rows whose member set emptied, keeping the one protected
// placeholder the user is still editing.
func (s *Store) prune() {
	kept := s.rows[:0]
	for _, r := range s.rows {
		if len(r.Members) == 0 && r.Key != s.placeholder {
			continue
		}
		kept = append(kept, r)
	}
	s.rows = kept
}

// unprotect releases the placeholder once its key gains a member.
func (s *Store) unprotect(key string) {
	if s.placeholder == key {
		s.placeholder = ""
	}
}

// AddEmptyRow creates a zero-member placeholder row so the user can start a
// new grouping. If a row with the key already exists it is returned
// unchanged. The newest placeholder is the only one pruning protects.
func (s *Store) AddEmptyRow(project, team, task string, billable entry.BillableType) *Row {
	if billable == "" {
		billable = entry.Billable
	}
	group := strings.TrimSpace(team)
	if group == "" {
		group = strings.TrimSpace(project)
	}
	key := RowKey(group, task, billable)
	if r, ok := s.RowByKey(key); ok {
		return r
	}
	r := &Row{
		Key:      key,
		Project:  strings.TrimSpace(project),
		Team:     strings.TrimSpace(team),
		Task:     strings.TrimSpace(task),
		Billable: billable,
	}
	s.rows = append(s.rows, r)
	s.placeholder = key
	s.prune()
	return r
}

// RenameRow rekeys the row at oldKey with new grouping fields. If another
// row already owns the new key the two merge (idempotent member union into
// the surviving row) and the old row is deleted. Member entries follow the
// new grouping so the rows stay the exact image of the entry list.
func (s *Store) RenameRow(oldKey, project, team, task string, billable entry.BillableType) {
	r, ok := s.RowByKey(oldKey)
	if !ok {
		return
	}
	if billable == "" {
		billable = r.Billable
	}
	// Trim once so the row fields, the member patch, and the key all carry
	// the same values.
	project = strings.TrimSpace(project)
	team = strings.TrimSpace(team)
	task = strings.TrimSpace(task)
	group := team
	if group == "" {
		group = project
	}
	newKey := RowKey(group, task, billable)

	members := append([]string(nil), r.Members...)
	if existing, ok := s.RowByKey(newKey); ok && existing != r {
		for _, id := range members {
			existing.appendMember(id)
		}
		s.removeRow(r)
	} else {
		r.Key = newKey
		r.Project = project
		r.Team = team
		r.Task = task
		r.Billable = billable
	}
	if s.placeholder == oldKey {
		s.placeholder = newKey
	}

	p := Patch{Project: &project, Team: &team, Task: &task, Billable: &billable}
	for _, id := range members {
		if e, ok := s.byID[id]; ok {
			p.apply(e)
		}
	}
	s.prune()
}

// DeleteRow removes the calendar row and every entry logged under it. This
// is the one index operation that mutates the entry list: deleting a
// grouping means deleting its hours.
func (s *Store) DeleteRow(key string) {
	r, ok := s.RowByKey(key)
	if !ok {
		return
	}
	members := append([]string(nil), r.Members...)
	s.removeRow(r)
	if s.placeholder == key {
		s.placeholder = ""
	}
	s.DeleteByIDs(members...)
	s.prune()
}

func (s *Store) removeRow(target *Row) {
	for i, r := range s.rows {
		if r == target {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
			return
		}
	}
}
