package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"tableflip.dev/punch/pkg/api"
	"tableflip.dev/punch/pkg/entry"
	"tableflip.dev/punch/pkg/timesheet"
)

func ptr[T any](v T) *T { return &v }

// fakeClient records every call and serves canned data.
type fakeClient struct {
	mu sync.Mutex

	listEntries []*entry.Entry
	listErr     error
	createErr   error
	serverID    string
	updateErr   error

	updates []updateCall
	submits [][]string
	deletes [][]string
	creates []*entry.Entry
}

type updateCall struct {
	id     string
	fields map[string]any
}

func (f *fakeClient) ListEntries(_ context.Context, _, _ time.Time) ([]*entry.Entry, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listEntries, nil
}

func (f *fakeClient) CreateEntry(_ context.Context, e *entry.Entry) (*entry.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.creates = append(f.creates, e.Clone())
	created := e.Clone()
	if f.serverID != "" {
		created.ID = f.serverID
	}
	return created, nil
}

func (f *fakeClient) UpdateEntry(_ context.Context, id string, fields map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	cp := make(map[string]any, len(fields))
	for k, v := range fields {
		cp[k] = v
	}
	f.updates = append(f.updates, updateCall{id: id, fields: cp})
	return nil
}

func (f *fakeClient) SubmitEntries(_ context.Context, ids []string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submits = append(f.submits, append([]string(nil), ids...))
	return len(ids), nil
}

func (f *fakeClient) DeleteEntries(_ context.Context, ids []string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, append([]string(nil), ids...))
	return len(ids), nil
}

func (f *fakeClient) ListTasks(_ context.Context, group string) ([]api.Task, error) {
	return []api.Task{{ID: "t1", Name: "Design", Group: group}}, nil
}

func (f *fakeClient) CreateTask(_ context.Context, group, name string) (api.Task, error) {
	return api.Task{ID: "t2", Name: name, Group: group}, nil
}

func (f *fakeClient) updateCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.updates)
}

func (f *fakeClient) lastUpdate() updateCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.updates[len(f.updates)-1]
}

var monday = time.Date(2026, 2, 23, 0, 0, 0, 0, time.UTC)

func draft(id string, hours float64) *entry.Entry {
	return &entry.Entry{
		ID:       id,
		Date:     monday,
		Project:  "acme",
		Task:     "design",
		Hours:    hours,
		Billable: entry.Billable,
		Status:   entry.StatusDraft,
	}
}

func newTestService(fc *fakeClient) *Service {
	return NewService(fc, WithDelay(20*time.Millisecond))
}

func TestLoadWeekPopulatesStore(t *testing.T) {
	fc := &fakeClient{listEntries: []*entry.Entry{draft("e1", 2), draft("e2", 3)}}
	s := newTestService(fc)

	if err := s.LoadWeek(context.Background(), monday); err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.Store.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", s.Store.Len())
	}
	if len(s.Store.Rows()) != 1 {
		t.Fatalf("expected one calendar row, got %d", len(s.Store.Rows()))
	}
}

func TestLoadWeekFailureKeepsError(t *testing.T) {
	fc := &fakeClient{listErr: errors.New("unreachable")}
	s := newTestService(fc)
	if err := s.LoadWeek(context.Background(), monday); err == nil {
		t.Fatalf("expected load error")
	}
}

func TestNewEntryReconcilesServerID(t *testing.T) {
	fc := &fakeClient{serverID: "srv-9"}
	s := newTestService(fc)

	e, err := s.NewEntry(context.Background(), monday, "acme", "", "design", 2)
	if err != nil {
		t.Fatalf("new entry: %v", err)
	}
	if e.ID != "srv-9" {
		t.Fatalf("expected server ID, got %q", e.ID)
	}
	if _, ok := s.Store.Get("srv-9"); !ok {
		t.Fatalf("server ID not resolvable in store")
	}
	rows := s.Store.Rows()
	if len(rows) != 1 || rows[0].Members[0] != "srv-9" {
		t.Fatalf("row membership did not follow the rename: %+v", rows)
	}
}

func TestNewEntryKeepsOptimisticRowOnFailure(t *testing.T) {
	fc := &fakeClient{createErr: errors.New("boom")}
	s := newTestService(fc)

	e, err := s.NewEntry(context.Background(), monday, "acme", "", "design", 2)
	if err == nil {
		t.Fatalf("expected create error")
	}
	if _, ok := s.Store.Get(e.ID); !ok {
		t.Fatalf("optimistic entry rolled back on remote failure")
	}
}

func TestStageEditDebouncesNonStructuralFields(t *testing.T) {
	fc := &fakeClient{listEntries: []*entry.Entry{draft("e1", 2)}}
	s := newTestService(fc)
	_ = s.LoadWeek(context.Background(), monday)

	if err := s.StageEdit(context.Background(), "e1", timesheet.Patch{Hours: ptr(3.0)}); err != nil {
		t.Fatalf("stage: %v", err)
	}
	if err := s.StageEdit(context.Background(), "e1", timesheet.Patch{Description: ptr("x")}); err != nil {
		t.Fatalf("stage: %v", err)
	}

	// Local state reflects both edits immediately.
	e, _ := s.Store.Get("e1")
	if e.Hours != 3 || e.Description != "x" {
		t.Fatalf("optimistic update missing: %+v", e)
	}
	if fc.updateCount() != 0 {
		t.Fatalf("non-structural edit flushed before the idle window")
	}

	deadline := time.Now().Add(2 * time.Second)
	for fc.updateCount() < 1 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	time.Sleep(60 * time.Millisecond)
	if got := fc.updateCount(); got != 1 {
		t.Fatalf("expected one coalesced flush, got %d", got)
	}
	call := fc.lastUpdate()
	if call.fields["hours"] != 3.0 || call.fields["description"] != "x" {
		t.Fatalf("batch not coalesced: %v", call.fields)
	}
}

func TestStageEditStructuralBypassesDebounce(t *testing.T) {
	fc := &fakeClient{listEntries: []*entry.Entry{draft("e1", 2)}}
	s := newTestService(fc)
	_ = s.LoadWeek(context.Background(), monday)

	// A staged description for the old grouping becomes meaningless once
	// the project changes; it is dropped, not replayed.
	_ = s.StageEdit(context.Background(), "e1", timesheet.Patch{Description: ptr("stale")})
	if err := s.StageEdit(context.Background(), "e1", timesheet.Patch{Project: ptr("globex"), Task: ptr("audit")}); err != nil {
		t.Fatalf("structural stage: %v", err)
	}

	if got := fc.updateCount(); got != 1 {
		t.Fatalf("structural edit should flush immediately, got %d calls", got)
	}
	call := fc.lastUpdate()
	if call.fields["project"] != "globex" || call.fields["task"] != "audit" {
		t.Fatalf("unexpected structural payload: %v", call.fields)
	}
	if _, stale := call.fields["description"]; stale {
		t.Fatalf("stale staged fields leaked into the structural request")
	}

	time.Sleep(80 * time.Millisecond)
	if got := fc.updateCount(); got != 1 {
		t.Fatalf("cancelled batch flushed anyway: %d calls", got)
	}
}

func TestStageEditReadOnly(t *testing.T) {
	locked := draft("e1", 2)
	locked.Status = entry.StatusPending
	fc := &fakeClient{listEntries: []*entry.Entry{locked}}
	s := newTestService(fc)
	_ = s.LoadWeek(context.Background(), monday)

	err := s.StageEdit(context.Background(), "e1", timesheet.Patch{Hours: ptr(9.0)})
	if !errors.Is(err, ErrReadOnly) {
		t.Fatalf("expected ErrReadOnly, got %v", err)
	}
	if e, _ := s.Store.Get("e1"); e.Hours != 2 {
		t.Fatalf("read-only entry mutated: %v", e.Hours)
	}
}

func TestStageEditAbsentIDIsNoop(t *testing.T) {
	fc := &fakeClient{}
	s := newTestService(fc)
	if err := s.StageEdit(context.Background(), "ghost", timesheet.Patch{Hours: ptr(1.0)}); err != nil {
		t.Fatalf("absent ID should be a no-op, got %v", err)
	}
}

func TestSubmitSelectedFiltersUnsubmittable(t *testing.T) {
	zero := draft("e0", 0)
	good := draft("e1", 3)
	fc := &fakeClient{listEntries: []*entry.Entry{zero, good}}
	s := newTestService(fc)
	_ = s.LoadWeek(context.Background(), monday)
	s.ToggleSelected("e0")
	s.ToggleSelected("e1")

	count, err := s.SubmitSelected(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected count 1, got %d", count)
	}
	if e, _ := s.Store.Get("e1"); e.Status != entry.StatusPending {
		t.Fatalf("qualifying entry not transitioned: %v", e.Status)
	}
	if e, _ := s.Store.Get("e0"); e.Status != entry.StatusDraft {
		t.Fatalf("zero-hour entry transitioned: %v", e.Status)
	}
	if len(fc.submits) != 1 || len(fc.submits[0]) != 1 || fc.submits[0][0] != "e1" {
		t.Fatalf("unexpected remote submit: %v", fc.submits)
	}
}

func TestSubmitWeekScopesToWindow(t *testing.T) {
	inWindow := draft("e1", 3)
	outside := draft("e2", 4)
	outside.Date = monday.AddDate(0, 0, 14)
	fc := &fakeClient{listEntries: []*entry.Entry{inWindow, outside}}
	s := newTestService(fc)
	_ = s.LoadWeek(context.Background(), monday)

	count, err := s.SubmitWeek(context.Background())
	if err != nil {
		t.Fatalf("submit week: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected only the in-window entry, got %d", count)
	}
	if e, _ := s.Store.Get("e2"); e.Status != entry.StatusDraft {
		t.Fatalf("out-of-window entry transitioned: %v", e.Status)
	}
}

func TestDeleteSelectedRestrictsToEditable(t *testing.T) {
	pending := draft("e1", 2)
	pending.Status = entry.StatusPending
	editable := draft("e2", 3)
	fc := &fakeClient{listEntries: []*entry.Entry{pending, editable}}
	s := newTestService(fc)
	_ = s.LoadWeek(context.Background(), monday)
	s.ToggleSelected("e1")
	s.ToggleSelected("e2")

	count, err := s.DeleteSelected(context.Background())
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected count 1, got %d", count)
	}
	if _, ok := s.Store.Get("e1"); !ok {
		t.Fatalf("pending entry deleted")
	}
	if _, ok := s.Store.Get("e2"); ok {
		t.Fatalf("editable entry survived delete")
	}
}

func TestDeleteRowCascades(t *testing.T) {
	fc := &fakeClient{listEntries: []*entry.Entry{draft("e1", 2), draft("e2", 3)}}
	s := newTestService(fc)
	_ = s.LoadWeek(context.Background(), monday)

	key := timesheet.RowKey("acme", "design", entry.Billable)
	count, err := s.DeleteRow(context.Background(), key)
	if err != nil {
		t.Fatalf("delete row: %v", err)
	}
	if count != 2 || s.Store.Len() != 0 {
		t.Fatalf("expected both entries gone, count=%d len=%d", count, s.Store.Len())
	}
	if len(fc.deletes) != 1 || len(fc.deletes[0]) != 2 {
		t.Fatalf("remote delete not cascaded: %v", fc.deletes)
	}
}

func TestSummarize(t *testing.T) {
	e1 := draft("e1", 2)
	e2 := draft("e2", 3)
	e2.Date = monday.AddDate(0, 0, 2) // Wednesday
	fc := &fakeClient{listEntries: []*entry.Entry{e1, e2}}
	s := newTestService(fc)
	_ = s.LoadWeek(context.Background(), monday)

	sum := s.Summarize()
	if len(sum.Rows) != 1 {
		t.Fatalf("expected one summary row, got %d", len(sum.Rows))
	}
	// Monday is index 1 in a Sunday-anchored week.
	if sum.Rows[0].DayHours[1] != 2 || sum.Rows[0].DayHours[3] != 3 {
		t.Fatalf("unexpected day spread: %v", sum.Rows[0].DayHours)
	}
	if sum.Total != 5 || sum.Rows[0].Total != 5 {
		t.Fatalf("unexpected totals: %v / %v", sum.Total, sum.Rows[0].Total)
	}
}
