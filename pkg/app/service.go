// Package app provides the high-level timesheet operations shared by the
// CLI and the TUI: loading weeks, staging edits, and the submit/delete
// workflow. It wires the in-memory store, the debounce engine, and the
// remote client together so surfaces never talk to more than one thing.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tableflip.dev/punch/pkg/api"
	"tableflip.dev/punch/pkg/cache"
	"tableflip.dev/punch/pkg/debounce"
	"tableflip.dev/punch/pkg/entry"
	"tableflip.dev/punch/pkg/timesheet"
	"tableflip.dev/punch/pkg/week"
)

// ErrReadOnly is returned when the user edits an entry the workflow has
// locked (pending or approved).
var ErrReadOnly = errors.New("app: entry is pending or approved and read-only")

// Service owns the reconciliation core for one user session.
type Service struct {
	Client api.Client
	Store  *timesheet.Store
	Engine *debounce.Engine
	Window week.Window

	cache *cache.Cache
}

// Option customises service construction.
type Option func(*options)

type options struct {
	delay   time.Duration
	cache   *cache.Cache
	onError func(id string, err error)
}

// WithDelay overrides the debounce window for field edits.
func WithDelay(d time.Duration) Option {
	return func(o *options) { o.delay = d }
}

// WithCache attaches an offline snapshot of the loaded entries.
func WithCache(c *cache.Cache) Option {
	return func(o *options) { o.cache = c }
}

// WithFlushErrorHandler installs the callback surfaced when a background
// flush fails. Local state is never rolled back; this is notification only.
func WithFlushErrorHandler(fn func(id string, err error)) Option {
	return func(o *options) { o.onError = fn }
}

// NewService builds a service around the given client.
func NewService(client api.Client, opts ...Option) *Service {
	o := &options{delay: debounce.DefaultDelay}
	for _, opt := range opts {
		opt(o)
	}
	s := &Service{
		Client: client,
		Store:  timesheet.NewStore(),
		Window: week.NewWindow(time.Now()),
		cache:  o.cache,
	}
	engineOpts := []debounce.Option{debounce.WithDelay(o.delay)}
	if o.onError != nil {
		engineOpts = append(engineOpts, debounce.WithErrorHandler(o.onError))
	}
	s.Engine = debounce.NewEngine(debounce.FlusherFunc(
		func(ctx context.Context, id string, fields map[string]any) error {
			return client.UpdateEntry(ctx, id, fields)
		}), engineOpts...)
	return s
}

// LoadWeek fetches the entries for the week containing anchor and replaces
// the store contents. On a transport failure the last cached snapshot, if
// any, is shown instead and the error is returned for the caller to
// surface.
func (s *Service) LoadWeek(ctx context.Context, anchor time.Time) error {
	s.Window = week.NewWindow(anchor)
	entries, err := s.Client.ListEntries(ctx, s.Window.Anchor, s.Window.End())
	if err != nil {
		if s.cache != nil {
			if cached, cacheErr := s.cache.List(ctx); cacheErr == nil {
				s.Store.ReplaceAll(s.filterWindow(cached))
			}
		}
		return fmt.Errorf("app: loading week: %w", err)
	}
	s.Store.ReplaceAll(entries)
	if s.cache != nil {
		_ = s.cache.ReplaceAll(entries)
	}
	return nil
}

// PreviousWeek navigates one week back and reloads.
func (s *Service) PreviousWeek(ctx context.Context) error {
	return s.LoadWeek(ctx, week.Previous(s.Window.Anchor))
}

// NextWeek navigates one week forward and reloads.
func (s *Service) NextWeek(ctx context.Context) error {
	return s.LoadWeek(ctx, week.Next(s.Window.Anchor))
}

// NewEntry creates a draft entry, inserts it optimistically, and persists
// it. When the server assigns a different ID the local entry is renamed in
// place so row membership survives without flicker.
func (s *Service) NewEntry(ctx context.Context, date time.Time, project, team, task string, hours float64) (*entry.Entry, error) {
	e := entry.New(date, project, team, task)
	e.Hours = hours
	s.Store.Insert(e)
	s.cachePut(e.ID)

	created, err := s.Client.CreateEntry(ctx, e)
	if err != nil {
		// The optimistic row stays; retry is a manual re-edit.
		return e, fmt.Errorf("app: creating entry: %w", err)
	}
	if created != nil && created.ID != "" && created.ID != e.ID {
		s.Store.ReconcileID(e.ID, created.ID)
		if s.cache != nil {
			_ = s.cache.Delete(ctx, e.ID)
		}
		s.cachePut(created.ID)
	}
	got, _ := s.Store.Get(createdID(created, e))
	return got, nil
}

func createdID(created *entry.Entry, fallback *entry.Entry) string {
	if created != nil && created.ID != "" {
		return created.ID
	}
	return fallback.ID
}

// AddRow creates an explicit empty calendar row for starting a new
// grouping. Purely local; nothing syncs until an entry lands in it.
func (s *Service) AddRow(project, team, task string, billable entry.BillableType) *timesheet.Row {
	return s.Store.AddEmptyRow(project, team, task, billable)
}

// StageEdit applies the patch to local state immediately and schedules the
// remote write. Structural changes (project/team/task) cancel whatever was
// staged for the old grouping and go out at once as their own request;
// everything else debounces.
func (s *Service) StageEdit(ctx context.Context, id string, p timesheet.Patch) error {
	e, ok := s.Store.Get(id)
	if !ok {
		return nil
	}
	if !e.Editable() {
		return ErrReadOnly
	}
	s.Store.UpdateByID(id, p)
	s.cachePut(id)

	if p.Structural() {
		s.Engine.Cancel(id)
		if err := s.Client.UpdateEntry(ctx, id, p.Fields()); err != nil {
			return fmt.Errorf("app: reassigning entry: %w", err)
		}
		return nil
	}
	s.Engine.Stage(id, p.Fields())
	return nil
}

// ToggleSelected flips an entry's selection flag.
func (s *Service) ToggleSelected(id string) {
	if e, ok := s.Store.Get(id); ok {
		s.Store.SetSelected(id, !e.Selected)
	}
}

// SubmitSelected submits the selected entries that qualify and reports how
// many transitioned. Unqualified entries are skipped silently.
func (s *Service) SubmitSelected(ctx context.Context) (int, error) {
	return s.submit(ctx, s.Store.Selected())
}

// SubmitWeek submits every qualifying entry in the active window,
// regardless of selection.
func (s *Service) SubmitWeek(ctx context.Context) (int, error) {
	var scoped []*entry.Entry
	for _, e := range s.Store.Entries() {
		if s.Window.Contains(e.Date) {
			scoped = append(scoped, e)
		}
	}
	return s.submit(ctx, scoped)
}

func (s *Service) submit(ctx context.Context, candidates []*entry.Entry) (int, error) {
	pending := entry.StatusPending
	var ids []string
	for _, e := range candidates {
		if e.Submittable() {
			ids = append(ids, e.ID)
		}
	}
	if len(ids) == 0 {
		return 0, nil
	}
	for _, id := range ids {
		// Flush any half-typed edits so the server reviews what the user sees.
		_ = s.Engine.Flush(ctx, id)
		s.Store.UpdateByID(id, timesheet.Patch{Status: &pending})
		s.cachePut(id)
	}
	if _, err := s.Client.SubmitEntries(ctx, ids); err != nil {
		return len(ids), fmt.Errorf("app: submitting entries: %w", err)
	}
	return len(ids), nil
}

// DeleteSelected deletes the selected entries still in an editable status
// and reports how many went. Locked entries are skipped silently.
func (s *Service) DeleteSelected(ctx context.Context) (int, error) {
	var ids []string
	for _, e := range s.Store.Selected() {
		if e.Editable() {
			ids = append(ids, e.ID)
		}
	}
	return s.delete(ctx, ids)
}

// DeleteRow removes a calendar row and all entries logged under it.
func (s *Service) DeleteRow(ctx context.Context, key string) (int, error) {
	row, ok := s.Store.RowByKey(key)
	if !ok {
		return 0, nil
	}
	ids := append([]string(nil), row.Members...)
	s.Store.DeleteRow(key)
	return s.deleteRemote(ctx, ids)
}

func (s *Service) delete(ctx context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	for _, id := range ids {
		s.Engine.Cancel(id)
	}
	s.Store.DeleteByIDs(ids...)
	return s.deleteRemote(ctx, ids)
}

func (s *Service) deleteRemote(ctx context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	for _, id := range ids {
		s.Engine.Cancel(id)
		if s.cache != nil {
			_ = s.cache.Delete(ctx, id)
		}
	}
	if _, err := s.Client.DeleteEntries(ctx, ids); err != nil {
		return len(ids), fmt.Errorf("app: deleting entries: %w", err)
	}
	return len(ids), nil
}

// Tasks lists the tasks known under a project or team.
func (s *Service) Tasks(ctx context.Context, group string) ([]api.Task, error) {
	return s.Client.ListTasks(ctx, group)
}

// CreateTask registers a new task under a project or team.
func (s *Service) CreateTask(ctx context.Context, group, name string) (api.Task, error) {
	return s.Client.CreateTask(ctx, group, name)
}

// Cache exposes the offline snapshot, if one is attached.
func (s *Service) Cache() *cache.Cache {
	return s.cache
}

// Close drains pending batches before shutdown.
func (s *Service) Close(ctx context.Context) error {
	return s.Engine.FlushAll(ctx)
}

func (s *Service) cachePut(id string) {
	if s.cache == nil {
		return
	}
	if e, ok := s.Store.Get(id); ok {
		_ = s.cache.Put(e)
	}
}

func (s *Service) filterWindow(entries []*entry.Entry) []*entry.Entry {
	var out []*entry.Entry
	for _, e := range entries {
		if s.Window.Contains(e.Date) {
			out = append(out, e)
		}
	}
	return out
}
