package timesheet

import (
	"strings"
	"testing"

	"tableflip.dev/punch/pkg/entry"
)

func TestRowKeyPrefersTeamAndTrims(t *testing.T) {
	key := RowKey(" platform ", " design ", entry.Billable)
	want := "platform" + keySep + "design" + keySep + "billable"
	if key != want {
		t.Fatalf("RowKey = %q, want %q", key, want)
	}
	if strings.Contains("platform", keySep) {
		t.Fatalf("separator leaked into a component")
	}
}

func TestAddEmptyRowScenario(t *testing.T) {
	// Load zero entries, add an explicit placeholder: exactly one
	// zero-member row keyed by the default billable type.
	s := NewStore()
	s.ReplaceAll(nil)
	s.AddEmptyRow("Acme", "", "Design", "")

	rows := s.Rows()
	if len(rows) != 1 {
		t.Fatalf("expected one placeholder row, got %d", len(rows))
	}
	r := rows[0]
	if len(r.Members) != 0 {
		t.Fatalf("placeholder should have no members: %v", r.Members)
	}
	if r.Key != RowKey("Acme", "Design", entry.Billable) {
		t.Fatalf("unexpected key %q", r.Key)
	}
}

func TestAddEmptyRowDuplicateIsNoop(t *testing.T) {
	s := NewStore()
	s.AddEmptyRow("Acme", "", "Design", entry.Billable)
	s.AddEmptyRow("Acme", "", "Design", entry.Billable)
	if rows := s.Rows(); len(rows) != 1 {
		t.Fatalf("duplicate placeholder created: %d rows", len(rows))
	}
}

func TestInsertAbsorbsPlaceholder(t *testing.T) {
	s := NewStore()
	s.AddEmptyRow("Acme", "", "Design", entry.Billable)

	e := testEntry("e1", "Acme", "Design", 2)
	s.Insert(e)

	rows := s.Rows()
	if len(rows) != 1 {
		t.Fatalf("expected placeholder absorbed, got %d rows", len(rows))
	}
	if got := rows[0].Members; len(got) != 1 || got[0] != "e1" {
		t.Fatalf("unexpected members: %v", got)
	}
}

func TestNewPlaceholderAbandonsOldOne(t *testing.T) {
	s := NewStore()
	s.AddEmptyRow("Acme", "", "Design", entry.Billable)
	s.AddEmptyRow("Acme", "", "Build", entry.Billable)

	rows := s.Rows()
	if len(rows) != 1 || rows[0].Task != "Build" {
		t.Fatalf("expected the abandoned placeholder pruned, got %+v", rows)
	}
}

func TestPlaceholderSurvivesUnrelatedMutations(t *testing.T) {
	s := NewStore()
	s.ReplaceAll([]*entry.Entry{testEntry("e1", "acme", "build", 1)})
	s.AddEmptyRow("Acme", "", "Design", entry.Billable)

	s.UpdateByID("e1", Patch{Hours: ptr(2.0)})
	s.Insert(testEntry("e2", "acme", "build", 1))

	if _, ok := s.RowByKey(RowKey("Acme", "Design", entry.Billable)); !ok {
		t.Fatalf("active placeholder was pruned by unrelated mutations")
	}
}

func TestSemanticMatchToleratesCaseDrift(t *testing.T) {
	// An entry can arrive holding a display-name spelling while the row was
	// created from another representation; the fallback matcher keeps them
	// in one row instead of forking a duplicate grouping.
	s := NewStore()
	s.ReplaceAll([]*entry.Entry{testEntry("e1", "Acme", "Design", 2)})
	s.Insert(testEntry("e2", "acme", "design", 1))

	rows := s.Rows()
	if len(rows) != 1 {
		t.Fatalf("semantic match failed, got %d rows", len(rows))
	}
	if !rows[0].hasMember("e1") || !rows[0].hasMember("e2") {
		t.Fatalf("unexpected members: %v", rows[0].Members)
	}
}

func TestMigrateEvictsSemanticallyMatchedMember(t *testing.T) {
	// e2 joins e1's row through the fallback matcher, so its own key never
	// equals the row's. A later key change must still pull it out of that
	// row, not just out of a row keyed by its old spelling.
	s := NewStore()
	s.ReplaceAll([]*entry.Entry{testEntry("e1", "Acme", "Design", 2)})
	s.Insert(testEntry("e2", "acme", "design", 1))

	s.UpdateByID("e2", Patch{Task: ptr("build")})

	var holding []*Row
	for _, r := range s.Rows() {
		if r.hasMember("e2") {
			holding = append(holding, r)
		}
	}
	if len(holding) != 1 {
		t.Fatalf("e2 held by %d rows after migration, want 1", len(holding))
	}
	if holding[0].Task != "build" {
		t.Fatalf("e2 landed in row %q, want the build row", holding[0].Key)
	}
	original, ok := s.RowByKey(RowKey("Acme", "Design", entry.Billable))
	if !ok {
		t.Fatal("original row gone; e1 should keep it alive")
	}
	if original.hasMember("e2") || !original.hasMember("e1") {
		t.Fatalf("unexpected original row members: %v", original.Members)
	}
	checkConsistency(t, s)
}

func TestAppendMemberIdempotent(t *testing.T) {
	r := &Row{Key: "k"}
	r.appendMember("e1")
	r.appendMember("e1")
	if len(r.Members) != 1 {
		t.Fatalf("duplicate member appended: %v", r.Members)
	}
}

func TestRenameRowInPlace(t *testing.T) {
	s := NewStore()
	s.ReplaceAll([]*entry.Entry{testEntry("e1", "acme", "design", 2)})
	oldKey := s.Rows()[0].Key

	s.RenameRow(oldKey, "acme", "", "research", entry.Billable)

	rows := s.Rows()
	if len(rows) != 1 || rows[0].Task != "research" {
		t.Fatalf("expected in-place rename, got %+v", rows)
	}
	e, _ := s.Get("e1")
	if e.Task != "research" {
		t.Fatalf("member entry did not follow the rename: %+v", e)
	}
	checkConsistency(t, s)
}

func TestRenameRowMergesIntoExisting(t *testing.T) {
	s := NewStore()
	s.ReplaceAll([]*entry.Entry{
		testEntry("e1", "acme", "design", 2),
		testEntry("e2", "acme", "build", 1),
	})
	designKey := RowKey("acme", "design", entry.Billable)

	s.RenameRow(designKey, "acme", "", "build", entry.Billable)

	rows := s.Rows()
	if len(rows) != 1 {
		t.Fatalf("expected merged single row, got %d", len(rows))
	}
	if got := rows[0].Members; len(got) != 2 {
		t.Fatalf("expected idempotent union of members, got %v", got)
	}
	e, _ := s.Get("e1")
	if e.Task != "build" {
		t.Fatalf("moved entry did not adopt the target grouping: %+v", e)
	}
	checkConsistency(t, s)
}

func TestRenameRowTrimsPaddedFields(t *testing.T) {
	s := NewStore()
	s.ReplaceAll([]*entry.Entry{testEntry("e1", "acme", "design", 2)})
	oldKey := s.Rows()[0].Key

	s.RenameRow(oldKey, " acme ", "", " research ", entry.Billable)

	row := s.Rows()[0]
	if row.Task != "research" || row.Project != "acme" {
		t.Fatalf("row kept padding: %+v", row)
	}
	e, _ := s.Get("e1")
	if e.Task != "research" || e.Project != "acme" {
		t.Fatalf("member entry kept padding: %+v", e)
	}
	if keyOf(e) != row.Key {
		t.Fatalf("entry key %q diverged from row key %q", keyOf(e), row.Key)
	}
	checkConsistency(t, s)
}

func TestRenameRowAbsentKeyIsNoop(t *testing.T) {
	s := NewStore()
	s.ReplaceAll([]*entry.Entry{testEntry("e1", "acme", "design", 2)})
	s.RenameRow("no-such-key", "x", "", "y", entry.Billable)
	if rows := s.Rows(); len(rows) != 1 || rows[0].Task != "design" {
		t.Fatalf("store mutated by absent-key rename: %+v", rows)
	}
}

func TestDeleteRowCascadesEntries(t *testing.T) {
	s := NewStore()
	s.ReplaceAll([]*entry.Entry{
		testEntry("e1", "acme", "design", 2),
		testEntry("e2", "acme", "design", 1),
		testEntry("e3", "acme", "build", 4),
	})

	s.DeleteRow(RowKey("acme", "design", entry.Billable))

	if s.Len() != 1 {
		t.Fatalf("expected cascade to delete member entries, %d left", s.Len())
	}
	if _, ok := s.Get("e3"); !ok {
		t.Fatalf("unrelated entry deleted")
	}
	if rows := s.Rows(); len(rows) != 1 || rows[0].Task != "build" {
		t.Fatalf("unexpected rows after delete: %+v", rows)
	}
	checkConsistency(t, s)
}
