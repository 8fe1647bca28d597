package timeutil

import (
	"testing"
)

func TestParseHoursBareNumber(t *testing.T) {
	got, err := ParseHours("1.5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 1.5 {
		t.Fatalf("expected 1.5, got %v", got)
	}
}

func TestParseHoursComposite(t *testing.T) {
	got, err := ParseHours("1h30m")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 1.5 {
		t.Fatalf("expected 1.5, got %v", got)
	}
}

func TestParseHoursMinutesOnly(t *testing.T) {
	got, err := ParseHours("90min")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 1.5 {
		t.Fatalf("expected 1.5, got %v", got)
	}
}

func TestParseHoursWorkingDay(t *testing.T) {
	got, err := ParseHours("1d")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 8 {
		t.Fatalf("expected 8, got %v", got)
	}
}

func TestParseHoursEmpty(t *testing.T) {
	got, err := ParseHours("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
}

func TestParseHoursInvalid(t *testing.T) {
	for _, bad := range []string{"noop", "-2", "3x"} {
		if _, err := ParseHours(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}
