package models

import "testing"

func TestWithDefaults(t *testing.T) {
	got := Task{ID: "t1", Name: "t1", DurationMinutes: 30}.WithDefaults()

	if got.Priority != PriorityMedium {
		t.Errorf("Priority = %s, want medium", got.Priority)
	}
	if got.EnergyLevel != EnergyMedium {
		t.Errorf("EnergyLevel = %s, want medium", got.EnergyLevel)
	}
	if got.TimePreference != PreferAnytime {
		t.Errorf("TimePreference = %s, want anytime", got.TimePreference)
	}
	if got.Repeat != RepeatNone {
		t.Errorf("Repeat = %s, want none", got.Repeat)
	}
}

func TestWithDefaultsKeepsUnknownValues(t *testing.T) {
	// Unknown values pass through so validation can reject them explicitly.
	got := Task{Priority: "critical"}.WithDefaults()
	if got.Priority != "critical" {
		t.Errorf("Priority = %s, want the unknown value preserved", got.Priority)
	}
}

func TestPriorityRankOrdering(t *testing.T) {
	prev := 0
	for _, p := range Priorities {
		if p.Rank() <= prev {
			t.Errorf("Rank(%s) = %d, not strictly increasing", p, p.Rank())
		}
		prev = p.Rank()
	}
	if Priority("critical").Rank() != 0 {
		t.Error("unknown priorities must rank 0")
	}
}

func TestEnumValidity(t *testing.T) {
	if !PriorityEmergency.Valid() || Priority("critical").Valid() {
		t.Error("Priority.Valid misclassified a value")
	}
	if !EnergyHigh.Valid() || EnergyLevel("max").Valid() {
		t.Error("EnergyLevel.Valid misclassified a value")
	}
	if !PreferAnytime.Valid() || TimePreference("night").Valid() {
		t.Error("TimePreference.Valid misclassified a value")
	}
	if !RepeatYearly.Valid() || Repeat("fortnightly").Valid() {
		t.Error("Repeat.Valid misclassified a value")
	}
}

func TestSchedulable(t *testing.T) {
	open := Task{ID: "t"}
	if !open.Schedulable() {
		t.Error("an open task must be schedulable")
	}

	done := open
	done.Completed = true
	if done.Schedulable() {
		t.Error("a completed task must not be schedulable")
	}

	archived := open
	archived.Archived = true
	if archived.Schedulable() {
		t.Error("an archived task must not be schedulable")
	}

	ts := "2026-03-01T00:00:00Z"
	deleted := open
	deleted.DeletedAt = &ts
	if deleted.Schedulable() {
		t.Error("a soft-deleted task must not be schedulable")
	}
}
