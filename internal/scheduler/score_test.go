package scheduler

import (
	"testing"
	"time"

	"github.com/julianstephens/horizon/internal/models"
)

func TestDeadlineFactor(t *testing.T) {
	today := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	due := func(offset int) *time.Time {
		d := today.AddDate(0, 0, offset)
		return &d
	}

	tests := []struct {
		name string
		due  *time.Time
		want float64
	}{
		{"no deadline", nil, 20},
		{"overdue", due(-3), 100},
		{"due yesterday", due(-1), 100},
		{"due today", due(0), 100},
		{"due tomorrow", due(1), 85},
		{"due in 2 days", due(2), 77.5},
		{"due in 3 days", due(3), 70},
		{"due in 5 days", due(5), 60},
		{"due in 7 days", due(7), 50},
		{"due in 14 days", due(14), 30},
		{"due in 16 days", due(16), 29},
		{"due in 74 days", due(74), 0},
		{"due far out", due(365), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := deadlineFactor(tt.due, today); got != tt.want {
				t.Errorf("deadlineFactor = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDeadlineFactorDecreasesWithDistance(t *testing.T) {
	today := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	prev := 101.0
	for offset := 0; offset <= 120; offset++ {
		d := today.AddDate(0, 0, offset)
		got := deadlineFactor(&d, today)
		if got < 0 || got > 100 {
			t.Fatalf("factor out of range at +%d days: %v", offset, got)
		}
		if got > prev {
			t.Fatalf("factor increased at +%d days: %v > %v", offset, got, prev)
		}
		if prev > 0 && got == prev && offset > 0 {
			t.Fatalf("factor plateaued above zero at +%d days: %v", offset, got)
		}
		prev = got
	}
}

func TestPriorityFactor(t *testing.T) {
	want := map[models.Priority]float64{
		models.PriorityLow:       20,
		models.PriorityMedium:    40,
		models.PriorityHigh:      60,
		models.PriorityUrgent:    80,
		models.PriorityEmergency: 100,
	}
	prev := -1.0
	for _, p := range models.Priorities {
		got := priorityFactor(p)
		if got != want[p] {
			t.Errorf("priorityFactor(%s) = %v, want %v", p, got, want[p])
		}
		if got <= prev {
			t.Errorf("priorityFactor not strictly increasing at %s", p)
		}
		prev = got
	}
}

func TestEnergyFactor(t *testing.T) {
	tests := []struct {
		energy models.EnergyLevel
		slot   SlotName
		want   float64
	}{
		{models.EnergyHigh, SlotMorning, 100},
		{models.EnergyHigh, SlotAfternoon, 50},
		{models.EnergyMedium, SlotAfternoon, 100},
		{models.EnergyMedium, SlotEvening, 50},
		{models.EnergyLow, SlotEvening, 100},
		{models.EnergyLow, SlotMorning, 50},
	}
	for _, tt := range tests {
		if got := energyFactor(tt.energy, tt.slot); got != tt.want {
			t.Errorf("energyFactor(%s, %s) = %v, want %v", tt.energy, tt.slot, got, tt.want)
		}
	}
}

func TestTimePreferenceFactor(t *testing.T) {
	tests := []struct {
		pref models.TimePreference
		slot SlotName
		want float64
	}{
		{models.PreferAnytime, SlotMorning, 80},
		{models.PreferAnytime, SlotEvening, 80},
		{models.PreferMorning, SlotMorning, 100},
		{models.PreferMorning, SlotEvening, 30},
		{models.PreferEvening, SlotEvening, 100},
	}
	for _, tt := range tests {
		if got := timePreferenceFactor(tt.pref, tt.slot); got != tt.want {
			t.Errorf("timePreferenceFactor(%s, %s) = %v, want %v", tt.pref, tt.slot, got, tt.want)
		}
	}
}

func TestUrgencyScoreStaysInRange(t *testing.T) {
	today := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	w := DefaultWeights()

	dueOffsets := []int{-10, -1, 0, 1, 7, 30, 100}
	for _, p := range models.Priorities {
		for _, e := range []models.EnergyLevel{models.EnergyLow, models.EnergyMedium, models.EnergyHigh} {
			for _, pref := range []models.TimePreference{models.PreferMorning, models.PreferAfternoon, models.PreferEvening, models.PreferAnytime} {
				for _, slot := range SlotNames {
					check := func(due *time.Time) {
						o := &Occurrence{Priority: p, EnergyLevel: e, TimePreference: pref, DueDate: due}
						score := w.urgencyScore(o, today, slot)
						if score < 0 || score > 100 {
							t.Fatalf("score out of range: %v (priority=%s energy=%s pref=%s slot=%s)",
								score, p, e, pref, slot)
						}
					}
					check(nil)
					for _, off := range dueOffsets {
						d := today.AddDate(0, 0, off)
						check(&d)
					}
				}
			}
		}
	}
}

func TestScoreTaskBreakdown(t *testing.T) {
	engine := New()
	today := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	got, err := engine.ScoreTask(ScoreInput{
		DueDate:        "2026-03-02",
		Priority:       models.PriorityUrgent,
		EnergyLevel:    models.EnergyHigh,
		TimePreference: models.PreferMorning,
	}, today)
	if err != nil {
		t.Fatalf("ScoreTask failed: %v", err)
	}

	// 100*0.40 + 80*0.35 + 100*0.15 + 100*0.10
	if got.UrgencyScore != 93 {
		t.Errorf("UrgencyScore = %v, want 93", got.UrgencyScore)
	}
	if got.Breakdown.DeadlineRaw != 100 || got.Breakdown.DeadlineWeighted != 40 {
		t.Errorf("deadline breakdown = %v/%v, want 100/40", got.Breakdown.DeadlineRaw, got.Breakdown.DeadlineWeighted)
	}
	if got.Recommendation.Slot != SlotMorning {
		t.Errorf("recommended slot = %s, want morning", got.Recommendation.Slot)
	}
	if got.Recommendation.DaysUntilDue == nil || *got.Recommendation.DaysUntilDue != 0 {
		t.Errorf("days until due = %v, want 0", got.Recommendation.DaysUntilDue)
	}
	if got.Recommendation.IsOverdue {
		t.Error("a task due today is not overdue")
	}
}

func TestScoreTaskWithoutDeadline(t *testing.T) {
	engine := New()
	today := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	got, err := engine.ScoreTask(ScoreInput{
		Priority:       models.PriorityLow,
		EnergyLevel:    models.EnergyMedium,
		TimePreference: models.PreferAnytime,
	}, today)
	if err != nil {
		t.Fatalf("ScoreTask failed: %v", err)
	}

	// 20*0.40 + 20*0.35 + 100*0.15 + 80*0.10 against the afternoon slot.
	if got.UrgencyScore != 38 {
		t.Errorf("UrgencyScore = %v, want 38", got.UrgencyScore)
	}
	if got.Recommendation.Slot != SlotAfternoon {
		t.Errorf("recommended slot = %s, want afternoon", got.Recommendation.Slot)
	}
	if got.Recommendation.DaysUntilDue != nil {
		t.Errorf("days until due = %v, want nil", got.Recommendation.DaysUntilDue)
	}
}

func TestScoreTaskRejectsBadDate(t *testing.T) {
	engine := New()
	if _, err := engine.ScoreTask(ScoreInput{DueDate: "soon"}, time.Now()); err == nil {
		t.Error("expected an error for an unparseable due date")
	}
}

func TestPreferredSlot(t *testing.T) {
	tests := []struct {
		pref   models.TimePreference
		energy models.EnergyLevel
		want   SlotName
	}{
		{models.PreferMorning, models.EnergyLow, SlotMorning},
		{models.PreferEvening, models.EnergyHigh, SlotEvening},
		{models.PreferAnytime, models.EnergyHigh, SlotMorning},
		{models.PreferAnytime, models.EnergyMedium, SlotAfternoon},
		{models.PreferAnytime, models.EnergyLow, SlotEvening},
	}
	for _, tt := range tests {
		o := &Occurrence{TimePreference: tt.pref, EnergyLevel: tt.energy}
		if got := preferredSlot(o); got != tt.want {
			t.Errorf("preferredSlot(pref=%s, energy=%s) = %s, want %s", tt.pref, tt.energy, got, tt.want)
		}
	}
}
