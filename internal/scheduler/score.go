package scheduler

import (
	"math"
	"time"

	"github.com/julianstephens/horizon/internal/models"
	"github.com/julianstephens/horizon/internal/utils"
)

// Weights configures the relative contribution of each scoring factor.
// The defaults sum to 1.0, which keeps the combined score inside [0,100].
type Weights struct {
	Deadline       float64
	Priority       float64
	Energy         float64
	TimePreference float64
}

// DefaultWeights returns the standard factor weighting.
func DefaultWeights() Weights {
	return Weights{
		Deadline:       0.40,
		Priority:       0.35,
		Energy:         0.15,
		TimePreference: 0.10,
	}
}

const (
	// noDeadlineBaseline is the deadline factor for tasks with no due date.
	noDeadlineBaseline = 20.0
	// energyPartialCredit is the energy factor for any non-natural slot.
	energyPartialCredit = 50.0
	// anytimeBaseline is the time-preference factor for "anytime" tasks.
	anytimeBaseline = 80.0
	// preferenceMismatch is the time-preference factor for the wrong slot.
	preferenceMismatch = 30.0
)

// deadlineAnchors shape the future-date urgency curve: (days until due,
// factor) pairs interpolated linearly. Beyond the last anchor the factor
// tapers half a point per day toward zero, so the curve is strictly
// decreasing over whole-day gaps.
var deadlineAnchors = [][2]float64{
	{0, 100},
	{1, 85},
	{3, 70},
	{7, 50},
	{14, 30},
}

// deadlineFactor scores deadline proximity on [0,100]. Overdue and due-today
// tasks saturate at 100; tasks without a due date sit at a low baseline.
func deadlineFactor(due *time.Time, today time.Time) float64 {
	if due == nil {
		return noDeadlineBaseline
	}
	days := utils.DaysBetween(today, *due)
	if days <= 0 {
		return 100
	}
	d := float64(days)
	for i := 1; i < len(deadlineAnchors); i++ {
		lo, hi := deadlineAnchors[i-1], deadlineAnchors[i]
		if d <= hi[0] {
			frac := (d - lo[0]) / (hi[0] - lo[0])
			return lo[1] + frac*(hi[1]-lo[1])
		}
	}
	last := deadlineAnchors[len(deadlineAnchors)-1]
	v := last[1] - 0.5*(d-last[0])
	if v < 0 {
		return 0
	}
	return v
}

// priorityFactor maps the priority scale onto [0,100], strictly increasing
// with priority level.
func priorityFactor(p models.Priority) float64 {
	switch p {
	case models.PriorityEmergency:
		return 100
	case models.PriorityUrgent:
		return 80
	case models.PriorityHigh:
		return 60
	case models.PriorityLow:
		return 20
	default:
		return 40
	}
}

// energyFactor scores how well the task's energy requirement suits the slot.
func energyFactor(e models.EnergyLevel, slot SlotName) float64 {
	if naturalSlot(e) == slot {
		return 100
	}
	return energyPartialCredit
}

// timePreferenceFactor scores how well the slot honors the task's stated
// time-of-day preference.
func timePreferenceFactor(pref models.TimePreference, slot SlotName) float64 {
	if pref == models.PreferAnytime {
		return anytimeBaseline
	}
	if string(pref) == string(slot) {
		return 100
	}
	return preferenceMismatch
}

// preferredSlot returns the single best slot for an occurrence: its explicit
// time preference when specific, otherwise the natural slot for its energy
// level.
func preferredSlot(o *Occurrence) SlotName {
	switch o.TimePreference {
	case models.PreferMorning:
		return SlotMorning
	case models.PreferAfternoon:
		return SlotAfternoon
	case models.PreferEvening:
		return SlotEvening
	}
	return naturalSlot(o.EnergyLevel)
}

// urgencyScore combines the four weighted factors for a specific candidate
// slot. Pure and deterministic; with the default weights the result is in
// [0,100].
func (w Weights) urgencyScore(o *Occurrence, today time.Time, slot SlotName) float64 {
	return deadlineFactor(o.DueDate, today)*w.Deadline +
		priorityFactor(o.Priority)*w.Priority +
		energyFactor(o.EnergyLevel, slot)*w.Energy +
		timePreferenceFactor(o.TimePreference, slot)*w.TimePreference
}

// rankScore is the score used to order occurrences for placement: the
// urgency score against the occurrence's own best slot.
func (w Weights) rankScore(o *Occurrence, today time.Time) float64 {
	return w.urgencyScore(o, today, preferredSlot(o))
}

// ScoreInput is the ancillary single-task scoring request. DueDate is a
// YYYY-MM-DD string; empty means no deadline.
type ScoreInput struct {
	DueDate        string
	Priority       models.Priority
	EnergyLevel    models.EnergyLevel
	TimePreference models.TimePreference
}

// ScoreBreakdown is the per-factor decomposition returned for UI preview.
type ScoreBreakdown struct {
	UrgencyScore float64 `json:"urgency_score"`
	Breakdown    struct {
		DeadlineWeighted float64 `json:"deadline_factor"`
		DeadlineRaw      float64 `json:"deadline_raw"`
		PriorityWeighted float64 `json:"priority_factor"`
		PriorityRaw      float64 `json:"priority_raw"`
		EnergyWeighted   float64 `json:"energy_match"`
		TimeWeighted     float64 `json:"time_preference"`
	} `json:"breakdown"`
	Recommendation struct {
		Slot         SlotName `json:"slot"`
		DaysUntilDue *int     `json:"days_until_due"`
		IsOverdue    bool     `json:"is_overdue"`
	} `json:"recommendation"`
}

// ScoreTask computes the urgency score and weighted factor breakdown for a
// single task against its recommended slot, relative to today.
func (e *Engine) ScoreTask(in ScoreInput, today time.Time) (ScoreBreakdown, error) {
	var due *time.Time
	if in.DueDate != "" {
		d, err := utils.ParseDate(in.DueDate)
		if err != nil {
			return ScoreBreakdown{}, err
		}
		due = &d
	}
	occ := &Occurrence{
		DueDate:        due,
		Priority:       in.Priority,
		EnergyLevel:    in.EnergyLevel,
		TimePreference: in.TimePreference,
	}
	slot := preferredSlot(occ)

	w := e.weights
	var out ScoreBreakdown
	out.Breakdown.DeadlineRaw = round2(deadlineFactor(due, today))
	out.Breakdown.DeadlineWeighted = round2(out.Breakdown.DeadlineRaw * w.Deadline)
	out.Breakdown.PriorityRaw = round2(priorityFactor(in.Priority))
	out.Breakdown.PriorityWeighted = round2(out.Breakdown.PriorityRaw * w.Priority)
	out.Breakdown.EnergyWeighted = round2(energyFactor(in.EnergyLevel, slot) * w.Energy)
	out.Breakdown.TimeWeighted = round2(timePreferenceFactor(in.TimePreference, slot) * w.TimePreference)
	out.UrgencyScore = round2(w.urgencyScore(occ, today, slot))
	out.Recommendation.Slot = slot
	if due != nil {
		days := utils.DaysBetween(today, *due)
		out.Recommendation.DaysUntilDue = &days
		out.Recommendation.IsOverdue = days < 0
	}
	return out, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
