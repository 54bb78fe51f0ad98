package scheduler

import (
	"encoding/json"
	"math"
	"time"

	"github.com/julianstephens/horizon/internal/models"
	"github.com/julianstephens/horizon/internal/utils"
)

// Occurrence is one concrete, schedulable instance derived from a task for a
// planning run. Non-repeating tasks yield exactly one occurrence; repeating
// tasks yield one per period inside the horizon. An occurrence is consumed
// exactly once: it ends up either in a (day, slot) assignment or in an
// overflow list, never both.
type Occurrence struct {
	ID              string
	TaskID          string
	Name            string
	DurationMinutes int
	Priority        models.Priority
	DueDate         *time.Time // nil = no deadline, eligible every day
	EnergyLevel     models.EnergyLevel
	TimePreference  models.TimePreference
	Recurring       bool

	// Set by the allocator on placement.
	ScheduledDate time.Time
	ScheduledSlot SlotName
	UrgencyScore  float64

	// Position in the expanded input, the final ranking tie-breaker.
	order int
}

// Overdue reports whether the occurrence's due date is strictly before the
// given day. Occurrences without a due date are never overdue.
func (o *Occurrence) Overdue(day time.Time) bool {
	return o.DueDate != nil && o.DueDate.Before(day)
}

// EligibleOn reports whether the occurrence may be placed on the given day:
// its due date is on or before the day, or it has no due date at all.
func (o *Occurrence) EligibleOn(day time.Time) bool {
	return o.DueDate == nil || !o.DueDate.After(day)
}

type occurrenceJSON struct {
	TaskID         string  `json:"task_id"`
	Name           string  `json:"name"`
	Duration       int     `json:"duration"`
	Priority       string  `json:"priority"`
	DueDate        *string `json:"due_date"`
	ScheduledDate  string  `json:"scheduled_date,omitempty"`
	ScheduledSlot  string  `json:"scheduled_slot,omitempty"`
	UrgencyScore   float64 `json:"urgency_score"`
	IsRecurring    bool    `json:"is_recurring_instance"`
	OriginalTaskID string  `json:"original_task_id,omitempty"`
	EnergyLevel    string  `json:"energy_level"`
	TimePreference string  `json:"time_preference"`
}

func (o *Occurrence) MarshalJSON() ([]byte, error) {
	out := occurrenceJSON{
		TaskID:         o.ID,
		Name:           o.Name,
		Duration:       o.DurationMinutes,
		Priority:       string(o.Priority),
		UrgencyScore:   math.Round(o.UrgencyScore*100) / 100,
		IsRecurring:    o.Recurring,
		EnergyLevel:    string(o.EnergyLevel),
		TimePreference: string(o.TimePreference),
	}
	if o.DueDate != nil {
		due := utils.FormatDate(*o.DueDate)
		out.DueDate = &due
	}
	if !o.ScheduledDate.IsZero() {
		out.ScheduledDate = utils.FormatDate(o.ScheduledDate)
		out.ScheduledSlot = string(o.ScheduledSlot)
	}
	if o.Recurring {
		out.OriginalTaskID = o.TaskID
	}
	return json.Marshal(out)
}
