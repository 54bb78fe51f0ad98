package models

// Priority is the five-level urgency scale for a task.
type Priority string

const (
	PriorityLow       Priority = "low"
	PriorityMedium    Priority = "medium"
	PriorityHigh      Priority = "high"
	PriorityUrgent    Priority = "urgent"
	PriorityEmergency Priority = "emergency"
)

// Priorities lists all priority levels from lowest to highest.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent, PriorityEmergency}

// Rank returns the position of the priority on the ordered scale (1 = low).
// Unknown values rank 0 so they sort below every valid level.
func (p Priority) Rank() int {
	switch p {
	case PriorityLow:
		return 1
	case PriorityMedium:
		return 2
	case PriorityHigh:
		return 3
	case PriorityUrgent:
		return 4
	case PriorityEmergency:
		return 5
	default:
		return 0
	}
}

func (p Priority) Valid() bool { return p.Rank() > 0 }

// EnergyLevel describes how much focus a task demands.
type EnergyLevel string

const (
	EnergyLow    EnergyLevel = "low"
	EnergyMedium EnergyLevel = "medium"
	EnergyHigh   EnergyLevel = "high"
)

func (e EnergyLevel) Valid() bool {
	switch e {
	case EnergyLow, EnergyMedium, EnergyHigh:
		return true
	}
	return false
}

// TimePreference is the time-of-day window a task would rather run in.
type TimePreference string

const (
	PreferMorning   TimePreference = "morning"
	PreferAfternoon TimePreference = "afternoon"
	PreferEvening   TimePreference = "evening"
	PreferAnytime   TimePreference = "anytime"
)

func (t TimePreference) Valid() bool {
	switch t {
	case PreferMorning, PreferAfternoon, PreferEvening, PreferAnytime:
		return true
	}
	return false
}

// Repeat is the recurrence pattern of a task.
type Repeat string

const (
	RepeatNone    Repeat = "none"
	RepeatDaily   Repeat = "daily"
	RepeatWeekly  Repeat = "weekly"
	RepeatMonthly Repeat = "monthly"
	RepeatYearly  Repeat = "yearly"
)

func (r Repeat) Valid() bool {
	switch r {
	case RepeatNone, RepeatDaily, RepeatWeekly, RepeatMonthly, RepeatYearly:
		return true
	}
	return false
}

// Task is a schedulable work item. The scheduler borrows tasks read-only;
// it never mutates them.
type Task struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	Project         string         `json:"project,omitempty"`
	DurationMinutes int            `json:"duration_minutes"`
	Priority        Priority       `json:"priority"`
	DueDate         string         `json:"due_date,omitempty"` // YYYY-MM-DD, empty = no deadline
	EnergyLevel     EnergyLevel    `json:"energy_level"`
	TimePreference  TimePreference `json:"time_preference"`
	Repeat          Repeat         `json:"repeat"`
	Completed       bool           `json:"completed"`
	Archived        bool           `json:"archived"`
	DeletedAt       *string        `json:"deleted_at,omitempty"` // RFC3339 timestamp
}

// WithDefaults fills empty enum fields with their documented defaults.
// Unknown non-empty values are left untouched for validation to reject.
func (t Task) WithDefaults() Task {
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	if t.EnergyLevel == "" {
		t.EnergyLevel = EnergyMedium
	}
	if t.TimePreference == "" {
		t.TimePreference = PreferAnytime
	}
	if t.Repeat == "" {
		t.Repeat = RepeatNone
	}
	return t
}

// Schedulable reports whether the task is still open work. Completed,
// archived, and soft-deleted tasks never produce occurrences.
func (t Task) Schedulable() bool {
	return !t.Completed && !t.Archived && t.DeletedAt == nil
}
