package scheduler

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/julianstephens/horizon/internal/constants"
	"github.com/julianstephens/horizon/internal/models"
	"github.com/julianstephens/horizon/internal/utils"
)

// SlotName identifies one of the three fixed daily time windows.
type SlotName string

const (
	SlotMorning   SlotName = "morning"
	SlotAfternoon SlotName = "afternoon"
	SlotEvening   SlotName = "evening"
)

// SlotNames lists the slots in their within-day order.
var SlotNames = []SlotName{SlotMorning, SlotAfternoon, SlotEvening}

// fallbackOrder is the fixed order in which slots are tried after an
// occurrence's preferred slot is full.
var fallbackOrder = []SlotName{SlotAfternoon, SlotMorning, SlotEvening}

func (s SlotName) Valid() bool {
	switch s {
	case SlotMorning, SlotAfternoon, SlotEvening:
		return true
	}
	return false
}

// Window returns the slot's clock range (HH:MM strings).
func (s SlotName) Window() (start, end string) {
	switch s {
	case SlotMorning:
		return constants.MorningStart, constants.MorningEnd
	case SlotAfternoon:
		return constants.AfternoonStart, constants.AfternoonEnd
	case SlotEvening:
		return constants.EveningStart, constants.EveningEnd
	}
	return "", ""
}

// naturalSlot is the slot whose energy profile matches the given energy
// level: peak focus in the morning, steady work in the afternoon, wind-down
// in the evening.
func naturalSlot(e models.EnergyLevel) SlotName {
	switch e {
	case models.EnergyHigh:
		return SlotMorning
	case models.EnergyLow:
		return SlotEvening
	default:
		return SlotAfternoon
	}
}

// Capacities holds the per-slot capacity in minutes for one planning run.
type Capacities struct {
	Morning   int
	Afternoon int
	Evening   int
}

// DefaultCapacities returns the standard 450-minute day split.
func DefaultCapacities() Capacities {
	return Capacities{
		Morning:   constants.DefaultMorningCapacity,
		Afternoon: constants.DefaultAfternoonCapacity,
		Evening:   constants.DefaultEveningCapacity,
	}
}

// Of returns the capacity for the named slot.
func (c Capacities) Of(s SlotName) int {
	switch s {
	case SlotMorning:
		return c.Morning
	case SlotAfternoon:
		return c.Afternoon
	case SlotEvening:
		return c.Evening
	}
	return 0
}

// Max returns the largest single-slot capacity. Occurrences longer than this
// can never be placed.
func (c Capacities) Max() int {
	m := c.Morning
	if c.Afternoon > m {
		m = c.Afternoon
	}
	if c.Evening > m {
		m = c.Evening
	}
	return m
}

// Total returns the combined daily capacity.
func (c Capacities) Total() int {
	return c.Morning + c.Afternoon + c.Evening
}

// DaySlot is the mutable allocation state for one (day, slot) pair.
type DaySlot struct {
	Name     SlotName
	Capacity int
	Tasks    []*Occurrence

	consumed int
}

func newDaySlot(name SlotName, capacity int) *DaySlot {
	return &DaySlot{Name: name, Capacity: capacity}
}

// Consumed returns the minutes already assigned to the slot.
func (s *DaySlot) Consumed() int { return s.consumed }

// Remaining returns the unassigned minutes. Never negative.
func (s *DaySlot) Remaining() int { return s.Capacity - s.consumed }

// Fits reports whether a task of the given duration fits the slot.
func (s *DaySlot) Fits(duration int) bool { return duration <= s.Remaining() }

// place assigns the occurrence to the slot. Capacity is the allocator's core
// invariant: exceeding it here means the placement logic is broken, so this
// fails loudly rather than emit an inconsistent schedule.
func (s *DaySlot) place(o *Occurrence) {
	if o.DurationMinutes > s.Remaining() {
		panic(fmt.Sprintf("scheduler: slot %s over capacity: %d min task, %d min remaining",
			s.Name, o.DurationMinutes, s.Remaining()))
	}
	s.Tasks = append(s.Tasks, o)
	s.consumed += o.DurationMinutes
}

// Utilization returns consumed/capacity as a percentage.
func (s *DaySlot) Utilization() float64 {
	if s.Capacity == 0 {
		return 0
	}
	return float64(s.consumed) / float64(s.Capacity) * 100
}

type daySlotJSON struct {
	Slot             string        `json:"slot"`
	StartTime        string        `json:"start_time"`
	EndTime          string        `json:"end_time"`
	Tasks            []*Occurrence `json:"tasks"`
	TotalMinutesUsed int           `json:"total_minutes_used"`
	Capacity         int           `json:"capacity"`
}

func (s *DaySlot) MarshalJSON() ([]byte, error) {
	start, end := s.Name.Window()
	tasks := s.Tasks
	if tasks == nil {
		tasks = []*Occurrence{}
	}
	return json.Marshal(daySlotJSON{
		Slot:             string(s.Name),
		StartTime:        start,
		EndTime:          end,
		Tasks:            tasks,
		TotalMinutesUsed: s.consumed,
		Capacity:         s.Capacity,
	})
}

// DaySchedule holds the three slots and the overflow list for one day.
type DaySchedule struct {
	Date      time.Time
	Morning   *DaySlot
	Afternoon *DaySlot
	Evening   *DaySlot
	Overflow  []*Occurrence
}

func newDaySchedule(date time.Time, caps Capacities) *DaySchedule {
	return &DaySchedule{
		Date:      date,
		Morning:   newDaySlot(SlotMorning, caps.Morning),
		Afternoon: newDaySlot(SlotAfternoon, caps.Afternoon),
		Evening:   newDaySlot(SlotEvening, caps.Evening),
	}
}

// Slot returns the named slot, or nil for an unknown name.
func (d *DaySchedule) Slot(name SlotName) *DaySlot {
	switch name {
	case SlotMorning:
		return d.Morning
	case SlotAfternoon:
		return d.Afternoon
	case SlotEvening:
		return d.Evening
	}
	return nil
}

// Slots returns the day's slots in within-day order.
func (d *DaySchedule) Slots() []*DaySlot {
	return []*DaySlot{d.Morning, d.Afternoon, d.Evening}
}

// ScheduledMinutes returns the total minutes assigned across all slots.
func (d *DaySchedule) ScheduledMinutes() int {
	return d.Morning.Consumed() + d.Afternoon.Consumed() + d.Evening.Consumed()
}

// TotalCapacity returns the combined capacity of the day's slots.
func (d *DaySchedule) TotalCapacity() int {
	return d.Morning.Capacity + d.Afternoon.Capacity + d.Evening.Capacity
}

// Utilization returns scheduled/capacity for the whole day as a percentage.
func (d *DaySchedule) Utilization() float64 {
	if d.TotalCapacity() == 0 {
		return 0
	}
	return float64(d.ScheduledMinutes()) / float64(d.TotalCapacity()) * 100
}

// TaskCount returns the number of occurrences placed on the day.
func (d *DaySchedule) TaskCount() int {
	return len(d.Morning.Tasks) + len(d.Afternoon.Tasks) + len(d.Evening.Tasks)
}

// AllTasks returns every placed occurrence in slot order.
func (d *DaySchedule) AllTasks() []*Occurrence {
	out := make([]*Occurrence, 0, d.TaskCount())
	out = append(out, d.Morning.Tasks...)
	out = append(out, d.Afternoon.Tasks...)
	out = append(out, d.Evening.Tasks...)
	return out
}

type dayScheduleJSON struct {
	Date                  string        `json:"date"`
	Morning               *DaySlot      `json:"morning"`
	Afternoon             *DaySlot      `json:"afternoon"`
	Evening               *DaySlot      `json:"evening"`
	Overflow              []*Occurrence `json:"overflow"`
	TotalScheduledMinutes int           `json:"total_scheduled_minutes"`
	TotalCapacity         int           `json:"total_capacity"`
	Utilization           string        `json:"utilization"`
	TaskCount             int           `json:"task_count"`
}

func (d *DaySchedule) MarshalJSON() ([]byte, error) {
	overflow := d.Overflow
	if overflow == nil {
		overflow = []*Occurrence{}
	}
	return json.Marshal(dayScheduleJSON{
		Date:                  utils.FormatDate(d.Date),
		Morning:               d.Morning,
		Afternoon:             d.Afternoon,
		Evening:               d.Evening,
		Overflow:              overflow,
		TotalScheduledMinutes: d.ScheduledMinutes(),
		TotalCapacity:         d.TotalCapacity(),
		Utilization:           fmt.Sprintf("%.1f%%", d.Utilization()),
		TaskCount:             d.TaskCount(),
	})
}
