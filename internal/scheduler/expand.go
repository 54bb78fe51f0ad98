package scheduler

import (
	"fmt"
	"time"

	"github.com/julianstephens/horizon/internal/models"
	"github.com/julianstephens/horizon/internal/utils"
)

// Expand turns tasks into concrete occurrences for the planning window
// [start, start+horizonDays). Non-repeating tasks yield exactly one
// occurrence carrying the task's own due date (possibly none). Repeating
// tasks yield one occurrence per period that falls inside the window, each
// due on its own date. Instances landing outside the window are discarded,
// not overflowed. Completed and archived tasks yield nothing.
//
// Tasks are expected to be validated and defaulted before expansion; a due
// date that fails to parse here indicates a caller bug.
func Expand(tasks []models.Task, start time.Time, horizonDays int) []*Occurrence {
	end := start.AddDate(0, 0, horizonDays)
	var out []*Occurrence

	for _, task := range tasks {
		if !task.Schedulable() {
			continue
		}

		var due *time.Time
		if task.DueDate != "" {
			d, err := utils.ParseDate(task.DueDate)
			if err != nil {
				panic(fmt.Sprintf("scheduler: expand called with unvalidated due date %q for task %s", task.DueDate, task.ID))
			}
			due = &d
		}

		switch task.Repeat {
		case models.RepeatDaily:
			for off := 0; off < horizonDays; off++ {
				day := start.AddDate(0, 0, off)
				out = append(out, instance(task, fmt.Sprintf("%s:day:%d", task.ID, off), day, len(out)))
			}
		case models.RepeatWeekly:
			for i, day := range periodDates(anchor(due, start), start, end, func(t time.Time, n int) time.Time {
				return t.AddDate(0, 0, 7*n)
			}) {
				out = append(out, instance(task, fmt.Sprintf("%s:week:%d", task.ID, i), day, len(out)))
			}
		case models.RepeatMonthly:
			for i, day := range periodDates(anchor(due, start), start, end, func(t time.Time, n int) time.Time {
				return t.AddDate(0, n, 0)
			}) {
				out = append(out, instance(task, fmt.Sprintf("%s:month:%d", task.ID, i), day, len(out)))
			}
		case models.RepeatYearly:
			for i, day := range periodDates(anchor(due, start), start, end, func(t time.Time, n int) time.Time {
				return t.AddDate(n, 0, 0)
			}) {
				out = append(out, instance(task, fmt.Sprintf("%s:year:%d", task.ID, i), day, len(out)))
			}
		default: // RepeatNone
			o := &Occurrence{
				ID:              task.ID,
				TaskID:          task.ID,
				Name:            task.Name,
				DurationMinutes: task.DurationMinutes,
				Priority:        task.Priority,
				DueDate:         due,
				EnergyLevel:     task.EnergyLevel,
				TimePreference:  task.TimePreference,
				order:           len(out),
			}
			out = append(out, o)
		}
	}

	return out
}

// anchor is the first date of a recurrence series: the task's due date when
// set, otherwise the start of the planning window.
func anchor(due *time.Time, start time.Time) time.Time {
	if due != nil {
		return *due
	}
	return start
}

// periodDates returns the dates of the series base, step(base,1),
// step(base,2), ... that fall inside [start, end). Steps are indexed from
// the base so month/year arithmetic does not drift.
func periodDates(base, start, end time.Time, step func(time.Time, int) time.Time) []time.Time {
	var dates []time.Time
	for n := 0; ; n++ {
		d := step(base, n)
		if !d.Before(end) {
			break
		}
		if !d.Before(start) {
			dates = append(dates, d)
		}
	}
	return dates
}

func instance(task models.Task, id string, day time.Time, order int) *Occurrence {
	due := day
	return &Occurrence{
		ID:              id,
		TaskID:          task.ID,
		Name:            task.Name,
		DurationMinutes: task.DurationMinutes,
		Priority:        task.Priority,
		DueDate:         &due,
		EnergyLevel:     task.EnergyLevel,
		TimePreference:  task.TimePreference,
		Recurring:       true,
		order:           order,
	}
}
