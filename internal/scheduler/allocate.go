package scheduler

import (
	"fmt"
	"sort"
	"time"

	"github.com/julianstephens/horizon/internal/utils"
)

// allocState tracks the single-use lifecycle of an occurrence during a run.
type allocState int

const (
	statePending allocState = iota
	statePlaced
	stateOverflowed
)

// Allocate greedily packs occurrences into day slots across the horizon.
//
// Days are processed chronologically. For each day the eligible set is every
// unplaced occurrence whose due date is on or before the day, plus every
// occurrence without a due date. Eligible occurrences are ranked by urgency
// (computed against each one's preferred slot, with the current day as the
// reference date), then tried against their preferred slot followed by the
// fixed fallback order. An occurrence that fits nowhere stays eligible for
// later days, with two exceptions: an occurrence already overdue at the
// start of the horizon that cannot be placed on day 0 goes straight to day
// 0's overflow (deferring overdue work would understate its urgency), and
// anything still unplaced after the last day lands in the last day's
// overflow. Occurrences longer than every slot's full capacity can never
// fit and are overflowed up front.
func (w Weights) allocate(occs []*Occurrence, start time.Time, horizonDays int, caps Capacities) []*DaySchedule {
	days := make([]*DaySchedule, horizonDays)
	for i := range days {
		days[i] = newDaySchedule(start.AddDate(0, 0, i), caps)
	}
	lastDay := days[horizonDays-1]

	states := make(map[*Occurrence]allocState, len(occs))

	overflow := func(d *DaySchedule, o *Occurrence) {
		if states[o] != statePending {
			panic(fmt.Sprintf("scheduler: occurrence %s consumed twice", o.ID))
		}
		states[o] = stateOverflowed
		d.Overflow = append(d.Overflow, o)
	}

	// Oversized occurrences get a single pass straight to overflow, recorded
	// on the first day they would have been eligible.
	maxCap := caps.Max()
	pending := make([]*Occurrence, 0, len(occs))
	for _, o := range occs {
		if o.DurationMinutes > maxCap {
			day := days[0]
			if o.DueDate != nil && o.DueDate.After(start) {
				if off := utils.DaysBetween(start, *o.DueDate); off < horizonDays {
					day = days[off]
				} else {
					day = lastDay
				}
			}
			overflow(day, o)
			continue
		}
		pending = append(pending, o)
	}

	for di, day := range days {
		eligible := make([]*Occurrence, 0, len(pending))
		for _, o := range pending {
			if states[o] == statePending && o.EligibleOn(day.Date) {
				eligible = append(eligible, o)
			}
		}
		w.rank(eligible, day.Date)

		for _, o := range eligible {
			if placed, slot := tryPlace(day, o); placed {
				if states[o] != statePending {
					panic(fmt.Sprintf("scheduler: occurrence %s consumed twice", o.ID))
				}
				states[o] = statePlaced
				o.ScheduledDate = day.Date
				o.ScheduledSlot = slot.Name
				o.UrgencyScore = w.urgencyScore(o, day.Date, slot.Name)
				continue
			}
			// Overdue work is never silently deferred: if it cannot be
			// placed on day 0 it is surfaced as day 0 overflow immediately.
			if di == 0 && o.Overdue(start) {
				overflow(day, o)
			} else if di == horizonDays-1 {
				overflow(day, o)
			}
		}
	}

	// Occurrences that never became eligible (due beyond the horizon) are
	// still accounted for: they end up in the last day's overflow.
	for _, o := range pending {
		if states[o] == statePending {
			overflow(lastDay, o)
		}
	}

	return days
}

// rank orders occurrences for placement: urgency score descending, then
// earlier due date (no due date sorts last), then higher priority, then
// stable input order. Identical input therefore yields identical output.
func (w Weights) rank(occs []*Occurrence, today time.Time) {
	scores := make(map[*Occurrence]float64, len(occs))
	for _, o := range occs {
		scores[o] = w.rankScore(o, today)
	}
	sort.SliceStable(occs, func(i, j int) bool {
		a, b := occs[i], occs[j]
		if scores[a] != scores[b] {
			return scores[a] > scores[b]
		}
		switch {
		case a.DueDate != nil && b.DueDate != nil && !a.DueDate.Equal(*b.DueDate):
			return a.DueDate.Before(*b.DueDate)
		case a.DueDate != nil && b.DueDate == nil:
			return true
		case a.DueDate == nil && b.DueDate != nil:
			return false
		}
		if a.Priority.Rank() != b.Priority.Rank() {
			return a.Priority.Rank() > b.Priority.Rank()
		}
		return a.order < b.order
	})
}

// tryPlace attempts the occurrence's preferred slot, then the fixed fallback
// order, placing it in the first slot with sufficient remaining capacity.
func tryPlace(day *DaySchedule, o *Occurrence) (bool, *DaySlot) {
	pref := preferredSlot(o)
	if slot := day.Slot(pref); slot.Fits(o.DurationMinutes) {
		slot.place(o)
		return true, slot
	}
	for _, name := range fallbackOrder {
		if name == pref {
			continue
		}
		if slot := day.Slot(name); slot.Fits(o.DurationMinutes) {
			slot.place(o)
			return true, slot
		}
	}
	return false, nil
}
