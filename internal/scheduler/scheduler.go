// Package scheduler implements the multi-day planning engine: it expands
// tasks into concrete occurrences, ranks them with a weighted urgency score,
// packs them greedily into fixed-capacity day slots, and reports the result
// with horizon-wide statistics and plain-language insights.
//
// A run is a pure, single-threaded computation over its inputs. Concurrent
// runs are safe because every run owns its own occurrence and slot state;
// callers must only keep the task snapshot stable while a run is in flight.
package scheduler

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/julianstephens/horizon/internal/constants"
	"github.com/julianstephens/horizon/internal/logger"
	"github.com/julianstephens/horizon/internal/models"
	"github.com/julianstephens/horizon/internal/utils"
	"github.com/julianstephens/horizon/internal/validation"
)

// Engine generates schedules. It is stateless apart from its scoring
// weights and safe for concurrent use.
type Engine struct {
	weights Weights
}

// New creates an engine with the default scoring weights.
func New() *Engine {
	return &Engine{weights: DefaultWeights()}
}

// NewWithWeights creates an engine with custom scoring weights.
func NewWithWeights(w Weights) *Engine {
	return &Engine{weights: w}
}

// Request is the boundary contract for one scheduling run.
type Request struct {
	Tasks       []models.Task
	StartDate   string      // YYYY-MM-DD; empty means today
	HorizonDays int         // must be within [MinHorizonDays, MaxHorizonDays]
	Capacities  *Capacities // nil means defaults
}

// ScheduleResult is the complete outcome of a run: one DaySchedule per day
// of the horizon in chronological order, plus summary and insights.
type ScheduleResult struct {
	Days     []*DaySchedule
	Summary  Summary
	Insights []string
}

// Day returns the schedule for the given date string, or nil when the date
// is outside the horizon.
func (r *ScheduleResult) Day(date string) *DaySchedule {
	for _, d := range r.Days {
		if utils.FormatDate(d.Date) == date {
			return d
		}
	}
	return nil
}

type scheduleResultJSON struct {
	Schedule map[string]*DaySchedule `json:"schedule"`
	Summary  Summary                 `json:"summary"`
	Insights []string                `json:"insights"`
}

// MarshalJSON renders the date-keyed wire shape. Map keys are emitted in
// sorted order, which for ISO dates is chronological, so identical runs
// yield byte-identical output.
func (r *ScheduleResult) MarshalJSON() ([]byte, error) {
	byDate := make(map[string]*DaySchedule, len(r.Days))
	for _, d := range r.Days {
		byDate[utils.FormatDate(d.Date)] = d
	}
	insights := r.Insights
	if insights == nil {
		insights = []string{}
	}
	return json.Marshal(scheduleResultJSON{
		Schedule: byDate,
		Summary:  r.Summary,
		Insights: insights,
	})
}

// Generate runs the full pipeline: validate, expand, allocate, summarize.
// Validation failures abort the run before any allocation work, with no
// partial result. Overflow is not an error; it is part of a complete result.
func (e *Engine) Generate(req Request) (*ScheduleResult, error) {
	start, issues := e.validate(req)
	if len(issues) > 0 {
		return nil, &validation.Error{Issues: issues}
	}

	caps := DefaultCapacities()
	if req.Capacities != nil {
		caps = *req.Capacities
	}

	tasks := make([]models.Task, len(req.Tasks))
	for i, t := range req.Tasks {
		tasks[i] = t.WithDefaults()
	}

	logger.Debug("generating schedule", "tasks", len(tasks), "start", utils.FormatDate(start), "horizon_days", req.HorizonDays)

	occurrences := Expand(tasks, start, req.HorizonDays)
	days := e.weights.allocate(occurrences, start, req.HorizonDays, caps)
	summary, insights := summarize(days)

	logger.Debug("schedule generated",
		"scheduled", summary.TotalTasksScheduled,
		"overflow", summary.TotalTasksOverflow,
		"minutes", summary.TotalScheduledMinutes)

	return &ScheduleResult{Days: days, Summary: summary, Insights: insights}, nil
}

func (e *Engine) validate(req Request) (time.Time, []validation.Issue) {
	var issues []validation.Issue

	start := utils.Today()
	if req.StartDate != "" {
		parsed, err := utils.ParseDate(req.StartDate)
		if err != nil {
			issues = append(issues, validation.Issue{
				Field:   "start_date",
				Message: fmt.Sprintf("invalid start date %q, expected YYYY-MM-DD", req.StartDate),
			})
		} else {
			start = parsed
		}
	}

	if req.HorizonDays < constants.MinHorizonDays || req.HorizonDays > constants.MaxHorizonDays {
		issues = append(issues, validation.Issue{
			Field: "horizon_days",
			Message: fmt.Sprintf("horizon must be between %d and %d days, got %d",
				constants.MinHorizonDays, constants.MaxHorizonDays, req.HorizonDays),
		})
	}

	if req.Capacities != nil {
		for _, slot := range SlotNames {
			if req.Capacities.Of(slot) < 0 {
				issues = append(issues, validation.Issue{
					Field:   string(slot) + "_capacity",
					Message: fmt.Sprintf("capacity must not be negative, got %d", req.Capacities.Of(slot)),
				})
			}
		}
	}

	issues = append(issues, validation.ValidateTasks(req.Tasks)...)
	return start, issues
}
