// Package validation checks scheduler inputs before any allocation work
// begins. Failures are structured, never partial: a request either passes
// whole or is rejected with the full issue list.
package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/horizon/internal/constants"
	"github.com/julianstephens/horizon/internal/models"
)

// Issue is a single validation failure.
type Issue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error aggregates every issue found in a request.
type Error struct {
	Issues []Issue `json:"issues"`
}

func (e *Error) Error() string {
	msgs := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		msgs[i] = fmt.Sprintf("%s: %s", issue.Field, issue.Message)
	}
	return "invalid input: " + strings.Join(msgs, "; ")
}

// ValidateTasks checks every task against the closed enumerations and the
// duration invariant. Empty enum fields are acceptable (they default before
// scheduling); unknown non-empty values are rejected so they can never be
// silently miscounted.
func ValidateTasks(tasks []models.Task) []Issue {
	var issues []Issue

	for i, t := range tasks {
		field := func(name string) string {
			id := t.ID
			if id == "" {
				id = fmt.Sprintf("#%d", i)
			}
			return fmt.Sprintf("tasks[%s].%s", id, name)
		}

		if t.DurationMinutes <= 0 {
			issues = append(issues, Issue{field("duration_minutes"),
				fmt.Sprintf("duration must be positive, got %d", t.DurationMinutes)})
		}
		if t.Priority != "" && !t.Priority.Valid() {
			issues = append(issues, Issue{field("priority"),
				fmt.Sprintf("unknown priority %q", t.Priority)})
		}
		if t.EnergyLevel != "" && !t.EnergyLevel.Valid() {
			issues = append(issues, Issue{field("energy_level"),
				fmt.Sprintf("unknown energy level %q", t.EnergyLevel)})
		}
		if t.TimePreference != "" && !t.TimePreference.Valid() {
			issues = append(issues, Issue{field("time_preference"),
				fmt.Sprintf("unknown time preference %q", t.TimePreference)})
		}
		if t.Repeat != "" && !t.Repeat.Valid() {
			issues = append(issues, Issue{field("repeat"),
				fmt.Sprintf("unknown repeat pattern %q", t.Repeat)})
		}
		if t.DueDate != "" {
			if _, err := time.Parse(constants.DateFormat, t.DueDate); err != nil {
				issues = append(issues, Issue{field("due_date"),
					fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", t.DueDate)})
			}
		}
	}

	return issues
}
