package validation

import (
	"strings"
	"testing"

	"github.com/julianstephens/horizon/internal/models"
)

func TestValidateTasks(t *testing.T) {
	valid := models.Task{
		ID: "ok", Name: "ok", DurationMinutes: 30,
		Priority: models.PriorityHigh, DueDate: "2026-03-05",
	}

	tests := []struct {
		name   string
		task   models.Task
		fields []string
	}{
		{"valid task", valid, nil},
		{"empty enums are fine", models.Task{ID: "e", DurationMinutes: 15}, nil},
		{
			"zero duration",
			models.Task{ID: "d", DurationMinutes: 0},
			[]string{"tasks[d].duration_minutes"},
		},
		{
			"negative duration",
			models.Task{ID: "d", DurationMinutes: -5},
			[]string{"tasks[d].duration_minutes"},
		},
		{
			"unknown priority",
			models.Task{ID: "p", DurationMinutes: 10, Priority: "critical"},
			[]string{"tasks[p].priority"},
		},
		{
			"unknown energy",
			models.Task{ID: "g", DurationMinutes: 10, EnergyLevel: "max"},
			[]string{"tasks[g].energy_level"},
		},
		{
			"unknown time preference",
			models.Task{ID: "t", DurationMinutes: 10, TimePreference: "night"},
			[]string{"tasks[t].time_preference"},
		},
		{
			"unknown repeat",
			models.Task{ID: "r", DurationMinutes: 10, Repeat: "fortnightly"},
			[]string{"tasks[r].repeat"},
		},
		{
			"bad due date",
			models.Task{ID: "w", DurationMinutes: 10, DueDate: "03/05/2026"},
			[]string{"tasks[w].due_date"},
		},
		{
			"multiple issues at once",
			models.Task{ID: "m", DurationMinutes: 0, Priority: "critical", DueDate: "nope"},
			[]string{"tasks[m].duration_minutes", "tasks[m].priority", "tasks[m].due_date"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := ValidateTasks([]models.Task{tt.task})
			if len(issues) != len(tt.fields) {
				t.Fatalf("got %d issues %v, want %d", len(issues), issues, len(tt.fields))
			}
			for i, field := range tt.fields {
				if issues[i].Field != field {
					t.Errorf("issue %d on field %q, want %q", i, issues[i].Field, field)
				}
			}
		})
	}
}

func TestValidateTasksIndexesAnonymousTasks(t *testing.T) {
	issues := ValidateTasks([]models.Task{{DurationMinutes: 0}})
	if len(issues) != 1 {
		t.Fatalf("expected 1 issue, got %d", len(issues))
	}
	if issues[0].Field != "tasks[#0].duration_minutes" {
		t.Errorf("field = %q, want positional fallback", issues[0].Field)
	}
}

func TestErrorMessageJoinsIssues(t *testing.T) {
	err := &Error{Issues: []Issue{
		{Field: "a", Message: "first"},
		{Field: "b", Message: "second"},
	}}
	msg := err.Error()
	if !strings.HasPrefix(msg, "invalid input: ") {
		t.Errorf("message missing prefix: %q", msg)
	}
	if !strings.Contains(msg, "a: first; b: second") {
		t.Errorf("message missing joined issues: %q", msg)
	}
}
