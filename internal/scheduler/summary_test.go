package scheduler

import (
	"strings"
	"testing"

	"github.com/julianstephens/horizon/internal/models"
)

func generateForInsights(t *testing.T, tasks []models.Task, horizon int, caps *Capacities) *ScheduleResult {
	t.Helper()
	result, err := New().Generate(Request{
		Tasks:       tasks,
		StartDate:   "2026-03-02",
		HorizonDays: horizon,
		Capacities:  caps,
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	return result
}

func hasInsightContaining(insights []string, substr string) bool {
	for _, s := range insights {
		if strings.Contains(s, substr) {
			return true
		}
	}
	return false
}

func TestInsightsReportSuccess(t *testing.T) {
	result := generateForInsights(t, []models.Task{
		testTask("a", 60, "2026-03-02"),
		testTask("b", 30, ""),
	}, 3, nil)

	if !hasInsightContaining(result.Insights, "Successfully scheduled all 2 tasks") {
		t.Errorf("expected a success insight, got %v", result.Insights)
	}
	if hasInsightContaining(result.Insights, "could not be scheduled") {
		t.Error("success and overflow insights are mutually exclusive")
	}
}

func TestInsightsReportOverflow(t *testing.T) {
	result := generateForInsights(t, []models.Task{
		testTask("too-big", 600, "2026-03-02"),
	}, 2, nil)

	if result.Summary.TotalTasksOverflow != 1 {
		t.Fatalf("expected 1 overflow, got %d", result.Summary.TotalTasksOverflow)
	}
	if !hasInsightContaining(result.Insights, "1 task(s) could not be scheduled") {
		t.Errorf("expected an overflow insight, got %v", result.Insights)
	}
}

func TestInsightsNameBusiestAndLightestDays(t *testing.T) {
	result := generateForInsights(t, []models.Task{
		testTask("day-one-work", 170, "2026-03-02"),
	}, 3, nil)

	if !hasInsightContaining(result.Insights, "Busiest day is 2026-03-02") {
		t.Errorf("expected the busiest day named, got %v", result.Insights)
	}
}

func TestInsightsFlagUrgentShare(t *testing.T) {
	urgent := testTask("fire", 30, "2026-03-02")
	urgent.Priority = models.PriorityUrgent

	result := generateForInsights(t, []models.Task{
		urgent,
		testTask("calm", 30, ""),
	}, 2, nil)

	// 1 of 2 scheduled tasks urgent = 50% > 30% threshold.
	if !hasInsightContaining(result.Insights, "urgent/emergency tasks") {
		t.Errorf("expected an urgent-share insight, got %v", result.Insights)
	}
}

func TestInsightsFlagMorningLoad(t *testing.T) {
	deep := testTask("deep", 170, "2026-03-02")
	deep.EnergyLevel = models.EnergyHigh // morning placement

	result := generateForInsights(t, []models.Task{deep}, 1, nil)

	if !hasInsightContaining(result.Insights, "Heavy morning workload") {
		t.Errorf("expected a morning-load insight, got %v", result.Insights)
	}
}

func TestSummaryRounding(t *testing.T) {
	result := generateForInsights(t, []models.Task{
		testTask("a", 50, "2026-03-02"),
	}, 3, nil)

	s := result.Summary
	if s.TotalScheduledHours != 0.8 { // 50/60 rounded to one decimal
		t.Errorf("TotalScheduledHours = %v, want 0.8", s.TotalScheduledHours)
	}
	if s.AverageDailyMinutes != 16.7 { // 50/3 rounded to one decimal
		t.Errorf("AverageDailyMinutes = %v, want 16.7", s.AverageDailyMinutes)
	}
	if s.PlanningHorizonDays != 3 {
		t.Errorf("PlanningHorizonDays = %d, want 3", s.PlanningHorizonDays)
	}
}
