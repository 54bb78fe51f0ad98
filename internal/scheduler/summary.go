package scheduler

import (
	"fmt"
	"math"

	"github.com/julianstephens/horizon/internal/models"
	"github.com/julianstephens/horizon/internal/utils"
)

// Summary is the horizon-wide roll-up of a schedule.
type Summary struct {
	StartDate             string  `json:"start_date"`
	EndDate               string  `json:"end_date"`
	PlanningHorizonDays   int     `json:"planning_horizon_days"`
	TotalTasksScheduled   int     `json:"total_tasks_scheduled"`
	TotalTasksOverflow    int     `json:"total_tasks_overflow"`
	TotalScheduledMinutes int     `json:"total_scheduled_minutes"`
	TotalScheduledHours   float64 `json:"total_scheduled_hours"`
	AverageDailyMinutes   float64 `json:"average_daily_minutes"`
}

// summarize folds per-day allocation results into the summary and the
// insight list. Insights are advisory text only; nothing here alters
// placements.
func summarize(days []*DaySchedule) (Summary, []string) {
	horizon := len(days)
	s := Summary{
		StartDate:           utils.FormatDate(days[0].Date),
		EndDate:             utils.FormatDate(days[horizon-1].Date),
		PlanningHorizonDays: horizon,
	}
	for _, day := range days {
		s.TotalTasksScheduled += day.TaskCount()
		s.TotalTasksOverflow += len(day.Overflow)
		s.TotalScheduledMinutes += day.ScheduledMinutes()
	}
	s.TotalScheduledHours = math.Round(float64(s.TotalScheduledMinutes)/60*10) / 10
	s.AverageDailyMinutes = math.Round(float64(s.TotalScheduledMinutes)/float64(horizon)*10) / 10

	return s, insights(days, s)
}

func insights(days []*DaySchedule, s Summary) []string {
	var out []string
	horizon := len(days)

	if s.TotalTasksOverflow > 0 {
		out = append(out, fmt.Sprintf(
			"%d task(s) could not be scheduled within capacity limits. Consider extending deadlines or reducing task durations.",
			s.TotalTasksOverflow))
	} else if s.TotalTasksScheduled > 0 {
		out = append(out, fmt.Sprintf(
			"Successfully scheduled all %d tasks within the %d-day horizon.",
			s.TotalTasksScheduled, horizon))
	}

	// Most- and least-utilized days; earliest wins ties.
	busiest, lightest := days[0], days[0]
	for _, day := range days[1:] {
		if day.Utilization() > busiest.Utilization() {
			busiest = day
		}
		if day.Utilization() < lightest.Utilization() {
			lightest = day
		}
	}
	out = append(out, fmt.Sprintf(
		"Busiest day is %s at %.1f%% utilization; lightest is %s at %.1f%%.",
		utils.FormatDate(busiest.Date), busiest.Utilization(),
		utils.FormatDate(lightest.Date), lightest.Utilization()))

	heavy, light := 0, 0
	for _, day := range days {
		if day.Utilization() > 80 {
			heavy++
		}
		if day.Utilization() < 30 {
			light++
		}
	}
	if float64(heavy) > float64(horizon)*0.5 {
		out = append(out, fmt.Sprintf(
			"%d days have high workload (>80%% capacity). Consider redistributing tasks.", heavy))
	}
	if float64(light) > float64(horizon)*0.3 && s.TotalTasksScheduled > 0 {
		out = append(out, fmt.Sprintf(
			"%d days have light workload. Good buffer for unexpected tasks.", light))
	}

	urgent, morningMinutes := 0, 0
	for _, day := range days {
		morningMinutes += day.Morning.Consumed()
		for _, o := range day.AllTasks() {
			if o.Priority == models.PriorityUrgent || o.Priority == models.PriorityEmergency {
				urgent++
			}
		}
	}
	if s.TotalTasksScheduled > 0 && float64(urgent) > float64(s.TotalTasksScheduled)*0.3 {
		pct := int(math.Round(float64(urgent) / float64(s.TotalTasksScheduled) * 100))
		out = append(out, fmt.Sprintf(
			"%d urgent/emergency tasks (%d%%). Consider reviewing priorities.", urgent, pct))
	}
	if s.TotalScheduledMinutes > 0 && float64(morningMinutes)/float64(s.TotalScheduledMinutes) > 0.5 {
		out = append(out, "Heavy morning workload. High-energy tasks are well-positioned for peak productivity.")
	}

	return out
}
