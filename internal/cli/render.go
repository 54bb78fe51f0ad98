package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/horizon/internal/models"
	"github.com/julianstephens/horizon/internal/scheduler"
	"github.com/julianstephens/horizon/internal/utils"
)

func prioritiesHighToLow() []models.Priority {
	out := make([]models.Priority, len(models.Priorities))
	for i, p := range models.Priorities {
		out[len(out)-1-i] = p
	}
	return out
}

var (
	dayHeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	slotStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("75")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Italic(true)

	insightStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("114"))
)

// RenderSchedule formats a full schedule result for the terminal.
func RenderSchedule(result *scheduler.ScheduleResult) string {
	var b strings.Builder

	for _, day := range result.Days {
		fmt.Fprintf(&b, "%s  %s\n",
			dayHeaderStyle.Render(utils.FormatDate(day.Date)),
			dimStyle.Render(fmt.Sprintf("%s · %d min · %.1f%% utilized",
				day.Date.Weekday(), day.ScheduledMinutes(), day.Utilization())))
		b.WriteString(RenderDay(day))
		b.WriteString("\n")
	}

	s := result.Summary
	fmt.Fprintf(&b, "%s\n", dayHeaderStyle.Render("Summary"))
	fmt.Fprintf(&b, "  %s → %s: %d scheduled, %d overflow, %.1fh total (avg %.0f min/day)\n",
		s.StartDate, s.EndDate, s.TotalTasksScheduled, s.TotalTasksOverflow,
		s.TotalScheduledHours, s.AverageDailyMinutes)

	if len(result.Insights) > 0 {
		b.WriteString("\n")
		for _, insight := range result.Insights {
			fmt.Fprintf(&b, "  %s\n", insightStyle.Render("• "+insight))
		}
	}
	return b.String()
}

// RenderDay formats a single day's slots and overflow.
func RenderDay(day *scheduler.DaySchedule) string {
	var b strings.Builder

	for _, slot := range day.Slots() {
		start, end := slot.Name.Window()
		fmt.Fprintf(&b, "  %s %s\n",
			slotStyle.Render(fmt.Sprintf("%-9s", slot.Name)),
			dimStyle.Render(fmt.Sprintf("%s–%s  %d/%d min", start, end, slot.Consumed(), slot.Capacity)))
		if len(slot.Tasks) == 0 {
			fmt.Fprintf(&b, "    %s\n", dimStyle.Render("(free)"))
			continue
		}
		for _, occ := range slot.Tasks {
			due := ""
			if occ.DueDate != nil {
				due = "  due " + utils.FormatDate(*occ.DueDate)
			}
			fmt.Fprintf(&b, "    %-28s %3d min  [%s]%s\n", occ.Name, occ.DurationMinutes, occ.Priority, dimStyle.Render(due))
		}
	}

	if len(day.Overflow) > 0 {
		fmt.Fprintf(&b, "  %s\n", warningStyle.Render("overflow"))
		for _, occ := range day.Overflow {
			fmt.Fprintf(&b, "    %-28s %3d min  [%s]\n", occ.Name, occ.DurationMinutes, occ.Priority)
		}
	}
	return b.String()
}

// RenderWorkload formats a workload report for the terminal.
func RenderWorkload(report scheduler.WorkloadReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", dayHeaderStyle.Render(fmt.Sprintf("Workload over %d days", report.HorizonDays)))
	for _, day := range report.DailyBreakdown {
		marker := ""
		if day.Date == report.BusiestDay.Date {
			marker = warningStyle.Render("  ← busiest")
		} else if day.Date == report.LightestDay.Date {
			marker = dimStyle.Render("  ← lightest")
		}
		fmt.Fprintf(&b, "  %s %-9s %4d min  %6s  %2d task(s)%s\n",
			day.Date, day.DayName, day.ScheduledMinutes, day.Utilization, day.TaskCount, marker)
	}

	a := report.Aggregate
	fmt.Fprintf(&b, "\n  Total %.1fh of %d min capacity (%s average), %d task(s)\n",
		a.TotalScheduledHours, a.TotalCapacityMinutes, a.AverageUtilization, a.TotalTasks)

	b.WriteString("  Priorities:")
	for _, p := range prioritiesHighToLow() {
		if n := report.PriorityDistribution[p]; n > 0 {
			fmt.Fprintf(&b, " %s=%d", p, n)
		}
	}
	b.WriteString("\n")

	if len(report.Insights) > 0 {
		b.WriteString("\n")
		for _, insight := range report.Insights {
			fmt.Fprintf(&b, "  %s\n", insightStyle.Render("• "+insight))
		}
	}
	return b.String()
}
