package scheduler

import (
	"fmt"
	"math"

	"github.com/julianstephens/horizon/internal/models"
	"github.com/julianstephens/horizon/internal/utils"
)

// DayStat is one day's row in a workload breakdown.
type DayStat struct {
	Date             string `json:"date"`
	DayName          string `json:"day_name"`
	ScheduledMinutes int    `json:"scheduled_minutes"`
	Capacity         int    `json:"capacity"`
	Utilization      string `json:"utilization"`
	TaskCount        int    `json:"task_count"`
	OverflowCount    int    `json:"overflow_count"`
}

// DayHighlight names a notable day in the horizon.
type DayHighlight struct {
	Date    string `json:"date"`
	DayName string `json:"day_name"`
	Minutes int    `json:"minutes"`
}

// WorkloadAggregate is the horizon-wide load roll-up.
type WorkloadAggregate struct {
	TotalScheduledMinutes int     `json:"total_scheduled_minutes"`
	TotalScheduledHours   float64 `json:"total_scheduled_hours"`
	TotalCapacityMinutes  int     `json:"total_capacity_minutes"`
	AverageUtilization    string  `json:"average_utilization"`
	AverageDailyMinutes   float64 `json:"average_daily_minutes"`
	TotalTasks            int     `json:"total_tasks"`
}

// WorkloadReport is the workload-analysis view over a schedule result.
type WorkloadReport struct {
	HorizonDays          int                     `json:"horizon_days"`
	DailyBreakdown       []DayStat               `json:"daily_breakdown"`
	Aggregate            WorkloadAggregate       `json:"aggregate"`
	BusiestDay           DayHighlight            `json:"busiest_day"`
	LightestDay          DayHighlight            `json:"lightest_day"`
	PriorityDistribution map[models.Priority]int `json:"priority_distribution"`
	Insights             []string                `json:"insights"`
}

// AnalyzeWorkload derives day-by-day utilization, busiest/lightest days,
// and the priority distribution of the input pool from an existing schedule
// result. It never re-runs allocation.
func AnalyzeWorkload(result *ScheduleResult, tasks []models.Task) WorkloadReport {
	report := WorkloadReport{
		HorizonDays:          len(result.Days),
		PriorityDistribution: make(map[models.Priority]int, len(models.Priorities)),
		Insights:             result.Insights,
	}
	for _, p := range models.Priorities {
		report.PriorityDistribution[p] = 0
	}
	for _, t := range tasks {
		p := t.WithDefaults().Priority
		if _, ok := report.PriorityDistribution[p]; ok {
			report.PriorityDistribution[p]++
		}
	}

	totalMinutes, totalCapacity := 0, 0
	busiest, lightest := result.Days[0], result.Days[0]
	for _, day := range result.Days {
		report.DailyBreakdown = append(report.DailyBreakdown, DayStat{
			Date:             utils.FormatDate(day.Date),
			DayName:          day.Date.Weekday().String(),
			ScheduledMinutes: day.ScheduledMinutes(),
			Capacity:         day.TotalCapacity(),
			Utilization:      fmt.Sprintf("%.1f%%", day.Utilization()),
			TaskCount:        day.TaskCount(),
			OverflowCount:    len(day.Overflow),
		})
		totalMinutes += day.ScheduledMinutes()
		totalCapacity += day.TotalCapacity()
		if day.ScheduledMinutes() > busiest.ScheduledMinutes() {
			busiest = day
		}
		if day.ScheduledMinutes() < lightest.ScheduledMinutes() {
			lightest = day
		}
	}

	avgUtil := 0.0
	if totalCapacity > 0 {
		avgUtil = float64(totalMinutes) / float64(totalCapacity) * 100
	}
	report.Aggregate = WorkloadAggregate{
		TotalScheduledMinutes: totalMinutes,
		TotalScheduledHours:   math.Round(float64(totalMinutes)/60*10) / 10,
		TotalCapacityMinutes:  totalCapacity,
		AverageUtilization:    fmt.Sprintf("%.1f%%", avgUtil),
		AverageDailyMinutes:   math.Round(float64(totalMinutes)/float64(len(result.Days))*10) / 10,
		TotalTasks:            len(tasks),
	}
	report.BusiestDay = DayHighlight{
		Date:    utils.FormatDate(busiest.Date),
		DayName: busiest.Date.Weekday().String(),
		Minutes: busiest.ScheduledMinutes(),
	}
	report.LightestDay = DayHighlight{
		Date:    utils.FormatDate(lightest.Date),
		DayName: lightest.Date.Weekday().String(),
		Minutes: lightest.ScheduledMinutes(),
	}
	return report
}
