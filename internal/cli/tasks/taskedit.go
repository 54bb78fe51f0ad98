package tasks

import (
	"fmt"

	"github.com/julianstephens/horizon/internal/cli"
	"github.com/julianstephens/horizon/internal/models"
	"github.com/julianstephens/horizon/internal/utils"
	"github.com/julianstephens/horizon/internal/validation"
)

type TaskEditCmd struct {
	ID       string `arg:"" help:"Task ID."`
	Name     string `help:"New task name."`
	Duration int    `short:"d" help:"New duration in minutes."`
	Project  string `short:"P" help:"New project."`
	Priority string `short:"p" help:"New priority (low|medium|high|urgent|emergency)."`
	Due      string `help:"New due date (YYYY-MM-DD), or 'none' to clear."`
	Energy   string `help:"New energy level (low|medium|high)."`
	Prefer   string `help:"New time preference (morning|afternoon|evening|anytime)."`
	Repeat   string `short:"r" help:"New recurrence (none|daily|weekly|monthly|yearly)."`
}

func (c *TaskEditCmd) Validate() error {
	if c.Due != "" && c.Due != "none" {
		if _, err := utils.ParseDate(c.Due); err != nil {
			return fmt.Errorf("invalid due date (expected YYYY-MM-DD): %w", err)
		}
	}
	return nil
}

func (c *TaskEditCmd) Run(ctx *cli.Context) error {
	task, err := ctx.Store.GetTask(c.ID)
	if err != nil {
		return err
	}

	if c.Name != "" {
		task.Name = c.Name
	}
	if c.Duration > 0 {
		task.DurationMinutes = c.Duration
	}
	if c.Project != "" {
		task.Project = c.Project
	}
	if c.Priority != "" {
		task.Priority = models.Priority(c.Priority)
	}
	switch c.Due {
	case "":
	case "none":
		task.DueDate = ""
	default:
		task.DueDate = c.Due
	}
	if c.Energy != "" {
		task.EnergyLevel = models.EnergyLevel(c.Energy)
	}
	if c.Prefer != "" {
		task.TimePreference = models.TimePreference(c.Prefer)
	}
	if c.Repeat != "" {
		task.Repeat = models.Repeat(c.Repeat)
	}

	if issues := validation.ValidateTasks([]models.Task{task}); len(issues) > 0 {
		return &validation.Error{Issues: issues}
	}

	if err := ctx.Store.UpdateTask(task); err != nil {
		return err
	}

	fmt.Printf("Updated task: %s\n", task.Name)
	return nil
}
