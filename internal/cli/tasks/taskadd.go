package tasks

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/julianstephens/horizon/internal/cli"
	"github.com/julianstephens/horizon/internal/models"
	"github.com/julianstephens/horizon/internal/utils"
	"github.com/julianstephens/horizon/internal/validation"
)

type TaskAddCmd struct {
	Name        string `arg:"" optional:"" help:"Task name."`
	Duration    int    `short:"d" help:"Duration in minutes."`
	Project     string `short:"P" help:"Project the task belongs to."`
	Priority    string `short:"p" help:"Priority (low|medium|high|urgent|emergency)." default:"medium"`
	Due         string `help:"Due date (YYYY-MM-DD)."`
	Energy      string `help:"Energy level (low|medium|high)." default:"medium"`
	Prefer      string `help:"Time preference (morning|afternoon|evening|anytime)." default:"anytime"`
	Repeat      string `short:"r" help:"Recurrence (none|daily|weekly|monthly|yearly)." default:"none"`
	Interactive bool   `short:"i" help:"Fill in the task through an interactive form."`
}

func (c *TaskAddCmd) Validate() error {
	if !c.Interactive {
		if c.Name == "" {
			return fmt.Errorf("task name is required (or use --interactive)")
		}
		if c.Duration <= 0 {
			return fmt.Errorf("duration must be greater than zero")
		}
	}
	if c.Due != "" {
		if _, err := utils.ParseDate(c.Due); err != nil {
			return fmt.Errorf("invalid due date (expected YYYY-MM-DD): %w", err)
		}
	}
	return nil
}

func (c *TaskAddCmd) Run(ctx *cli.Context) error {
	if c.Interactive {
		if err := c.promptForm(); err != nil {
			return err
		}
	}

	task := models.Task{
		ID:              uuid.New().String(),
		Name:            c.Name,
		Project:         c.Project,
		DurationMinutes: c.Duration,
		Priority:        models.Priority(c.Priority),
		DueDate:         c.Due,
		EnergyLevel:     models.EnergyLevel(c.Energy),
		TimePreference:  models.TimePreference(c.Prefer),
		Repeat:          models.Repeat(c.Repeat),
	}.WithDefaults()

	if issues := validation.ValidateTasks([]models.Task{task}); len(issues) > 0 {
		return &validation.Error{Issues: issues}
	}

	if err := ctx.Store.AddTask(task); err != nil {
		return err
	}

	fmt.Printf("Added task: %s (ID: %s)\n", task.Name, task.ID)
	return nil
}

func (c *TaskAddCmd) promptForm() error {
	duration := strconv.Itoa(c.Duration)
	if c.Duration <= 0 {
		duration = ""
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(&c.Name).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}),
			huh.NewInput().Title("Duration (minutes)").Value(&duration).
				Validate(func(s string) error {
					n, err := strconv.Atoi(s)
					if err != nil || n <= 0 {
						return fmt.Errorf("enter a positive number of minutes")
					}
					return nil
				}),
			huh.NewInput().Title("Project (optional)").Value(&c.Project),
			huh.NewInput().Title("Due date (YYYY-MM-DD, optional)").Value(&c.Due).
				Validate(func(s string) error {
					if s == "" {
						return nil
					}
					_, err := utils.ParseDate(s)
					return err
				}),
		),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Priority").Value(&c.Priority).
				Options(huh.NewOptions("low", "medium", "high", "urgent", "emergency")...),
			huh.NewSelect[string]().Title("Energy level").Value(&c.Energy).
				Options(huh.NewOptions("low", "medium", "high")...),
			huh.NewSelect[string]().Title("Time preference").Value(&c.Prefer).
				Options(huh.NewOptions("anytime", "morning", "afternoon", "evening")...),
			huh.NewSelect[string]().Title("Repeat").Value(&c.Repeat).
				Options(huh.NewOptions("none", "daily", "weekly", "monthly", "yearly")...),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	n, err := strconv.Atoi(duration)
	if err != nil {
		return fmt.Errorf("invalid duration: %w", err)
	}
	c.Duration = n
	return nil
}
