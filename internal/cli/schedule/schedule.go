package schedule

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/julianstephens/horizon/internal/cli"
	"github.com/julianstephens/horizon/internal/constants"
	"github.com/julianstephens/horizon/internal/scheduler"
	"github.com/julianstephens/horizon/internal/storage"
)

type ScheduleCmd struct {
	Start     string `short:"s" help:"Start date (YYYY-MM-DD or 'today')." default:"today"`
	Days      int    `short:"n" help:"Planning horizon in days (1-90)." default:"14"`
	Project   string `short:"P" help:"Only schedule tasks in this project."`
	Morning   int    `help:"Morning slot capacity in minutes." default:"180"`
	Afternoon int    `help:"Afternoon slot capacity in minutes." default:"150"`
	Evening   int    `help:"Evening slot capacity in minutes." default:"120"`
	JSON      bool   `help:"Emit the schedule as JSON."`
}

func (c *ScheduleCmd) Run(ctx *cli.Context) error {
	start, err := cli.ResolveDate(c.Start)
	if err != nil {
		return err
	}

	tasks, err := ctx.Store.GetTasks(storage.TaskFilter{Project: c.Project})
	if err != nil {
		return fmt.Errorf("failed to get tasks: %w", err)
	}

	result, err := ctx.Engine.Generate(scheduler.Request{
		Tasks:       tasks,
		StartDate:   start,
		HorizonDays: cli.ClampHorizon(c.Days),
		Capacities: &scheduler.Capacities{
			Morning:   c.Morning,
			Afternoon: c.Afternoon,
			Evening:   c.Evening,
		},
	})
	if err != nil {
		return err
	}

	if c.JSON {
		return json.NewEncoder(os.Stdout).Encode(result)
	}
	fmt.Print(cli.RenderSchedule(result))
	return nil
}

type PreviewCmd struct {
	Date    string `arg:"" optional:"" help:"Date to preview (YYYY-MM-DD, default today)."`
	Project string `short:"P" help:"Only schedule tasks in this project."`
	JSON    bool   `help:"Emit the preview as JSON."`
}

func (c *PreviewCmd) Run(ctx *cli.Context) error {
	date, err := cli.ResolveDate(c.Date)
	if err != nil {
		return err
	}

	tasks, err := ctx.Store.GetTasks(storage.TaskFilter{Project: c.Project})
	if err != nil {
		return fmt.Errorf("failed to get tasks: %w", err)
	}

	result, err := ctx.Engine.Generate(scheduler.Request{
		Tasks:       tasks,
		StartDate:   date,
		HorizonDays: constants.MinHorizonDays,
	})
	if err != nil {
		return err
	}

	day := result.Day(date)
	if c.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"date":       date,
			"schedule":   day,
			"task_count": len(tasks),
		})
	}

	fmt.Printf("Preview for %s (%d task(s) considered)\n", date, len(tasks))
	fmt.Print(cli.RenderDay(day))
	return nil
}
