package schedule

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/julianstephens/horizon/internal/cli"
	"github.com/julianstephens/horizon/internal/scheduler"
	"github.com/julianstephens/horizon/internal/storage"
)

type WorkloadCmd struct {
	Start   string `short:"s" help:"Start date (YYYY-MM-DD or 'today')." default:"today"`
	Days    int    `short:"n" help:"Planning horizon in days (1-90)." default:"14"`
	Project string `short:"P" help:"Only analyze tasks in this project."`
	JSON    bool   `help:"Emit the report as JSON."`
}

func (c *WorkloadCmd) Run(ctx *cli.Context) error {
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
	})
	if err != nil {
		return err
	}

	report := scheduler.AnalyzeWorkload(result, tasks)
	if c.JSON {
		return json.NewEncoder(os.Stdout).Encode(report)
	}
	fmt.Print(cli.RenderWorkload(report))
	return nil
}
