package schedule

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/julianstephens/horizon/internal/cli"
	"github.com/julianstephens/horizon/internal/models"
	"github.com/julianstephens/horizon/internal/scheduler"
	"github.com/julianstephens/horizon/internal/utils"
	"github.com/julianstephens/horizon/internal/validation"
)

type ScoreCmd struct {
	Due      string `help:"Due date (YYYY-MM-DD)."`
	Priority string `short:"p" help:"Priority (low|medium|high|urgent|emergency)." default:"medium"`
	Energy   string `help:"Energy level (low|medium|high)." default:"medium"`
	Prefer   string `help:"Time preference (morning|afternoon|evening|anytime)." default:"anytime"`
	JSON     bool   `help:"Emit the breakdown as JSON."`
}

func (c *ScoreCmd) Run(ctx *cli.Context) error {
	task := models.Task{
		DurationMinutes: 1,
		Priority:        models.Priority(c.Priority),
		DueDate:         c.Due,
		EnergyLevel:     models.EnergyLevel(c.Energy),
		TimePreference:  models.TimePreference(c.Prefer),
	}.WithDefaults()
	if issues := validation.ValidateTasks([]models.Task{task}); len(issues) > 0 {
		return &validation.Error{Issues: issues}
	}

	breakdown, err := ctx.Engine.ScoreTask(scheduler.ScoreInput{
		DueDate:        task.DueDate,
		Priority:       task.Priority,
		EnergyLevel:    task.EnergyLevel,
		TimePreference: task.TimePreference,
	}, utils.Today())
	if err != nil {
		return err
	}

	if c.JSON {
		return json.NewEncoder(os.Stdout).Encode(breakdown)
	}

	fmt.Printf("Urgency score: %.2f\n", breakdown.UrgencyScore)
	fmt.Printf("  deadline:        %.1f (weighted %.2f)\n", breakdown.Breakdown.DeadlineRaw, breakdown.Breakdown.DeadlineWeighted)
	fmt.Printf("  priority:        %.1f (weighted %.2f)\n", breakdown.Breakdown.PriorityRaw, breakdown.Breakdown.PriorityWeighted)
	fmt.Printf("  energy (weighted):          %.2f\n", breakdown.Breakdown.EnergyWeighted)
	fmt.Printf("  time preference (weighted): %.2f\n", breakdown.Breakdown.TimeWeighted)
	fmt.Printf("Recommended slot: %s\n", breakdown.Recommendation.Slot)
	if breakdown.Recommendation.DaysUntilDue != nil {
		fmt.Printf("Days until due: %d\n", *breakdown.Recommendation.DaysUntilDue)
	}
	if breakdown.Recommendation.IsOverdue {
		fmt.Println("Task is overdue")
	}
	return nil
}
