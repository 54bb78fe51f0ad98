package tasks

import (
	"fmt"

	"github.com/julianstephens/horizon/internal/cli"
	"github.com/julianstephens/horizon/internal/storage"
)

type TaskListCmd struct {
	All     bool   `help:"Include completed tasks."`
	Project string `short:"P" help:"Filter by project."`
	ShowIDs bool   `help:"Show task IDs." name:"show-ids"`
}

func (c *TaskListCmd) Run(ctx *cli.Context) error {
	tasks, err := ctx.Store.GetTasks(storage.TaskFilter{
		IncludeCompleted: c.All,
		Project:          c.Project,
	})
	if err != nil {
		return fmt.Errorf("failed to get tasks: %w", err)
	}
	if len(tasks) == 0 {
		fmt.Println("No tasks found")
		return nil
	}

	fmt.Println("Tasks:")
	for _, task := range tasks {
		status := "open"
		if task.Completed {
			status = "done"
		}

		idStr := ""
		if c.ShowIDs {
			idStr = fmt.Sprintf(" (ID: %s)", task.ID)
		}

		due := ""
		if task.DueDate != "" {
			due = ", due " + task.DueDate
		}
		repeat := ""
		if task.Repeat != "none" && task.Repeat != "" {
			repeat = ", repeats " + string(task.Repeat)
		}

		fmt.Printf("  [%s] %s%s - %dm (%s%s%s)\n",
			status, task.Name, idStr, task.DurationMinutes, task.Priority, due, repeat)

		if task.Project != "" {
			fmt.Printf("      Project: %s\n", task.Project)
		}
	}

	return nil
}
