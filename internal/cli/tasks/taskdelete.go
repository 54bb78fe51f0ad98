package tasks

import (
	"fmt"

	"github.com/julianstephens/horizon/internal/cli"
)

type TaskDeleteCmd struct {
	ID string `arg:"" help:"Task ID."`
}

func (c *TaskDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.DeleteTask(c.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted task %s (restore with 'horizon restore task %s')\n", c.ID, c.ID)
	return nil
}

type TaskRestoreCmd struct {
	ID string `arg:"" help:"Task ID."`
}

func (c *TaskRestoreCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.RestoreTask(c.ID); err != nil {
		return err
	}
	fmt.Printf("Restored task %s\n", c.ID)
	return nil
}

type TaskCompleteCmd struct {
	ID   string `arg:"" help:"Task ID."`
	Undo bool   `help:"Mark the task as not completed."`
}

func (c *TaskCompleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.SetCompleted(c.ID, !c.Undo); err != nil {
		return err
	}
	if c.Undo {
		fmt.Printf("Reopened task %s\n", c.ID)
	} else {
		fmt.Printf("Completed task %s\n", c.ID)
	}
	return nil
}
