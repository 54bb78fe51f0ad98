package system

import (
	"fmt"

	"github.com/julianstephens/horizon/internal/cli"
	"github.com/julianstephens/horizon/internal/keyring"
	"github.com/julianstephens/horizon/internal/models"
	"github.com/julianstephens/horizon/internal/storage"
	"github.com/julianstephens/horizon/internal/validation"
)

type DoctorCmd struct{}

func (c *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := false

	if err := ctx.Store.Load(); err != nil {
		fmt.Printf("❌ Database reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Database reachable: OK (%s)\n", ctx.Store.GetConfigPath())
		dbReachable = true
	}

	if dbReachable {
		if count, err := ctx.Store.Migrate(func(string) {}); err != nil {
			fmt.Printf("❌ Migrations: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else if count > 0 {
			fmt.Printf("✓ Migrations: applied %d pending migration(s)\n", count)
		} else {
			fmt.Printf("✓ Migrations: up to date\n")
		}
	} else {
		fmt.Printf("⊘ Migrations: SKIPPED (database not reachable)\n")
	}

	if dbReachable {
		if err := checkTaskIntegrity(ctx.Store); err != nil {
			fmt.Printf("⚠ Task integrity: WARNING\n")
			fmt.Printf("   %v\n", err)
		} else {
			fmt.Printf("✓ Task integrity: OK\n")
		}
	} else {
		fmt.Printf("⊘ Task integrity: SKIPPED (database not reachable)\n")
	}

	if keyring.IsAvailable() {
		fmt.Printf("✓ OS keyring: available\n")
	} else {
		fmt.Printf("⚠ OS keyring: not available (PostgreSQL credentials must use .pgpass or environment)\n")
	}

	fmt.Println()
	if hasError {
		return fmt.Errorf("diagnostics found problems")
	}
	fmt.Println("All checks passed.")
	return nil
}

// checkTaskIntegrity re-validates every stored task against the scheduling
// rules, catching rows written by older versions or by hand.
func checkTaskIntegrity(store storage.Provider) error {
	tasks, err := store.GetTasks(storage.TaskFilter{IncludeCompleted: true, IncludeArchived: true})
	if err != nil {
		return fmt.Errorf("failed to load tasks: %w", err)
	}
	bad := 0
	for _, t := range tasks {
		if issues := validation.ValidateTasks([]models.Task{t}); len(issues) > 0 {
			bad++
		}
	}
	if bad > 0 {
		return fmt.Errorf("%d of %d task(s) fail validation; edit them with 'horizon task edit'", bad, len(tasks))
	}
	return nil
}
