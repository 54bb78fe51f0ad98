package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/horizon/internal/cli"
	"github.com/julianstephens/horizon/internal/cli/schedule"
	"github.com/julianstephens/horizon/internal/cli/system"
	"github.com/julianstephens/horizon/internal/cli/tasks"
	"github.com/julianstephens/horizon/internal/constants"
	apperrors "github.com/julianstephens/horizon/internal/errors"
	"github.com/julianstephens/horizon/internal/keyring"
	"github.com/julianstephens/horizon/internal/logger"
	"github.com/julianstephens/horizon/internal/scheduler"
	"github.com/julianstephens/horizon/internal/storage"
	"github.com/julianstephens/horizon/internal/storage/postgres"
	"github.com/julianstephens/horizon/internal/storage/sqlite"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Database file path or PostgreSQL connection string. For PostgreSQL, credentials must NOT be embedded in the connection string. Use the OS keyring, environment variables, or .pgpass instead." default:"~/.config/horizon/horizon.db"`
	Debug   bool   `help:"Enable debug logging."`

	Init     system.InitCmd       `cmd:"" help:"Initialize horizon storage."`
	Migrate  system.MigrateCmd    `cmd:"" help:"Run database migrations."`
	Doctor   system.DoctorCmd     `cmd:"" help:"Run health checks and diagnostics."`
	Serve    system.ServeCmd      `cmd:"" help:"Serve the scheduling API over HTTP."`
	Schedule schedule.ScheduleCmd `cmd:"" help:"Generate a multi-day schedule." default:"1"`
	Preview  schedule.PreviewCmd  `cmd:"" help:"Preview a single day's schedule."`
	Score    schedule.ScoreCmd    `cmd:"" help:"Score a hypothetical task."`
	Workload schedule.WorkloadCmd `cmd:"" help:"Analyze workload across the horizon."`
	Task     struct {
		Add      tasks.TaskAddCmd      `cmd:"" help:"Add a new task."`
		Edit     tasks.TaskEditCmd     `cmd:"" help:"Edit an existing task."`
		Delete   tasks.TaskDeleteCmd   `cmd:"" help:"Delete a task."`
		List     tasks.TaskListCmd     `cmd:"" help:"List tasks."`
		Complete tasks.TaskCompleteCmd `cmd:"" help:"Mark a task completed."`
	} `cmd:"" help:"Manage tasks."`
	Restore struct {
		Task tasks.TaskRestoreCmd `cmd:"" help:"Restore a deleted task."`
	} `cmd:"" help:"Restore deleted items."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a connection string in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string (masked)."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Delete the stored connection string."`
	} `cmd:"" help:"Manage stored database credentials."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Multi-day task scheduler with urgency-based time blocking"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	config := resolveConfig(CLI.Config)
	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: configDir(config)}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}

	store, err := selectStore(config)
	if err != nil {
		apperrors.Fatal(err)
	}

	appCtx := &cli.Context{
		Store:  store,
		Engine: scheduler.New(),
	}

	// Init bootstraps its own storage and keyring commands work without any;
	// every other command needs a loaded store.
	// Doctor also loads for itself so it can report failures as diagnostics.
	cmd := ctx.Command()
	if cmd != "init" && cmd != "doctor" && !strings.HasPrefix(cmd, "keyring") {
		if err := store.Load(); err != nil {
			apperrors.Fatal(err)
		}
	}

	err = ctx.Run(appCtx)
	store.Close()
	if err != nil {
		apperrors.Fatal(err)
	}
}

// resolveConfig expands the config flag and falls back to a keyring-stored
// PostgreSQL connection string when the flag is left at its default.
func resolveConfig(config string) string {
	if config == constants.DefaultConfigPath || config == "" {
		if connStr, err := keyring.GetConnectionString(); err == nil {
			return connStr
		} else if !errors.Is(err, keyring.ErrNotFound) {
			logger.Warn("keyring lookup failed", "error", err)
		}
	}
	if strings.HasPrefix(config, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, config[2:])
		}
	}
	return config
}

// configDir is where logs live: next to the SQLite database, or the default
// config directory for PostgreSQL setups.
func configDir(config string) string {
	if !storage.IsPostgresConnString(config) {
		return filepath.Dir(config)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", constants.AppName)
	}
	return "."
}

func selectStore(config string) (storage.Provider, error) {
	if storage.IsPostgresConnString(config) {
		if storage.HasEmbeddedCredentials(config) {
			return nil, errors.New("PostgreSQL connection strings with embedded credentials are not allowed; store the full string with 'horizon keyring set', or use environment variables or .pgpass")
		}
		return postgres.New(config), nil
	}
	return sqlite.NewStore(config), nil
}
