// Package storage defines the task store boundary. The scheduler only ever
// reads from a store; mutation happens through the CLI surface.
package storage

import (
	"net/url"
	"strings"

	"github.com/julianstephens/horizon/internal/models"
)

// TaskFilter narrows GetTasks results. The zero value returns open tasks
// only, across all projects.
type TaskFilter struct {
	IncludeCompleted bool
	IncludeArchived  bool
	Project          string // empty = all projects
}

// Provider is the storage contract shared by the SQLite and PostgreSQL
// backends.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error
	Migrate(report func(string)) (int, error)

	// Tasks
	AddTask(models.Task) error
	GetTask(id string) (models.Task, error)
	GetTasks(TaskFilter) ([]models.Task, error)
	UpdateTask(models.Task) error
	SetCompleted(id string, completed bool) error
	DeleteTask(id string) error
	RestoreTask(id string) error

	// Utils
	GetConfigPath() string
}

// IsPostgresConnString reports whether the config value looks like a
// PostgreSQL connection string rather than a file path.
func IsPostgresConnString(s string) bool {
	return strings.HasPrefix(s, "postgres://") || strings.HasPrefix(s, "postgresql://")
}

// HasEmbeddedCredentials reports whether a PostgreSQL connection string
// carries a password inline. Those are rejected; credentials belong in the
// OS keyring or standard PostgreSQL mechanisms (.pgpass, environment).
func HasEmbeddedCredentials(connStr string) bool {
	if IsPostgresConnString(connStr) {
		u, err := url.Parse(connStr)
		if err != nil {
			return false
		}
		if u.User != nil {
			if _, set := u.User.Password(); set {
				return true
			}
		}
		return false
	}
	// DSN format: space-separated key=value pairs
	for _, part := range strings.Fields(connStr) {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) == 2 && strings.EqualFold(kv[0], "password") {
			return true
		}
	}
	return false
}
