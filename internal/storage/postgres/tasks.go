package postgres

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/julianstephens/horizon/internal/models"
	"github.com/julianstephens/horizon/internal/storage"
)

const taskColumns = `id, name, project, duration_minutes, priority, due_date,
	energy_level, time_preference, "repeat", completed, archived, deleted_at`

func scanTask(row interface{ Scan(...any) error }) (models.Task, error) {
	var t models.Task
	var priority, energy, pref, repeat string
	var deletedAt sql.NullString

	err := row.Scan(
		&t.ID, &t.Name, &t.Project, &t.DurationMinutes, &priority, &t.DueDate,
		&energy, &pref, &repeat, &t.Completed, &t.Archived, &deletedAt,
	)
	if err != nil {
		return models.Task{}, err
	}

	t.Priority = models.Priority(priority)
	t.EnergyLevel = models.EnergyLevel(energy)
	t.TimePreference = models.TimePreference(pref)
	t.Repeat = models.Repeat(repeat)
	if deletedAt.Valid {
		t.DeletedAt = &deletedAt.String
	}
	return t, nil
}

func (s *Store) AddTask(task models.Task) error {
	task = task.WithDefaults()
	_, err := s.db.Exec(`
		INSERT INTO tasks (`+taskColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NULL)`,
		task.ID, task.Name, task.Project, task.DurationMinutes, string(task.Priority),
		task.DueDate, string(task.EnergyLevel), string(task.TimePreference),
		string(task.Repeat), task.Completed, task.Archived,
	)
	if err != nil {
		return fmt.Errorf("failed to add task: %w", err)
	}
	return nil
}

func (s *Store) GetTask(id string) (models.Task, error) {
	row := s.db.QueryRow(`
		SELECT `+taskColumns+` FROM tasks
		WHERE id = $1 AND deleted_at IS NULL`, id)
	t, err := scanTask(row)
	if err == sql.ErrNoRows {
		return models.Task{}, fmt.Errorf("task %s not found", id)
	}
	return t, err
}

func (s *Store) GetTasks(filter storage.TaskFilter) ([]models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE deleted_at IS NULL`
	var args []any

	if !filter.IncludeCompleted {
		query += ` AND completed = FALSE`
	}
	if !filter.IncludeArchived {
		query += ` AND archived = FALSE`
	}
	if filter.Project != "" {
		args = append(args, filter.Project)
		query += fmt.Sprintf(` AND project = $%d`, len(args))
	}
	query += ` ORDER BY name`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (s *Store) UpdateTask(task models.Task) error {
	task = task.WithDefaults()
	res, err := s.db.Exec(`
		UPDATE tasks
		SET name = $1, project = $2, duration_minutes = $3, priority = $4, due_date = $5,
		    energy_level = $6, time_preference = $7, "repeat" = $8, completed = $9, archived = $10
		WHERE id = $11 AND deleted_at IS NULL`,
		task.Name, task.Project, task.DurationMinutes, string(task.Priority), task.DueDate,
		string(task.EnergyLevel), string(task.TimePreference), string(task.Repeat),
		task.Completed, task.Archived, task.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return requireRow(res, task.ID)
}

func (s *Store) SetCompleted(id string, completed bool) error {
	res, err := s.db.Exec(`
		UPDATE tasks SET completed = $1 WHERE id = $2 AND deleted_at IS NULL`,
		completed, id)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return requireRow(res, id)
}

func (s *Store) DeleteTask(id string) error {
	res, err := s.db.Exec(`
		UPDATE tasks SET deleted_at = $1 WHERE id = $2 AND deleted_at IS NULL`,
		time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return requireRow(res, id)
}

func (s *Store) RestoreTask(id string) error {
	res, err := s.db.Exec(`
		UPDATE tasks SET deleted_at = NULL WHERE id = $1 AND deleted_at IS NOT NULL`, id)
	if err != nil {
		return fmt.Errorf("failed to restore task: %w", err)
	}
	return requireRow(res, id)
}

func requireRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("task %s not found", id)
	}
	return nil
}
