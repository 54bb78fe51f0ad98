package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/julianstephens/horizon/internal/models"
	"github.com/julianstephens/horizon/internal/storage"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(filepath.Join(t.TempDir(), "horizon.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleTask(id string) models.Task {
	return models.Task{
		ID:              id,
		Name:            "task " + id,
		DurationMinutes: 60,
		Priority:        models.PriorityHigh,
		DueDate:         "2026-03-05",
		EnergyLevel:     models.EnergyHigh,
		TimePreference:  models.PreferMorning,
		Repeat:          models.RepeatNone,
	}
}

func TestLoadRequiresInit(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing.db"))
	if err := store.Load(); err == nil {
		t.Fatal("expected Load to fail before Init")
	}
}

func TestAddAndGetTask(t *testing.T) {
	store := newTestStore(t)

	want := sampleTask("t1")
	if err := store.AddTask(want); err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}

	got, err := store.GetTask("t1")
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}
	if got != want {
		t.Errorf("GetTask = %+v, want %+v", got, want)
	}
}

func TestAddTaskFillsDefaults(t *testing.T) {
	store := newTestStore(t)

	if err := store.AddTask(models.Task{ID: "bare", Name: "bare", DurationMinutes: 30}); err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}

	got, err := store.GetTask("bare")
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}
	if got.Priority != models.PriorityMedium || got.TimePreference != models.PreferAnytime {
		t.Errorf("defaults not persisted: %+v", got)
	}
}

func TestGetTasksFilters(t *testing.T) {
	store := newTestStore(t)

	open := sampleTask("open")
	done := sampleTask("done")
	done.Completed = true
	work := sampleTask("work")
	work.Project = "acme"
	for _, task := range []models.Task{open, done, work} {
		if err := store.AddTask(task); err != nil {
			t.Fatalf("AddTask failed: %v", err)
		}
	}

	tasks, err := store.GetTasks(storage.TaskFilter{})
	if err != nil {
		t.Fatalf("GetTasks failed: %v", err)
	}
	if len(tasks) != 2 {
		t.Errorf("default filter returned %d tasks, want 2 (completed excluded)", len(tasks))
	}

	tasks, err = store.GetTasks(storage.TaskFilter{IncludeCompleted: true})
	if err != nil {
		t.Fatalf("GetTasks failed: %v", err)
	}
	if len(tasks) != 3 {
		t.Errorf("IncludeCompleted returned %d tasks, want 3", len(tasks))
	}

	tasks, err = store.GetTasks(storage.TaskFilter{Project: "acme"})
	if err != nil {
		t.Fatalf("GetTasks failed: %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != "work" {
		t.Errorf("project filter returned %+v, want just 'work'", tasks)
	}
}

func TestUpdateTask(t *testing.T) {
	store := newTestStore(t)

	task := sampleTask("t1")
	if err := store.AddTask(task); err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}

	task.Name = "renamed"
	task.DurationMinutes = 90
	if err := store.UpdateTask(task); err != nil {
		t.Fatalf("UpdateTask failed: %v", err)
	}

	got, err := store.GetTask("t1")
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}
	if got.Name != "renamed" || got.DurationMinutes != 90 {
		t.Errorf("update not persisted: %+v", got)
	}

	if err := store.UpdateTask(sampleTask("ghost")); err == nil {
		t.Error("expected an error updating a missing task")
	}
}

func TestSetCompleted(t *testing.T) {
	store := newTestStore(t)

	if err := store.AddTask(sampleTask("t1")); err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}
	if err := store.SetCompleted("t1", true); err != nil {
		t.Fatalf("SetCompleted failed: %v", err)
	}

	got, err := store.GetTask("t1")
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}
	if !got.Completed {
		t.Error("task not marked completed")
	}

	if err := store.SetCompleted("t1", false); err != nil {
		t.Fatalf("SetCompleted undo failed: %v", err)
	}
	got, _ = store.GetTask("t1")
	if got.Completed {
		t.Error("task still marked completed after undo")
	}
}

func TestSoftDeleteAndRestore(t *testing.T) {
	store := newTestStore(t)

	if err := store.AddTask(sampleTask("t1")); err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}

	if err := store.DeleteTask("t1"); err != nil {
		t.Fatalf("DeleteTask failed: %v", err)
	}
	if _, err := store.GetTask("t1"); err == nil {
		t.Error("deleted task still visible")
	}
	if err := store.DeleteTask("t1"); err == nil {
		t.Error("expected an error deleting twice")
	}

	if err := store.RestoreTask("t1"); err != nil {
		t.Fatalf("RestoreTask failed: %v", err)
	}
	got, err := store.GetTask("t1")
	if err != nil {
		t.Fatalf("GetTask after restore failed: %v", err)
	}
	if got.DeletedAt != nil {
		t.Error("restored task still carries a deletion timestamp")
	}

	if err := store.RestoreTask("never-existed"); err == nil {
		t.Error("expected an error restoring a missing task")
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	store := newTestStore(t)

	count, err := store.Migrate(func(string) {})
	if err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 pending migrations after Init, got %d", count)
	}
}

func TestLoadAfterInit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "horizon.db")

	first := NewStore(path)
	if err := first.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := first.AddTask(sampleTask("t1")); err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}
	first.Close()

	second := NewStore(path)
	if err := second.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer second.Close()

	if _, err := second.GetTask("t1"); err != nil {
		t.Errorf("task not visible after reopen: %v", err)
	}
}
