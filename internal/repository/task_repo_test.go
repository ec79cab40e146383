package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/omnia28/task-manager-api/internal/domain"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&domain.Task{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func ptr[T any](v T) *T {
	return &v
}

func newTask(title string) *domain.Task {
	return &domain.Task{
		Title:    title,
		Status:   domain.StatusPending,
		Priority: domain.PriorityMedium,
	}
}

func TestTaskRepository_Create(t *testing.T) {
	repo := NewTaskRepository(setupTestDB(t))
	ctx := context.Background()

	task := newTask("Write release notes")
	task.Description = ptr("for the 1.0 release")

	before := time.Now().UTC()
	if err := repo.Create(ctx, task); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if task.ID == 0 {
		t.Error("expected ID to be assigned")
	}
	if task.CreatedAt.Before(before) {
		t.Errorf("expected created_at at or after %v, got %v", before, task.CreatedAt)
	}
	if task.CreatedAt.Location() != time.UTC {
		t.Errorf("expected created_at in UTC, got %v", task.CreatedAt.Location())
	}
	if task.UpdatedAt != nil {
		t.Errorf("expected nil updated_at on create, got %v", task.UpdatedAt)
	}

	got, err := repo.GetByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Title != "Write release notes" {
		t.Errorf("expected title %q, got %q", "Write release notes", got.Title)
	}
	if got.Description == nil || *got.Description != "for the 1.0 release" {
		t.Errorf("expected description to round-trip, got %v", got.Description)
	}
	if got.UpdatedAt != nil {
		t.Errorf("expected updated_at to stay nil after reload, got %v", got.UpdatedAt)
	}
}

func TestTaskRepository_GetByID_NotFound(t *testing.T) {
	repo := NewTaskRepository(setupTestDB(t))

	_, err := repo.GetByID(context.Background(), 42)
	if !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestTaskRepository_List(t *testing.T) {
	repo := NewTaskRepository(setupTestDB(t))
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		if err := repo.Create(ctx, newTask(fmt.Sprintf("task %d", i))); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	t.Run("first page", func(t *testing.T) {
		tasks, err := repo.List(ctx, 0, 2)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(tasks) != 2 {
			t.Fatalf("expected 2 tasks, got %d", len(tasks))
		}
		if tasks[0].Title != "task 1" || tasks[1].Title != "task 2" {
			t.Errorf("unexpected page: %q, %q", tasks[0].Title, tasks[1].Title)
		}
	})

	t.Run("middle page", func(t *testing.T) {
		tasks, err := repo.List(ctx, 2, 2)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(tasks) != 2 {
			t.Fatalf("expected 2 tasks, got %d", len(tasks))
		}
		if tasks[0].Title != "task 3" || tasks[1].Title != "task 4" {
			t.Errorf("unexpected page: %q, %q", tasks[0].Title, tasks[1].Title)
		}
	})

	t.Run("offset past the end", func(t *testing.T) {
		tasks, err := repo.List(ctx, 10, 10)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(tasks) != 0 {
			t.Errorf("expected 0 tasks, got %d", len(tasks))
		}
	})

	t.Run("zero limit", func(t *testing.T) {
		tasks, err := repo.List(ctx, 0, 0)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(tasks) != 0 {
			t.Errorf("expected 0 tasks, got %d", len(tasks))
		}
	})
}

func TestTaskRepository_ListByStatus(t *testing.T) {
	repo := NewTaskRepository(setupTestDB(t))
	ctx := context.Background()

	statuses := []domain.TaskStatus{
		domain.StatusPending,
		domain.StatusCompleted,
		domain.StatusPending,
		domain.StatusInProgress,
	}
	for i, s := range statuses {
		task := newTask(fmt.Sprintf("task %d", i+1))
		task.Status = s
		if err := repo.Create(ctx, task); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	tasks, err := repo.ListByStatus(ctx, domain.StatusPending)
	if err != nil {
		t.Fatalf("ListByStatus() error = %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 pending tasks, got %d", len(tasks))
	}
	if tasks[0].Title != "task 1" || tasks[1].Title != "task 3" {
		t.Errorf("unexpected tasks: %q, %q", tasks[0].Title, tasks[1].Title)
	}

	none, err := repo.ListByStatus(ctx, domain.StatusCancelled)
	if err != nil {
		t.Fatalf("ListByStatus() error = %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected 0 cancelled tasks, got %d", len(none))
	}
}

func TestTaskRepository_ListByPriority(t *testing.T) {
	repo := NewTaskRepository(setupTestDB(t))
	ctx := context.Background()

	priorities := []domain.TaskPriority{
		domain.PriorityHigh,
		domain.PriorityLow,
		domain.PriorityHigh,
	}
	for i, p := range priorities {
		task := newTask(fmt.Sprintf("task %d", i+1))
		task.Priority = p
		if err := repo.Create(ctx, task); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	tasks, err := repo.ListByPriority(ctx, domain.PriorityHigh)
	if err != nil {
		t.Fatalf("ListByPriority() error = %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 high priority tasks, got %d", len(tasks))
	}
	if tasks[0].Title != "task 1" || tasks[1].Title != "task 3" {
		t.Errorf("unexpected tasks: %q, %q", tasks[0].Title, tasks[1].Title)
	}
}

func TestTaskRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	task := newTask("Original title")
	task.Description = ptr("original description")
	if err := repo.Create(ctx, task); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	t.Run("changes one field and stamps updated_at", func(t *testing.T) {
		updated, err := repo.Update(ctx, task.ID, map[string]any{"title": "Renamed"})
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if updated.Title != "Renamed" {
			t.Errorf("expected title %q, got %q", "Renamed", updated.Title)
		}
		if updated.Status != domain.StatusPending {
			t.Errorf("expected status untouched, got %q", updated.Status)
		}
		if updated.Description == nil || *updated.Description != "original description" {
			t.Errorf("expected description untouched, got %v", updated.Description)
		}
		if updated.UpdatedAt == nil {
			t.Fatal("expected updated_at to be stamped")
		}
		if !updated.CreatedAt.Equal(task.CreatedAt) {
			t.Errorf("expected created_at unchanged, got %v want %v", updated.CreatedAt, task.CreatedAt)
		}
	})

	t.Run("explicit nil clears a nullable column", func(t *testing.T) {
		updated, err := repo.Update(ctx, task.ID, map[string]any{"description": (*string)(nil)})
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if updated.Description != nil {
			t.Errorf("expected description cleared, got %q", *updated.Description)
		}
	})

	t.Run("empty changes still advance updated_at", func(t *testing.T) {
		before, err := repo.GetByID(ctx, task.ID)
		if err != nil {
			t.Fatalf("GetByID() error = %v", err)
		}
		if before.UpdatedAt == nil {
			t.Fatal("expected updated_at from previous subtest")
		}

		time.Sleep(10 * time.Millisecond)

		updated, err := repo.Update(ctx, task.ID, map[string]any{})
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if updated.UpdatedAt == nil || !updated.UpdatedAt.After(*before.UpdatedAt) {
			t.Errorf("expected updated_at to advance beyond %v, got %v", before.UpdatedAt, updated.UpdatedAt)
		}
	})

	t.Run("missing task", func(t *testing.T) {
		_, err := repo.Update(ctx, 9999, map[string]any{"title": "x"})
		if !errors.Is(err, ErrTaskNotFound) {
			t.Errorf("expected ErrTaskNotFound, got %v", err)
		}
	})
}

func TestTaskRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	task := newTask("To be deleted")
	if err := repo.Create(ctx, task); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := repo.Delete(ctx, task.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if _, err := repo.GetByID(ctx, task.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound after delete, got %v", err)
	}

	// row is gone, not soft-deleted
	var count int64
	if err := db.Model(&domain.Task{}).Count(&count).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 rows after delete, got %d", count)
	}

	if err := repo.Delete(ctx, task.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound on second delete, got %v", err)
	}
}
