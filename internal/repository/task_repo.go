package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/omnia28/task-manager-api/internal/domain"
)

// ErrTaskNotFound is returned when the requested task does not exist.
var ErrTaskNotFound = errors.New("task not found")

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create inserts the task, stamping created_at in UTC. updated_at is
// left NULL until the first update.
func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) error {
	t.CreatedAt = time.Now().UTC()
	t.UpdatedAt = nil
	if err := r.db.WithContext(ctx).Create(t).Error; err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// GetByID retrieves a task by its primary key.
func (r *TaskRepository) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	var task domain.Task
	if err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return &task, nil
}

// List returns a page of tasks in insertion order.
func (r *TaskRepository) List(ctx context.Context, offset, limit int) ([]*domain.Task, error) {
	var tasks []*domain.Task
	err := r.db.WithContext(ctx).Order("id").Offset(offset).Limit(limit).Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// ListByStatus returns every task with the given status, in insertion order.
func (r *TaskRepository) ListByStatus(ctx context.Context, status domain.TaskStatus) ([]*domain.Task, error) {
	var tasks []*domain.Task
	err := r.db.WithContext(ctx).Where("status = ?", status).Order("id").Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks by status: %w", err)
	}
	return tasks, nil
}

// ListByPriority returns every task with the given priority, in insertion order.
func (r *TaskRepository) ListByPriority(ctx context.Context, priority domain.TaskPriority) ([]*domain.Task, error) {
	var tasks []*domain.Task
	err := r.db.WithContext(ctx).Where("priority = ?", priority).Order("id").Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks by priority: %w", err)
	}
	return tasks, nil
}

// Update applies the column changes to the task, stamps updated_at in
// UTC and returns the refreshed row. An empty changes map still stamps
// updated_at.
func (r *TaskRepository) Update(ctx context.Context, id int64, changes map[string]any) (*domain.Task, error) {
	tx := r.db.WithContext(ctx)

	var task domain.Task
	if err := tx.First(&task, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	changes["updated_at"] = time.Now().UTC()
	if err := tx.Model(&task).Updates(changes).Error; err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	var updated domain.Task
	if err := tx.First(&updated, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to reload task: %w", err)
	}
	return &updated, nil
}

// Delete removes the task permanently.
func (r *TaskRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&domain.Task{}, "id = ?", id)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}
