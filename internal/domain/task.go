package domain

import (
	"fmt"
	"time"
)

// TaskStatus - workflow state of a task
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in_progress"
	StatusCompleted  TaskStatus = "completed"
	StatusCancelled  TaskStatus = "cancelled"
)

// TaskPriority - urgency level of a task
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
	PriorityUrgent TaskPriority = "urgent"
)

// AllTaskStatuses lists every accepted status, in workflow order.
var AllTaskStatuses = []TaskStatus{StatusPending, StatusInProgress, StatusCompleted, StatusCancelled}

// AllTaskPriorities lists every accepted priority, lowest first.
var AllTaskPriorities = []TaskPriority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// ParseTaskStatus converts a raw path or query value into a TaskStatus.
func ParseTaskStatus(s string) (TaskStatus, error) {
	st := TaskStatus(s)
	if !st.Valid() {
		return "", fmt.Errorf("invalid task status %q", s)
	}
	return st, nil
}

// ParseTaskPriority converts a raw path or query value into a TaskPriority.
func ParseTaskPriority(s string) (TaskPriority, error) {
	p := TaskPriority(s)
	if !p.Valid() {
		return "", fmt.Errorf("invalid task priority %q", s)
	}
	return p, nil
}

// Task is a row in the tasks table. Timestamps are managed by the
// repository in UTC: CreatedAt is set once on insert and never touched
// again, UpdatedAt stays nil until the first successful update.
type Task struct {
	ID          int64        `gorm:"primaryKey"`
	Title       string       `gorm:"size:200;not null"`
	Description *string      `gorm:"size:1000"`
	Status      TaskStatus   `gorm:"size:20;not null;index"`
	Priority    TaskPriority `gorm:"size:20;not null;index"`
	CreatedAt   time.Time    `gorm:"not null;autoCreateTime:false"`
	UpdatedAt   *time.Time   `gorm:"autoUpdateTime:false"`
	DueDate     *time.Time
	AssignedTo  *string `gorm:"size:100"`
}

func (Task) TableName() string {
	return "tasks"
}
