package schemas

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/omnia28/task-manager-api/internal/domain"
)

// TaskCreate is the request body for creating a task.
type TaskCreate struct {
	Title       string              `json:"title" binding:"required,notblank,max=200"`
	Description *string             `json:"description" binding:"omitempty,max=1000"`
	Status      domain.TaskStatus   `json:"status"`
	Priority    domain.TaskPriority `json:"priority"`
	DueDate     *time.Time          `json:"due_date" binding:"omitempty,future"`
	AssignedTo  *string             `json:"assigned_to" binding:"omitempty,max=100"`
}

// Validate trims the title, fills in default status and priority and
// checks enum membership. Missing status or priority (and explicit
// empty strings) fall back to the defaults.
func (t *TaskCreate) Validate() []FieldError {
	var errs []FieldError

	t.Title = strings.TrimSpace(t.Title)

	if t.Status == "" {
		t.Status = domain.StatusPending
	} else if !t.Status.Valid() {
		errs = append(errs, FieldError{Field: "status", Message: InvalidStatusMessage})
	}

	if t.Priority == "" {
		t.Priority = domain.PriorityMedium
	} else if !t.Priority.Valid() {
		errs = append(errs, FieldError{Field: "priority", Message: InvalidPriorityMessage})
	}

	return errs
}

// Task builds the row to insert. Call Validate first.
func (t *TaskCreate) Task() *domain.Task {
	return &domain.Task{
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		DueDate:     t.DueDate,
		AssignedTo:  t.AssignedTo,
	}
}

// TaskUpdate is the request body for partially updating a task. Every
// field is optional; a key absent from the JSON body is left untouched,
// while an explicit null clears the nullable fields (description,
// due_date, assigned_to) and is rejected for the rest.
type TaskUpdate struct {
	Title       *string              `json:"title" binding:"omitempty,max=200"`
	Description *string              `json:"description" binding:"omitempty,max=1000"`
	Status      *domain.TaskStatus   `json:"status"`
	Priority    *domain.TaskPriority `json:"priority"`
	DueDate     *time.Time           `json:"due_date" binding:"omitempty,future"`
	AssignedTo  *string              `json:"assigned_to" binding:"omitempty,max=100"`

	fields map[string]bool
}

// UnmarshalJSON decodes the payload and records which keys were
// actually present, so the update can tell "field omitted" apart from
// "field set to null".
func (t *TaskUpdate) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return errors.New("expected a JSON object")
	}

	type taskUpdate TaskUpdate
	var tmp taskUpdate
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*t = TaskUpdate(tmp)
	t.fields = make(map[string]bool, len(raw))
	for k := range raw {
		t.fields[k] = true
	}
	return nil
}

// Has reports whether the key was present in the request body.
func (t *TaskUpdate) Has(field string) bool {
	return t.fields[field]
}

// Validate trims the title and rejects nulls on non-nullable fields
// and values outside the enums.
func (t *TaskUpdate) Validate() []FieldError {
	var errs []FieldError

	if t.Has("title") {
		switch {
		case t.Title == nil:
			errs = append(errs, FieldError{Field: "title", Message: "must not be null"})
		case strings.TrimSpace(*t.Title) == "":
			errs = append(errs, FieldError{Field: "title", Message: "must not be empty or only whitespace"})
		default:
			*t.Title = strings.TrimSpace(*t.Title)
		}
	}

	if t.Has("status") {
		switch {
		case t.Status == nil:
			errs = append(errs, FieldError{Field: "status", Message: "must not be null"})
		case !t.Status.Valid():
			errs = append(errs, FieldError{Field: "status", Message: InvalidStatusMessage})
		}
	}

	if t.Has("priority") {
		switch {
		case t.Priority == nil:
			errs = append(errs, FieldError{Field: "priority", Message: "must not be null"})
		case !t.Priority.Valid():
			errs = append(errs, FieldError{Field: "priority", Message: InvalidPriorityMessage})
		}
	}

	return errs
}

// Changes builds the column assignments for the update. Nil values on
// nullable fields become SQL NULL. Call Validate first.
func (t *TaskUpdate) Changes() map[string]any {
	changes := make(map[string]any, len(t.fields))
	if t.Has("title") {
		changes["title"] = *t.Title
	}
	if t.Has("description") {
		changes["description"] = t.Description
	}
	if t.Has("status") {
		changes["status"] = *t.Status
	}
	if t.Has("priority") {
		changes["priority"] = *t.Priority
	}
	if t.Has("due_date") {
		changes["due_date"] = t.DueDate
	}
	if t.Has("assigned_to") {
		changes["assigned_to"] = t.AssignedTo
	}
	return changes
}

// TaskResponse represents a task in responses. Nullable fields are
// emitted as explicit JSON nulls.
type TaskResponse struct {
	ID          int64               `json:"id"`
	Title       string              `json:"title"`
	Description *string             `json:"description"`
	Status      domain.TaskStatus   `json:"status"`
	Priority    domain.TaskPriority `json:"priority"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   *time.Time          `json:"updated_at"`
	DueDate     *time.Time          `json:"due_date"`
	AssignedTo  *string             `json:"assigned_to"`
}

func NewTaskResponse(t *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
		DueDate:     t.DueDate,
		AssignedTo:  t.AssignedTo,
	}
}

// NewTaskListResponse always returns a non-nil slice so empty pages
// serialize as [] rather than null.
func NewTaskListResponse(tasks []*domain.Task) []TaskResponse {
	res := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		res = append(res, NewTaskResponse(t))
	}
	return res
}

// ListTasksQuery holds the pagination parameters of GET /tasks.
type ListTasksQuery struct {
	Offset int `form:"offset,default=0" binding:"min=0"`
	Limit  int `form:"limit,default=10" binding:"min=0,max=100"`
}
