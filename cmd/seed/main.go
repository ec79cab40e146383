package main

import (
	"context"
	"log"
	"time"

	"github.com/omnia28/task-manager-api/internal/config"
	"github.com/omnia28/task-manager-api/internal/db"
	"github.com/omnia28/task-manager-api/internal/domain"
	"github.com/omnia28/task-manager-api/internal/repository"
)

func ptr[T any](v T) *T {
	return &v
}

func main() {
	cfg := config.Load()

	database := db.Connect(cfg.DatabaseURL)
	defer db.Close(database)

	if err := db.Migrate(database); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	repo := repository.NewTaskRepository(database)
	ctx := context.Background()

	existing, err := repo.List(ctx, 0, 1)
	if err != nil {
		log.Fatalf("list tasks: %v", err)
	}
	if len(existing) > 0 {
		log.Println("tasks table already has data, nothing to seed")
		return
	}

	nextWeek := time.Now().UTC().AddDate(0, 0, 7)
	samples := []*domain.Task{
		{
			Title:       "Write the deployment runbook",
			Description: ptr("Cover rollback and smoke checks"),
			Status:      domain.StatusPending,
			Priority:    domain.PriorityHigh,
			DueDate:     &nextWeek,
			AssignedTo:  ptr("omnia"),
		},
		{
			Title:      "Rotate the staging credentials",
			Status:     domain.StatusInProgress,
			Priority:   domain.PriorityUrgent,
			AssignedTo: ptr("sara"),
		},
		{
			Title:    "Clean up stale feature flags",
			Status:   domain.StatusPending,
			Priority: domain.PriorityLow,
		},
		{
			Title:       "Review the Q3 incident report",
			Description: ptr("Focus on the timeline section"),
			Status:      domain.StatusCompleted,
			Priority:    domain.PriorityMedium,
		},
		{
			Title:    "Upgrade the CI runners",
			Status:   domain.StatusCancelled,
			Priority: domain.PriorityMedium,
		},
	}

	for _, t := range samples {
		if err := repo.Create(ctx, t); err != nil {
			log.Fatalf("create task %q: %v", t.Title, err)
		}
		log.Printf("created task id=%d title=%q", t.ID, t.Title)
	}

	log.Printf("seeded %d tasks", len(samples))
}
