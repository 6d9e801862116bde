// scripts/reschedule-recurring/main.go
//
// One-off maintenance: resubmits the recurrence pattern of every overdue
// recurring task (any priority) so Todoist advances it to the next valid
// occurrence. The daemon does this on every pass; run this by hand when
// the daemon has been down for a while.
//
// Usage:
//   TODOIST_KEY=... go run scripts/reschedule-recurring/main.go

package main

import (
	"context"
	"fmt"
	stdlog "log"
	"os"
	"time"

	"todoist-scheduler/internal/task/repository"
	"todoist-scheduler/internal/task/repository/todoist"
	"todoist-scheduler/pkg/log"
)

func main() {
	apiKey := os.Getenv("TODOIST_KEY")
	if apiKey == "" {
		stdlog.Fatal("Missing TODOIST_KEY in environment")
	}

	logger := log.Init(log.ZapConfig{Level: "warn", Mode: "dev", Encoding: "console"})
	repo := todoist.New(todoist.NewClient(todoist.DefaultBaseURL, apiKey), time.Local, logger)

	ctx := context.Background()
	tasks, err := repo.ListTasks(ctx)
	if err != nil {
		stdlog.Fatalf("Failed to list tasks: %v", err)
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	overdue := 0
	for _, t := range tasks {
		if t.IsCompleted || t.Due == nil || !t.Due.IsRecurring {
			continue
		}
		if !t.DueDate().Before(today) {
			continue
		}
		overdue++

		fmt.Printf("\nTask: %s\n", t.Content)
		fmt.Printf("  Priority: %d\n", t.Priority)
		fmt.Printf("  Current due: %s\n", t.Due.Date.Format("2006-01-02 15:04"))
		fmt.Printf("  Recurrence: %s\n", t.Due.String)

		// Resubmitting the original due string keeps the pattern while
		// Todoist moves the due date to the next valid occurrence.
		if _, err := repo.UpdateTask(ctx, t.ID, repository.UpdateTaskOptions{DueString: t.Due.String}); err != nil {
			fmt.Printf("  ✗ Reschedule failed: %v\n", err)
			continue
		}
		fmt.Println("  → Rescheduled (recurrence preserved)")
	}

	fmt.Printf("\nDone: %d overdue recurring task(s) processed\n", overdue)
}
