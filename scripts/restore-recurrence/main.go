// scripts/restore-recurrence/main.go
//
// One-off repair: a bad bulk update stripped the recurrence pattern from a
// handful of priority-3 routine tasks. This puts the known patterns back.
// Safe to re-run; tasks that are already recurring are left alone.
//
// Usage:
//   TODOIST_KEY=... go run scripts/restore-recurrence/main.go

package main

import (
	"context"
	"fmt"
	stdlog "log"
	"os"
	"time"

	"todoist-scheduler/internal/model"
	"todoist-scheduler/internal/task/repository"
	"todoist-scheduler/internal/task/repository/todoist"
	"todoist-scheduler/pkg/log"
)

// The tasks that lost their recurrence, with the patterns to restore.
var tasksToFix = []struct {
	content string
	pattern string
}{
	{"Charge computer", "every weekday @ 16:45"},
	{"clip nails", "every other sunday @ 13:00"},
	{"Change", "every day 7:30"},
	{"Make sure unhook is enabled", "every day"},
	{"Khan academy", "every day 16:30"},
	{"brush teeth night", "every day 21:30"},
	{"check for completed tasks", "every day 20:00"},
	{"brush teeth morning", "every day @ 07:35"},
	{"shower", "every day 21:15"},
}

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

	fmt.Println("Restoring recurrence patterns for priority 3 tasks...")

	for _, fix := range tasksToFix {
		task, ok := findTask(tasks, fix.content)
		if !ok {
			fmt.Printf("\n⚠ Could not find task: %s\n", fix.content)
			continue
		}

		if task.Due == nil || task.Due.IsRecurring {
			fmt.Printf("\n✓ %s - already recurring or has no due date\n", fix.content)
			continue
		}

		fmt.Printf("\n🔧 Fixing: %s\n", fix.content)
		fmt.Printf("   Current due string: %s\n", task.Due.String)
		fmt.Printf("   Restoring pattern: %s\n", fix.pattern)

		if _, err := repo.UpdateTask(ctx, task.ID, repository.UpdateTaskOptions{DueString: fix.pattern}); err != nil {
			fmt.Printf("   ✗ Restore failed: %v\n", err)
			continue
		}
		fmt.Println("   ✓ Recurrence restored")
	}
}

func findTask(tasks []model.Task, content string) (model.Task, bool) {
	for _, t := range tasks {
		if t.Content == content && t.Priority == 3 {
			return t, true
		}
	}
	return model.Task{}, false
}
