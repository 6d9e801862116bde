package todoist

import (
	"context"
	"time"

	"todoist-scheduler/internal/model"
	"todoist-scheduler/internal/task/repository"
	pkgLog "todoist-scheduler/pkg/log"
)

// floatingDatetimeLayout is the due.datetime form the REST API returns for
// tasks without a fixed timezone: a clock time with no UTC offset.
const floatingDatetimeLayout = "2006-01-02T15:04:05"

type implRepository struct {
	client   *Client
	location *time.Location
	l        pkgLog.Logger
}

// New creates a new Todoist repository. Date-only due values are anchored
// to midnight in the given location.
func New(client *Client, location *time.Location, l pkgLog.Logger) repository.TaskRepository {
	if location == nil {
		location = time.Local
	}
	return &implRepository{
		client:   client,
		location: location,
		l:        l,
	}
}

func (r *implRepository) ListTasks(ctx context.Context) ([]model.Task, error) {
	apiTasks, err := r.client.ListTasks(ctx)
	if err != nil {
		r.l.Errorf(ctx, "todoist repository: failed to list tasks: %v", err)
		return nil, err
	}

	tasks := make([]model.Task, 0, len(apiTasks))
	for _, t := range apiTasks {
		tasks = append(tasks, r.apiToTask(t))
	}
	return tasks, nil
}

func (r *implRepository) UpdateTask(ctx context.Context, id string, opt repository.UpdateTaskOptions) (model.Task, error) {
	req := updateTaskRequest{
		DueString:   opt.DueString,
		Description: opt.Description,
		Priority:    opt.Priority,
	}
	if opt.DueDateTime != nil {
		req.DueDatetime = opt.DueDateTime.Format(time.RFC3339)
	}

	updated, err := r.client.UpdateTask(ctx, id, req)
	if err != nil {
		r.l.Errorf(ctx, "todoist repository: failed to update task %s: %v", id, err)
		return model.Task{}, err
	}
	return r.apiToTask(*updated), nil
}

func (r *implRepository) CloseTask(ctx context.Context, id string) error {
	if err := r.client.CloseTask(ctx, id); err != nil {
		r.l.Errorf(ctx, "todoist repository: failed to close task %s: %v", id, err)
		return err
	}
	return nil
}

// apiToTask converts a Todoist REST task to the internal model.Task.
func (r *implRepository) apiToTask(t apiTask) model.Task {
	task := model.Task{
		ID:          t.ID,
		Content:     t.Content,
		Description: t.Description,
		Priority:    t.Priority,
		Labels:      t.Labels,
		IsCompleted: t.IsCompleted,
	}

	if t.Due != nil {
		due := &model.Due{
			IsRecurring: t.Due.IsRecurring,
			String:      t.Due.String,
		}

		if t.Due.Datetime != "" {
			if when, err := time.Parse(time.RFC3339, t.Due.Datetime); err == nil {
				due.Date = when.In(r.location)
				due.HasTime = true
			} else if when, err := time.ParseInLocation(floatingDatetimeLayout, t.Due.Datetime, r.location); err == nil {
				// Floating due times come back without a UTC offset and
				// mean "this clock time in the user's timezone".
				due.Date = when
				due.HasTime = true
			}
		}
		if !due.HasTime && t.Due.Date != "" {
			if day, err := time.ParseInLocation("2006-01-02", t.Due.Date, r.location); err == nil {
				due.Date = day
			}
		}

		if !due.Date.IsZero() {
			task.Due = due
		}
	}

	return task
}
