package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"beautyboosters/models"

	"github.com/hibiken/asynq"
)

const TypeScheduleReassigned = "schedule:reassigned"

// Enqueuer is the part of *asynq.Client used to queue tasks.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

func NewReassignmentTask(payload models.ReassignmentPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeScheduleReassigned, b)
	opts := []asynq.Option{asynq.MaxRetry(5), asynq.Timeout(30 * time.Second)}

	return task, opts, nil
}

// ParseReassignmentTask decodes a task created by NewReassignmentTask.
func ParseReassignmentTask(task *asynq.Task) (models.ReassignmentPayload, error) {
	var p models.ReassignmentPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return p, fmt.Errorf("invalid %s payload: %w", TypeScheduleReassigned, err)
	}
	return p, nil
}

// Dispatcher queues reassignment notices for the worker.
type Dispatcher struct {
	client Enqueuer
}

func NewDispatcher(client Enqueuer) *Dispatcher {
	return &Dispatcher{client: client}
}

func (d *Dispatcher) NotifyReassignment(ctx context.Context, booster models.Booster, result models.ReassignmentResult) error {
	p := models.ReassignmentPayload{
		BoosterID:      booster.ID,
		AvailabilityID: result.Target.AvailabilityID,
		Date:           result.Target.Date,
		StartTime:      result.Target.StartTime,
		EndTime:        result.Target.EndTime,
	}
	if result.Target.Job != nil {
		p.JobID = result.Target.Job.ID
		p.JobTitle = result.Target.Job.Title
	}

	task, opts, err := NewReassignmentTask(p)
	if err != nil {
		return err
	}
	if _, err := d.client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("enqueue %s: %w", TypeScheduleReassigned, err)
	}
	return nil
}
