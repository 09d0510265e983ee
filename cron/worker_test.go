package cron

import (
	"context"
	"errors"
	"testing"

	"beautyboosters/models"
	"beautyboosters/services/tasks"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingSender struct {
	got []models.ReassignmentPayload
	err error
}

func (s *recordingSender) SendReassignmentNotice(_ context.Context, p models.ReassignmentPayload) error {
	s.got = append(s.got, p)
	return s.err
}

func TestHandleReassignmentTask(t *testing.T) {
	sender := &recordingSender{}
	handle := HandleReassignmentTask(sender, zap.NewNop())

	payload := models.ReassignmentPayload{BoosterID: "b2", JobID: "j1", Date: "2024-06-14", StartTime: "10:00:00", EndTime: "11:00:00"}
	task, _, err := tasks.NewReassignmentTask(payload)
	require.NoError(t, err)

	require.NoError(t, handle(context.Background(), task))
	require.Len(t, sender.got, 1)
	assert.Equal(t, payload, sender.got[0])
}

func TestHandleReassignmentTaskSkipsRetryOnBadPayload(t *testing.T) {
	sender := &recordingSender{}
	handle := HandleReassignmentTask(sender, zap.NewNop())

	err := handle(context.Background(), asynq.NewTask(tasks.TypeScheduleReassigned, []byte("{")))
	require.Error(t, err)
	assert.True(t, errors.Is(err, asynq.SkipRetry))
	assert.Empty(t, sender.got)
}

func TestHandleReassignmentTaskRetriesOnSendFailure(t *testing.T) {
	boom := errors.New("fcm unavailable")
	sender := &recordingSender{err: boom}
	handle := HandleReassignmentTask(sender, zap.NewNop())

	task, _, err := tasks.NewReassignmentTask(models.ReassignmentPayload{BoosterID: "b1"})
	require.NoError(t, err)
	assert.ErrorIs(t, handle(context.Background(), task), boom)
}
