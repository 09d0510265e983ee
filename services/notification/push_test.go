package notification

import (
	"context"
	"errors"
	"testing"

	"beautyboosters/models"

	"firebase.google.com/go/v4/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent []*messaging.Message
	err  error
}

func (f *fakeSender) Send(_ context.Context, m *messaging.Message) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.sent = append(f.sent, m)
	return "projects/bb/messages/1", nil
}

type boosterMap map[string]models.Booster

func (m boosterMap) GetBooster(_ context.Context, id string) (*models.Booster, error) {
	b, ok := m[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return &b, nil
}

func TestSendReassignmentNotice(t *testing.T) {
	sender := &fakeSender{}
	svc, err := NewPushService(sender, boosterMap{"b2": {ID: "b2", FCMToken: "tok-b2"}}, nil)
	require.NoError(t, err)

	require.NoError(t, svc.SendReassignmentNotice(context.Background(), models.ReassignmentPayload{
		BoosterID: "b2", AvailabilityID: "s2", JobID: "j1", JobTitle: "Makeup",
		Date: "2024-06-14", StartTime: "10:00:00", EndTime: "11:00:00",
	}))

	require.Len(t, sender.sent, 1)
	msg := sender.sent[0]
	assert.Equal(t, "tok-b2", msg.Token)
	assert.Equal(t, "Makeup d. 2024-06-14 kl. 10:00-11:00", msg.Notification.Body)
	assert.Equal(t, "schedule_reassigned", msg.Data["type"])
	assert.Equal(t, "booster", msg.Data["role"])
	assert.Equal(t, "high", msg.Android.Priority)
}

func TestSendReassignmentNotice_NoToken(t *testing.T) {
	sender := &fakeSender{}
	svc, err := NewPushService(sender, boosterMap{"b2": {ID: "b2"}}, nil)
	require.NoError(t, err)

	assert.NoError(t, svc.SendReassignmentNotice(context.Background(), models.ReassignmentPayload{BoosterID: "b2"}))
	assert.Empty(t, sender.sent)
}

func TestSendBoosterPush_Errors(t *testing.T) {
	sender := &fakeSender{err: errors.New("unavailable")}
	svc, err := NewPushService(sender, boosterMap{"b1": {ID: "b1", FCMToken: "t"}}, nil)
	require.NoError(t, err)

	assert.Error(t, svc.SendBoosterPush(context.Background(), "b1", "t", "b", nil))
	assert.Error(t, svc.SendBoosterPush(context.Background(), "missing", "t", "b", nil))

	_, err = NewPushService(sender, nil, nil)
	assert.Error(t, err)
}
