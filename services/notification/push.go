package notification

import (
	"context"
	"errors"
	"fmt"

	"beautyboosters/models"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// ErrNoPushTarget is returned when the booster has no registered device.
var ErrNoPushTarget = errors.New("booster has no FCM token")

// MessageSender is the part of *messaging.Client used to deliver pushes.
type MessageSender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// BoosterLookup resolves a booster's push token.
type BoosterLookup interface {
	GetBooster(ctx context.Context, boosterID string) (*models.Booster, error)
}

// PushService sends FCM notifications to boosters.
type PushService struct {
	sender   MessageSender
	boosters BoosterLookup
	logger   *zap.Logger
}

func NewPushService(sender MessageSender, boosters BoosterLookup, logger *zap.Logger) (*PushService, error) {
	if boosters == nil {
		return nil, fmt.Errorf("push service initialization error: booster lookup is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PushService{sender: sender, boosters: boosters, logger: logger}, nil
}

// SendBoosterPush looks up a booster's FCM token and sends a high-priority push.
func (s *PushService) SendBoosterPush(ctx context.Context, boosterID, title, body string, data map[string]string) error {
	if s.sender == nil {
		s.logger.Debug("FCM disabled, dropping push", zap.String("boosterId", boosterID), zap.String("title", title))
		return nil
	}

	b, err := s.boosters.GetBooster(ctx, boosterID)
	if err != nil {
		return fmt.Errorf("SendBoosterPush: could not find booster %s: %w", boosterID, err)
	}
	if b.FCMToken == "" {
		return ErrNoPushTarget
	}

	if data == nil {
		data = map[string]string{}
	}
	if _, ok := data["role"]; !ok {
		data["role"] = "booster"
	}

	msg := &messaging.Message{
		Token: b.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "high_priority",
				Sound:     "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority":  "10",
				"apns-push-type": "alert",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound: "default",
				},
			},
		},
	}

	id, err := s.sender.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("SendBoosterPush: failed to send FCM message: %w", err)
	}
	s.logger.Info("Push sent", zap.String("boosterId", boosterID), zap.String("messageId", id))
	return nil
}

// SendReassignmentNotice tells a booster a job was moved onto their calendar.
func (s *PushService) SendReassignmentNotice(ctx context.Context, p models.ReassignmentPayload) error {
	title := "Du har fået en ny opgave"
	body := fmt.Sprintf("%s d. %s kl. %s-%s", jobTitleOrDefault(p.JobTitle), p.Date, hhmm(p.StartTime), hhmm(p.EndTime))

	err := s.SendBoosterPush(ctx, p.BoosterID, title, body, map[string]string{
		"type":           "schedule_reassigned",
		"availabilityId": p.AvailabilityID,
		"jobId":          p.JobID,
		"date":           p.Date,
	})
	if errors.Is(err, ErrNoPushTarget) {
		s.logger.Info("Reassignment notice skipped, no device", zap.String("boosterId", p.BoosterID))
		return nil
	}
	return err
}

func jobTitleOrDefault(title string) string {
	if title == "" {
		return "Opgave"
	}
	return title
}

func hhmm(t string) string {
	if len(t) >= 5 {
		return t[:5]
	}
	return t
}
