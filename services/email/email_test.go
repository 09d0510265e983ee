package email

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"beautyboosters/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureMailer struct {
	sent []Message
	err  error
}

func (m *captureMailer) Send(_ context.Context, msg Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

// base64 of "beautyboosters-webhook-secret"
const testSecret = "v1,whsec_YmVhdXR5Ym9vc3RlcnMtd2ViaG9vay1zZWNyZXQ="

func TestWebhookVerifier(t *testing.T) {
	v, err := NewWebhookVerifier(testSecret)
	require.NoError(t, err)
	now := time.Unix(1718000000, 0)
	v.now = func() time.Time { return now }

	body := []byte(`{"user":{"email":"a@b.dk"}}`)
	sig := v.Sign("msg_1", now, body)
	ts := strconv.FormatInt(now.Unix(), 10)

	assert.NoError(t, v.Verify("msg_1", ts, sig, body))
	assert.NoError(t, v.Verify("msg_1", ts, "v1,bm9wZQ== "+sig, body))
	assert.ErrorIs(t, v.Verify("msg_1", ts, sig, []byte(`{"tampered":true}`)), ErrBadSignature)
	assert.ErrorIs(t, v.Verify("msg_2", ts, sig, body), ErrBadSignature)
	assert.ErrorIs(t, v.Verify("", ts, sig, body), ErrMissingSignature)

	old := strconv.FormatInt(now.Add(-10*time.Minute).Unix(), 10)
	assert.ErrorIs(t, v.Verify("msg_1", old, sig, body), ErrStaleTimestamp)

	_, err = NewWebhookVerifier("v1,whsec_")
	assert.Error(t, err)
}

func TestRenderAuth(t *testing.T) {
	for _, action := range []string{ActionSignup, ActionRecovery, ActionMagicLink, ActionInvite, ActionEmailChange} {
		da, err := RenderAuth("", action, "https://app.beautyboosters.dk/verify?x=1", "123456")
		require.NoError(t, err, action)
		assert.Contains(t, da.HTML, `lang="da"`)
		assert.Contains(t, da.HTML, "123456")
		assert.Equal(t, authTexts[LocaleDanish][action].Subject, da.Subject)

		en, err := RenderAuth("en-GB", action, "", "")
		require.NoError(t, err)
		assert.Contains(t, en.HTML, `lang="en"`)
		assert.NotContains(t, en.HTML, "<a href")
	}

	_, err := RenderAuth("da", "reauthentication_unknown", "", "")
	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestRenderTransactional_EscapesData(t *testing.T) {
	r, err := RenderTransactional("da", TemplateGiftCard, "", map[string]any{
		"toName":   "<script>alert(1)</script>",
		"fromName": "Mor",
		"amount":   500.0,
		"code":     "BB-ABCDEFGHJK",
	}, "")
	require.NoError(t, err)
	assert.NotContains(t, r.HTML, "<script>")
	assert.Contains(t, r.HTML, "500 kr.")
	assert.Contains(t, r.HTML, "BB-ABCDEFGHJK")
	assert.Contains(t, r.Text, "Fra: Mor")
	assert.Equal(t, "Du har modtaget et gavekort", r.Subject)

	_, err = RenderTransactional("da", "newsletter", "", nil, "")
	assert.ErrorIs(t, err, ErrUnknownTemplate)
}

func TestService_SendAuthEmail(t *testing.T) {
	m := &captureMailer{}
	svc := NewService(m, "https://beautyboosters.dk", nil)

	err := svc.SendAuthEmail(context.Background(), models.AuthHookPayload{
		User: models.AuthHookUser{Email: "kunde@example.dk", UserMetadata: map[string]any{"locale": "en"}},
		EmailData: models.AuthHookEmailData{
			Token: "654321", TokenHash: "hash123", EmailActionType: ActionRecovery,
			RedirectTo: "https://beautyboosters.dk/reset",
		},
	})
	require.NoError(t, err)
	require.Len(t, m.sent, 1)
	assert.Equal(t, "kunde@example.dk", m.sent[0].To)
	assert.Equal(t, "Reset your password", m.sent[0].Subject)
	assert.Contains(t, m.sent[0].Text, "https://beautyboosters.dk/auth/v1/verify?")
	assert.True(t, strings.Contains(m.sent[0].Text, "token=hash123"))
	assert.True(t, strings.Contains(m.sent[0].Text, "type=recovery"))
}

func TestService_SendTransactional(t *testing.T) {
	m := &captureMailer{}
	svc := NewService(m, "https://beautyboosters.dk/", nil)

	err := svc.SendTransactional(context.Background(), models.TransactionalEmailRequest{
		To:       "kunde@example.dk",
		Template: TemplateBookingConfirmation,
		Data: map[string]any{
			"customerName": "Sofie",
			"date":         "2024-06-14",
			"services":     []any{"Makeup", "Hår"},
			"totalPrice":   1499.0,
		},
	})
	require.NoError(t, err)
	require.Len(t, m.sent, 1)
	assert.Equal(t, "Sofie", m.sent[0].ToName)
	assert.Contains(t, m.sent[0].Text, "Ydelser: Makeup, Hår")
	assert.Contains(t, m.sent[0].Text, "Total: 1499 kr.")
	assert.Contains(t, m.sent[0].Text, "https://beautyboosters.dk/min-side/bookinger")
}

func TestService_DeliveryFailure(t *testing.T) {
	svc := NewService(&captureMailer{err: errors.New("503")}, "", nil)
	err := svc.SendTransactional(context.Background(), models.TransactionalEmailRequest{
		To: "a@b.dk", Template: TemplateGiftCard, Data: map[string]any{"code": "BB-ABCDEFGHJK"},
	})
	assert.ErrorIs(t, err, ErrDelivery)
}
