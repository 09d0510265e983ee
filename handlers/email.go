package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"beautyboosters/models"
	"beautyboosters/services/email"
	"beautyboosters/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type EmailHandler struct {
	Service  *email.Service
	Verifier *email.WebhookVerifier
}

func NewEmailHandler(svc *email.Service, verifier *email.WebhookVerifier) *EmailHandler {
	return &EmailHandler{Service: svc, Verifier: verifier}
}

// AuthHook handles POST /api/email/auth-hook, the auth provider's send-email webhook.
func (h *EmailHandler) AuthHook(c *gin.Context) {
	if h.Verifier == nil {
		utils.JSONError(c, http.StatusInternalServerError, "Webhook er ikke konfigureret", nil)
		return
	}

	body, err := c.GetRawData()
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Ugyldig forespørgsel", err)
		return
	}
	err = h.Verifier.Verify(
		c.GetHeader(email.HeaderWebhookID),
		c.GetHeader(email.HeaderWebhookTimestamp),
		c.GetHeader(email.HeaderWebhookSignature),
		body,
	)
	if err != nil {
		utils.JSONError(c, http.StatusUnauthorized, "Ugyldig signatur", err)
		return
	}

	var payload models.AuthHookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Ugyldig forespørgsel", err)
		return
	}

	if err := h.Service.SendAuthEmail(c.Request.Context(), payload); err != nil {
		h.respondError(c, err)
		return
	}
	getLogger(c).Info("Auth email sent", zap.String("action", payload.EmailData.EmailActionType))
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// SendEmail handles POST /api/email/send.
func (h *EmailHandler) SendEmail(c *gin.Context) {
	var req models.TransactionalEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Ugyldig forespørgsel", err)
		return
	}
	if err := h.Service.SendTransactional(c.Request.Context(), req); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *EmailHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, email.ErrUnknownAction), errors.Is(err, email.ErrUnknownTemplate):
		utils.JSONError(c, http.StatusBadRequest, "Ukendt e-mailtype", err)
	case errors.Is(err, email.ErrMissingRecipient):
		utils.JSONError(c, http.StatusBadRequest, "Modtager mangler", err)
	default:
		utils.JSONError(c, http.StatusInternalServerError, "Kunne ikke sende e-mail", err)
	}
}
