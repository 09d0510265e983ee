package models

// AuthHookPayload is the auth provider's send-email webhook body.
type AuthHookPayload struct {
	User      AuthHookUser      `json:"user"`
	EmailData AuthHookEmailData `json:"email_data"`
}

type AuthHookUser struct {
	ID           string         `json:"id"`
	Email        string         `json:"email"`
	UserMetadata map[string]any `json:"user_metadata"`
}

type AuthHookEmailData struct {
	Token           string `json:"token"`
	TokenHash       string `json:"token_hash"`
	RedirectTo      string `json:"redirect_to"`
	EmailActionType string `json:"email_action_type"`
	SiteURL         string `json:"site_url"`
	TokenNew        string `json:"token_new,omitempty"`
	TokenHashNew    string `json:"token_hash_new,omitempty"`
}

// TransactionalEmailRequest is a direct send request for a named template.
type TransactionalEmailRequest struct {
	To       string         `json:"to" binding:"required"`
	Subject  string         `json:"subject,omitempty"`
	Template string         `json:"template" binding:"required"`
	Locale   string         `json:"locale,omitempty"`
	Data     map[string]any `json:"data"`
}
