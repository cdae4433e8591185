package dto

// QueryAIRequest is the caller-facing body of the catalog question endpoint.
// NotifyPhone, when present, asks the service to deliver the answer over
// WhatsApp as well.
type QueryAIRequest struct {
	Question    string `json:"question"`
	NotifyPhone string `json:"notify_phone,omitempty"`
}

// QueryAIResponse is the catalog query agent's answer. SQL carries the
// generated statement for debugging; only Answer is user facing.
type QueryAIResponse struct {
	Answer string `json:"answer"`
	SQL    string `json:"sql,omitempty"`
}

// TokenResponse is the Infobip OAuth2 token grant.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}
