package dto

// Envelope is the uniform response shape every endpoint returns, success or
// failure, so a calling agent can treat all responses identically.
type Envelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
	Data    any    `json:"data,omitempty"`
}

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Error classification markers carried on failure envelopes.
const (
	CodeBadRequest = "bad_request"
	CodeNotFound   = "not_found"
	CodeStorage    = "storage_error"
	CodeUpstream   = "upstream_error"
	CodeConflict   = "conflict"
)
