package dto

// SummaryRequest forwards a transcript (or any prompt text) to the
// summarization agent as its question field.
type SummaryRequest struct {
	AccountID string `json:"account_id"`
	Question  string `json:"question"`
}

// SummaryResponse wraps the agent's answer under a data envelope.
type SummaryResponse struct {
	Code int         `json:"code"`
	Data SummaryData `json:"data"`
}

type SummaryData struct {
	Answer string `json:"answer"`
}
