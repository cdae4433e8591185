package dto

// SaveLeadInput carries a raw inbound identifier plus whatever extra
// attributes the agent supplied; the service normalizes the phone and
// defaults the source.
type SaveLeadInput struct {
	RawPhone   string
	Source     string
	Attributes map[string]any
}

// SaveLeadResult reports the outcome of an upsert.
type SaveLeadResult struct {
	PhoneKey string `json:"phone_key"`
	Created  bool   `json:"created"`
}

// BatchReport is the aggregate outcome of one summary batch run. Per-record
// error detail goes to the logs, not the report.
type BatchReport struct {
	Processed int    `json:"processed"`
	Skipped   int    `json:"skipped_or_failed"`
	Message   string `json:"message"`
}
