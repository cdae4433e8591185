package Iservices

import "context"

// ISummaryService turns a transcript into a natural-language summary. Every
// failure path maps to a user-facing sentinel string; Summarize never fails.
type ISummaryService interface {
	Summarize(ctx context.Context, payload string) string
}
