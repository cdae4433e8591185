package dto

// ConversationListRequest asks the chat platform for one page of
// conversations belonging to the account.
type ConversationListRequest struct {
	AccountID string `json:"account_id"`
	Page      int    `json:"page"`
	PageSize  int    `json:"page_size"`
}

// ConversationListResponse is the platform's paged, unordered candidate list.
type ConversationListResponse struct {
	Code int                `json:"code"`
	Data []ConversationItem `json:"data"`
}

// ConversationItem identifies one conversation thread. UserCode is a
// composite identifier that contains the phone number as a substring, not as
// an exact field.
type ConversationItem struct {
	UserCode    string `json:"user_code"`
	SegmentCode string `json:"segment_code"`
	Channel     string `json:"channel,omitempty"`
	StartedAt   string `json:"started_at,omitempty"`
}

// ConversationDetailRequest asks for the message detail of one segment.
type ConversationDetailRequest struct {
	AccountID   string `json:"account_id"`
	SegmentCode string `json:"segment_code"`
	Page        int    `json:"page"`
	PageSize    int    `json:"page_size"`
}

// ConversationDetailResponse carries one page of messages plus the total
// count held by the platform.
type ConversationDetailResponse struct {
	Code  int                   `json:"code"`
	Total int                   `json:"total"`
	Data  []ConversationMessage `json:"data"`
}

type ConversationMessage struct {
	Sender  string `json:"sender"`
	Content string `json:"content"`
	SentAt  string `json:"sent_at,omitempty"`
}
