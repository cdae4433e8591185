package entities

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultSource tags leads captured by the marketing bot when the caller did
// not say where the contact came from.
const DefaultSource = "bot_marketing"

// Lead is one contact captured from a chat conversation, keyed by the
// canonical phone number. Free-form attributes supplied at creation time are
// stored verbatim under Attributes.
type Lead struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	PhoneKey      string             `json:"phone_key" bson:"phone_key"`
	Source        string             `json:"source" bson:"source"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
	Summary       string             `json:"summary,omitempty" bson:"summary,omitempty"`
	LastSummaryAt *time.Time         `json:"last_summary_at,omitempty" bson:"last_summary_at,omitempty"`
	Attributes    map[string]any     `json:"attributes,omitempty" bson:"attributes,omitempty"`
}
