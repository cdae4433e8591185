package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"lead-connector/internal/domain/entities"
)

// ErrNotFound signals a missing lead. A lookup miss is an expected outcome,
// not a storage failure; callers check it with errors.Is.
var ErrNotFound = errors.New("lead not found")

// LeadCursor streams leads out of the store without materializing the whole
// set. It mirrors the driver cursor so a batch run can walk an arbitrarily
// large collection one record at a time.
type LeadCursor interface {
	Next(ctx context.Context) bool
	Decode(lead *entities.Lead) error
	Err() error
	Close(ctx context.Context) error
}

// LeadRepository is the persistence boundary for leads. Connectivity
// failures come back as errors; retries are the caller's problem.
type LeadRepository interface {
	// Upsert atomically inserts a lead for phoneKey or merges fields into the
	// existing one. Exactly one record per key survives concurrent calls.
	// Returns true when a new record was created.
	Upsert(ctx context.Context, phoneKey string, fields map[string]any) (bool, error)

	// FindByPhoneKey is a point lookup; a miss returns ErrNotFound.
	FindByPhoneKey(ctx context.Context, phoneKey string) (entities.Lead, error)

	// ScanWithPhoneKey opens a cursor over every lead with a non-empty phone
	// key, in store order.
	ScanWithPhoneKey(ctx context.Context) (LeadCursor, error)

	// UpdateFields merges fields into the record identified by its internal id.
	UpdateFields(ctx context.Context, id primitive.ObjectID, fields map[string]any) error
}
