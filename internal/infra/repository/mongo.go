package repository

import (
	"context"
	"errors"
	"time"

	"github.com/rotisserie/eris"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"lead-connector/internal/domain/entities"
	domainrepo "lead-connector/internal/domain/interfaces/repository"
)

const leadsCollection = "leads"

type MongoLeadRepository struct {
	collection *mongo.Collection
}

func NewMongoLeadRepository(db *mongo.Database) *MongoLeadRepository {
	return &MongoLeadRepository{collection: db.Collection(leadsCollection)}
}

// EnsureIndexes creates the unique phone_key index that backs the
// one-record-per-key guarantee under concurrent upserts.
func (r *MongoLeadRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "phone_key", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return eris.Wrap(err, "create phone_key index")
	}
	return nil
}

// Upsert merges fields into the lead for phoneKey, inserting it when absent.
// created_at lives in $setOnInsert so a later upsert never rewrites the
// original creation time.
func (r *MongoLeadRepository) Upsert(ctx context.Context, phoneKey string, fields map[string]any) (bool, error) {
	set := bson.M{"phone_key": phoneKey}
	for key, value := range fields {
		set[key] = value
	}

	update := bson.M{
		"$set":         set,
		"$setOnInsert": bson.M{"created_at": time.Now().UTC()},
	}

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"phone_key": phoneKey},
		update,
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return false, eris.Wrapf(err, "upsert lead %s", phoneKey)
	}

	return result.UpsertedID != nil, nil
}

func (r *MongoLeadRepository) FindByPhoneKey(ctx context.Context, phoneKey string) (entities.Lead, error) {
	var lead entities.Lead
	err := r.collection.FindOne(ctx, bson.M{"phone_key": phoneKey}).Decode(&lead)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return entities.Lead{}, domainrepo.ErrNotFound
	}
	if err != nil {
		return entities.Lead{}, eris.Wrapf(err, "find lead %s", phoneKey)
	}
	return lead, nil
}

// ScanWithPhoneKey opens a cursor over every lead carrying a phone key. The
// result set is never materialized here; the caller walks the cursor.
func (r *MongoLeadRepository) ScanWithPhoneKey(ctx context.Context) (domainrepo.LeadCursor, error) {
	filter := bson.M{"phone_key": bson.M{"$exists": true, "$ne": ""}}
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, eris.Wrap(err, "scan leads")
	}
	return &mongoLeadCursor{cursor: cursor}, nil
}

func (r *MongoLeadRepository) UpdateFields(ctx context.Context, id primitive.ObjectID, fields map[string]any) error {
	set := bson.M{}
	for key, value := range fields {
		set[key] = value
	}

	_, err := r.collection.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return eris.Wrapf(err, "update lead %s", id.Hex())
	}
	return nil
}

type mongoLeadCursor struct {
	cursor *mongo.Cursor
}

func (c *mongoLeadCursor) Next(ctx context.Context) bool {
	return c.cursor.Next(ctx)
}

func (c *mongoLeadCursor) Decode(lead *entities.Lead) error {
	return c.cursor.Decode(lead)
}

func (c *mongoLeadCursor) Err() error {
	return c.cursor.Err()
}

func (c *mongoLeadCursor) Close(ctx context.Context) error {
	return c.cursor.Close(ctx)
}
