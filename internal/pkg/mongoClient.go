package client

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoClient connects to the document store and verifies the connection.
func MongoClient(uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(uri)
	mongoClient, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, eris.Wrap(err, "connect to MongoDB")
	}

	if err := mongoClient.Ping(ctx, nil); err != nil {
		return nil, eris.Wrap(err, "ping MongoDB")
	}

	return mongoClient, nil
}
