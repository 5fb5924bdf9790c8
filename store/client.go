package store

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

func GetClient(ctx context.Context, uri string) (*mongo.Client, error) {
	optionsClient := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, optionsClient)
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, err
	}
	return client, nil
}
