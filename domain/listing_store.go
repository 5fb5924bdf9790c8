package domain

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ListingStore interface {
	Insert(ctx context.Context, listing *Listing) (*Listing, error)
	GetAll(ctx context.Context) ([]*Listing, error)
	Get(ctx context.Context, id primitive.ObjectID) (*Listing, error)
	GetByOwner(ctx context.Context, owner primitive.ObjectID) ([]*Listing, error)
	// GetMany resolves the given ids, silently skipping ones that no longer
	// exist.
	GetMany(ctx context.Context, ids []primitive.ObjectID) ([]*Listing, error)
	Update(ctx context.Context, id primitive.ObjectID, patch ListingPatch) (*Listing, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	PushReview(ctx context.Context, id primitive.ObjectID, review Review) error
}
