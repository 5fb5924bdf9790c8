package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/AkashRanjanSaikia/Hotal-Booking-system/domain"
)

const LISTINGSCOLLECTION = "listings"

type ListingMongoDBStore struct {
	listings *mongo.Collection
	tracer   trace.Tracer
}

func NewListingMongoDBStore(client *mongo.Client, tracer trace.Tracer) domain.ListingStore {
	listings := client.Database(DATABASE).Collection(LISTINGSCOLLECTION)
	return &ListingMongoDBStore{
		listings: listings,
		tracer:   tracer,
	}
}

func (store *ListingMongoDBStore) Insert(ctx context.Context, listing *domain.Listing) (*domain.Listing, error) {
	ctx, span := store.tracer.Start(ctx, "ListingStore.Insert")
	defer span.End()

	if listing.ID.IsZero() {
		listing.ID = primitive.NewObjectID()
	}
	if listing.Images == nil {
		listing.Images = []domain.Image{}
	}
	if listing.Reviews == nil {
		listing.Reviews = []domain.Review{}
	}

	result, err := store.listings.InsertOne(ctx, listing)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	listing.ID = result.InsertedID.(primitive.ObjectID)
	return listing, nil
}

func (store *ListingMongoDBStore) GetAll(ctx context.Context) ([]*domain.Listing, error) {
	ctx, span := store.tracer.Start(ctx, "ListingStore.GetAll")
	defer span.End()

	filter := bson.D{{}}
	return store.filter(ctx, filter)
}

func (store *ListingMongoDBStore) Get(ctx context.Context, id primitive.ObjectID) (*domain.Listing, error) {
	ctx, span := store.tracer.Start(ctx, "ListingStore.Get")
	defer span.End()

	filter := bson.M{"_id": id}
	return store.filterOne(ctx, filter)
}

func (store *ListingMongoDBStore) GetByOwner(ctx context.Context, owner primitive.ObjectID) ([]*domain.Listing, error) {
	ctx, span := store.tracer.Start(ctx, "ListingStore.GetByOwner")
	defer span.End()

	filter := bson.M{"owner": owner}
	return store.filter(ctx, filter)
}

func (store *ListingMongoDBStore) GetMany(ctx context.Context, ids []primitive.ObjectID) ([]*domain.Listing, error) {
	ctx, span := store.tracer.Start(ctx, "ListingStore.GetMany")
	defer span.End()

	if len(ids) == 0 {
		return []*domain.Listing{}, nil
	}
	filter := bson.M{"_id": bson.M{"$in": ids}}
	return store.filter(ctx, filter)
}

func (store *ListingMongoDBStore) Update(ctx context.Context, id primitive.ObjectID, patch domain.ListingPatch) (*domain.Listing, error) {
	ctx, span := store.tracer.Start(ctx, "ListingStore.Update")
	defer span.End()

	set := bson.M{}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Price != nil {
		set["price"] = *patch.Price
	}
	if patch.Location != nil {
		set["location"] = *patch.Location
	}
	if patch.Country != nil {
		set["country"] = *patch.Country
	}

	filter := bson.M{"_id": id}
	if len(set) > 0 {
		result, err := store.listings.UpdateOne(ctx, filter, bson.M{"$set": set})
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		if result.MatchedCount == 0 {
			return nil, domain.ErrListingNotFound
		}
	}
	return store.filterOne(ctx, filter)
}

func (store *ListingMongoDBStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, span := store.tracer.Start(ctx, "ListingStore.Delete")
	defer span.End()

	filter := bson.M{"_id": id}
	result, err := store.listings.DeleteOne(ctx, filter)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	if result.DeletedCount == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

func (store *ListingMongoDBStore) PushReview(ctx context.Context, id primitive.ObjectID, review domain.Review) error {
	ctx, span := store.tracer.Start(ctx, "ListingStore.PushReview")
	defer span.End()

	filter := bson.M{"_id": id}
	update := bson.M{"$push": bson.M{"reviews": review}}

	result, err := store.listings.UpdateOne(ctx, filter, update)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	if result.MatchedCount == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

func (store *ListingMongoDBStore) filter(ctx context.Context, filter interface{}) ([]*domain.Listing, error) {
	cursor, err := store.listings.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	return decodeListings(ctx, cursor)
}

func (store *ListingMongoDBStore) filterOne(ctx context.Context, filter interface{}) (*domain.Listing, error) {
	result := store.listings.FindOne(ctx, filter)

	var listing domain.Listing
	if err := result.Decode(&listing); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrListingNotFound
		}
		return nil, err
	}
	return &listing, nil
}

func decodeListings(ctx context.Context, cursor *mongo.Cursor) (listings []*domain.Listing, err error) {
	listings = []*domain.Listing{}
	for cursor.Next(ctx) {
		var listing domain.Listing
		err = cursor.Decode(&listing)
		if err != nil {
			return
		}
		listings = append(listings, &listing)
	}
	err = cursor.Err()
	return
}
