package store

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/AkashRanjanSaikia/Hotal-Booking-system/domain"
)

const (
	DATABASE        = "cozystay"
	USERSCOLLECTION = "users"
)

type UserMongoDBStore struct {
	users  *mongo.Collection
	tracer trace.Tracer
}

func NewUserMongoDBStore(client *mongo.Client, tracer trace.Tracer) domain.UserStore {
	users := client.Database(DATABASE).Collection(USERSCOLLECTION)

	// Email uniqueness lives in the store so concurrent signups cannot race
	// past an application-level check.
	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	_, _ = users.Indexes().CreateOne(context.TODO(), indexModel)

	return &UserMongoDBStore{
		users:  users,
		tracer: tracer,
	}
}

func (store *UserMongoDBStore) Insert(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, span := store.tracer.Start(ctx, "UserStore.Insert")
	defer span.End()

	user.ID = primitive.NewObjectID()
	user.Email = strings.ToLower(user.Email)
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Favourites == nil {
		user.Favourites = []primitive.ObjectID{}
	}

	result, err := store.users.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			span.SetStatus(codes.Error, domain.ErrEmailTaken.Error())
			return nil, domain.ErrEmailTaken
		}
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	user.ID = result.InsertedID.(primitive.ObjectID)
	return user, nil
}

func (store *UserMongoDBStore) Get(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	ctx, span := store.tracer.Start(ctx, "UserStore.Get")
	defer span.End()

	filter := bson.M{"_id": id}
	return store.filterOne(ctx, filter)
}

func (store *UserMongoDBStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, span := store.tracer.Start(ctx, "UserStore.GetByEmail")
	defer span.End()

	filter := bson.M{"email": strings.ToLower(email)}
	return store.filterOne(ctx, filter)
}

func (store *UserMongoDBStore) UpdateRole(ctx context.Context, id primitive.ObjectID, role domain.Role, managerData *domain.ManagerData) error {
	ctx, span := store.tracer.Start(ctx, "UserStore.UpdateRole")
	defer span.End()

	filter := bson.M{"_id": id}
	update := bson.M{"$set": bson.M{
		"role":        role,
		"managerData": managerData,
		"updatedAt":   time.Now(),
	}}

	result, err := store.users.UpdateOne(ctx, filter, update)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	if result.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (store *UserMongoDBStore) AddFavourite(ctx context.Context, userID, listingID primitive.ObjectID) (bool, error) {
	ctx, span := store.tracer.Start(ctx, "UserStore.AddFavourite")
	defer span.End()

	filter := bson.M{"_id": userID}
	update := bson.M{"$addToSet": bson.M{"favourites": listingID}}

	result, err := store.users.UpdateOne(ctx, filter, update)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return false, err
	}
	if result.MatchedCount == 0 {
		return false, domain.ErrUserNotFound
	}
	// $addToSet leaves the document untouched when the id is already a
	// member, which is how a duplicate favourite is detected.
	return result.ModifiedCount == 1, nil
}

func (store *UserMongoDBStore) RemoveFavourite(ctx context.Context, userID, listingID primitive.ObjectID) error {
	ctx, span := store.tracer.Start(ctx, "UserStore.RemoveFavourite")
	defer span.End()

	filter := bson.M{"_id": userID}
	update := bson.M{"$pull": bson.M{"favourites": listingID}}

	result, err := store.users.UpdateOne(ctx, filter, update)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	if result.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (store *UserMongoDBStore) filterOne(ctx context.Context, filter interface{}) (*domain.User, error) {
	result := store.users.FindOne(ctx, filter)

	var user domain.User
	if err := result.Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
