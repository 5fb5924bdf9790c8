package domain

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserStore interface {
	Insert(ctx context.Context, user *User) (*User, error)
	Get(ctx context.Context, id primitive.ObjectID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdateRole(ctx context.Context, id primitive.ObjectID, role Role, managerData *ManagerData) error
	// AddFavourite reports whether the listing was newly added; false means
	// it was already in the set.
	AddFavourite(ctx context.Context, userID, listingID primitive.ObjectID) (bool, error)
	// RemoveFavourite succeeds regardless of prior membership.
	RemoveFavourite(ctx context.Context, userID, listingID primitive.ObjectID) error
}
