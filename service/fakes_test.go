package application

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AkashRanjanSaikia/Hotal-Booking-system/domain"
)

// In-memory stores backing the service tests.

type fakeUserStore struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*domain.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[primitive.ObjectID]*domain.User{}}
}

func (store *fakeUserStore) Insert(ctx context.Context, user *domain.User) (*domain.User, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	for _, existing := range store.users {
		if existing.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	store.users[user.ID] = user
	return user, nil
}

func (store *fakeUserStore) Get(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	user, ok := store.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (store *fakeUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	for _, user := range store.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (store *fakeUserStore) UpdateRole(ctx context.Context, id primitive.ObjectID, role domain.Role, managerData *domain.ManagerData) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	user, ok := store.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	user.Role = role
	user.ManagerData = managerData
	return nil
}

func (store *fakeUserStore) AddFavourite(ctx context.Context, userID, listingID primitive.ObjectID) (bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	user, ok := store.users[userID]
	if !ok {
		return false, domain.ErrUserNotFound
	}
	for _, favourite := range user.Favourites {
		if favourite == listingID {
			return false, nil
		}
	}
	user.Favourites = append(user.Favourites, listingID)
	return true, nil
}

func (store *fakeUserStore) RemoveFavourite(ctx context.Context, userID, listingID primitive.ObjectID) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	user, ok := store.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	kept := user.Favourites[:0]
	for _, favourite := range user.Favourites {
		if favourite != listingID {
			kept = append(kept, favourite)
		}
	}
	user.Favourites = kept
	return nil
}

type fakeListingStore struct {
	mu       sync.Mutex
	listings map[primitive.ObjectID]*domain.Listing
}

func newFakeListingStore() *fakeListingStore {
	return &fakeListingStore{listings: map[primitive.ObjectID]*domain.Listing{}}
}

func (store *fakeListingStore) Insert(ctx context.Context, listing *domain.Listing) (*domain.Listing, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	if listing.ID.IsZero() {
		listing.ID = primitive.NewObjectID()
	}
	store.listings[listing.ID] = listing
	return listing, nil
}

func (store *fakeListingStore) GetAll(ctx context.Context) ([]*domain.Listing, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	all := make([]*domain.Listing, 0, len(store.listings))
	for _, listing := range store.listings {
		all = append(all, listing)
	}
	return all, nil
}

func (store *fakeListingStore) Get(ctx context.Context, id primitive.ObjectID) (*domain.Listing, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	listing, ok := store.listings[id]
	if !ok {
		return nil, domain.ErrListingNotFound
	}
	return listing, nil
}

func (store *fakeListingStore) GetByOwner(ctx context.Context, owner primitive.ObjectID) ([]*domain.Listing, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	owned := []*domain.Listing{}
	for _, listing := range store.listings {
		if listing.Owner == owner {
			owned = append(owned, listing)
		}
	}
	return owned, nil
}

func (store *fakeListingStore) GetMany(ctx context.Context, ids []primitive.ObjectID) ([]*domain.Listing, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	found := []*domain.Listing{}
	for _, id := range ids {
		if listing, ok := store.listings[id]; ok {
			found = append(found, listing)
		}
	}
	return found, nil
}

func (store *fakeListingStore) Update(ctx context.Context, id primitive.ObjectID, patch domain.ListingPatch) (*domain.Listing, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	listing, ok := store.listings[id]
	if !ok {
		return nil, domain.ErrListingNotFound
	}
	patch.Apply(listing)
	return listing, nil
}

func (store *fakeListingStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	if _, ok := store.listings[id]; !ok {
		return domain.ErrListingNotFound
	}
	delete(store.listings, id)
	return nil
}

func (store *fakeListingStore) PushReview(ctx context.Context, id primitive.ObjectID, review domain.Review) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	listing, ok := store.listings[id]
	if !ok {
		return domain.ErrListingNotFound
	}
	listing.Reviews = append(listing.Reviews, review)
	return nil
}

type fakeBookingStore struct {
	mu       sync.Mutex
	bookings []*domain.Booking
}

func newFakeBookingStore() *fakeBookingStore {
	return &fakeBookingStore{}
}

func (store *fakeBookingStore) Insert(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	booking.ID = primitive.NewObjectID()
	store.bookings = append(store.bookings, booking)
	return booking, nil
}

func (store *fakeBookingStore) GetByUserEmail(ctx context.Context, email string) ([]*domain.Booking, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	matched := []*domain.Booking{}
	for _, booking := range store.bookings {
		if booking.UserEmail == email {
			matched = append(matched, booking)
		}
	}
	return matched, nil
}

// fakeImageStorage records saved images keyed by listing and name.
type fakeImageStorage struct {
	mu     sync.Mutex
	images map[string][]byte
}

func newFakeImageStorage() *fakeImageStorage {
	return &fakeImageStorage{images: map[string][]byte{}}
}

func (storage *fakeImageStorage) SaveImage(ctx context.Context, listingID string, imageName string, content []byte) error {
	storage.mu.Lock()
	defer storage.mu.Unlock()
	storage.images[listingID+"/"+imageName] = content
	return nil
}
