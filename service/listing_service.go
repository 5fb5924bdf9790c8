package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AkashRanjanSaikia/Hotal-Booking-system/domain"
)

const maxGalleryImages = 4

// ImageStorage persists uploaded listing images. The HDFS-backed
// implementation lives in the storage package.
type ImageStorage interface {
	SaveImage(ctx context.Context, listingID string, imageName string, content []byte) error
}

// ImageUpload is one file received through a multipart create request.
type ImageUpload struct {
	Filename string
	Content  []byte
}

type ListingService struct {
	listings     domain.ListingStore
	users        domain.UserStore
	images       ImageStorage
	defaultOwner primitive.ObjectID
	logger       *logrus.Logger
}

func NewListingService(listings domain.ListingStore, users domain.UserStore, images ImageStorage, defaultOwner primitive.ObjectID, logger *logrus.Logger) *ListingService {
	return &ListingService{
		listings:     listings,
		users:        users,
		images:       images,
		defaultOwner: defaultOwner,
		logger:       logger,
	}
}

func (service *ListingService) GetAll(ctx context.Context) ([]*domain.Listing, error) {
	return service.listings.GetAll(ctx)
}

// GetDetails returns one listing with its reviews enriched by the
// current name of each reviewer. Reviewers whose accounts no longer
// exist keep their review, shown without a name.
func (service *ListingService) GetDetails(ctx context.Context, id primitive.ObjectID) (*domain.ListingDetails, error) {
	listing, err := service.listings.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	reviews := make([]domain.ReviewView, 0, len(listing.Reviews))
	for _, review := range listing.Reviews {
		view := domain.ReviewView{
			User:      review.User,
			Rating:    review.Rating,
			Comment:   review.Comment,
			CreatedAt: review.CreatedAt,
		}
		reviewer, err := service.users.Get(ctx, review.User)
		if err == nil {
			view.UserName = reviewer.Name
		}
		reviews = append(reviews, view)
	}

	return &domain.ListingDetails{
		ID:          listing.ID,
		Title:       listing.Title,
		Description: listing.Description,
		MainImage:   listing.MainImage,
		Images:      listing.Images,
		Price:       listing.Price,
		Location:    listing.Location,
		Country:     listing.Country,
		Owner:       listing.Owner,
		Reviews:     reviews,
	}, nil
}

// Create stores a new listing. When owner is nil the configured default
// owner account is used. At most four gallery images are kept, extra
// uploads are ignored.
func (service *ListingService) Create(ctx context.Context, input *domain.CreateListingInput, owner *primitive.ObjectID, mainImage *ImageUpload, gallery []ImageUpload) (*domain.Listing, error) {
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Location) == "" || input.Price <= 0 {
		return nil, domain.ErrMissingFields
	}

	ownerID := service.defaultOwner
	if owner != nil {
		ownerID = *owner
	}

	// The ID is generated up front so uploaded images can be stored
	// under the listing's own directory before the insert.
	listing := &domain.Listing{
		ID:          primitive.NewObjectID(),
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		MainImage:   input.MainImage,
		Images:      input.Images,
		Price:       input.Price,
		Location:    strings.TrimSpace(input.Location),
		Country:     input.Country,
		Owner:       ownerID,
	}

	if len(listing.Images) > maxGalleryImages {
		listing.Images = listing.Images[:maxGalleryImages]
	}

	if mainImage != nil {
		image, err := service.saveImage(ctx, listing.ID, mainImage)
		if err != nil {
			return nil, err
		}
		listing.MainImage = image
	}

	for _, upload := range gallery {
		if len(listing.Images) >= maxGalleryImages {
			break
		}
		image, err := service.saveImage(ctx, listing.ID, &upload)
		if err != nil {
			return nil, err
		}
		listing.Images = append(listing.Images, *image)
	}

	return service.listings.Insert(ctx, listing)
}

func (service *ListingService) saveImage(ctx context.Context, listingID primitive.ObjectID, upload *ImageUpload) (*domain.Image, error) {
	if service.images == nil {
		service.logger.Warn("Image storage not configured, skipping upload: ", upload.Filename)
		return &domain.Image{Filename: upload.Filename}, nil
	}

	name := uuid.New().String() + "-" + upload.Filename
	if err := service.images.SaveImage(ctx, listingID.Hex(), name, upload.Content); err != nil {
		return nil, err
	}

	return &domain.Image{
		Filename: name,
		URL:      fmt.Sprintf("/listings/%s/images/%s", listingID.Hex(), name),
	}, nil
}

func (service *ListingService) Update(ctx context.Context, id primitive.ObjectID, patch domain.ListingPatch) (*domain.Listing, error) {
	return service.listings.Update(ctx, id, patch)
}

func (service *ListingService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return service.listings.Delete(ctx, id)
}

func (service *ListingService) GetByOwner(ctx context.Context, owner primitive.ObjectID) ([]*domain.Listing, error) {
	return service.listings.GetByOwner(ctx, owner)
}

// AddReview appends a review to a listing and returns the enriched
// listing so clients see the new review with its reviewer name.
func (service *ListingService) AddReview(ctx context.Context, listingID primitive.ObjectID, reviewerID primitive.ObjectID, input *domain.ReviewInput) (*domain.ListingDetails, error) {
	if input.Rating == nil {
		return nil, domain.ErrInvalidRating
	}
	if *input.Rating < 1 || *input.Rating > 5 {
		return nil, domain.ErrInvalidRating
	}

	if _, err := service.listings.Get(ctx, listingID); err != nil {
		return nil, err
	}
	if _, err := service.users.Get(ctx, reviewerID); err != nil {
		return nil, err
	}

	review := domain.Review{
		User:      reviewerID,
		Rating:    *input.Rating,
		Comment:   strings.TrimSpace(input.Comment),
		CreatedAt: time.Now(),
	}

	if err := service.listings.PushReview(ctx, listingID, review); err != nil {
		return nil, err
	}
	return service.GetDetails(ctx, listingID)
}

// Favourite marks a listing as a favourite of the user. Adding a
// listing that is already a favourite is a conflict, while removal is
// idempotent. The listing reference is not resolved here; dangling ids
// are dropped when the set is read back.
func (service *ListingService) Favourite(ctx context.Context, userID primitive.ObjectID, listingID primitive.ObjectID) error {
	added, err := service.users.AddFavourite(ctx, userID, listingID)
	if err != nil {
		return err
	}
	if !added {
		return domain.ErrAlreadyFavourite
	}
	return nil
}

func (service *ListingService) Unfavourite(ctx context.Context, userID primitive.ObjectID, listingID primitive.ObjectID) error {
	return service.users.RemoveFavourite(ctx, userID, listingID)
}

// FavouritesOf returns the user's favourite listings. References to
// listings that have since been deleted are skipped.
func (service *ListingService) FavouritesOf(ctx context.Context, userID primitive.ObjectID) ([]*domain.Listing, error) {
	user, err := service.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return service.listings.GetMany(ctx, user.Favourites)
}
