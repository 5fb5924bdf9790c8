package application

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AkashRanjanSaikia/Hotal-Booking-system/domain"
)

type BookingService struct {
	bookings domain.BookingStore
	listings domain.ListingStore
}

func NewBookingService(bookings domain.BookingStore, listings domain.ListingStore) *BookingService {
	return &BookingService{
		bookings: bookings,
		listings: listings,
	}
}

// Create prices and stores a booking. The total is the listing's
// nightly price times the stay length in days, taken from the check-in
// and check-out timestamps as given.
func (service *BookingService) Create(ctx context.Context, input *domain.BookingInput) (*domain.Booking, error) {
	if err := input.Validate(); err != nil {
		return nil, domain.ErrMissingFields
	}

	hotelID, err := primitive.ObjectIDFromHex(input.HotelID)
	if err != nil {
		return nil, domain.ErrHotelNotFound
	}

	listing, err := service.listings.Get(ctx, hotelID)
	if err != nil {
		if errors.Is(err, domain.ErrListingNotFound) {
			return nil, domain.ErrHotelNotFound
		}
		return nil, err
	}

	nights := input.CheckOut.Sub(input.CheckIn).Hours() / 24

	booking := &domain.Booking{
		Hotel:      listing.ID,
		UserName:   input.UserName,
		UserEmail:  input.UserEmail,
		CheckIn:    input.CheckIn,
		CheckOut:   input.CheckOut,
		TotalPrice: nights * listing.Price,
	}

	return service.bookings.Insert(ctx, booking)
}

// GetByUserEmail lists the bookings made under an email, each with its
// hotel resolved inline. Bookings whose hotel has been deleted are kept
// with a nil hotel.
func (service *BookingService) GetByUserEmail(ctx context.Context, email string) ([]*domain.BookingDetails, error) {
	bookings, err := service.bookings.GetByUserEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	details := make([]*domain.BookingDetails, 0, len(bookings))
	for _, booking := range bookings {
		item := &domain.BookingDetails{
			Booking: *booking,
		}
		listing, err := service.listings.Get(ctx, booking.Hotel)
		if err == nil {
			item.HotelDetails = listing
		} else if !errors.Is(err, domain.ErrListingNotFound) {
			return nil, err
		}
		details = append(details, item)
	}
	return details, nil
}
