package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AkashRanjanSaikia/Hotal-Booking-system/domain"
)

func newTestBookingService(t *testing.T) (*BookingService, *fakeListingStore, *fakeBookingStore) {
	t.Helper()
	listings := newFakeListingStore()
	bookings := newFakeBookingStore()
	return NewBookingService(bookings, listings), listings, bookings
}

func bookingInput(hotelID string, nights float64) *domain.BookingInput {
	checkIn := time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)
	return &domain.BookingInput{
		HotelID:   hotelID,
		UserName:  "Ana",
		UserEmail: "ana@example.com",
		CheckIn:   checkIn,
		CheckOut:  checkIn.Add(time.Duration(nights * 24 * float64(time.Hour))),
	}
}

func TestCreateBooking(t *testing.T) {
	service, listings, _ := newTestBookingService(t)
	hotel, err := listings.Insert(context.Background(), &domain.Listing{Title: "Sea View", Price: 1000})
	require.NoError(t, err)

	booking, err := service.Create(context.Background(), bookingInput(hotel.ID.Hex(), 3))
	require.NoError(t, err)
	assert.Equal(t, hotel.ID, booking.Hotel)
	assert.Equal(t, 3000.0, booking.TotalPrice)
	assert.Equal(t, "ana@example.com", booking.UserEmail)
}

func TestCreateBooking_FractionalStay(t *testing.T) {
	service, listings, _ := newTestBookingService(t)
	hotel, err := listings.Insert(context.Background(), &domain.Listing{Title: "Half Day", Price: 200})
	require.NoError(t, err)

	booking, err := service.Create(context.Background(), bookingInput(hotel.ID.Hex(), 1.5))
	require.NoError(t, err)
	assert.InDelta(t, 300.0, booking.TotalPrice, 0.001)
}

func TestCreateBooking_CheckOutBeforeCheckIn(t *testing.T) {
	service, listings, _ := newTestBookingService(t)
	hotel, err := listings.Insert(context.Background(), &domain.Listing{Title: "Backwards", Price: 100})
	require.NoError(t, err)

	booking, err := service.Create(context.Background(), bookingInput(hotel.ID.Hex(), -2))
	require.NoError(t, err)
	assert.Equal(t, -200.0, booking.TotalPrice)
}

func TestCreateBooking_UnknownHotel(t *testing.T) {
	service, _, _ := newTestBookingService(t)

	_, err := service.Create(context.Background(), bookingInput(primitive.NewObjectID().Hex(), 2))
	assert.ErrorIs(t, err, domain.ErrHotelNotFound)

	_, err = service.Create(context.Background(), bookingInput("not-a-hex-id", 2))
	assert.ErrorIs(t, err, domain.ErrHotelNotFound)
}

func TestCreateBooking_MissingFields(t *testing.T) {
	service, listings, _ := newTestBookingService(t)
	hotel, err := listings.Insert(context.Background(), &domain.Listing{Title: "Strict", Price: 100})
	require.NoError(t, err)

	input := bookingInput(hotel.ID.Hex(), 2)
	input.UserEmail = ""
	_, err = service.Create(context.Background(), input)
	assert.ErrorIs(t, err, domain.ErrMissingFields)
}

func TestGetByUserEmail(t *testing.T) {
	service, listings, _ := newTestBookingService(t)
	hotel, err := listings.Insert(context.Background(), &domain.Listing{Title: "Repeat", Price: 100})
	require.NoError(t, err)

	_, err = service.Create(context.Background(), bookingInput(hotel.ID.Hex(), 2))
	require.NoError(t, err)

	other := bookingInput(hotel.ID.Hex(), 1)
	other.UserEmail = "else@example.com"
	_, err = service.Create(context.Background(), other)
	require.NoError(t, err)

	details, err := service.GetByUserEmail(context.Background(), "ana@example.com")
	require.NoError(t, err)
	require.Len(t, details, 1)
	require.NotNil(t, details[0].HotelDetails)
	assert.Equal(t, "Repeat", details[0].HotelDetails.Title)
}

func TestGetByUserEmail_DeletedHotelKeptWithNilDetails(t *testing.T) {
	service, listings, _ := newTestBookingService(t)
	hotel, err := listings.Insert(context.Background(), &domain.Listing{Title: "Gone", Price: 100})
	require.NoError(t, err)

	_, err = service.Create(context.Background(), bookingInput(hotel.ID.Hex(), 2))
	require.NoError(t, err)
	require.NoError(t, listings.Delete(context.Background(), hotel.ID))

	details, err := service.GetByUserEmail(context.Background(), "ana@example.com")
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Nil(t, details[0].HotelDetails)
}
