package domain

import "errors"

// Sentinel errors returned by services and stores. Handlers translate these
// to HTTP statuses; everything unrecognized is an internal failure.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrListingNotFound    = errors.New("listing not found")
	ErrHotelNotFound      = errors.New("hotel not found")
	ErrEmailTaken         = errors.New("user already exists")
	ErrAlreadyFavourite   = errors.New("listing already in favourites")
	ErrAlreadyManager     = errors.New("user is already a manager")
	ErrMissingFields      = errors.New("required fields missing")
	ErrInvalidRating      = errors.New("rating must be an integer between 1 and 5")
	ErrInvalidCredentials = errors.New("invalid password")
)
