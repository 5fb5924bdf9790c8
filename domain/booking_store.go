package domain

import "context"

type BookingStore interface {
	Insert(ctx context.Context, booking *Booking) (*Booking, error)
	GetByUserEmail(ctx context.Context, email string) ([]*Booking, error)
}
