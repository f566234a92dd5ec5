package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "Pending"
	BookingStatusConfirmed BookingStatus = "Confirmed"
	BookingStatusCancelled BookingStatus = "Cancelled"
)

// Booking is an independent record referencing a showtime. It duplicates the
// claimed seat list for audit purposes, so releasing seats on cancellation
// must update both the booking and the showtime's booked set.
type Booking struct {
	ID          int
	Reference   uuid.UUID
	UserID      int
	ShowtimeID  int
	SeatNumbers []string
	TotalPrice  decimal.Decimal
	Status      BookingStatus
	CreatedAt   time.Time
}

type BookingRepository interface {
	GetById(ctx context.Context, id int) (*Booking, error)
	GetByUserId(ctx context.Context, userID int) ([]*Booking, error)

	// CreateWithSeatClaim appends booking.SeatNumbers to the showtime's booked
	// set iff the showtime's stored version still equals expectedVersion, and
	// inserts the booking record within the same transaction. The version
	// check failing yields ErrEditConflict and nothing is written.
	CreateWithSeatClaim(ctx context.Context, booking *Booking, expectedVersion int64) error

	// CancelWithSeatRelease removes booking.SeatNumbers from the showtime's
	// booked set iff the stored version still equals expectedVersion, and
	// marks the booking Cancelled within the same transaction. The version
	// check failing yields ErrEditConflict and nothing is written.
	CancelWithSeatRelease(ctx context.Context, booking *Booking, expectedVersion int64) error
}
