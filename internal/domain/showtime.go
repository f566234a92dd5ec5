package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Showtime carries the live seat-booking state of a scheduled screening.
// BookedSeats never contains a duplicate identifier, and Version increments
// by exactly one on every successful mutation of BookedSeats.
type Showtime struct {
	ID          int
	MovieID     int
	HallID      int
	StartTime   time.Time
	Price       decimal.Decimal
	BookedSeats []string
	Version     int64
	CreatedAt   time.Time
}

type ShowtimeRepository interface {
	GetById(ctx context.Context, id int) (*Showtime, error)
	GetByMovieId(ctx context.Context, movieID int) ([]*Showtime, error)
}
