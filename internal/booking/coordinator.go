package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/metinatakli/ticket-booking-system/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	// maxAttempts bounds the optimistic retry loop so that hot showtimes
	// surface a terminal error instead of queuing indefinitely.
	maxAttempts = 3

	// baseBackoff is multiplied by the attempt number for a linear backoff
	// schedule: 100ms after the first conflict, 200ms after the second.
	baseBackoff = 100 * time.Millisecond

	// DefaultCancellationCutoff is how long before the showtime starts a
	// booking stops being cancellable.
	DefaultCancellationCutoff = 2 * time.Hour
)

// Coordinator orchestrates seat claims against a showtime's versioned seat
// set. Showtime records are never locked; every mutation is a compare-and-swap
// on the record's version, retried a bounded number of times on conflict.
type Coordinator struct {
	showtimes domain.ShowtimeRepository
	halls     domain.HallRepository
	bookings  domain.BookingRepository
	logger    *slog.Logger

	cancellationCutoff time.Duration
	now                func() time.Time
	sleep              func(ctx context.Context, d time.Duration) error
}

type Option func(*Coordinator)

// WithCancellationCutoff overrides the minimum lead time required to cancel.
func WithCancellationCutoff(cutoff time.Duration) Option {
	return func(c *Coordinator) {
		c.cancellationCutoff = cutoff
	}
}

// WithClock replaces the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) {
		c.now = now
	}
}

// WithSleep replaces the backoff sleep, for tests.
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(c *Coordinator) {
		c.sleep = sleep
	}
}

func NewCoordinator(
	showtimes domain.ShowtimeRepository,
	halls domain.HallRepository,
	bookings domain.BookingRepository,
	logger *slog.Logger,
	opts ...Option,
) *Coordinator {
	c := &Coordinator{
		showtimes:          showtimes,
		halls:              halls,
		bookings:           bookings,
		logger:             logger,
		cancellationCutoff: DefaultCancellationCutoff,
		now:                time.Now,
		sleep:              sleepContext,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// ReserveSeats claims seatNumbers on the showtime and records a Confirmed
// booking for userID. The seat-set mutation and the booking insert are a
// single atomic unit. On a version conflict the whole sequence restarts from
// a fresh read, up to maxAttempts times, so availability is always
// re-validated against the state the conditional update will be keyed on.
//
// Failures are one of: domain.ErrRecordNotFound (showtime or hall),
// SeatsUnavailableError, InvalidSeatError, ErrNoSeatsRequested, or
// ErrConflictExhausted once the retry budget is spent.
func (c *Coordinator) ReserveSeats(ctx context.Context, userID, showtimeID int, seatNumbers []string) (*domain.Booking, error) {
	if len(seatNumbers) == 0 {
		return nil, ErrNoSeatsRequested
	}

	seen := make(map[string]struct{}, len(seatNumbers))
	for _, seat := range seatNumbers {
		if _, dup := seen[seat]; dup {
			return nil, InvalidSeatError{Seat: seat}
		}
		seen[seat] = struct{}{}
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		showtime, err := c.showtimes.GetById(ctx, showtimeID)
		if err != nil {
			return nil, fmt.Errorf("fetching showtime %d: %w", showtimeID, err)
		}

		if unavailable := intersect(seatNumbers, showtime.BookedSeats); len(unavailable) > 0 {
			return nil, SeatsUnavailableError{Seats: unavailable}
		}

		hall, err := c.halls.GetById(ctx, showtime.HallID)
		if err != nil {
			return nil, fmt.Errorf("fetching hall %d: %w", showtime.HallID, err)
		}

		for _, seat := range seatNumbers {
			if !hall.IsValidSeat(seat) {
				return nil, InvalidSeatError{Seat: seat}
			}
		}

		booking := &domain.Booking{
			Reference:   uuid.New(),
			UserID:      userID,
			ShowtimeID:  showtimeID,
			SeatNumbers: seatNumbers,
			TotalPrice:  showtime.Price.Mul(decimal.NewFromInt(int64(len(seatNumbers)))),
			Status:      domain.BookingStatusConfirmed,
			CreatedAt:   c.now(),
		}

		err = c.bookings.CreateWithSeatClaim(ctx, booking, showtime.Version)
		if err == nil {
			return booking, nil
		}

		// Store errors share the retry budget with version conflicts: the
		// transaction rolled back either way, so a fresh read is safe.
		if errors.Is(err, domain.ErrEditConflict) {
			c.logger.Debug("seat claim lost version race",
				"showtime_id", showtimeID, "version", showtime.Version, "attempt", attempt+1)
		} else {
			c.logger.Error("seat claim failed",
				"showtime_id", showtimeID, "attempt", attempt+1, "error", err)
		}

		if attempt < maxAttempts-1 {
			if err := c.sleep(ctx, backoff(attempt)); err != nil {
				return nil, err
			}
		}
	}

	return nil, ErrConflictExhausted
}

// CancelBooking releases the booking's seats back to the showtime and marks
// the booking Cancelled, atomically. The seat release is a conditional update
// on the showtime version and conflicts get the same bounded backoff as
// reservation. The status check before the loop is only a fast path: a
// concurrent cancellation of the same booking that commits between that check
// and the conditional update is caught inside the store transaction, which
// refuses to flip an already-Cancelled booking and rolls the seat release
// back. Without that guard a retried cancel could strip seats a third user
// has rebooked in the meantime. If the budget is spent or the store fails,
// nothing is written and CancellationFailedError is returned.
func (c *Coordinator) CancelBooking(ctx context.Context, bookingID, userID int) error {
	booking, err := c.bookings.GetById(ctx, bookingID)
	if err != nil {
		return fmt.Errorf("fetching booking %d: %w", bookingID, err)
	}

	if booking.UserID != userID {
		return ErrForbidden
	}

	if booking.Status == domain.BookingStatusCancelled {
		return ErrAlreadyCancelled
	}

	var lastErr error

	for attempt := 0; attempt < maxAttempts; attempt++ {
		showtime, err := c.showtimes.GetById(ctx, booking.ShowtimeID)
		if err != nil {
			return fmt.Errorf("fetching showtime %d: %w", booking.ShowtimeID, err)
		}

		if !showtime.StartTime.After(c.now().Add(c.cancellationCutoff)) {
			return ErrTooLateToCancel
		}

		err = c.bookings.CancelWithSeatRelease(ctx, booking, showtime.Version)
		if err == nil {
			return nil
		}

		if errors.Is(err, domain.ErrAlreadyCancelled) {
			return ErrAlreadyCancelled
		}

		if !errors.Is(err, domain.ErrEditConflict) {
			return CancellationFailedError{Cause: err}
		}

		c.logger.Debug("seat release lost version race",
			"showtime_id", showtime.ID, "version", showtime.Version, "attempt", attempt+1)
		lastErr = err

		if attempt < maxAttempts-1 {
			if err := c.sleep(ctx, backoff(attempt)); err != nil {
				return err
			}
		}
	}

	return CancellationFailedError{Cause: lastErr}
}

// GetAvailableSeats lists the showtime's free seat identifiers in row-major
// order. An unresolvable showtime or hall yields an empty list, not an error.
func (c *Coordinator) GetAvailableSeats(ctx context.Context, showtimeID int) ([]string, error) {
	showtime, err := c.showtimes.GetById(ctx, showtimeID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("fetching showtime %d: %w", showtimeID, err)
	}

	hall, err := c.halls.GetById(ctx, showtime.HallID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("fetching hall %d: %w", showtime.HallID, err)
	}

	return domain.AvailableSeats(*hall, showtime.BookedSeats), nil
}

// GetBooking returns the booking if it belongs to userID. Other users'
// bookings are reported as not found rather than forbidden, so booking IDs
// don't leak.
func (c *Coordinator) GetBooking(ctx context.Context, bookingID, userID int) (*domain.Booking, error) {
	booking, err := c.bookings.GetById(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("fetching booking %d: %w", bookingID, err)
	}

	if booking.UserID != userID {
		return nil, domain.ErrRecordNotFound
	}

	return booking, nil
}

// GetUserBookings lists the user's bookings, newest first.
func (c *Coordinator) GetUserBookings(ctx context.Context, userID int) ([]*domain.Booking, error) {
	return c.bookings.GetByUserId(ctx, userID)
}

func backoff(attempt int) time.Duration {
	return baseBackoff * time.Duration(attempt+1)
}

// sleepContext waits for d without blocking other requests' progress, and
// returns early if ctx is cancelled.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func intersect(requested, booked []string) []string {
	bookedSet := make(map[string]struct{}, len(booked))
	for _, seat := range booked {
		bookedSet[seat] = struct{}{}
	}

	var conflicting []string

	for _, seat := range requested {
		if _, ok := bookedSet[seat]; ok {
			conflicting = append(conflicting, seat)
		}
	}

	return conflicting
}
