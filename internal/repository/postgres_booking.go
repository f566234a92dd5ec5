package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/ticket-booking-system/internal/domain"
)

type PostgresBookingRepository struct {
	db *pgxpool.Pool
}

func NewPostgresBookingRepository(db *pgxpool.Pool) *PostgresBookingRepository {
	return &PostgresBookingRepository{
		db: db,
	}
}

func (p *PostgresBookingRepository) GetById(ctx context.Context, id int) (*domain.Booking, error) {
	query := `
		SELECT id, reference, user_id, showtime_id, seat_numbers, total_price, status, created_at
		FROM bookings
		WHERE id = $1
	`

	var booking domain.Booking

	err := p.db.QueryRow(ctx, query, id).Scan(
		&booking.ID,
		&booking.Reference,
		&booking.UserID,
		&booking.ShowtimeID,
		&booking.SeatNumbers,
		&booking.TotalPrice,
		&booking.Status,
		&booking.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &booking, nil
}

func (p *PostgresBookingRepository) GetByUserId(ctx context.Context, userID int) ([]*domain.Booking, error) {
	query := `
		SELECT id, reference, user_id, showtime_id, seat_numbers, total_price, status, created_at
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := p.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var booking domain.Booking

		err = rows.Scan(
			&booking.ID,
			&booking.Reference,
			&booking.UserID,
			&booking.ShowtimeID,
			&booking.SeatNumbers,
			&booking.TotalPrice,
			&booking.Status,
			&booking.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		bookings = append(bookings, &booking)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return bookings, nil
}

// CreateWithSeatClaim performs the reservation's two writes as one atomic
// unit: a compare-and-swap append to the showtime's booked set, then the
// booking insert. The showtime version advances by exactly one as part of the
// same statement that checks it, which is what linearizes concurrent claims.
func (p *PostgresBookingRepository) CreateWithSeatClaim(ctx context.Context, booking *domain.Booking, expectedVersion int64) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			UPDATE showtimes
			SET booked_seats = booked_seats || $1::text[], version = version + 1
			WHERE id = $2 AND version = $3
		`

		tag, err := tx.Exec(ctx, query, booking.SeatNumbers, booking.ShowtimeID, expectedVersion)
		if err != nil {
			return err
		}

		if tag.RowsAffected() == 0 {
			return domain.ErrEditConflict
		}

		query = `
			INSERT INTO bookings (reference, user_id, showtime_id, seat_numbers, total_price, status, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id
		`

		err = tx.QueryRow(
			ctx,
			query,
			booking.Reference,
			booking.UserID,
			booking.ShowtimeID,
			booking.SeatNumbers,
			booking.TotalPrice,
			booking.Status,
			booking.CreatedAt).Scan(&booking.ID)

		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
				return domain.ErrRecordNotFound
			}

			return err
		}

		return nil
	})
}

// CancelWithSeatRelease removes the booking's seats from the showtime's
// booked set under the same compare-and-swap discipline as the claim, and
// flips the booking to Cancelled in the same transaction. A version mismatch
// rolls back both writes. The status flip is itself conditional: if a
// concurrent cancellation committed first, the booking's seats may since have
// been rebooked by someone else, so releasing them again would hand out a
// claimed seat. Zero rows on the status update aborts the transaction with
// domain.ErrAlreadyCancelled, rolling the seat release back.
func (p *PostgresBookingRepository) CancelWithSeatRelease(ctx context.Context, booking *domain.Booking, expectedVersion int64) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			UPDATE showtimes
			SET booked_seats = (
				SELECT COALESCE(array_agg(seat), '{}')
				FROM unnest(booked_seats) AS seat
				WHERE seat <> ALL($1::text[])
			), version = version + 1
			WHERE id = $2 AND version = $3
		`

		tag, err := tx.Exec(ctx, query, booking.SeatNumbers, booking.ShowtimeID, expectedVersion)
		if err != nil {
			return err
		}

		if tag.RowsAffected() == 0 {
			return domain.ErrEditConflict
		}

		query = `
			UPDATE bookings
			SET status = $1
			WHERE id = $2 AND status <> $1
		`

		tag, err = tx.Exec(ctx, query, domain.BookingStatusCancelled, booking.ID)
		if err != nil {
			return err
		}

		if tag.RowsAffected() == 0 {
			return domain.ErrAlreadyCancelled
		}

		booking.Status = domain.BookingStatusCancelled

		return nil
	})
}
