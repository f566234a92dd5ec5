package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/ticket-booking-system/internal/domain"
)

type PostgresShowtimeRepository struct {
	db *pgxpool.Pool
}

func NewPostgresShowtimeRepository(db *pgxpool.Pool) *PostgresShowtimeRepository {
	return &PostgresShowtimeRepository{
		db: db,
	}
}

func (p *PostgresShowtimeRepository) GetById(ctx context.Context, id int) (*domain.Showtime, error) {
	query := `
		SELECT id, movie_id, hall_id, start_time, price, booked_seats, version, created_at
		FROM showtimes
		WHERE id = $1
	`

	var showtime domain.Showtime

	err := p.db.QueryRow(ctx, query, id).Scan(
		&showtime.ID,
		&showtime.MovieID,
		&showtime.HallID,
		&showtime.StartTime,
		&showtime.Price,
		&showtime.BookedSeats,
		&showtime.Version,
		&showtime.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &showtime, nil
}

func (p *PostgresShowtimeRepository) GetByMovieId(ctx context.Context, movieID int) ([]*domain.Showtime, error) {
	query := `
		SELECT id, movie_id, hall_id, start_time, price, booked_seats, version, created_at
		FROM showtimes
		WHERE movie_id = $1 AND start_time > NOW()
		ORDER BY start_time
	`

	rows, err := p.db.Query(ctx, query, movieID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	showtimes := make([]*domain.Showtime, 0)

	for rows.Next() {
		var showtime domain.Showtime

		err = rows.Scan(
			&showtime.ID,
			&showtime.MovieID,
			&showtime.HallID,
			&showtime.StartTime,
			&showtime.Price,
			&showtime.BookedSeats,
			&showtime.Version,
			&showtime.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		showtimes = append(showtimes, &showtime)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return showtimes, nil
}
