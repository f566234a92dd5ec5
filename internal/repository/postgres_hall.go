package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/ticket-booking-system/internal/domain"
)

type PostgresHallRepository struct {
	db *pgxpool.Pool
}

func NewPostgresHallRepository(db *pgxpool.Pool) *PostgresHallRepository {
	return &PostgresHallRepository{
		db: db,
	}
}

func (p *PostgresHallRepository) GetById(ctx context.Context, id int) (*domain.Hall, error) {
	query := `
		SELECT id, name, seat_rows, seats_per_row
		FROM halls
		WHERE id = $1
	`

	var hall domain.Hall

	err := p.db.QueryRow(ctx, query, id).Scan(
		&hall.ID,
		&hall.Name,
		&hall.Rows,
		&hall.SeatsPerRow,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &hall, nil
}
