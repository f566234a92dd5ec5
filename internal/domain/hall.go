package domain

import (
	"context"
	"strconv"
	"strings"
)

type Hall struct {
	ID          int
	Name        string
	Rows        int
	SeatsPerRow int
}

// IsValidSeat reports whether seat is a well-formed "<row>-<col>" identifier
// whose row and column fall within the hall's bounds.
func (h Hall) IsValidSeat(seat string) bool {
	row, col, ok := ParseSeat(seat)
	if !ok {
		return false
	}

	return row >= 1 && row <= h.Rows && col >= 1 && col <= h.SeatsPerRow
}

// AllSeats enumerates every seat identifier of the hall in row-major order:
// "1-1", "1-2", ..., "2-1", ...
func (h Hall) AllSeats() []string {
	seats := make([]string, 0, h.Rows*h.SeatsPerRow)

	for row := 1; row <= h.Rows; row++ {
		for col := 1; col <= h.SeatsPerRow; col++ {
			seats = append(seats, SeatID(row, col))
		}
	}

	return seats
}

// SeatID builds the canonical "<row>-<col>" identifier.
func SeatID(row, col int) string {
	return strconv.Itoa(row) + "-" + strconv.Itoa(col)
}

// ParseSeat splits a seat identifier into row and column. ok is false when
// the identifier is not two positive integers joined by a single dash.
func ParseSeat(seat string) (row, col int, ok bool) {
	head, tail, found := strings.Cut(seat, "-")
	if !found {
		return 0, 0, false
	}

	row, err := strconv.Atoi(head)
	if err != nil || row < 1 {
		return 0, 0, false
	}

	col, err = strconv.Atoi(tail)
	if err != nil || col < 1 {
		return 0, 0, false
	}

	return row, col, true
}

type HallRepository interface {
	GetById(ctx context.Context, id int) (*Hall, error)
}
