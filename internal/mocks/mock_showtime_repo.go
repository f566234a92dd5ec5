package mocks

import (
	"context"

	"github.com/metinatakli/ticket-booking-system/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockShowtimeRepo struct {
	mock.Mock
	domain.ShowtimeRepository
}

func (m *MockShowtimeRepo) GetById(ctx context.Context, id int) (*domain.Showtime, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Showtime), args.Error(1)
}

func (m *MockShowtimeRepo) GetByMovieId(ctx context.Context, movieID int) ([]*domain.Showtime, error) {
	args := m.Called(ctx, movieID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Showtime), args.Error(1)
}
