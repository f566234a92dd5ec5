package mocks

import (
	"context"

	"github.com/metinatakli/ticket-booking-system/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockHallRepo struct {
	mock.Mock
	domain.HallRepository
}

func (m *MockHallRepo) GetById(ctx context.Context, id int) (*domain.Hall, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Hall), args.Error(1)
}
