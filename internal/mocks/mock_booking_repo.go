package mocks

import (
	"context"

	"github.com/metinatakli/ticket-booking-system/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockBookingRepo struct {
	mock.Mock
	domain.BookingRepository
}

func (m *MockBookingRepo) GetById(ctx context.Context, id int) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepo) GetByUserId(ctx context.Context, userID int) ([]*domain.Booking, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

func (m *MockBookingRepo) CreateWithSeatClaim(ctx context.Context, booking *domain.Booking, expectedVersion int64) error {
	args := m.Called(ctx, booking, expectedVersion)
	return args.Error(0)
}

func (m *MockBookingRepo) CancelWithSeatRelease(ctx context.Context, booking *domain.Booking, expectedVersion int64) error {
	args := m.Called(ctx, booking, expectedVersion)
	return args.Error(0)
}
