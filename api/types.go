// Package api holds the request and response types of the HTTP surface.
package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Message   string    `json:"message"`
	RequestId string    `json:"requestId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type ValidationError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

type ValidationErrorResponse struct {
	Message          string            `json:"message"`
	ValidationErrors []ValidationError `json:"validationErrors"`
}

type HealthcheckResponse struct {
	Status     string     `json:"status"`
	SystemInfo SystemInfo `json:"systemInfo"`
}

type SystemInfo struct {
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

type CreateBookingRequest struct {
	SeatNumbers []string `json:"seatNumbers" validate:"required,min=1,max=10,unique,dive,seat"`
}

type BookingResponse struct {
	Id          int             `json:"id"`
	Reference   uuid.UUID       `json:"reference"`
	ShowtimeId  int             `json:"showtimeId"`
	SeatNumbers []string        `json:"seatNumbers"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type UserBookingsResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

type CancelBookingResponse struct {
	Message string `json:"message"`
}

type AvailableSeatsResponse struct {
	ShowtimeId     int      `json:"showtimeId"`
	AvailableSeats []string `json:"availableSeats"`
}

type ShowtimeResponse struct {
	Id        int             `json:"id"`
	MovieId   int             `json:"movieId"`
	HallId    int             `json:"hallId"`
	StartTime time.Time       `json:"startTime"`
	Price     decimal.Decimal `json:"price"`
}

type ShowtimeListResponse struct {
	Showtimes []ShowtimeResponse `json:"showtimes"`
}

type MovieSummary struct {
	Id          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Genre       string `json:"genre"`
}

type MovieDetail struct {
	Id          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Genre       string    `json:"genre"`
	Language    string    `json:"language"`
	ReleaseDate time.Time `json:"releaseDate"`
	Duration    int       `json:"duration"`
}

type MovieListResponse struct {
	Movies   []MovieSummary `json:"movies"`
	Metadata *Metadata      `json:"metadata,omitempty"`
}

type Metadata struct {
	CurrentPage  int `json:"currentPage"`
	FirstPage    int `json:"firstPage"`
	LastPage     int `json:"lastPage"`
	PageSize     int `json:"pageSize"`
	TotalRecords int `json:"totalRecords"`
}

type GetMoviesParams struct {
	Page     *int    `validate:"omitempty,min=1"`
	PageSize *int    `validate:"omitempty,min=1,max=100"`
	Term     *string `validate:"omitempty,max=100"`
	Sort     *string `validate:"omitempty,oneof=id title release_date -id -title -release_date"`
}
