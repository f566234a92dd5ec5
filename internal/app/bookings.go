package app

import (
	"context"
	"errors"
	"net/http"

	"github.com/metinatakli/ticket-booking-system/api"
	"github.com/metinatakli/ticket-booking-system/internal/booking"
	"github.com/metinatakli/ticket-booking-system/internal/domain"
)

func (app *Application) CreateBookingHandler(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	showtimeId, err := app.readIDParam(r, "showtimeId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input api.CreateBookingRequest

	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	userId := app.contextGetUserId(r)

	newBooking, err := app.coordinator.ReserveSeats(r.Context(), userId, showtimeId, input.SeatNumbers)
	if err != nil {
		var seatsUnavailableErr booking.SeatsUnavailableError
		var invalidSeatErr booking.InvalidSeatError

		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		case errors.As(err, &seatsUnavailableErr):
			app.conflictResponse(w, r, seatsUnavailableErr.Error())
		case errors.As(err, &invalidSeatErr):
			app.unprocessableEntityResponse(w, r, "seatNumbers", invalidSeatErr.Error())
		case errors.Is(err, booking.ErrNoSeatsRequested):
			app.unprocessableEntityResponse(w, r, "seatNumbers", "at least one seat must be requested")
		case errors.Is(err, booking.ErrConflictExhausted):
			logger.Warn("booking gave up after repeated version conflicts", "showtime_id", showtimeId)
			app.conflictResponse(w, r, "The showtime is in high demand, please try again")
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	app.invalidateSeatCache(r.Context(), showtimeId)

	go func(ctx context.Context) {
		gLogger := app.contextGetLogger(r.WithContext(ctx))

		defer func() {
			if err := recover(); err != nil {
				gLogger.Error("panic occurred during sending booking confirmation mail", "panic", err)
			}
		}()

		if err := app.sendBookingMail(ctx, newBooking, "booking_confirmation.tmpl"); err != nil {
			gLogger.Error("failed to send booking confirmation email", "error", err)
		}
	}(context.WithoutCancel(r.Context()))

	resp := toBookingResponse(newBooking)

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *Application) CancelBookingHandler(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	bookingId, err := app.readIDParam(r, "bookingId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	userId := app.contextGetUserId(r)

	userBooking, err := app.coordinator.GetBooking(r.Context(), bookingId, userId)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			app.notFoundResponse(w, r)
		} else {
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.coordinator.CancelBooking(r.Context(), bookingId, userId)
	if err != nil {
		var cancellationFailedErr booking.CancellationFailedError

		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		case errors.Is(err, booking.ErrForbidden):
			app.forbiddenResponse(w, r)
		case errors.Is(err, booking.ErrAlreadyCancelled):
			app.conflictResponse(w, r, "The booking has already been cancelled")
		case errors.Is(err, booking.ErrTooLateToCancel):
			app.conflictResponse(w, r, "The booking can no longer be cancelled this close to the showtime")
		case errors.As(err, &cancellationFailedErr):
			app.serverErrorResponse(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	logger.Info("booking cancelled", "booking_id", bookingId, "showtime_id", userBooking.ShowtimeID)

	app.invalidateSeatCache(r.Context(), userBooking.ShowtimeID)

	go func(ctx context.Context) {
		gLogger := app.contextGetLogger(r.WithContext(ctx))

		defer func() {
			if err := recover(); err != nil {
				gLogger.Error("panic occurred during sending booking cancellation mail", "panic", err)
			}
		}()

		if err := app.sendBookingMail(ctx, userBooking, "booking_cancellation.tmpl"); err != nil {
			gLogger.Error("failed to send booking cancellation email", "error", err)
		}
	}(context.WithoutCancel(r.Context()))

	resp := api.CancelBookingResponse{
		Message: "The booking has been cancelled and its seats released",
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *Application) GetBookingHandler(w http.ResponseWriter, r *http.Request) {
	bookingId, err := app.readIDParam(r, "bookingId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	userId := app.contextGetUserId(r)

	userBooking, err := app.coordinator.GetBooking(r.Context(), bookingId, userId)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			app.notFoundResponse(w, r)
		} else {
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toBookingResponse(userBooking), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *Application) GetUserBookingsHandler(w http.ResponseWriter, r *http.Request) {
	userId := app.contextGetUserId(r)

	bookings, err := app.coordinator.GetUserBookings(r.Context(), userId)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.UserBookingsResponse{
		Bookings: make([]api.BookingResponse, 0, len(bookings)),
	}

	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, toBookingResponse(b))
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

// sendBookingMail resolves the booking's owner and showtime and sends the
// given template. Runs outside the request path.
func (app *Application) sendBookingMail(ctx context.Context, b *domain.Booking, templateFile string) error {
	user, err := app.userRepo.GetById(ctx, b.UserID)
	if err != nil {
		return err
	}

	showtime, err := app.showtimeRepo.GetById(ctx, b.ShowtimeID)
	if err != nil {
		return err
	}

	data := map[string]any{
		"Name":        user.Name,
		"Reference":   b.Reference,
		"SeatNumbers": b.SeatNumbers,
		"StartTime":   showtime.StartTime,
		"TotalPrice":  b.TotalPrice,
	}

	return app.mailer.Send(user.Email, templateFile, data)
}

func toBookingResponse(b *domain.Booking) api.BookingResponse {
	return api.BookingResponse{
		Id:          b.ID,
		Reference:   b.Reference,
		ShowtimeId:  b.ShowtimeID,
		SeatNumbers: b.SeatNumbers,
		TotalPrice:  b.TotalPrice,
		Status:      string(b.Status),
		CreatedAt:   b.CreatedAt,
	}
}
