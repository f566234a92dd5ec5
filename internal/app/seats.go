package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/metinatakli/ticket-booking-system/api"
	"github.com/redis/go-redis/v9"
)

func seatCacheKey(showtimeID int) string {
	return fmt.Sprintf("showtime:%d:seats", showtimeID)
}

func (app *Application) GetAvailableSeatsHandler(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	showtimeId, err := app.readIDParam(r, "showtimeId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if seats, ok := app.cachedSeats(r.Context(), showtimeId); ok {
		resp := api.AvailableSeatsResponse{ShowtimeId: showtimeId, AvailableSeats: seats}

		if err := app.writeJSON(w, http.StatusOK, resp, nil); err != nil {
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	seats, err := app.coordinator.GetAvailableSeats(r.Context(), showtimeId)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.cacheSeats(r.Context(), showtimeId, seats)

	logger.Debug("seat availability computed", "showtime_id", showtimeId, "available", len(seats))

	resp := api.AvailableSeatsResponse{
		ShowtimeId:     showtimeId,
		AvailableSeats: seats,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

// cachedSeats returns the cached availability list, if one exists. Cache
// failures are treated as misses so Redis outages only cost latency.
func (app *Application) cachedSeats(ctx context.Context, showtimeID int) ([]string, bool) {
	if app.redis == nil {
		return nil, false
	}

	data, err := app.redis.Get(ctx, seatCacheKey(showtimeID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			app.logger.Warn("seat cache read failed", "showtime_id", showtimeID, "error", err)
		}
		return nil, false
	}

	var seats []string
	if err := json.Unmarshal(data, &seats); err != nil {
		return nil, false
	}

	return seats, true
}

func (app *Application) cacheSeats(ctx context.Context, showtimeID int, seats []string) {
	if app.redis == nil {
		return
	}

	data, err := json.Marshal(seats)
	if err != nil {
		return
	}

	err = app.redis.Set(ctx, seatCacheKey(showtimeID), data, app.config.SeatCacheTTL).Err()
	if err != nil {
		app.logger.Warn("seat cache write failed", "showtime_id", showtimeID, "error", err)
	}
}

// invalidateSeatCache drops the cached availability after a booking mutation,
// so readers see the change before the TTL would expire it.
func (app *Application) invalidateSeatCache(ctx context.Context, showtimeID int) {
	if app.redis == nil {
		return
	}

	err := app.redis.Del(ctx, seatCacheKey(showtimeID)).Err()
	if err != nil {
		app.logger.Warn("seat cache invalidation failed", "showtime_id", showtimeID, "error", err)
	}
}
