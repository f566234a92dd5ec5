package app

import (
	"errors"
	"net/http"

	"github.com/metinatakli/ticket-booking-system/api"
	"github.com/metinatakli/ticket-booking-system/internal/domain"
)

func (app *Application) GetShowtimeHandler(w http.ResponseWriter, r *http.Request) {
	showtimeId, err := app.readIDParam(r, "showtimeId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	showtime, err := app.showtimeRepo.GetById(r.Context(), showtimeId)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			app.notFoundResponse(w, r)
		} else {
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toShowtimeResponse(showtime), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *Application) GetShowtimesByMovieHandler(w http.ResponseWriter, r *http.Request) {
	movieId, err := app.readIDParam(r, "movieId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if _, err := app.movieRepo.GetById(r.Context(), movieId); err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			app.notFoundResponse(w, r)
		} else {
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	showtimes, err := app.showtimeRepo.GetByMovieId(r.Context(), movieId)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.ShowtimeListResponse{
		Showtimes: make([]api.ShowtimeResponse, 0, len(showtimes)),
	}

	for _, showtime := range showtimes {
		resp.Showtimes = append(resp.Showtimes, toShowtimeResponse(showtime))
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func toShowtimeResponse(showtime *domain.Showtime) api.ShowtimeResponse {
	return api.ShowtimeResponse{
		Id:        showtime.ID,
		MovieId:   showtime.MovieID,
		HallId:    showtime.HallID,
		StartTime: showtime.StartTime,
		Price:     showtime.Price,
	}
}
