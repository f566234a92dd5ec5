package app

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/metinatakli/ticket-booking-system/api"
	"github.com/metinatakli/ticket-booking-system/internal/domain"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	DefaultSort     = "id"
)

func (app *Application) GetMoviesHandler(w http.ResponseWriter, r *http.Request) {
	params, err := parseGetMoviesParams(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(params)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	filters := toMovieFilters(params)

	movies, metadata, err := app.movieRepo.GetAll(r.Context(), filters)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.MovieListResponse{
		Movies:   toMovieSummaries(movies),
		Metadata: toApiMetadata(metadata),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetMovieHandler(w http.ResponseWriter, r *http.Request) {
	movieId, err := app.readIDParam(r, "movieId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	movie, err := app.movieRepo.GetById(r.Context(), movieId)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			app.notFoundResponse(w, r)
		} else {
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	resp := api.MovieDetail{
		Id:          movie.ID,
		Title:       movie.Title,
		Description: movie.Description,
		Genre:       movie.Genre,
		Language:    movie.Language,
		ReleaseDate: movie.ReleaseDate,
		Duration:    movie.Duration,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func parseGetMoviesParams(r *http.Request) (api.GetMoviesParams, error) {
	var params api.GetMoviesParams

	query := r.URL.Query()

	if page := query.Get("page"); page != "" {
		pageNum, err := strconv.Atoi(page)
		if err != nil {
			return params, errors.New("page must be an integer")
		}
		params.Page = &pageNum
	}

	if pageSize := query.Get("pageSize"); pageSize != "" {
		pageSizeNum, err := strconv.Atoi(pageSize)
		if err != nil {
			return params, errors.New("pageSize must be an integer")
		}
		params.PageSize = &pageSizeNum
	}

	if term := query.Get("term"); term != "" {
		params.Term = &term
	}

	if sort := query.Get("sort"); sort != "" {
		params.Sort = &sort
	}

	return params, nil
}

func toMovieFilters(params api.GetMoviesParams) domain.MovieFilters {
	filters := domain.MovieFilters{
		Page:     DefaultPage,
		PageSize: DefaultPageSize,
		Sort:     DefaultSort,
	}

	if params.Page != nil {
		filters.Page = *params.Page
	}
	if params.PageSize != nil {
		filters.PageSize = *params.PageSize
	}
	if params.Sort != nil {
		filters.Sort = *params.Sort
	}
	if params.Term != nil {
		filters.Term = *params.Term
	}

	return filters
}

func toMovieSummaries(movies []*domain.Movie) []api.MovieSummary {
	summaries := make([]api.MovieSummary, len(movies))

	for i, movie := range movies {
		summaries[i] = api.MovieSummary{
			Id:          movie.ID,
			Title:       movie.Title,
			Description: movie.Description,
			Genre:       movie.Genre,
		}
	}

	return summaries
}

func toApiMetadata(metadata *domain.Metadata) *api.Metadata {
	if metadata == nil {
		return nil
	}

	return &api.Metadata{
		CurrentPage:  metadata.CurrentPage,
		FirstPage:    metadata.FirstPage,
		LastPage:     metadata.LastPage,
		PageSize:     metadata.PageSize,
		TotalRecords: metadata.TotalRecords,
	}
}
