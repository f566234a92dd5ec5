package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5/middleware"
)

// UserIdHeader carries the caller's identity, resolved by the API gateway
// before requests reach this service.
const UserIdHeader = "X-User-Id"

type contextKey string

const (
	ContextKeyUserId = contextKey("userID")
	ContextKeyLogger = contextKey("logger")
)

func (app *Application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")

				app.serverErrorResponse(w, r, fmt.Errorf("%s", err))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// requestLogger attaches a request-scoped logger carrying the request id, so
// handlers and the goroutines they spawn log with correlation built in.
func (app *Application) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := app.logger.With("request_id", middleware.GetReqID(r.Context()))

		ctx := context.WithValue(r.Context(), ContextKeyLogger, logger)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (app *Application) requireUserContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userId, err := strconv.Atoi(r.Header.Get(UserIdHeader))
		if err != nil || userId < 1 {
			app.unauthorizedAccessResponse(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), ContextKeyUserId, userId)
		r = r.WithContext(ctx)

		next.ServeHTTP(w, r)
	})
}

func (app *Application) contextGetUserId(r *http.Request) int {
	userId, ok := r.Context().Value(ContextKeyUserId).(int)
	if !ok {
		panic("missing user id from context")
	}

	return userId
}

func (app *Application) contextGetLogger(r *http.Request) *slog.Logger {
	logger, ok := r.Context().Value(ContextKeyLogger).(*slog.Logger)
	if !ok {
		return app.logger
	}

	return logger
}
