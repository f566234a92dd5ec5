package integration_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

var keysToIgnore = map[string]struct{}{
	"timestamp": {},
	"requestId": {},
	"createdAt": {},
	"reference": {},
}

func prepareRequest(method, path string, body io.Reader, headers map[string]string) (*http.Request, error) {
	req := httptest.NewRequest(method, path, body)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req, nil
}

func compareResponse(t *testing.T, body io.Reader, expectedResponse string) {
	var actual map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&actual))

	cleanMap(actual)

	var expected map[string]any
	require.NoError(t, json.Unmarshal([]byte(expectedResponse), &expected))

	// ignore indeterministic fields while comparing
	opts := cmpopts.IgnoreMapEntries(func(k string, _ any) bool {
		_, ok := keysToIgnore[k]
		return ok
	})

	if diff := cmp.Diff(expected, actual, opts); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func cleanMap(m map[string]any) {
	for k := range m {
		if _, ok := keysToIgnore[k]; ok {
			delete(m, k)
			continue
		}
		if nested, ok := m[k].(map[string]any); ok {
			cleanMap(nested)
		}
	}
}

// seedBaseData inserts one user, movie, hall, and an upcoming showtime so the
// booking scenarios have something to book against.
func seedBaseData(t testing.TB, app *TestApp) {
	t.Helper()

	ctx := context.Background()

	_, err := app.DB.Exec(ctx, `
		INSERT INTO users (id, name, email)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO NOTHING
	`, TestUserId, TestUserName, TestUserEmail)
	require.NoError(t, err)

	_, err = app.DB.Exec(ctx, `
		INSERT INTO movies (id, title, description, genre, language, release_date, duration)
		VALUES (1, $1, $2, $3, $4, '2020-01-01', $5)
		ON CONFLICT (id) DO NOTHING
	`, TestMovieTitle, TestMovieDescription, TestMovieGenre, TestMovieLanguage, TestMovieDuration)
	require.NoError(t, err)

	_, err = app.DB.Exec(ctx, `
		INSERT INTO halls (id, name, seat_rows, seats_per_row)
		VALUES (1, $1, $2, $3)
		ON CONFLICT (id) DO NOTHING
	`, TestHallName, TestHallRows, TestHallSeatsPerRow)
	require.NoError(t, err)

	_, err = app.DB.Exec(ctx, `
		INSERT INTO showtimes (id, movie_id, hall_id, start_time, price)
		VALUES (1, 1, 1, NOW() + INTERVAL '24 hours', $1)
		ON CONFLICT (id) DO NOTHING
	`, TestShowtimePrice)
	require.NoError(t, err)
}

// resetBookings clears all bookings and returns the showtime to its pristine
// state between scenarios.
func resetBookings(t testing.TB, app *TestApp) {
	t.Helper()

	ctx := context.Background()

	_, err := app.DB.Exec(ctx, `TRUNCATE bookings RESTART IDENTITY`)
	require.NoError(t, err)

	_, err = app.DB.Exec(ctx, `
		UPDATE showtimes
		SET booked_seats = '{}', version = 0, start_time = NOW() + INTERVAL '24 hours'
		WHERE id = 1
	`)
	require.NoError(t, err)

	app.Mailer.Reset()
}

func getShowtimeState(t testing.TB, app *TestApp) (bookedSeats []string, version int64) {
	t.Helper()

	err := app.DB.QueryRow(context.Background(), `
		SELECT booked_seats, version FROM showtimes WHERE id = 1
	`).Scan(&bookedSeats, &version)
	require.NoError(t, err)

	return bookedSeats, version
}
