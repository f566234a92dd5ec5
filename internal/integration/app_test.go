package integration_test

import (
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/ticket-booking-system/internal/app"
	"github.com/metinatakli/ticket-booking-system/internal/mailer"
	"github.com/metinatakli/ticket-booking-system/internal/repository"
	appvalidator "github.com/metinatakli/ticket-booking-system/internal/validator"
)

type TestApp struct {
	App    *app.Application
	DB     *pgxpool.Pool
	Mailer *mailer.MockMailer
}

func newTestApp(cfg app.Config) (*TestApp, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	validator := appvalidator.NewValidator()
	mockMailer := mailer.NewMockMailer()

	db, err := app.NewDatabasePool(cfg)
	if err != nil {
		return nil, err
	}

	redisClient, err := app.NewRedisClient(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	userRepo := repository.NewPostgresUserRepository(db)
	movieRepo := repository.NewPostgresMovieRepository(db)
	hallRepo := repository.NewPostgresHallRepository(db)
	showtimeRepo := repository.NewPostgresShowtimeRepository(db)
	bookingRepo := repository.NewPostgresBookingRepository(db)

	application := app.NewApp(
		cfg,
		logger,
		db,
		redisClient,
		validator,
		mockMailer,
		userRepo,
		movieRepo,
		hallRepo,
		showtimeRepo,
		bookingRepo,
	)

	return &TestApp{
		App:    application,
		DB:     db,
		Mailer: mockMailer,
	}, nil
}
