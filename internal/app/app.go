package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/exaring/otelpgx"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/ticket-booking-system/internal/booking"
	"github.com/metinatakli/ticket-booking-system/internal/domain"
	"github.com/metinatakli/ticket-booking-system/internal/mailer"
	"github.com/metinatakli/ticket-booking-system/internal/repository"
	appvalidator "github.com/metinatakli/ticket-booking-system/internal/validator"
	"github.com/metinatakli/ticket-booking-system/internal/vcs"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"github.com/riandyrn/otelchi"
	"go.opentelemetry.io/contrib/bridges/otelslog"
)

const serviceName = "ticket-booking-api"

var (
	version = vcs.Version()
)

type Application struct {
	config    Config
	logger    *slog.Logger
	db        *pgxpool.Pool
	redis     redis.UniversalClient
	validator *validator.Validate
	mailer    mailer.Mailer

	userRepo     domain.UserRepository
	movieRepo    domain.MovieRepository
	hallRepo     domain.HallRepository
	showtimeRepo domain.ShowtimeRepository
	bookingRepo  domain.BookingRepository

	coordinator *booking.Coordinator
}

type Config struct {
	Port  int
	Env   string
	DB    DBConfig
	Redis RedisConfig
	SMTP  SMTPConfig

	OtelCollectorUrl   string
	CancellationCutoff time.Duration
	SeatCacheTTL       time.Duration
}

type DBConfig struct {
	DSN          string
	MaxOpenConns int
	MaxIdleTime  time.Duration
}

type RedisConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  time.Duration
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Sender   string
}

func NewApp(
	cfg Config,
	logger *slog.Logger,
	db *pgxpool.Pool,
	redisClient redis.UniversalClient,
	validator *validator.Validate,
	mailer mailer.Mailer,
	userRepo domain.UserRepository,
	movieRepo domain.MovieRepository,
	hallRepo domain.HallRepository,
	showtimeRepo domain.ShowtimeRepository,
	bookingRepo domain.BookingRepository,
) *Application {
	if cfg.CancellationCutoff <= 0 {
		cfg.CancellationCutoff = booking.DefaultCancellationCutoff
	}
	if cfg.SeatCacheTTL <= 0 {
		cfg.SeatCacheTTL = 10 * time.Second
	}

	return &Application{
		config:       cfg,
		logger:       logger,
		db:           db,
		redis:        redisClient,
		validator:    validator,
		mailer:       mailer,
		userRepo:     userRepo,
		movieRepo:    movieRepo,
		hallRepo:     hallRepo,
		showtimeRepo: showtimeRepo,
		bookingRepo:  bookingRepo,
		coordinator: booking.NewCoordinator(
			showtimeRepo,
			hallRepo,
			bookingRepo,
			logger,
			booking.WithCancellationCutoff(cfg.CancellationCutoff),
		),
	}
}

func Run() error {
	var cfg Config

	flag.IntVar(&cfg.Port, "port", 3000, "server port")
	flag.StringVar(&cfg.Env, "env", "dev", "Environment (dev|staging|prod)")

	flag.StringVar(&cfg.DB.DSN, "db-dsn", "", "PostgreSQL DSN")
	flag.IntVar(&cfg.DB.MaxOpenConns, "db-max-open-conns", 25, "PostgreSQL max open connections")
	flag.DurationVar(&cfg.DB.MaxIdleTime, "db-max-idle-time", 15*time.Minute, "PostgreSQL max idle time for connections")

	flag.StringVar(&cfg.Redis.URL, "redis-url", "", "Redis URL")
	flag.IntVar(&cfg.Redis.MaxOpenConns, "redis-max-open-conns", 25, "Redis max open connections")
	flag.IntVar(&cfg.Redis.MaxIdleConns, "redis-max-idle-conns", 10, "Redis max idle connections")
	flag.DurationVar(&cfg.Redis.MaxIdleTime, "redis-max-idle-time", 2*time.Minute, "Redis max idle time for connections")

	flag.StringVar(&cfg.SMTP.Host, "smtp-host", "sandbox.smtp.mailtrap.io", "SMTP host")
	flag.IntVar(&cfg.SMTP.Port, "smtp-port", 2525, "SMTP port")
	flag.StringVar(&cfg.SMTP.Username, "smtp-username", "", "SMTP username")
	flag.StringVar(&cfg.SMTP.Password, "smtp-password", "", "SMTP password")
	flag.StringVar(&cfg.SMTP.Sender, "smtp-sender", "TicketX <no-reply@ticketx.example.net>", "SMTP sender")

	flag.StringVar(&cfg.OtelCollectorUrl, "otel-collector-url", "", "OpenTelemetry collector URL")
	flag.DurationVar(&cfg.CancellationCutoff, "cancellation-cutoff", booking.DefaultCancellationCutoff,
		"Minimum lead time before a showtime during which bookings can no longer be cancelled")
	flag.DurationVar(&cfg.SeatCacheTTL, "seat-cache-ttl", 10*time.Second, "TTL for cached seat availability")

	displayVersion := flag.Bool("version", false, "Display version and exit")

	flag.Parse()

	if *displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		os.Exit(0)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	db, err := NewDatabasePool(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	redisClient, err := NewRedisClient(cfg)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	app := NewApp(
		cfg,
		logger,
		db,
		redisClient,
		appvalidator.NewValidator(),
		mailer.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.Sender),
		repository.NewPostgresUserRepository(db),
		repository.NewPostgresMovieRepository(db),
		repository.NewPostgresHallRepository(db),
		repository.NewPostgresShowtimeRepository(db),
		repository.NewPostgresBookingRepository(db),
	)

	shutdownTelemetry, err := app.initTelemetry()
	if err != nil {
		return err
	}
	defer shutdownTelemetry(context.Background())

	if cfg.OtelCollectorUrl != "" {
		app.logger = slog.New(NewMultiHandler(logger.Handler(), otelslog.NewHandler(serviceName)))
	}

	return app.run()
}

func NewRedisClient(cfg Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:            cfg.Redis.URL,
		MaxIdleConns:    cfg.Redis.MaxIdleConns,
		MaxActiveConns:  cfg.Redis.MaxOpenConns,
		ConnMaxIdleTime: cfg.Redis.MaxIdleTime,
	})

	if err := redisotel.InstrumentTracing(rdb); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := rdb.Ping(ctx).Err()
	if err != nil {
		return nil, err
	}

	return rdb, nil
}

func NewDatabasePool(cfg Config) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(cfg.DB.DSN)
	if err != nil {
		return nil, err
	}

	config.MaxConnIdleTime = cfg.DB.MaxIdleTime
	config.MaxConns = int32(cfg.DB.MaxOpenConns)
	config.ConnConfig.Tracer = otelpgx.NewTracer()
	config.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = db.Ping(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func (app *Application) run() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", app.config.Port),
		Handler:      app.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelDebug),
	}

	shutdownError := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		err := srv.Shutdown(ctx)
		if err != nil {
			shutdownError <- err
		}

		shutdownError <- nil
	}()

	app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.Env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownError
	if err != nil {
		return err
	}

	app.logger.Info("stopped server", "addr", srv.Addr)

	return nil
}

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(otelchi.Middleware(serviceName, otelchi.WithChiRoutes(r)))
	r.Use(app.recoverPanic)
	r.Use(app.requestLogger)

	r.Get("/health", app.GetHealthHandler)

	r.Route("/movies", func(r chi.Router) {
		r.Get("/", app.GetMoviesHandler)
		r.Get("/{movieId}", app.GetMovieHandler)
		r.Get("/{movieId}/showtimes", app.GetShowtimesByMovieHandler)
	})

	r.Route("/showtimes/{showtimeId}", func(r chi.Router) {
		r.Get("/", app.GetShowtimeHandler)
		r.Get("/seats", app.GetAvailableSeatsHandler)
		r.With(app.requireUserContext).Post("/bookings", app.CreateBookingHandler)
	})

	r.With(app.requireUserContext).Route("/bookings/{bookingId}", func(r chi.Router) {
		r.Get("/", app.GetBookingHandler)
		r.Delete("/", app.CancelBookingHandler)
	})

	r.With(app.requireUserContext).Get("/users/me/bookings", app.GetUserBookingsHandler)

	return r
}
