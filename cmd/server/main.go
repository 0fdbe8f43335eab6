package main

import (
	"database/sql"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"

	"hotelbooking/internal/config"
	"hotelbooking/internal/database"
	"hotelbooking/internal/handler"
	"hotelbooking/internal/observability"
	"hotelbooking/internal/queue"
	"hotelbooking/internal/repository"
	"hotelbooking/internal/router"
	"hotelbooking/internal/validate"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	logger := observability.NewLogger(cfg.Env)
	log.Logger = logger

	db, err := database.Open(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("database connect failed")
	}
	defer func(db *sql.DB) { _ = db.Close() }(db)

	rdb := config.NewRedisClient()
	if rdb == nil {
		logger.Warn().Msg("redis unavailable, response cache and rate limiting disabled")
	}

	users := repository.NewUserRepo(db)
	cities := repository.NewCityRepo(db)
	hotels := repository.NewHotelRepo(db)
	rooms := repository.NewRoomRepo(db)
	bookings := repository.NewBookingRepo(db)
	payments := repository.NewPaymentRepo(db)
	reviews := repository.NewReviewRepo(db)

	v := validate.New()

	h := router.Handlers{
		Auth:     handler.NewAuthHandler(users, v, cfg.JWTSecret, cfg.AccessTTLMin),
		Cities:   handler.NewCityHandler(cities, v),
		Hotels:   handler.NewHotelHandler(hotels, cities, v),
		Rooms:    handler.NewRoomHandler(rooms, hotels, v),
		Reviews:  handler.NewReviewHandler(db, reviews, hotels, v),
		Bookings: handler.NewBookingHandler(db, bookings, rooms, hotels, cities, payments, users, v),
		Payments: handler.NewPaymentHandler(payments, bookings, v),
	}

	observability.MustRegister()
	observability.Serve()

	go queue.StartBookingConsumer("", queue.Mailer{
		Host: cfg.SMTPHost,
		Port: cfg.SMTPPort,
		User: cfg.SMTPUser,
		Pass: cfg.SMTPPass,
		From: cfg.SMTPFrom,
	})

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(observability.HTTPMetrics())
	router.Register(e, h, db, rdb, cfg.JWTSecret)

	addr := ":" + cfg.Port
	logger.Info().Str("addr", addr).Str("env", cfg.Env).Msg("server starting")
	if err := e.Start(addr); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
