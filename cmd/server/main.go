package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/courtside/facility-reservation/internal/auth"
	"github.com/courtside/facility-reservation/internal/config"
	"github.com/courtside/facility-reservation/internal/database"
	"github.com/courtside/facility-reservation/internal/handler"
	"github.com/courtside/facility-reservation/internal/queue"
	"github.com/courtside/facility-reservation/internal/repository"
	"github.com/courtside/facility-reservation/internal/router"
	"github.com/courtside/facility-reservation/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments use the environment
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBMaxConns)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	seedCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := database.Seed(seedCtx, db, cfg.BcryptCost, cfg.SeedAdminPass); err != nil {
		log.Fatalf("seed: %v", err)
	}
	cancel()

	issuer := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience,
		time.Duration(cfg.AccessTTLMin)*time.Minute)

	users := repository.NewUserRepo(db)
	sessions := service.NewSessionService(repository.NewSessionRepo(db))
	facilities := repository.NewFacilityRepo(db)
	timeSlots := repository.NewTimeSlotRepo(db)
	reservations := repository.NewReservationRepo(db)

	authHandler := handler.NewAuthHandler(users, sessions, issuer, cfg.BcryptCost,
		time.Duration(cfg.RefreshTTLDays)*24*time.Hour)
	facilityHandler := handler.NewFacilityHandler(facilities, timeSlots)
	timeSlotHandler := handler.NewTimeSlotHandler(facilities, timeSlots, reservations)
	reservationHandler := handler.NewReservationHandler(facilities, timeSlots, reservations)

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; auth rate limiting disabled")
	}

	// Background consumer for reservation.confirmed events.
	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("reservation consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, config.LoadRateLimitConfig(), rdb)
	router.RegisterResources(e, facilityHandler, timeSlotHandler, reservationHandler, issuer)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
