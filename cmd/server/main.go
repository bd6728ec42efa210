package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/prestigemotors/rental-api/internal/config"
	"github.com/prestigemotors/rental-api/internal/database"
	"github.com/prestigemotors/rental-api/internal/handler"
	"github.com/prestigemotors/rental-api/internal/middleware"
	"github.com/prestigemotors/rental-api/internal/payment"
	"github.com/prestigemotors/rental-api/internal/queue"
	"github.com/prestigemotors/rental-api/internal/repository"
	"github.com/prestigemotors/rental-api/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; cache and rate limiting disabled")
	}

	reservations := repository.NewReservationRepo(db)
	cars := repository.NewCarRepo(db)
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	jobs := repository.NewDriverJobRepo(db)
	reviews := repository.NewReviewRepo(db)

	intents := payment.NewStripeClient(cfg.StripeSecretKey)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, tokens), cfg.JWTSecret)
	router.RegisterCars(e, handler.NewCarHandler(cars), cfg.JWTSecret, cache)
	router.RegisterReservations(e, handler.NewReservationHandler(reservations, cars, intents, cfg.Currency), cfg.JWTSecret)
	router.RegisterDriverJobs(e, handler.NewDriverJobHandler(jobs, users), cfg.JWTSecret)
	router.RegisterReviews(e, handler.NewReviewHandler(reviews), cfg.JWTSecret, cache)
	router.RegisterUsers(e, handler.NewUserHandler(users), cfg.JWTSecret)

	// Event consumer keeps its own connection and reconnect loop.
	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("reservation consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
