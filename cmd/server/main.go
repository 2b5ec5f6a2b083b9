package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/logstream/auth-service/internal/auth"
	"github.com/logstream/auth-service/internal/config"
	"github.com/logstream/auth-service/internal/database"
	"github.com/logstream/auth-service/internal/handler"
	"github.com/logstream/auth-service/internal/middleware"
	"github.com/logstream/auth-service/internal/queue"
	"github.com/logstream/auth-service/internal/repository"
	"github.com/logstream/auth-service/internal/router"
	"github.com/logstream/auth-service/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win
	cfg := config.Load()

	// The user store is a collaborator, not a prerequisite: if MySQL is
	// down we boot anyway and only the fallback administrator can sign in.
	var store repository.UserStore
	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Printf("user store unavailable, fallback admin only: %v", err)
	} else {
		store = repository.NewUserRepo(db)
	}
	storeUp := func() bool { return store != nil }

	// Redis drives rate limiting on the credential endpoints; nil disables it.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable, rate limiting disabled")
	}

	authority := auth.New(cfg, store)
	h := handler.NewAuthHandler(cfg, authority, &service.AMQPPublisher{})

	// Audit events land in logs/auth.log via the broker; runs until exit.
	go func() {
		if err := queue.StartAuthEventConsumer(); err != nil {
			log.Printf("auth event consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	router.Register(e, cfg, authority, h, limiter, storeUp)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
