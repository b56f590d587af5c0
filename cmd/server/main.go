package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/wrestling-roster/internal/config"
	"github.com/iliyamo/wrestling-roster/internal/database"
	"github.com/iliyamo/wrestling-roster/internal/handler"
	"github.com/iliyamo/wrestling-roster/internal/lifecycle"
	"github.com/iliyamo/wrestling-roster/internal/middleware"
	"github.com/iliyamo/wrestling-roster/internal/queue"
	"github.com/iliyamo/wrestling-roster/internal/repository"
	"github.com/iliyamo/wrestling-roster/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(database.Config{
		User:     cfg.DBUser,
		Password: cfg.DBPass,
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		Name:     cfg.DBName,
	})
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	// Repositories share the one pool.
	wrestlers := repository.NewWrestlerRepo(db)
	referees := repository.NewRefereeRepo(db)
	managers := repository.NewManagerRepo(db)
	tagTeams := repository.NewTagTeamRepo(db)
	stables := repository.NewStableRepo(db)
	titles := repository.NewTitleRepo(db)
	venues := repository.NewVenueRepo(db)
	events := repository.NewEventRepo(db)
	periods := repository.NewPeriodRepo(db)
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)

	clock := lifecycle.SystemClock{}
	svc := lifecycle.NewService(repository.NewUnitOfWork(db), clock)

	h := router.Handlers{
		Auth:        handler.NewAuthHandler(cfg, users, tokens),
		Wrestlers:   handler.NewWrestlerHandler(wrestlers, periods),
		Referees:    handler.NewRefereeHandler(referees, periods),
		Managers:    handler.NewManagerHandler(managers, periods),
		TagTeams:    handler.NewTagTeamHandler(tagTeams, periods, svc),
		Stables:     handler.NewStableHandler(stables, svc),
		Titles:      handler.NewTitleHandler(titles, periods, svc, clock),
		Venues:      handler.NewVenueHandler(venues),
		Events:      handler.NewEventHandler(events, venues),
		Transitions: handler.NewTransitionHandler(svc),
	}

	// Redis is optional.  Without it the public API still works, just
	// uncached and unthrottled.
	var public []echo.MiddlewareFunc
	if rdb := config.NewRedisClient(); rdb != nil {
		public = append(public,
			middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb),
			middleware.NewRedisCache(config.LoadCacheConfig(), rdb),
		)
	} else {
		log.Println("redis unavailable; response cache and rate limit disabled")
	}

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, h.Auth, cfg.JWTSecret)
	router.RegisterRoster(e, h, cfg.JWTSecret, public...)

	go func() {
		if err := queue.StartTransitionConsumer(); err != nil {
			log.Printf("transition consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
