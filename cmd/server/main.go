package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // .env loader for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/movie-catalog/internal/config"
	"github.com/iliyamo/movie-catalog/internal/database"
	"github.com/iliyamo/movie-catalog/internal/handler"
	"github.com/iliyamo/movie-catalog/internal/middleware"
	"github.com/iliyamo/movie-catalog/internal/queue"
	"github.com/iliyamo/movie-catalog/internal/repository"
	"github.com/iliyamo/movie-catalog/internal/router"
	"github.com/iliyamo/movie-catalog/internal/service"
	"github.com/iliyamo/movie-catalog/internal/storage"
)

func main() {
	_ = godotenv.Load() // optional .env; real deployments set env vars directly

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient()
	rlCfg := config.LoadRateLimitConfig()
	files := storage.NewFileStore(cfg.UploadDir)

	// Repositories.
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	movies := repository.NewMovieRepo(db)
	reviews := repository.NewReviewRepo(db)
	catalog := repository.NewCatalogRepo(db)
	people := repository.NewPersonRepo(db)
	collections := repository.NewCollectionRepo(db)
	movieLists := repository.NewMovieListRepo(db)
	reports := repository.NewReportRepo(db)
	activities := repository.NewActivityRepo(db)
	notifications := repository.NewNotificationRepo(db)
	series := repository.NewSeriesRepo(db)

	recorder := service.NewActivityRecorder(activities)

	// Handlers.
	authH := handler.NewAuthHandler(cfg, users, tokens)
	movieH := handler.NewMovieHandler(movies, catalog, files)
	reviewH := handler.NewReviewHandler(db, reviews, movies, recorder)
	collectionH := handler.NewCollectionHandler(collections, movies)
	listH := handler.NewMovieListHandler(movieLists, movies, recorder)
	reportH := handler.NewReportHandler(reports, movies)
	notificationH := handler.NewNotificationHandler(notifications)
	catalogH := handler.NewCatalogHandler(catalog, movies)
	personH := handler.NewPersonHandler(people, files)
	seriesH := handler.NewSeriesHandler(series, movies, files)
	activityH := handler.NewActivityHandler(activities)

	e := echo.New()
	limiter := middleware.NewTokenBucket(rlCfg, rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterPublic(e, movieH, reviewH, catalogH, personH, seriesH, limiter)
	router.RegisterUser(e, cfg.JWTSecret, reviewH, collectionH, listH, reportH, notificationH, activityH)
	router.RegisterStaff(e, cfg.JWTSecret, movieH, catalogH, personH, seriesH, reportH)

	// Fan-out of publish events into user notifications runs beside
	// the HTTP server and reconnects on broker failures.
	go func() {
		if err := queue.StartMoviePublishedConsumer(users, notifications); err != nil {
			log.Printf("queue consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
