package main

import (
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"business-directory-service/internal/config"
	"business-directory-service/internal/handler"
	"business-directory-service/internal/mongo"
	"business-directory-service/internal/repository"
	"business-directory-service/internal/router"
	"business-directory-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	if cfg.Environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	creatorRoles, err := cfg.CreatorRoles()
	if err != nil {
		log.Fatal().Err(err).Msg("review creator roles")
	}

	db, err := sqlx.Connect("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("db connect")
	}

	mongoClient, err := mongo.NewClient(cfg.MongoURI)
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connect")
	}

	listingRepo := repository.NewListingRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	imageRepo := repository.NewImageRepository(mongoClient, cfg.MongoDatabase)

	reviewSvc := service.NewReviewService(reviewRepo, listingRepo)

	h := router.Handlers{
		Listings: handler.NewListingHandler(listingRepo),
		Reviews:  handler.NewReviewHandler(reviewSvc),
		Images:   handler.NewImageHandler(imageRepo, listingRepo),
	}

	r := router.New([]byte(cfg.JWTSecret), h, creatorRoles)

	log.Info().Str("port", cfg.Port).Msg("business directory service running")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
