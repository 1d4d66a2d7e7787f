package main

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"nbadb/ingestion/internal/cache"
	"nbadb/ingestion/internal/client"
	"nbadb/ingestion/internal/config"
	"nbadb/ingestion/internal/pipeline"
	"nbadb/ingestion/internal/repository"
)

func main() {
	mode := pflag.StringP("pipeline", "p", "", "pipeline to run: build or update")
	season := pflag.StringP("season", "s", "", "season to ingest, e.g. 2024-25 (defaults to NBA_SEASON)")
	league := pflag.StringP("league", "l", "", "league id, e.g. 00 (defaults to NBA_LEAGUE_ID)")
	tables := pflag.StringSliceP("tables", "t", []string{"games", "game_logs"}, "tables to update: games, game_logs")
	pflag.Parse()

	setupLogger()

	if *mode != "build" && *mode != "update" {
		log.Error().Str("pipeline", *mode).Msg("--pipeline must be build or update")
		pflag.Usage()
		os.Exit(2)
	}

	cfg := config.MustLoad()
	if *season != "" {
		cfg.Season = *season
	}
	if *league != "" {
		cfg.LeagueID = *league
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	statsClient := client.NewClient(
		cfg.StatsBaseURL,
		cfg.DataBaseURL,
		time.Duration(cfg.RequestTimeout)*time.Second,
	)

	db, err := repository.NewDatabase(ctx, repository.Config{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		Database: cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	redisCache, err := cache.NewRedisCache(ctx, cache.Config{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		log.Warn().Err(err).Msg("Failed to connect to Redis - continuing without cache")
		redisCache = nil
	} else {
		defer redisCache.Close()
	}

	p := pipeline.New(statsClient, db, redisCache, pipeline.Options{
		LeagueID:      cfg.LeagueID,
		Season:        cfg.Season,
		FanDuel:       config.DefaultFanDuelWeights(),
		DraftKings:    config.DefaultDraftKingsWeights(),
		PlayerCardTTL: time.Duration(cfg.CacheTTLPlayerCards) * time.Second,
	})

	switch *mode {
	case "build":
		if err := p.Build(ctx); err != nil {
			log.Fatal().Err(err).Msg("Build pipeline failed")
		}
	case "update":
		if err := p.Update(ctx, *tables); err != nil {
			log.Fatal().Err(err).Msg("Update pipeline failed")
		}
	}

	log.Info().Str("pipeline", *mode).Msg("Pipeline complete")
}

func setupLogger() {
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	})

	level := zerolog.InfoLevel
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		parsedLevel, err := zerolog.ParseLevel(lvl)
		if err == nil {
			level = parsedLevel
		}
	}
	zerolog.SetGlobalLevel(level)
}
