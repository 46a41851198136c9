package main

import (
	"flag"
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/hundreddays-io/hundreddays/internal/api"
	"github.com/hundreddays-io/hundreddays/internal/config"
	"github.com/hundreddays-io/hundreddays/internal/database"
)

const version = "0.1.0"

func initializeAPI(configPath string) (*api.Api, *zap.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return nil, nil, err
	}

	if err := database.Init(cfg); err != nil {
		return nil, nil, err
	}

	a, err := api.NewApi(*cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return a, logger, nil
}

func main() {
	configPath := flag.String("config", "app.yml", "Path to configuration file")
	flag.Parse()

	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	log.Printf("Starting 100 Days API v%s with config: %s", version, *configPath)

	a, logger, err := initializeAPI(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	if err := a.Serve(); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}
