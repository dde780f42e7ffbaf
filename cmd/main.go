package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yosilia/dm-touch-backend/cmd/server"
	"github.com/yosilia/dm-touch-backend/internal/auth"
	"github.com/yosilia/dm-touch-backend/internal/config"
	"github.com/yosilia/dm-touch-backend/internal/storage"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	cfg := config.Load()

	db, disconnect, err := storage.NewMongoDB(cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to mongodb")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := disconnect(ctx); err != nil {
			logrus.WithError(err).Error("failed to disconnect from mongodb")
		}
	}()

	srv := server.NewServer(&server.ServerConfig{
		Cfg: cfg,
		DB:  db,
		TokenManager: auth.NewTokenService(
			cfg.AccessTokenSecret,
			cfg.AccessTokenExpiryInSecs,
		),
	})
	srv.Run()
}
