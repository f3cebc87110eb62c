package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Junyu06/DynamicDo-Backend/internal/api"
	"github.com/Junyu06/DynamicDo-Backend/internal/bootstrap"
	"github.com/Junyu06/DynamicDo-Backend/internal/observability"
)

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	shutdownTracing, err := observability.InitTracingFromEnv("dynamicdo-api")
	if err != nil {
		logger.Fatal("init tracing", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(ctx)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	store, err := bootstrap.NewStoreFromEnv(ctx)
	if err != nil {
		logger.Fatal("bootstrap store", zap.Error(err))
	}
	tokens, err := bootstrap.NewTokenServiceFromEnv()
	if err != nil {
		logger.Fatal("bootstrap token service", zap.Error(err))
	}
	ranker, err := bootstrap.NewRankerFromEnv(ctx, logger)
	if err != nil {
		logger.Fatal("bootstrap ranker", zap.Error(err))
	}
	rank := bootstrap.NewRankServiceFromEnv(store, ranker, logger)

	server := api.NewServer(store, tokens, rank, logger)

	port := os.Getenv("DYNAMICDO_PORT")
	if port == "" {
		port = "8080"
	}
	logger.Info("dynamicdo api listening", zap.String("port", port))
	if err := http.ListenAndServe(":"+port, server.Handler()); err != nil {
		logger.Fatal("api server failed", zap.Error(err))
	}
}
