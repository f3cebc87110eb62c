package bootstrap

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/Junyu06/DynamicDo-Backend/internal/auth"
	"github.com/Junyu06/DynamicDo-Backend/internal/models"
	"github.com/Junyu06/DynamicDo-Backend/internal/ranker"
	"github.com/Junyu06/DynamicDo-Backend/internal/ranking"
	"github.com/Junyu06/DynamicDo-Backend/internal/state"
)

func NewStoreFromEnv(ctx context.Context) (state.Store, error) {
	switch kind := getenv("DYNAMICDO_STORE", "memory"); kind {
	case "memory":
		return state.NewMemoryStore(), nil
	case "mongo":
		uri := getenv("MONGODB_URI", "mongodb://localhost:27017")
		db := getenv("MONGODB_DB", "dynamicdo")
		return state.NewMongoStore(ctx, uri, db)
	default:
		return nil, fmt.Errorf("unsupported DYNAMICDO_STORE value %q", kind)
	}
}

func NewTokenServiceFromEnv() (*auth.TokenService, error) {
	secret := os.Getenv("JWT_SECRET")
	ttl := time.Duration(getenvInt("DYNAMICDO_TOKEN_TTL_MINUTES", 60)) * time.Minute
	return auth.NewTokenService(secret, ttl)
}

// NewRankerFromEnv wires the provider router and every adapter that has
// credentials available. The local adapter is always present so routing to
// it can never fail.
func NewRankerFromEnv(ctx context.Context, logger *zap.Logger) (ranking.Ranker, error) {
	router, err := models.LoadFromEnv()
	if err != nil {
		return nil, err
	}
	adapters := map[string]ranking.Ranker{
		"local": ranker.NewLocalRanker(),
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		adapters["openai"] = ranker.NewOpenAIRanker(
			os.Getenv("OPENAI_ENDPOINT"),
			key,
			os.Getenv("OPENAI_MODEL"),
		)
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		gemini, err := ranker.NewGeminiRanker(ctx, key, os.Getenv("GEMINI_MODEL"))
		if err != nil {
			return nil, err
		}
		adapters["gemini"] = gemini
	}
	logger.Info("ranker adapters configured", zap.Int("adapters", len(adapters)))
	return ranker.NewRouting(router, adapters), nil
}

func NewRankServiceFromEnv(store state.ReminderStore, rk ranking.Ranker, logger *zap.Logger) *ranking.Service {
	timeout := time.Duration(getenvInt("DYNAMICDO_RANK_TIMEOUT_SECONDS", 30)) * time.Second
	return ranking.NewService(store, rk, timeout, logger)
}

func getenv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
