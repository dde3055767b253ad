package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"aes-tool/configs"
	"aes-tool/server"
	"aes-tool/session"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

var (
	logger = logrus.New()
)

// Main function to start the server
func main() {
	configs.Load(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	defaults, err := session.DefaultsFromConfig()
	if err != nil {
		logger.Fatalf("Invalid form defaults: %v", err)
	}

	var store session.Store
	switch configs.SessionBackend {
	case "redis":
		redisClient := redis.NewClient(&redis.Options{Addr: configs.RedisAddress})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Fatalf("Error connecting to Redis at %s: %v", configs.RedisAddress, err)
		}
		redisStore := session.NewRedisStore(redisClient, configs.SessionTTL)
		defer redisStore.Close()
		store = redisStore
		logger.Infof("Sessions stored in Redis at %s", configs.RedisAddress)
	case "memory":
		store = session.NewMemoryStore(configs.SessionTTL)
		logger.Info("Sessions stored in memory")
	default:
		logger.Fatalf("Unknown SESSION_BACKEND %q, want memory or redis", configs.SessionBackend)
	}

	s := server.NewServer(ctx, store, defaults, logger)
	defer s.Close()

	httpServer := &http.Server{
		Addr:              configs.ServerAddress,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Errorf("Error shutting down: %v", err)
		}
	}()

	logger.Infof("AES form running on http://%s (websocket at %s)", configs.ServerAddress, configs.WebSocketPath)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatalf("Error starting server: %v", err)
	}

	logger.Info("Closing server...")
}
