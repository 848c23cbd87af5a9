package main

import (
	"os"
	"os/signal"
	"syscall"

	"DevBlogFrontend/internal/client"
	"DevBlogFrontend/internal/config"
	"DevBlogFrontend/pkg/events"
	"DevBlogFrontend/pkg/log"
	"DevBlogFrontend/pkg/metrics"
	"DevBlogFrontend/pkg/redis"
	"DevBlogFrontend/pkg/storage"
)

func main() {
	logger := log.NewLogger()

	env, err := config.LoadEnv()
	if err != nil {
		logger.Fatalf("Error loading environment: %v", err)
	}

	var provider storage.Provider = storage.NewMemoryProvider()
	if env.RedisAddress != "" {
		redisClient := redis.New(logger, redis.Options{
			Address:  env.RedisAddress,
			Password: env.RedisPassword,
			DB:       env.RedisDB,
		})
		defer redisClient.Close()
		provider = storage.NewRedisProvider(redisClient, env.SessionTTL)
	} else {
		logger.Warn("REDIS_ADDRESS not set, browser sessions are kept in memory")
	}

	broker := events.NewBroker[events.AuthEvent]()
	authEvents, unsubscribe := broker.Subscribe(16)
	defer unsubscribe()
	go func() {
		for ev := range authEvents {
			log.Info(log.Fields{
				"event":   ev.Kind.String(),
				"scope":   ev.Scope,
				"user_id": ev.UserID,
			}, "Auth state changed")
		}
	}()

	m := metrics.New()
	api := client.New(logger, client.Config{
		BaseURL: env.APIBaseURL,
		Timeout: env.HTTPTimeout,
	}, client.WithMetrics(m))

	server, err := config.NewServer(
		config.WithFiber(config.NewFiber(logger)),
		config.WithLogger(logger),
		config.WithValidator(config.NewValidator()),
		config.WithEnv(env),
		config.WithStorage(provider),
		config.WithEvents(broker),
		config.WithMetrics(m),
		config.WithAPIClient(api),
		config.WithMiddleware(),
	)
	if err != nil {
		logger.Fatal(err)
	}

	server.RegisterHandler()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.Run(); err != nil {
			logger.Fatalf("Error starting server: %v", err)
		}
	}()

	logger.Info("Server started successfully")

	<-sigChan
	logger.Info("Shutting down server...")
	if err := server.Shutdown(); err != nil {
		log.ErrorWithTraceID(log.Fields{"error": err.Error()}, "Error during shutdown")
	}
}
