package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

type Options struct {
	Address  string
	Password string
	DB       int
}

// New connects to Redis and pings it once. A failed ping is logged, not
// returned, so the gateway can still start and report storage errors per
// request.
func New(log *logrus.Logger, opts Options) *redis.Client {
	log.Info(fmt.Sprintf("Connecting to Redis at %s...", opts.Address))

	client := redis.NewClient(&redis.Options{
		Addr:     opts.Address,
		Password: opts.Password,
		DB:       opts.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Error(fmt.Sprintf("Failed to connect to Redis: %v", err))
	} else {
		log.Info("Successfully connected to Redis")
	}

	return client
}
