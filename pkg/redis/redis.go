package redis

import (
	"context"
	"errors"
	"os"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

var ErrCacheMiss = errors.New("cache miss")

type IRedis interface {
	GetJSON(ctx context.Context, key string, dest interface{}) error
	SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

type redisClient struct {
	client *redis.Client
	log    *logrus.Logger
}

func New(log *logrus.Logger) IRedis {
	db, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	redisAddr := os.Getenv("REDIS_ADDRESS")

	log.Infof("Connecting to Redis at %s...", redisAddr)

	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Errorf("Failed to connect to Redis: %v", err)
	} else {
		log.Info("Successfully connected to Redis")
	}

	return &redisClient{client: client, log: log}
}

func (r *redisClient) GetJSON(ctx context.Context, key string, dest interface{}) error {
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrCacheMiss
	} else if err != nil {
		r.log.Errorf("Error getting cache key %s: %v", key, err)
		return err
	}

	return jsoniter.Unmarshal(val, dest)
}

func (r *redisClient) SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	payload, err := jsoniter.Marshal(value)
	if err != nil {
		return err
	}

	if err := r.client.Set(ctx, key, payload, expiration).Err(); err != nil {
		r.log.Errorf("Error setting cache key %s: %v", key, err)
		return err
	}
	return nil
}

func (r *redisClient) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		r.log.Errorf("Error deleting cache keys %v: %v", keys, err)
		return err
	}
	return nil
}

func (r *redisClient) Close() error {
	return r.client.Close()
}
