package redisrepo

import (
	"context"
	"time"

	"github.com/BloggingApp/comment-web/internal/session"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Default interface {
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type RedisRepository struct {
	Default
	WidgetSession session.Store
}

func New(rdb *redis.Client, logger *zap.Logger) *RedisRepository {
	def := newDefaultRepo(rdb)
	return &RedisRepository{
		Default:       def,
		WidgetSession: newWidgetSessionRepo(def, logger),
	}
}
