package repository

import (
	"github.com/BloggingApp/comment-web/internal/repository/memory"
	"github.com/BloggingApp/comment-web/internal/repository/redisrepo"
	"github.com/BloggingApp/comment-web/internal/session"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Repository struct {
	WidgetSession session.Store
}

func New(rdb *redis.Client, logger *zap.Logger) *Repository {
	return &Repository{
		WidgetSession: redisrepo.New(rdb, logger).WidgetSession,
	}
}

func NewInMemory() *Repository {
	return &Repository{
		WidgetSession: memory.NewWidgetSessionRepo(),
	}
}
