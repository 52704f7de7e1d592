package redisrepo

import (
	"context"
	"errors"
	"time"

	"github.com/BloggingApp/comment-web/internal/session"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type widgetSessionRepo struct {
	def    Default
	logger *zap.Logger
}

func newWidgetSessionRepo(def Default, logger *zap.Logger) session.Store {
	return &widgetSessionRepo{
		def:    def,
		logger: logger,
	}
}

func (r *widgetSessionRepo) Find(ctx context.Context, sid string) (*session.Record, error) {
	rec, err := Get[session.Record](r.def, ctx, WidgetSessionKey(sid))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, session.ErrNotFound
		}
		r.logger.Sugar().Errorf("failed to get widget session(%s) from redis: %s", sid, err.Error())
		return nil, err
	}
	if rec == nil {
		return nil, session.ErrNotFound
	}

	return rec, nil
}

func (r *widgetSessionRepo) Save(ctx context.Context, sid string, rec session.Record, ttl time.Duration) error {
	if err := r.def.SetJSON(ctx, WidgetSessionKey(sid), rec, ttl); err != nil {
		r.logger.Sugar().Errorf("failed to set widget session(%s) in redis: %s", sid, err.Error())
		return err
	}

	return nil
}

func (r *widgetSessionRepo) Delete(ctx context.Context, sid string) error {
	return r.def.Del(ctx, WidgetSessionKey(sid)).Err()
}
