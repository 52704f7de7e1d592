// Package memory keeps widget sessions in process memory. It serves
// single-instance deployments and tests where no redis is available.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/BloggingApp/comment-web/internal/session"
)

type entry struct {
	rec       session.Record
	expiresAt time.Time
}

type WidgetSessionRepo struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

func NewWidgetSessionRepo() *WidgetSessionRepo {
	return &WidgetSessionRepo{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

func (r *WidgetSessionRepo) Find(_ context.Context, sid string) (*session.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[sid]
	if !ok {
		return nil, session.ErrNotFound
	}
	if !e.expiresAt.IsZero() && !r.now().Before(e.expiresAt) {
		delete(r.entries, sid)
		return nil, session.ErrNotFound
	}

	rec := e.rec
	return &rec, nil
}

func (r *WidgetSessionRepo) Save(_ context.Context, sid string, rec session.Record, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e := entry{rec: rec}
	if ttl > 0 {
		e.expiresAt = r.now().Add(ttl)
	}
	r.entries[sid] = e
	return nil
}

func (r *WidgetSessionRepo) Delete(_ context.Context, sid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, sid)
	return nil
}
