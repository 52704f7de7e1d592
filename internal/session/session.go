package session

import (
	"context"
	"errors"
	"time"

	"github.com/BloggingApp/comment-web/internal/controller"
	"github.com/BloggingApp/comment-web/internal/model"
)

var ErrNotFound = errors.New("widget session not found")

// Record is what a widget session keeps between requests: the page context
// read once at load and the controller state.
type Record struct {
	Page      model.PageContext `json:"page"`
	State     controller.State  `json:"state"`
	CreatedAt time.Time         `json:"createdAt"`
}

type Store interface {
	Find(ctx context.Context, sid string) (*Record, error)
	Save(ctx context.Context, sid string, rec Record, ttl time.Duration) error
	Delete(ctx context.Context, sid string) error
}
