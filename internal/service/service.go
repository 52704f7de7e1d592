package service

import (
	"context"
	"net/http"
	"time"

	"github.com/BloggingApp/comment-web/internal/dto"
	"github.com/BloggingApp/comment-web/internal/repository"
	"go.uber.org/zap"
)

// WidgetView is one rendered widget plus the session token it belongs to.
// Token is valid for TTL and replaces any token the caller held before.
type WidgetView struct {
	Token string
	TTL   time.Duration
	HTML  []byte
}

type Widget interface {
	// Open starts a fresh widget session. prevToken, when set, is the
	// session it replaces.
	Open(ctx context.Context, boardID int64, postID int64, prevToken string, cookies []*http.Cookie) (*WidgetView, error)
	Act(ctx context.Context, token string, boardID int64, postID int64, form dto.ActionForm, cookies []*http.Cookie) (*WidgetView, error)
}

type Config struct {
	BackendURL    string
	HTTPClient    *http.Client
	SessionSecret []byte
	SessionTTL    time.Duration
	Location      *time.Location
}

type Service struct {
	Widget
}

func New(logger *zap.Logger, repo *repository.Repository, cfg Config) (*Service, error) {
	widget, err := newWidgetService(logger, repo, cfg)
	if err != nil {
		return nil, err
	}

	return &Service{
		Widget: widget,
	}, nil
}
