package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/BloggingApp/comment-web/pkg/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const CookieName = "comment_widget"

var ErrInvalidSession = errors.New("invalid widget session")

// Manager hands out widget sessions. The cookie only carries a signed
// reference; the record itself lives in the Store.
type Manager struct {
	store  Store
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewManager(store Store, secret []byte, ttl time.Duration) *Manager {
	return &Manager{
		store:  store,
		secret: secret,
		ttl:    ttl,
		now:    time.Now,
	}
}

func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Start stores rec under a new session id and returns the cookie token.
func (m *Manager) Start(ctx context.Context, rec Record) (string, error) {
	return m.Save(ctx, uuid.New().String(), rec)
}

// Resolve verifies token, checks it belongs to postID and loads its record.
func (m *Manager) Resolve(ctx context.Context, token string, postID int64) (string, *Record, error) {
	claims, err := utils.DecodeJWT(token, m.secret, jwt.WithTimeFunc(m.now))
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrInvalidSession, err)
	}

	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", nil, ErrInvalidSession
	}
	pid, ok := claims["pid"].(float64)
	if !ok || int64(pid) != postID {
		return "", nil, ErrInvalidSession
	}

	rec, err := m.store.Find(ctx, sid)
	if err != nil {
		return "", nil, err
	}

	return sid, rec, nil
}

// Save writes rec back and returns a token valid for a full TTL from now.
// The previous token stays valid until its own expiry.
func (m *Manager) Save(ctx context.Context, sid string, rec Record) (string, error) {
	now := m.now()
	if err := m.store.Save(ctx, sid, rec, m.ttl); err != nil {
		return "", err
	}

	return utils.EncodeJWT(jwt.MapClaims{
		"sid": sid,
		"pid": rec.Page.PostID,
		"exp": expiresAt(now, m.ttl),
	}, m.secret)
}

// Discard deletes the session token refers to. Tokens that fail
// verification are ignored.
func (m *Manager) Discard(ctx context.Context, token string) error {
	claims, err := utils.DecodeJWT(token, m.secret, jwt.WithTimeFunc(m.now))
	if err != nil {
		return nil
	}

	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return nil
	}
	return m.store.Delete(ctx, sid)
}

// expiresAt is the "exp" claim for a token issued at now. It rounds up to
// the next whole second so the token never expires before its record.
func expiresAt(now time.Time, ttl time.Duration) int64 {
	return now.Add(ttl + time.Second - time.Nanosecond).Unix()
}
