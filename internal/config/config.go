package config

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/viper"
)

const (
	SessionStoreRedis  = "redis"
	SessionStoreMemory = "memory"
)

type ServerConfig struct {
	Port           string
	Handler        http.Handler
	MaxHeaderBytes int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
}

type BackendConfig struct {
	URL     string
	Timeout time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
}

type SessionConfig struct {
	Store  string
	Secret []byte
	TTL    time.Duration
}

var (
	ErrUnknownSessionStore = errors.New("unknown session store")
	ErrNoSessionSecret     = errors.New("SESSION_SECRET is not set")
)

func (c SessionConfig) Validate() error {
	switch c.Store {
	case SessionStoreRedis, SessionStoreMemory:
	default:
		return fmt.Errorf("%w %q: want %q or %q", ErrUnknownSessionStore, c.Store, SessionStoreRedis, SessionStoreMemory)
	}
	if len(c.Secret) == 0 {
		return ErrNoSessionSecret
	}
	return nil
}

func SetDefaults() {
	viper.SetDefault("app.port", "8080")
	viper.SetDefault("app.timezone", "Asia/Seoul")
	viper.SetDefault("client.origin", "http://localhost:8080")
	viper.SetDefault("backend.timeout", 10*time.Second)
	viper.SetDefault("session.store", SessionStoreRedis)
	viper.SetDefault("session.ttl", 30*time.Minute)
}

func Backend() BackendConfig {
	return BackendConfig{
		URL:     viper.GetString("backend.url"),
		Timeout: viper.GetDuration("backend.timeout"),
	}
}

func Redis() RedisConfig {
	return RedisConfig{
		Addr:     os.Getenv("REDIS_ADDR"),
		Password: os.Getenv("REDIS_PASSWORD"),
	}
}

func Session() SessionConfig {
	return SessionConfig{
		Store:  viper.GetString("session.store"),
		Secret: []byte(os.Getenv("SESSION_SECRET")),
		TTL:    viper.GetDuration("session.ttl"),
	}
}

// Location loads app.timezone, falling back to UTC when the zone database
// does not know it.
func Location() *time.Location {
	loc, err := time.LoadLocation(viper.GetString("app.timezone"))
	if err != nil {
		return time.UTC
	}
	return loc
}
