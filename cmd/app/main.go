package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BloggingApp/comment-web/internal/config"
	"github.com/BloggingApp/comment-web/internal/handler"
	"github.com/BloggingApp/comment-web/internal/repository"
	"github.com/BloggingApp/comment-web/internal/server"
	"github.com/BloggingApp/comment-web/internal/service"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	if err := loadEnv(); err != nil {
		logger.Sugar().Infof("no .env file loaded: %s", err.Error())
	}

	if err := initConfig(); err != nil {
		logger.Sugar().Panicf("failed to initialize yaml config: %s", err.Error())
	}

	sessionConfig := config.Session()
	if err := sessionConfig.Validate(); err != nil {
		logger.Sugar().Panicf("invalid session config: %s", err.Error())
	}

	var repos *repository.Repository
	switch sessionConfig.Store {
	case config.SessionStoreMemory:
		repos = repository.NewInMemory()
		logger.Info("Widget sessions are kept in memory")
	case config.SessionStoreRedis:
		redisConfig := config.Redis()
		rdb := redis.NewClient(&redis.Options{
			Addr:     redisConfig.Addr,
			Password: redisConfig.Password,
		})
		pong, err := rdb.Ping(ctx).Result()
		if err != nil {
			logger.Sugar().Panicf("failed to ping redis: %s", err.Error())
		}
		logger.Sugar().Infof("Successfully connected to Redis: %s", pong)
		repos = repository.New(rdb, logger)
	default:
		logger.Sugar().Panicf("unknown session.store %q: want %q or %q", sessionConfig.Store, config.SessionStoreRedis, config.SessionStoreMemory)
	}

	backendConfig := config.Backend()
	services, err := service.New(logger, repos, service.Config{
		BackendURL:    backendConfig.URL,
		HTTPClient:    &http.Client{Timeout: backendConfig.Timeout},
		SessionSecret: sessionConfig.Secret,
		SessionTTL:    sessionConfig.TTL,
		Location:      config.Location(),
	})
	if err != nil {
		logger.Sugar().Panicf("failed to initialize services: %s", err.Error())
	}
	handlers := handler.New(logger, services)

	srv := server.New()
	serverConfig := config.ServerConfig{
		Port:           viper.GetString("app.port"),
		Handler:        handlers.InitRoutes(),
		MaxHeaderBytes: 1 << 20,
		ReadTimeout:    time.Second * 10,
		WriteTimeout:   time.Second * 10,
	}
	go func(srv *server.Server, cfg config.ServerConfig) {
		if err := srv.Run(cfg); err != nil {
			logger.Sugar().Panicf("failed to run http server: %s", err.Error())
		}
	}(srv, serverConfig)

	logger.Sugar().Infof("Server started on port %s", serverConfig.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logger.Info("Server shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("failed to shut down http server: %s", err.Error())
	}
}

func loadEnv() error {
	return godotenv.Load()
}

func initConfig() error {
	config.SetDefaults()
	viper.AddConfigPath(".")
	viper.SetConfigType("yaml")
	viper.SetConfigName("app")
	return viper.ReadInConfig()
}
