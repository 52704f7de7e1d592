package handler

import (
	"net/http"

	"github.com/BloggingApp/comment-web/internal/service"
	"github.com/BloggingApp/comment-web/internal/session"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type Handler struct {
	logger   *zap.Logger
	services *service.Service
}

func New(logger *zap.Logger, services *service.Service) *Handler {
	return &Handler{
		logger:   logger,
		services: services,
	}
}

func (h *Handler) InitRoutes() *gin.Engine {
	r := gin.New()

	r.Use(h.accessLogMiddleware, gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{viper.GetString("client.origin")},
		AllowMethods:     []string{"GET", "POST"},
		AllowCredentials: true,
	}))

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	boards := r.Group("/boards/:boardID/posts/:postID")
	{
		comments := boards.Group("/comments")
		{
			comments.GET("", h.widgetOpen)
			comments.POST("/actions", h.widgetSessionMiddleware, h.widgetAct)
		}
	}

	return r
}

// forwardedCookies are the browser cookies meant for the board backend.
func forwardedCookies(r *http.Request) []*http.Cookie {
	var cookies []*http.Cookie
	for _, cookie := range r.Cookies() {
		if cookie.Name == session.CookieName {
			continue
		}
		cookies = append(cookies, cookie)
	}
	return cookies
}
