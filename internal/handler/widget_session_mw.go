package handler

import (
	"net/http"

	"github.com/BloggingApp/comment-web/internal/dto"
	"github.com/BloggingApp/comment-web/internal/session"
	"github.com/gin-gonic/gin"
)

const widgetTokenKey = "widget-token"

func (h *Handler) widgetSessionMiddleware(c *gin.Context) {
	token, err := c.Cookie(session.CookieName)
	if err != nil || token == "" {
		c.JSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errWidgetSessionMissing.Error()))
		c.Abort()
		return
	}

	c.Set(widgetTokenKey, token)

	c.Next()
}
