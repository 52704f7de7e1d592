package handler

import (
	"errors"
	"net/http"

	"github.com/BloggingApp/comment-web/internal/dto"
	"github.com/BloggingApp/comment-web/internal/service"
	"github.com/BloggingApp/comment-web/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const htmlContentType = "text/html; charset=utf-8"

func (h *Handler) widgetOpen(c *gin.Context) {
	var uri dto.WidgetURI
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidID.Error()))
		return
	}

	prevToken, _ := c.Cookie(session.CookieName)
	view, err := h.services.Widget.Open(c.Request.Context(), uri.BoardID, uri.PostID, prevToken, forwardedCookies(c.Request))
	if err != nil {
		if errors.Is(err, service.ErrPageUnavailable) {
			c.JSON(http.StatusBadGateway, dto.NewBasicResponse(false, errPageUnavailable.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, dto.NewBasicResponse(false, errInternal.Error()))
		return
	}

	h.setWidgetCookie(c, view)
	c.Data(http.StatusOK, htmlContentType, view.HTML)
}

func (h *Handler) widgetAct(c *gin.Context) {
	var uri dto.WidgetURI
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidID.Error()))
		return
	}

	var form dto.ActionForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, actionFormError(err).Error()))
		return
	}

	token := c.GetString(widgetTokenKey)
	view, err := h.services.Widget.Act(c.Request.Context(), token, uri.BoardID, uri.PostID, form, forwardedCookies(c.Request))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionExpired):
			c.JSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errWidgetSessionMissing.Error()))
		case errors.Is(err, service.ErrUnknownAction):
			c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errUnknownAction.Error()))
		default:
			c.JSON(http.StatusInternalServerError, dto.NewBasicResponse(false, errInternal.Error()))
		}
		return
	}

	h.setWidgetCookie(c, view)
	c.Data(http.StatusOK, htmlContentType, view.HTML)
}

func (h *Handler) setWidgetCookie(c *gin.Context, view *service.WidgetView) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(session.CookieName, view.Token, int(view.TTL.Seconds()), "/", "", c.Request.TLS != nil, true)
}

// actionFormError names the form field that failed binding.
func actionFormError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errInvalidForm
	}
	for _, fe := range verrs {
		if fe.Field() == "Action" {
			return errUnknownAction
		}
	}
	return errInvalidForm
}
