package handler

import "errors"

var (
	errInvalidID            = errors.New("invalid board or post ID")
	errWidgetSessionMissing = errors.New("widget session is missing or expired")
	errPageUnavailable      = errors.New("post page is unavailable")
	errUnknownAction        = errors.New("unknown action")
	errInvalidForm          = errors.New("invalid action form")
	errInternal             = errors.New("internal server error")
)
