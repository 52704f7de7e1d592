package service

import "errors"

var (
	ErrInternal        = errors.New("internal server error")
	ErrPageUnavailable = errors.New("post page is unavailable")
	ErrSessionExpired  = errors.New("widget session expired")
	ErrUnknownAction   = errors.New("unknown action")
)
