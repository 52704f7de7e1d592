package redisrepo

import "fmt"

const (
	WIDGET_SESSION_KEY = "comment-widget:%s" // <sessionID>
)

func WidgetSessionKey(sessionID string) string {
	return fmt.Sprintf(WIDGET_SESSION_KEY, sessionID)
}
