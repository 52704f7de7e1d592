package model

import "github.com/BloggingApp/comment-web/internal/csrf"

// PageContext is everything the widget reads once from the board page
// when a widget session starts.
type PageContext struct {
	BoardID    int64  `json:"boardId"`
	PostID     int64  `json:"postId"`
	CSRFToken  string `json:"csrfToken,omitempty"`
	CSRFHeader string `json:"csrfHeader,omitempty"`
	Viewer     Viewer `json:"viewer"`
}

// Meta exposes the stored CSRF values under their page metadata names.
func (p PageContext) Meta(name string) (string, bool) {
	var value string
	switch name {
	case csrf.TokenMetaName:
		value = p.CSRFToken
	case csrf.HeaderMetaName:
		value = p.CSRFHeader
	}
	return value, value != ""
}
