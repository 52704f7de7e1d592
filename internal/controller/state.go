package controller

import (
	"github.com/BloggingApp/comment-web/internal/model"
	"github.com/BloggingApp/comment-web/internal/render"
)

// State is everything one widget shows. It is plain data: the host stores it
// between requests and hands it back with the next event.
type State struct {
	PostID int64        `json:"postId"`
	Viewer model.Viewer `json:"viewer"`

	// Comments is the list as last rendered. It is replaced wholesale by
	// every successful reload and never patched locally.
	Comments   []model.Comment `json:"comments"`
	LoadFailed bool            `json:"loadFailed"`

	// Editing maps a comment id to the draft of its edit box. A block not in
	// the map is in the viewing state.
	Editing map[int64]string `json:"editing"`

	Input   string               `json:"input"`
	Error   string               `json:"error"`
	Alert   string               `json:"alert"`
	Confirm *render.Confirmation `json:"confirm,omitempty"`
}

func NewState(postID int64, viewer model.Viewer) State {
	return State{
		PostID:  postID,
		Viewer:  viewer,
		Editing: map[int64]string{},
	}
}

func (s State) find(commentID int64) (model.Comment, bool) {
	for _, c := range s.Comments {
		if c.ID == commentID {
			return c, true
		}
	}
	return model.Comment{}, false
}

// clone copies the Editing map so a handler never mutates the caller's state.
func (s State) clone() State {
	editing := make(map[int64]string, len(s.Editing))
	for id, draft := range s.Editing {
		editing[id] = draft
	}
	s.Editing = editing
	return s
}
