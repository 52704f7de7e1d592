package controller

import (
	"context"
	"errors"

	"github.com/BloggingApp/comment-web/internal/commentapi"
	"github.com/BloggingApp/comment-web/internal/model"
	"github.com/BloggingApp/comment-web/internal/render"
	"github.com/BloggingApp/comment-web/internal/validation"
	"go.uber.org/zap"
)

type Action string

const (
	ActionCreate Action = "create"
	ActionEdit   Action = "edit"
	ActionCancel Action = "cancel"
	ActionSave   Action = "save"
	ActionDelete Action = "delete"
)

// Answer is the user's reply to a confirmation prompt.
type Answer int

const (
	Unanswered Answer = iota
	Confirmed
	Declined
)

const (
	deletePrompt     = "댓글을 삭제할까요?"
	adminEditMessage = "관리자는 댓글을 수정할 수 없습니다."

	// LoadFailMessage replaces the list when the initial load failed.
	LoadFailMessage = "댓글을 불러오는데 실패했습니다."
)

var ErrUnknownAction = errors.New("unknown action")

type Event struct {
	Action    Action
	CommentID int64
	Content   string
	Answer    Answer
}

type Repository interface {
	List(ctx context.Context, postID int64) ([]model.Comment, error)
	Create(ctx context.Context, postID int64, content string) (*model.Comment, error)
	Update(ctx context.Context, commentID int64, postID int64, content string) (*model.Comment, error)
	Remove(ctx context.Context, postID int64, commentID int64) error
}

type handlerFunc func(ctx context.Context, st State, ev Event) State

type Controller struct {
	logger   *zap.Logger
	repo     Repository
	handlers map[Action]handlerFunc
}

func New(logger *zap.Logger, repo Repository) *Controller {
	c := &Controller{
		logger: logger,
		repo:   repo,
	}
	c.handlers = map[Action]handlerFunc{
		ActionCreate: c.create,
		ActionEdit:   c.edit,
		ActionCancel: c.cancel,
		ActionSave:   c.save,
		ActionDelete: c.remove,
	}
	return c
}

// Ready performs the initial load of a freshly opened widget.
func (c *Controller) Ready(ctx context.Context, st State) State {
	st = st.clone()

	comments, err := c.repo.List(ctx, st.PostID)
	if err != nil {
		c.logger.Sugar().Errorf("failed to load comments of post(%d): %s", st.PostID, err.Error())
		st.Comments = nil
		st.LoadFailed = true
		return st
	}

	st.Comments = comments
	st.LoadFailed = false
	st.Editing = map[int64]string{}
	return st
}

// Dispatch applies one user action. Failures of the action itself end up in
// the returned state; the error is only for actions the controller does not
// know.
func (c *Controller) Dispatch(ctx context.Context, st State, ev Event) (State, error) {
	handle, ok := c.handlers[ev.Action]
	if !ok {
		return st, ErrUnknownAction
	}

	st = st.clone()
	st.Alert = ""
	st.Confirm = nil
	return handle(ctx, st, ev), nil
}

// reload re-fetches the list after a mutation. On failure the previous list
// stays on screen: the mutation already happened on the server.
func (c *Controller) reload(ctx context.Context, st State) State {
	comments, err := c.repo.List(ctx, st.PostID)
	if err != nil {
		c.logger.Sugar().Errorf("failed to reload comments of post(%d): %s", st.PostID, err.Error())
		return st
	}

	st.Comments = comments
	st.LoadFailed = false
	st.Editing = map[int64]string{}
	return st
}

func (c *Controller) create(ctx context.Context, st State, ev Event) State {
	st.Error = ""
	st.Input = ev.Content

	content, err := validation.Content(ev.Content)
	if err != nil {
		st.Error = err.Error()
		return st
	}

	if _, err := c.repo.Create(ctx, st.PostID, content); err != nil {
		c.logger.Sugar().Errorf("failed to create comment on post(%d): %s", st.PostID, err.Error())
		st.Error = commentapi.UserMessage(err)
		return st
	}

	st.Input = ""
	return c.reload(ctx, st)
}

func (c *Controller) edit(ctx context.Context, st State, ev Event) State {
	comment, ok := st.find(ev.CommentID)
	if !ok || !st.Viewer.CanEdit(comment) {
		c.logger.Sugar().Debugf("edit of comment(%d) ignored: no edit control", ev.CommentID)
		return st
	}

	st.Editing[comment.ID] = comment.Content
	return st
}

func (c *Controller) cancel(ctx context.Context, st State, ev Event) State {
	delete(st.Editing, ev.CommentID)
	return st
}

func (c *Controller) save(ctx context.Context, st State, ev Event) State {
	if st.Viewer.IsAdmin {
		st.Alert = adminEditMessage
		return st
	}

	comment, ok := st.find(ev.CommentID)
	if _, editing := st.Editing[ev.CommentID]; !ok || !editing || !st.Viewer.CanEdit(comment) {
		c.logger.Sugar().Debugf("save of comment(%d) ignored: block is not being edited", ev.CommentID)
		return st
	}

	st.Editing[comment.ID] = ev.Content

	content, err := validation.Content(ev.Content)
	if err != nil {
		st.Alert = err.Error()
		return st
	}

	if _, err := c.repo.Update(ctx, comment.ID, st.PostID, content); err != nil {
		c.logger.Sugar().Errorf("failed to update comment(%d) of post(%d): %s", comment.ID, st.PostID, err.Error())
		st.Alert = commentapi.UserMessage(err)
		return st
	}

	return c.reload(ctx, st)
}

func (c *Controller) remove(ctx context.Context, st State, ev Event) State {
	comment, ok := st.find(ev.CommentID)
	if !ok || !st.Viewer.CanDelete(comment) {
		c.logger.Sugar().Debugf("delete of comment(%d) ignored: no delete control", ev.CommentID)
		return st
	}

	switch ev.Answer {
	case Unanswered:
		st.Confirm = &render.Confirmation{Prompt: deletePrompt, Action: string(ActionDelete), ID: comment.ID}
		return st
	case Declined:
		return st
	}

	if err := c.repo.Remove(ctx, st.PostID, comment.ID); err != nil {
		c.logger.Sugar().Errorf("failed to delete comment(%d) of post(%d): %s", comment.ID, st.PostID, err.Error())
		st.Alert = commentapi.UserMessage(err)
		return st
	}

	return c.reload(ctx, st)
}
