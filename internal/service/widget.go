package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/BloggingApp/comment-web/internal/commentapi"
	"github.com/BloggingApp/comment-web/internal/controller"
	"github.com/BloggingApp/comment-web/internal/csrf"
	"github.com/BloggingApp/comment-web/internal/dto"
	"github.com/BloggingApp/comment-web/internal/model"
	"github.com/BloggingApp/comment-web/internal/page"
	"github.com/BloggingApp/comment-web/internal/render"
	"github.com/BloggingApp/comment-web/internal/repository"
	"github.com/BloggingApp/comment-web/internal/session"
	"go.uber.org/zap"
)

const actionPath = "/boards/%d/posts/%d/comments/actions"

func ActionURL(boardID int64, postID int64) string {
	return fmt.Sprintf(actionPath, boardID, postID)
}

type widgetService struct {
	logger     *zap.Logger
	backendURL string
	httpClient *http.Client
	loader     *page.Loader
	sessions   *session.Manager
	renderer   *render.Renderer
}

func newWidgetService(logger *zap.Logger, repo *repository.Repository, cfg Config) (Widget, error) {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	renderer, err := render.New(cfg.Location)
	if err != nil {
		return nil, err
	}

	return &widgetService{
		logger:     logger,
		backendURL: cfg.BackendURL,
		httpClient: httpClient,
		loader:     page.NewLoader(logger, cfg.BackendURL, httpClient),
		sessions:   session.NewManager(repo.WidgetSession, cfg.SessionSecret, cfg.SessionTTL),
		renderer:   renderer,
	}, nil
}

func (s *widgetService) Open(ctx context.Context, boardID int64, postID int64, prevToken string, cookies []*http.Cookie) (*WidgetView, error) {
	pc, err := s.loader.Load(ctx, boardID, postID, cookies)
	if err != nil {
		if errors.Is(err, page.ErrPageUnavailable) {
			return nil, ErrPageUnavailable
		}
		return nil, ErrInternal
	}

	ctl := s.controllerFor(*pc, cookies)
	st := ctl.Ready(ctx, controller.NewState(postID, pc.Viewer))

	token, err := s.sessions.Start(ctx, session.Record{
		Page:      *pc,
		State:     st,
		CreatedAt: time.Now(),
	})
	if err != nil {
		s.logger.Sugar().Errorf("failed to start widget session for post(%d): %s", postID, err.Error())
		return nil, ErrInternal
	}

	if prevToken != "" {
		if err := s.sessions.Discard(ctx, prevToken); err != nil {
			s.logger.Sugar().Errorf("failed to discard previous widget session of post(%d): %s", postID, err.Error())
		}
	}

	html, err := s.render(boardID, st)
	if err != nil {
		return nil, err
	}

	return &WidgetView{Token: token, TTL: s.sessions.TTL(), HTML: html}, nil
}

func (s *widgetService) Act(ctx context.Context, token string, boardID int64, postID int64, form dto.ActionForm, cookies []*http.Cookie) (*WidgetView, error) {
	sid, rec, err := s.sessions.Resolve(ctx, token, postID)
	if err != nil {
		if errors.Is(err, session.ErrInvalidSession) || errors.Is(err, session.ErrNotFound) {
			return nil, ErrSessionExpired
		}
		s.logger.Sugar().Errorf("failed to resolve widget session for post(%d): %s", postID, err.Error())
		return nil, ErrInternal
	}

	ctl := s.controllerFor(rec.Page, cookies)
	st, err := ctl.Dispatch(ctx, rec.State, eventFromForm(form))
	if err != nil {
		if errors.Is(err, controller.ErrUnknownAction) {
			return nil, ErrUnknownAction
		}
		return nil, ErrInternal
	}

	rec.State = st
	next, err := s.sessions.Save(ctx, sid, *rec)
	if err != nil {
		s.logger.Sugar().Errorf("failed to save widget session(%s): %s", sid, err.Error())
		return nil, ErrInternal
	}

	html, err := s.render(boardID, st)
	if err != nil {
		return nil, err
	}

	return &WidgetView{Token: next, TTL: s.sessions.TTL(), HTML: html}, nil
}

// controllerFor builds a controller whose comment client speaks for the
// user: their cookies and the CSRF token of their page.
func (s *widgetService) controllerFor(pc model.PageContext, cookies []*http.Cookie) *controller.Controller {
	client := commentapi.New(
		s.logger,
		s.backendURL,
		commentapi.WithHTTPClient(s.httpClient),
		commentapi.WithCSRF(csrf.NewProvider(pc)),
		commentapi.WithCookies(cookies),
	)
	return controller.New(s.logger, client)
}

func (s *widgetService) render(boardID int64, st controller.State) ([]byte, error) {
	actionURL := ActionURL(boardID, st.PostID)

	fragment, err := s.renderer.Comments(st.Comments, render.Context{
		Viewer:    st.Viewer,
		Editing:   st.Editing,
		ActionURL: actionURL,
	})
	if err != nil {
		s.logger.Sugar().Errorf("failed to render comments of post(%d): %s", st.PostID, err.Error())
		return nil, ErrInternal
	}

	data := render.WidgetData{
		PostID:    st.PostID,
		ActionURL: actionURL,
		Fragment:  fragment,
		Input:     st.Input,
		Error:     st.Error,
		Alert:     st.Alert,
		Confirm:   st.Confirm,
	}
	if st.LoadFailed {
		data.ListError = controller.LoadFailMessage
	}

	html, err := s.renderer.Widget(data)
	if err != nil {
		s.logger.Sugar().Errorf("failed to render widget of post(%d): %s", st.PostID, err.Error())
		return nil, ErrInternal
	}

	return html, nil
}

func eventFromForm(form dto.ActionForm) controller.Event {
	ev := controller.Event{
		Action:    controller.Action(form.Action),
		CommentID: form.ID,
		Content:   form.Content,
	}
	switch form.Confirm {
	case "yes":
		ev.Answer = controller.Confirmed
	case "no":
		ev.Answer = controller.Declined
	}
	return ev
}
