package page

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/BloggingApp/comment-web/internal/csrf"
	"github.com/BloggingApp/comment-web/internal/model"
	"go.uber.org/zap"
)

const postPagePath = "/board/%d/post/read?id=%d"

var ErrPageUnavailable = errors.New("post page is unavailable")

// Loader fetches the board's post page on behalf of the user and reads its
// page context.
type Loader struct {
	logger     *zap.Logger
	baseURL    string
	httpClient *http.Client
}

func NewLoader(logger *zap.Logger, baseURL string, httpClient *http.Client) *Loader {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Loader{
		logger:     logger,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

func (l *Loader) Load(ctx context.Context, boardID int64, postID int64, cookies []*http.Cookie) (*model.PageContext, error) {
	url := l.baseURL + fmt.Sprintf(postPagePath, boardID, postID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		l.logger.Sugar().Errorf("failed to create post page request: %s", err.Error())
		return nil, err
	}
	req.Header.Set("Accept", "text/html")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		l.logger.Sugar().Errorf("failed to fetch post page(board %d, post %d): %s", boardID, postID, err.Error())
		return nil, fmt.Errorf("%w: %w", ErrPageUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		l.logger.Sugar().Errorf("failed to read post page body: %s", err.Error())
		return nil, fmt.Errorf("%w: %w", ErrPageUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		l.logger.Sugar().Errorf("ERROR from post page(board %d, post %d), code(%d)", boardID, postID, resp.StatusCode)
		return nil, fmt.Errorf("%w: status %d", ErrPageUnavailable, resp.StatusCode)
	}

	doc, err := Parse(bytes.NewReader(body))
	if err != nil {
		l.logger.Sugar().Errorf("failed to parse post page: %s", err.Error())
		return nil, err
	}

	pc := &model.PageContext{
		BoardID: boardID,
		PostID:  postID,
		Viewer:  doc.Viewer(),
	}
	pc.CSRFToken, _ = doc.Meta(csrf.TokenMetaName)
	pc.CSRFHeader, _ = doc.Meta(csrf.HeaderMetaName)

	return pc, nil
}
