package commentapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/BloggingApp/comment-web/internal/csrf"
	"github.com/BloggingApp/comment-web/internal/dto"
	"github.com/BloggingApp/comment-web/internal/model"
	"github.com/BloggingApp/comment-web/internal/validation"
	"go.uber.org/zap"
)

const commentsPath = "/api/posts/%d/comments"

type Client struct {
	logger     *zap.Logger
	baseURL    string
	httpClient *http.Client
	csrf       *csrf.Provider
	cookies    []*http.Cookie
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithCSRF(provider *csrf.Provider) Option {
	return func(c *Client) {
		c.csrf = provider
	}
}

// WithCookies sets the session cookies forwarded from the user's browser.
// They are only ever sent to baseURL.
func WithCookies(cookies []*http.Cookie) Option {
	return func(c *Client) {
		c.cookies = cookies
	}
}

func New(logger *zap.Logger, baseURL string, opts ...Option) *Client {
	c := &Client{
		logger:     logger,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) List(ctx context.Context, postID int64) ([]model.Comment, error) {
	var comments []model.Comment
	if _, _, err := c.do(ctx, http.MethodGet, fmt.Sprintf(commentsPath, postID), nil, &comments); err != nil {
		return nil, err
	}

	return comments, nil
}

func (c *Client) Create(ctx context.Context, postID int64, content string) (*model.Comment, error) {
	content, err := validation.Content(content)
	if err != nil {
		return nil, ErrValidation
	}

	var comment model.Comment
	_, present, err := c.do(ctx, http.MethodPost, fmt.Sprintf(commentsPath, postID), dto.CreateCommentRequest{Content: content}, &comment)
	if err != nil {
		return nil, err
	}
	if !present {
		return nil, nil
	}

	return &comment, nil
}

func (c *Client) Update(ctx context.Context, commentID int64, postID int64, content string) (*model.Comment, error) {
	content, err := validation.Content(content)
	if err != nil {
		return nil, ErrValidation
	}

	input := dto.UpdateCommentRequest{
		ID:      commentID,
		PostID:  postID,
		Content: content,
	}

	var comment model.Comment
	_, present, err := c.do(ctx, http.MethodPut, fmt.Sprintf(commentsPath+"/%d", postID, commentID), input, &comment)
	if err != nil {
		return nil, err
	}
	if !present {
		return nil, nil
	}

	return &comment, nil
}

func (c *Client) Remove(ctx context.Context, postID int64, commentID int64) error {
	var result dto.DeleteCommentResponse
	status, present, err := c.do(ctx, http.MethodDelete, fmt.Sprintf(commentsPath+"/%d", postID, commentID), nil, &result)
	if err != nil {
		return err
	}

	if present && !result.Success {
		msg := result.Message
		if msg == "" {
			msg = deleteMessage
		}
		return &RequestFailedError{Status: status, Message: msg}
	}

	return nil
}

// do performs one round trip. present is false for 204 and empty bodies, in
// which case out is left untouched.
func (c *Client) do(ctx context.Context, method string, path string, input any, out any) (status int, present bool, err error) {
	var body io.Reader
	if input != nil {
		payload, err := json.Marshal(input)
		if err != nil {
			c.logger.Sugar().Errorf("failed to encode %s %s request body: %s", method, path, err.Error())
			return 0, false, err
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		c.logger.Sugar().Errorf("failed to create %s %s request: %s", method, path, err.Error())
		return 0, false, err
	}

	headers := http.Header{}
	headers.Set("Accept", "application/json")
	if input != nil {
		headers.Set("Content-Type", "application/json")
	}
	req.Header = c.csrf.Decorate(headers)
	for _, cookie := range c.cookies {
		req.AddCookie(cookie)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Sugar().Errorf("failed to send %s %s request: %s", method, path, err.Error())
		return 0, false, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Sugar().Errorf("failed to read %s %s response body: %s", method, path, err.Error())
		return resp.StatusCode, false, &NetworkError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		reqErr := newRequestFailed(resp.StatusCode, respBody)
		c.logger.Sugar().Errorf("ERROR from comments endpoint(%s %s), code(%d), details: %s", method, path, resp.StatusCode, reqErr.Message)
		return resp.StatusCode, false, reqErr
	}

	if resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(respBody)) == 0 {
		return resp.StatusCode, false, nil
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		c.logger.Sugar().Errorf("failed to decode %s %s response body: %s", method, path, err.Error())
		return resp.StatusCode, false, fmt.Errorf("decode %s %s response: %w", method, path, err)
	}

	return resp.StatusCode, true, nil
}
