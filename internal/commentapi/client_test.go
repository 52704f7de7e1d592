package commentapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/BloggingApp/comment-web/internal/commentapi"
	"github.com/BloggingApp/comment-web/internal/csrf"
	"github.com/BloggingApp/comment-web/internal/model"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type recordedRequest struct {
	Method string
	Path   string
	Header http.Header
	Body   string
}

type ClientTestSuite struct {
	suite.Suite
	ctx      context.Context
	srv      *httptest.Server
	mu       sync.Mutex
	requests []recordedRequest
	status   int
	body     string
}

func (s *ClientTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.requests = nil
	s.status = http.StatusOK
	s.body = ""
	s.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		s.mu.Lock()
		s.requests = append(s.requests, recordedRequest{Method: r.Method, Path: r.URL.Path, Header: r.Header.Clone(), Body: string(body)})
		status, respBody := s.status, s.body
		s.mu.Unlock()

		w.WriteHeader(status)
		io.WriteString(w, respBody)
	}))
}

func (s *ClientTestSuite) TearDownTest() {
	s.srv.Close()
}

func (s *ClientTestSuite) respond(status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
	s.body = body
}

func (s *ClientTestSuite) recorded() []recordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]recordedRequest(nil), s.requests...)
}

func (s *ClientTestSuite) client(opts ...commentapi.Option) *commentapi.Client {
	return commentapi.New(zap.NewNop(), s.srv.URL, opts...)
}

type metaMap map[string]string

func (m metaMap) Meta(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}

func fakeComments(n int, postID int64) []model.Comment {
	comments := make([]model.Comment, 0, n)
	for i := 0; i < n; i++ {
		comments = append(comments, model.Comment{
			ID:      int64(i + 1),
			PostID:  postID,
			UserID:  gofakeit.Int64(),
			Writer:  gofakeit.Name(),
			Content: gofakeit.Sentence(5),
		})
	}
	return comments
}

func TestClientTestSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func (s *ClientTestSuite) TestListKeepsServerOrder() {
	// given
	expected := fakeComments(5, 3)
	expected[0].ID, expected[4].ID = 99, 1
	payload, err := json.Marshal(expected)
	s.Require().NoError(err)
	s.respond(http.StatusOK, string(payload))

	// when
	actual, err := s.client().List(s.ctx, 3)

	// then
	s.NoError(err)
	s.Equal(expected, actual)
	reqs := s.recorded()
	s.Require().Len(reqs, 1)
	s.Equal(http.MethodGet, reqs[0].Method)
	s.Equal("/api/posts/3/comments", reqs[0].Path)
}

func (s *ClientTestSuite) TestRequestsCarryCSRFAndCookies() {
	// given
	s.respond(http.StatusOK, "[]")
	provider := csrf.NewProvider(metaMap{"_csrf": "tok", "_csrf_header": "X-CSRF-TOKEN"})
	cookies := []*http.Cookie{{Name: "JSESSIONID", Value: "s1"}}
	c := s.client(commentapi.WithCSRF(provider), commentapi.WithCookies(cookies))

	// when
	_, err := c.List(s.ctx, 1)
	s.Require().NoError(err)
	s.respond(http.StatusOK, `{"success":true}`)
	err = c.Remove(s.ctx, 1, 2)

	// then
	s.NoError(err)
	for _, req := range s.recorded() {
		s.Equal("tok", req.Header.Get("X-CSRF-TOKEN"), req.Method)
		s.Contains(req.Header.Get("Cookie"), "JSESSIONID=s1", req.Method)
	}
}

func (s *ClientTestSuite) TestRequestsWithoutCSRFMetadata() {
	// given
	s.respond(http.StatusOK, "[]")
	c := s.client(commentapi.WithCSRF(csrf.NewProvider(metaMap{})))

	// when
	_, err := c.List(s.ctx, 1)

	// then
	s.NoError(err)
	s.Empty(s.recorded()[0].Header.Get("X-CSRF-TOKEN"))
}

func (s *ClientTestSuite) TestCreateSendsTrimmedContent() {
	// given
	s.respond(http.StatusOK, `{"id":10,"postId":3,"userId":1,"writer":"kim","content":"hello"}`)

	// when
	created, err := s.client().Create(s.ctx, 3, "  hello ")

	// then
	s.NoError(err)
	s.Require().NotNil(created)
	s.Equal(int64(10), created.ID)
	req := s.recorded()[0]
	s.Equal(http.MethodPost, req.Method)
	s.Equal("/api/posts/3/comments", req.Path)
	s.Equal("application/json", req.Header.Get("Content-Type"))
	s.JSONEq(`{"content":"hello"}`, req.Body)
}

func (s *ClientTestSuite) TestCreateLengthBoundaries() {
	s.respond(http.StatusOK, `{"id":1}`)
	c := s.client()

	_, err := c.Create(s.ctx, 1, strings.Repeat("a", 200))
	s.NoError(err)
	s.Len(s.recorded(), 1)

	_, err = c.Create(s.ctx, 1, strings.Repeat("a", 201))
	s.ErrorIs(err, commentapi.ErrValidation)

	_, err = c.Create(s.ctx, 1, "")
	s.ErrorIs(err, commentapi.ErrValidation)

	_, err = c.Update(s.ctx, 1, 1, strings.Repeat("a", 201))
	s.ErrorIs(err, commentapi.ErrValidation)

	s.Len(s.recorded(), 1, "invalid content must never reach the network")
}

func (s *ClientTestSuite) TestUpdateSendsIdentity() {
	// given
	s.respond(http.StatusOK, `{"id":5,"postId":3,"content":"edited"}`)

	// when
	updated, err := s.client().Update(s.ctx, 5, 3, "edited")

	// then
	s.NoError(err)
	s.Equal("edited", updated.Content)
	req := s.recorded()[0]
	s.Equal(http.MethodPut, req.Method)
	s.Equal("/api/posts/3/comments/5", req.Path)
	s.JSONEq(`{"id":5,"postId":3,"content":"edited"}`, req.Body)
}

func (s *ClientTestSuite) TestEmptyBodiesResolveToAbsent() {
	s.respond(http.StatusNoContent, "")
	s.NoError(s.client().Remove(s.ctx, 1, 2))

	s.respond(http.StatusOK, "")
	created, err := s.client().Create(s.ctx, 1, "hi")
	s.NoError(err)
	s.Nil(created)

	s.respond(http.StatusOK, "")
	comments, err := s.client().List(s.ctx, 1)
	s.NoError(err)
	s.Empty(comments)
}

func (s *ClientTestSuite) TestRemoveUnsuccessfulBody() {
	// given
	s.respond(http.StatusOK, `{"success":false,"message":"권한이 없습니다."}`)

	// when
	err := s.client().Remove(s.ctx, 1, 2)

	// then
	var reqErr *commentapi.RequestFailedError
	s.Require().ErrorAs(err, &reqErr)
	s.Equal("권한이 없습니다.", reqErr.Message)
}

func (s *ClientTestSuite) TestStatusMapping() {
	cases := []struct {
		status int
		body   string
		want   string
	}{
		{status: http.StatusUnauthorized, body: "", want: "로그인이 필요합니다."},
		{status: http.StatusForbidden, body: "댓글 수정 권한이 없습니다.", want: "권한이 없습니다."},
		{status: http.StatusNotFound, body: "", want: "요청한 리소스를 찾을 수 없습니다."},
		{status: http.StatusBadRequest, body: `{"content":"내용은 1자 이상 200자 이하로 작성해 주셔야 합니다."}`, want: "내용은 1자 이상 200자 이하로 작성해 주셔야 합니다."},
		{status: http.StatusBadRequest, body: `{"b":"second","a":"first"}`, want: "first second"},
		{status: http.StatusInternalServerError, body: "boom", want: "boom"},
		{status: http.StatusInternalServerError, body: `{"message":"db down"}`, want: "db down"},
		{status: http.StatusInternalServerError, body: `{"status":500}`, want: "요청 처리 중 오류가 발생했습니다."},
		{status: http.StatusBadGateway, body: "", want: "요청 처리 중 오류가 발생했습니다."},
	}

	for _, tc := range cases {
		s.respond(tc.status, tc.body)

		err := s.client().Remove(s.ctx, 1, 2)

		var reqErr *commentapi.RequestFailedError
		s.Require().ErrorAs(err, &reqErr, tc.status)
		s.Equal(tc.status, reqErr.Status)
		s.Equal(tc.want, reqErr.Message)
		s.Equal(tc.want, commentapi.UserMessage(err))
	}
}

func (s *ClientTestSuite) TestNetworkFailure() {
	// given
	c := s.client()
	s.srv.Close()

	// when
	_, err := c.List(s.ctx, 1)

	// then
	var netErr *commentapi.NetworkError
	s.ErrorAs(err, &netErr)
	s.Equal("서버와 통신할 수 없습니다.", commentapi.UserMessage(err))
}

func (s *ClientTestSuite) TestUserMessageFallbacks() {
	s.Equal("댓글은 1~200자여야 합니다.", commentapi.UserMessage(commentapi.ErrValidation))
	s.Equal("요청 처리 중 오류가 발생했습니다.", commentapi.UserMessage(errors.New("x")))
}
