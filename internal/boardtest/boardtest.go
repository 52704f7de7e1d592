// Package boardtest runs an in-process stand-in for the board backend: the
// post page and the comment API, backed by a slice of comments.
package boardtest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/BloggingApp/comment-web/internal/dto"
	"github.com/BloggingApp/comment-web/internal/model"
)

const (
	CSRFHeader = "X-CSRF-TOKEN"
	CSRFToken  = "token-123"
)

const postPage = `<!DOCTYPE html>
<html>
<head>
  <meta name="_csrf" content="%s">
  <meta name="_csrf_header" content="%s">
</head>
<body>
  <div class="post-box" data-user-id="%s" data-is-admin="%t"></div>
</body>
</html>`

// Request is what the backend saw for one comment API call.
type Request struct {
	Method string
	Path   string
	CSRF   string
	Cookie string
	Body   string
}

type Backend struct {
	*httptest.Server

	mu       sync.Mutex
	comments []model.Comment
	nextID   int64
	requests []Request

	// UserID is the viewer the post page announces. Nil means anonymous.
	UserID  *int64
	IsAdmin bool
	// PageStatus and ListStatus override the response code when non-zero.
	PageStatus int
	ListStatus int
}

func New(t *testing.T, comments ...model.Comment) *Backend {
	t.Helper()

	b := &Backend{comments: comments, nextID: 100}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /board/{boardID}/post/read", b.page)
	mux.HandleFunc("GET /api/posts/{postID}/comments", b.list)
	mux.HandleFunc("POST /api/posts/{postID}/comments", b.create)
	mux.HandleFunc("PUT /api/posts/{postID}/comments/{commentID}", b.update)
	mux.HandleFunc("DELETE /api/posts/{postID}/comments/{commentID}", b.remove)
	b.Server = httptest.NewServer(mux)
	t.Cleanup(b.Close)
	return b
}

func (b *Backend) Comments() []model.Comment {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]model.Comment(nil), b.comments...)
}

func (b *Backend) Requests() []Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Request(nil), b.requests...)
}

func (b *Backend) record(r *http.Request, body string) {
	cookie := ""
	if c, err := r.Cookie("SESSION"); err == nil {
		cookie = c.Value
	}
	b.requests = append(b.requests, Request{
		Method: r.Method,
		Path:   r.URL.Path,
		CSRF:   r.Header.Get(CSRFHeader),
		Cookie: cookie,
		Body:   body,
	})
}

func (b *Backend) page(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	status, userID, isAdmin := b.PageStatus, b.UserID, b.IsAdmin
	b.mu.Unlock()

	if status != 0 {
		w.WriteHeader(status)
		return
	}

	id := ""
	if userID != nil {
		id = strconv.FormatInt(*userID, 10)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, postPage, CSRFToken, CSRFHeader, id, isAdmin)
}

func (b *Backend) list(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record(r, "")

	if b.ListStatus != 0 {
		w.WriteHeader(b.ListStatus)
		return
	}
	writeJSON(w, http.StatusOK, b.comments)
}

func (b *Backend) create(w http.ResponseWriter, r *http.Request) {
	var input dto.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	postID, _ := strconv.ParseInt(r.PathValue("postID"), 10, 64)

	b.mu.Lock()
	defer b.mu.Unlock()
	raw, _ := json.Marshal(input)
	b.record(r, string(raw))

	var userID int64
	if b.UserID != nil {
		userID = *b.UserID
	}
	b.nextID++
	comment := model.Comment{ID: b.nextID, PostID: postID, UserID: userID, Writer: "writer", Content: input.Content}
	b.comments = append(b.comments, comment)
	writeJSON(w, http.StatusCreated, comment)
}

func (b *Backend) update(w http.ResponseWriter, r *http.Request) {
	var input dto.UpdateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	commentID, _ := strconv.ParseInt(r.PathValue("commentID"), 10, 64)

	b.mu.Lock()
	defer b.mu.Unlock()
	raw, _ := json.Marshal(input)
	b.record(r, string(raw))

	for i := range b.comments {
		if b.comments[i].ID == commentID {
			b.comments[i].Content = input.Content
			writeJSON(w, http.StatusOK, b.comments[i])
			return
		}
	}
	writeJSON(w, http.StatusNotFound, dto.DeleteCommentResponse{Message: "not found"})
}

func (b *Backend) remove(w http.ResponseWriter, r *http.Request) {
	commentID, _ := strconv.ParseInt(r.PathValue("commentID"), 10, 64)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.record(r, "")

	for i, c := range b.comments {
		if c.ID == commentID {
			b.comments = append(b.comments[:i], b.comments[i+1:]...)
			writeJSON(w, http.StatusOK, dto.DeleteCommentResponse{Success: true})
			return
		}
	}
	writeJSON(w, http.StatusOK, dto.DeleteCommentResponse{Success: false, Message: "댓글이 없습니다."})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
