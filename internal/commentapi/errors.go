package commentapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/BloggingApp/comment-web/internal/validation"
)

// ErrValidation is returned before any request is made when the content is
// outside 1..200 characters.
var ErrValidation = validation.ErrContentLength

const (
	genericMessage = "요청 처리 중 오류가 발생했습니다."
	networkMessage = "서버와 통신할 수 없습니다."
	deleteMessage  = "댓글 삭제에 실패했습니다."
)

var statusMessages = map[int]string{
	http.StatusUnauthorized: "로그인이 필요합니다.",
	http.StatusForbidden:    "권한이 없습니다.",
	http.StatusNotFound:     "요청한 리소스를 찾을 수 없습니다.",
}

// RequestFailedError is any non-2xx answer from the backend.
type RequestFailedError struct {
	Status  int
	Message string
}

func (e *RequestFailedError) Error() string {
	return e.Message
}

// NetworkError is a transport-level failure: the request never got an answer.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network failure: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// UserMessage turns any client error into the text shown next to the
// control that triggered it.
func UserMessage(err error) string {
	var reqErr *RequestFailedError
	var netErr *NetworkError
	switch {
	case errors.Is(err, ErrValidation):
		return ErrValidation.Error()
	case errors.As(err, &reqErr):
		return reqErr.Message
	case errors.As(err, &netErr):
		return networkMessage
	default:
		return genericMessage
	}
}

func newRequestFailed(status int, body []byte) *RequestFailedError {
	if msg, ok := statusMessages[status]; ok {
		return &RequestFailedError{Status: status, Message: msg}
	}
	if status == http.StatusBadRequest {
		if msg := validationMessages(body); msg != "" {
			return &RequestFailedError{Status: status, Message: msg}
		}
	}
	return &RequestFailedError{Status: status, Message: bodyMessage(body)}
}

// validationMessages reads the field -> message map the backend sends with 400.
func validationMessages(body []byte) string {
	var fields map[string]string
	if err := json.Unmarshal(body, &fields); err != nil || len(fields) == 0 {
		return ""
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	msgs := make([]string, 0, len(names))
	for _, name := range names {
		if fields[name] != "" {
			msgs = append(msgs, fields[name])
		}
	}
	return strings.Join(msgs, " ")
}

func bodyMessage(body []byte) string {
	text := strings.TrimSpace(string(body))
	if text == "" {
		return genericMessage
	}

	if strings.HasPrefix(text, "{") {
		var payload struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
			return payload.Message
		}
		return genericMessage
	}

	return text
}
