package dto

type CreateCommentRequest struct {
	Content string `json:"content"`
}

type UpdateCommentRequest struct {
	ID      int64  `json:"id"`
	PostID  int64  `json:"postId"`
	Content string `json:"content"`
}
