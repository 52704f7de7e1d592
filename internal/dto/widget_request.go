package dto

type WidgetURI struct {
	BoardID int64 `uri:"boardID" binding:"required,min=1"`
	PostID  int64 `uri:"postID" binding:"required,min=1"`
}

// ActionForm is what the widget markup submits for every action button.
// Confirm carries the answer of a confirmation prompt and is empty otherwise.
type ActionForm struct {
	Action  string `form:"action" binding:"required,oneof=create edit cancel save delete"`
	ID      int64  `form:"id"`
	Content string `form:"content"`
	Confirm string `form:"confirm" binding:"omitempty,oneof=yes no"`
}
