package model

type Comment struct {
	ID        int64      `json:"id"`
	PostID    int64      `json:"postId"`
	UserID    int64      `json:"userId"`
	Writer    string     `json:"writer"`
	Content   string     `json:"content"`
	CreatedAt *Timestamp `json:"createdAt"`
}

// OwnedBy reports whether the comment was written by the given user.
// An anonymous viewer owns nothing.
func (c Comment) OwnedBy(userID *int64) bool {
	return userID != nil && c.UserID == *userID
}
