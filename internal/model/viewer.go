package model

// Viewer is the session/permission context of the page the widget lives on.
type Viewer struct {
	UserID  *int64 `json:"userId"`
	IsAdmin bool   `json:"isAdmin"`
}

// CanEdit: only the author edits, and admins never edit.
func (v Viewer) CanEdit(c Comment) bool {
	return c.OwnedBy(v.UserID) && !v.IsAdmin
}

func (v Viewer) CanDelete(c Comment) bool {
	return c.OwnedBy(v.UserID) || v.IsAdmin
}
