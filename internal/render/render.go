// Package render turns comment records into the HTML of the comment widget.
// Every interpolated value goes through html/template, so markup in comment
// content can never reach the page unescaped.
package render

import (
	"bytes"
	"embed"
	"html/template"
	"time"

	"github.com/BloggingApp/comment-web/internal/model"
	"github.com/BloggingApp/comment-web/internal/validation"
)

const (
	DateLayout    = "2006.01.02 15:04"
	unknownWriter = "unknown"
)

//go:embed templates/*.html
var templateFS embed.FS

type Context struct {
	Viewer model.Viewer
	// Editing holds the draft of every block currently in the editing state.
	Editing map[int64]string
	// ActionURL is where the widget forms post their actions.
	ActionURL string
}

type Fragment struct {
	HTML  template.HTML
	Count int
}

type Confirmation struct {
	Prompt string `json:"prompt"`
	Action string `json:"action"`
	ID     int64  `json:"id"`
}

type WidgetData struct {
	PostID    int64
	ActionURL string
	Fragment  Fragment
	ListError string
	Input     string
	Error     string
	Alert     string
	Confirm   *Confirmation
}

type item struct {
	Comment   model.Comment
	CanEdit   bool
	CanDelete bool
	Editing   bool
	Draft     string
}

type Renderer struct {
	tmpl *template.Template
}

// New parses the embedded templates. Timestamps are shown in loc.
func New(loc *time.Location) (*Renderer, error) {
	if loc == nil {
		loc = time.Local
	}

	functions := template.FuncMap{
		"writer": func(name string) string {
			if name == "" {
				return unknownWriter
			}
			return name
		},
		"maxLength": func() int {
			return validation.ContentMaxLength
		},
		"formatDate": func(ts *model.Timestamp) string {
			if ts == nil || ts.IsZero() {
				return ""
			}
			return ts.In(loc).Format(DateLayout)
		},
	}

	tmpl, err := template.New("").Funcs(functions).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	return &Renderer{tmpl: tmpl}, nil
}

// Comments renders one block per comment in the order given. It has no side
// effects.
func (r *Renderer) Comments(comments []model.Comment, ctx Context) (Fragment, error) {
	items := make([]item, 0, len(comments))
	for _, c := range comments {
		it := item{
			Comment:   c,
			CanEdit:   ctx.Viewer.CanEdit(c),
			CanDelete: ctx.Viewer.CanDelete(c),
		}
		if draft, ok := ctx.Editing[c.ID]; ok && it.CanEdit {
			it.Editing = true
			it.Draft = draft
		}
		items = append(items, it)
	}

	buf := new(bytes.Buffer)
	data := struct {
		Items     []item
		ActionURL string
	}{Items: items, ActionURL: ctx.ActionURL}
	if err := r.tmpl.ExecuteTemplate(buf, "comments", data); err != nil {
		return Fragment{}, err
	}

	return Fragment{HTML: template.HTML(buf.String()), Count: len(comments)}, nil
}

func (r *Renderer) Widget(data WidgetData) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := r.tmpl.ExecuteTemplate(buf, "widget", data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
