// Package page reads the values the board embeds in a post page for its
// scripts: CSRF metadata and the viewer's session attributes.
package page

import (
	"io"
	"strconv"
	"strings"

	"github.com/BloggingApp/comment-web/internal/model"
	"golang.org/x/net/html"
)

const (
	containerClass = "post-box"
	userIDAttr     = "data-user-id"
	isAdminAttr    = "data-is-admin"
)

type Document struct {
	meta   map[string]string
	viewer model.Viewer
}

func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	doc := &Document{meta: make(map[string]string)}
	containerSeen := false

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch {
			case n.Data == "meta":
				if name := attr(n, "name"); name != "" {
					if _, dup := doc.meta[name]; !dup {
						doc.meta[name] = attr(n, "content")
					}
				}
			case !containerSeen && hasClass(n, containerClass):
				containerSeen = true
				doc.viewer = viewerFrom(n)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	return doc, nil
}

// Meta returns the content of the first <meta name=...> with that name.
func (d *Document) Meta(name string) (string, bool) {
	v, ok := d.meta[name]
	return v, ok
}

func (d *Document) Viewer() model.Viewer {
	return d.viewer
}

func viewerFrom(n *html.Node) model.Viewer {
	var v model.Viewer
	if raw := strings.TrimSpace(attr(n, userIDAttr)); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			v.UserID = &id
		}
	}
	v.IsAdmin = attr(n, isAdminAttr) == "true"
	return v
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}
