// Package csrf reads the anti-forgery token the board page publishes in its
// metadata and attaches it to outgoing requests.
package csrf

import "net/http"

const (
	TokenMetaName  = "_csrf"
	HeaderMetaName = "_csrf_header"
)

// Metadata is a read-only view of page metadata entries.
type Metadata interface {
	Meta(name string) (string, bool)
}

type Token struct {
	Value  string
	Header string
}

type Provider struct {
	meta Metadata
}

func NewProvider(meta Metadata) *Provider {
	return &Provider{meta: meta}
}

// Token returns false when either entry is missing, which means CSRF
// protection is disabled for this deployment.
func (p *Provider) Token() (Token, bool) {
	if p == nil || p.meta == nil {
		return Token{}, false
	}

	value, ok := p.meta.Meta(TokenMetaName)
	if !ok || value == "" {
		return Token{}, false
	}
	header, ok := p.meta.Meta(HeaderMetaName)
	if !ok || header == "" {
		return Token{}, false
	}

	return Token{Value: value, Header: header}, true
}

// Decorate returns a copy of h carrying the CSRF header when a token is
// present. h itself is never modified.
func (p *Provider) Decorate(h http.Header) http.Header {
	out := h.Clone()
	if out == nil {
		out = make(http.Header)
	}

	if token, ok := p.Token(); ok {
		out.Set(token.Header, token.Value)
	}

	return out
}
