package fsdoc

import (
	"fmt"
	"net/url"
	"regexp"
)

// Element identifies an Onshape element by the coordinates in its URL.
type Element struct {
	BaseURL    string // scheme and host, e.g. https://cad.onshape.com
	DocumentID string
	WVM        string // "w", "v" or "m"
	WVMID      string // workspace, version or microversion id
	ElementID  string
}

// elementPathRe matches /documents/<did>/<w|v|m>/<wvmid>/e/<eid>.
var elementPathRe = regexp.MustCompile(`^/documents/([0-9a-fA-F]+)/([wvm])/([0-9a-fA-F]+)/e/([0-9a-fA-F]+)/?$`)

// ParseElementURL parses an Onshape element link.
func ParseElementURL(link string) (Element, error) {
	u, err := url.Parse(link)
	if err != nil {
		return Element{}, fmt.Errorf("parsing element url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return Element{}, fmt.Errorf("element url %q: missing scheme or host", link)
	}
	m := elementPathRe.FindStringSubmatch(u.Path)
	if m == nil {
		return Element{}, fmt.Errorf("element url %q: path is not /documents/<did>/<w|v|m>/<id>/e/<eid>", link)
	}
	return Element{
		BaseURL:    u.Scheme + "://" + u.Host,
		DocumentID: m[1],
		WVM:        m[2],
		WVMID:      m[3],
		ElementID:  m[4],
	}, nil
}

// String returns the element URL.
func (e Element) String() string {
	return fmt.Sprintf("%s/documents/%s/%s/%s/e/%s", e.BaseURL, e.DocumentID, e.WVM, e.WVMID, e.ElementID)
}

// EvalPath returns the API path that evaluates FeatureScript in the element.
func (e Element) EvalPath() string {
	return fmt.Sprintf("/api/partstudios/d/%s/%s/%s/e/%s/featurescript", e.DocumentID, e.WVM, e.WVMID, e.ElementID)
}
