package textclean

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	ugcPolicy *bluemonday.Policy
	initOnce  sync.Once
)

// SanitizeHTML keeps the formatting of a feed description fragment and
// strips scripts, event handlers and unsafe URLs. Tags left open by a cut
// description are closed so they cannot swallow the rest of the digest.
func SanitizeHTML(s string) string {
	initOnce.Do(func() {
		ugcPolicy = bluemonday.UGCPolicy()
	})
	return balanceTags(ugcPolicy.Sanitize(s))
}

func balanceTags(s string) string {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(s), body)
	if err != nil {
		return s
	}

	var sb strings.Builder
	for _, n := range nodes {
		if err := html.Render(&sb, n); err != nil {
			return s
		}
	}
	return sb.String()
}
