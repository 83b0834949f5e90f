package http

import (
	"net/http"
	"net/url"
	"strings"
)

// pageLink joins baseURL and the page path, keeping rawQuery.
func pageLink(baseURL, rawQuery string) string {
	base := strings.TrimRight(baseURL, "/")
	link := base + "/"
	if rawQuery != "" {
		link += "?" + rawQuery
	}
	return link
}

// pageQuery returns the query of the page a form was posted from. Only a
// referer pointing at the page itself is trusted.
func pageQuery(r *http.Request) url.Values {
	ref := r.Referer()
	if ref == "" {
		return url.Values{}
	}
	u, err := url.Parse(ref)
	if err != nil || u.Path != "/" {
		return url.Values{}
	}
	if u.Host != "" && u.Host != r.Host {
		return url.Values{}
	}
	return u.Query()
}
