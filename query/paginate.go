package query

import (
	"net/url"
	"strings"
)

// PaginateURL returns the request URL with any page parameter removed and a
// trailing "page=" ready for a page number.
func PaginateURL(u *url.URL) string {
	var kept []string
	for _, part := range strings.Split(u.RawQuery, "&") {
		if part == "" {
			continue
		}
		key := part
		if i := strings.IndexByte(part, '='); i >= 0 {
			key = part[:i]
		}
		if key == "page" {
			continue
		}
		kept = append(kept, part)
	}

	path := u.EscapedPath()
	if len(kept) == 0 {
		return path + "?page="
	}
	return path + "?" + strings.Join(kept, "&") + "&page="
}
