package client

import "strings"

var fixedSegments = map[string]bool{
	"api":        true,
	"blog":       true,
	"series":     true,
	"comments":   true,
	"auth":       true,
	"login":      true,
	"like":       true,
	"your":       true,
	"visitor_id": true,

	"change-password": true,
}

// routeLabel collapses identifiers in a path so metric labels stay bounded:
// "api/blog/my-post/like" becomes "api/blog/:id/like".
func routeLabel(path string) string {
	path = strings.Trim(path, "/")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}

	segments := strings.Split(path, "/")
	for i, seg := range segments {
		if !fixedSegments[seg] {
			segments[i] = ":id"
		}
	}
	return strings.Join(segments, "/")
}
