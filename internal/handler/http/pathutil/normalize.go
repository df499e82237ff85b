// Package pathutil maps request paths to route templates for metric labels
// and parses numeric path segments.
package pathutil

import (
	"regexp"
	"strings"
)

// Other is the label for paths that match no known route.
const Other = "/other"

type pathPattern struct {
	pattern  *regexp.Regexp
	template string
}

// patterns cover every route with a variable segment. Order matters only
// for overlapping prefixes, so longer routes come first.
var patterns = []pathPattern{
	{pattern: regexp.MustCompile(`^/posts/\d+/(edit|delete|comment)$`), template: "/posts/:id/$1"},
	{pattern: regexp.MustCompile(`^/posts/\d+$`), template: "/posts/:id"},
	{pattern: regexp.MustCompile(`^/group/[^/]+$`), template: "/group/:slug"},
	{pattern: regexp.MustCompile(`^/profile/[^/]+/(follow|unfollow)$`), template: "/profile/:username/$1"},
	{pattern: regexp.MustCompile(`^/profile/[^/]+$`), template: "/profile/:username"},
}

var static = map[string]bool{
	"/":        true,
	"/create":  true,
	"/follow":  true,
	"/health":  true,
	"/metrics": true,
}

// NormalizePath converts a path to its route template, for example
// "/posts/12/edit/" to "/posts/:id/edit". Query strings and a trailing
// slash are ignored. Unknown paths collapse to Other so scanners cannot
// inflate label cardinality.
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	if static[path] {
		return path
	}
	for _, p := range patterns {
		if m := p.pattern.FindStringSubmatchIndex(path); m != nil {
			return string(p.pattern.ExpandString(nil, p.template, path, m))
		}
	}
	return Other
}
