package pagecache

import "strings"

const (
	partitionAuth = "auth"
	partitionAnon = "anon"
)

// Key builds the partition key "<prefix>:<route>:<auth|anon>:<uri>".
// The URI (path and query) keeps different pages of one route apart.
func Key(prefix, route, uri string, authenticated bool) string {
	partition := partitionAnon
	if authenticated {
		partition = partitionAuth
	}

	var b strings.Builder
	b.Grow(len(prefix) + len(route) + len(uri) + 8)
	b.WriteString(prefix)
	b.WriteByte(':')
	b.WriteString(route)
	b.WriteByte(':')
	b.WriteString(partition)
	b.WriteByte(':')
	b.WriteString(uri)
	return b.String()
}
