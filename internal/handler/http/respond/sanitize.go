package respond

import (
	"regexp"
)

var (
	// credentials inside connection URLs (postgres, redis)
	urlPasswordPattern = regexp.MustCompile(`://([^:/@]*):([^@/]+)@`)

	// compact JWS: three base64url segments, header starts with {"
	jwtPattern = regexp.MustCompile(`eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+`)
)

// SanitizeError returns the error message with credentials masked.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	msg = urlPasswordPattern.ReplaceAllString(msg, "://$1:****@")
	msg = jwtPattern.ReplaceAllString(msg, "****")
	return msg
}
