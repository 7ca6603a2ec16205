package csrf

import "net/http"

// The service uses a Django-style double-submit scheme: the login flow sets
// a csrftoken cookie, and requests echo its value back in a header.
const (
	CookieName = "csrftoken"
	HeaderName = "x-csrftoken"
)

// FromCookies returns the CSRF token from a captured cookie set, or the
// empty string when the service set none.
func FromCookies(cookies map[string]string) string {
	return cookies[CookieName]
}

// Attach sets the CSRF header on outbound request headers. An empty token
// leaves the headers untouched.
func Attach(h http.Header, token string) {
	if token != "" {
		h.Set(HeaderName, token)
	}
}
