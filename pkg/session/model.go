package session

import "maps"

// Session is the durable authentication artifact for one Monarch account.
// It is either absent or complete; a partial session is never persisted.
type Session struct {
	Cookies    map[string]string `json:"cookies"`     // Cookie name to value, exactly as set by the service
	Token      string            `json:"token"`       // Bearer token sent as "Authorization: Token <value>"
	DeviceUUID string            `json:"device_uuid"` // Device identifier, stable across logins from this installation
	CSRFToken  string            `json:"csrf_token"`  // CSRF token captured during login, empty when the service set none
}

// Valid reports whether the session carries everything the transport needs
// to authenticate a request.
func (s Session) Valid() bool {
	return s.Token != "" && s.DeviceUUID != ""
}

// Clone returns a deep copy, so callers holding a stored session cannot be
// affected by later mutation of the cookie map.
func (s Session) Clone() Session {
	out := s
	if s.Cookies != nil {
		out.Cookies = maps.Clone(s.Cookies)
	}
	return out
}
