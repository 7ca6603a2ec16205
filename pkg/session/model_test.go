package session_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/erikrubstein/monarch-api/pkg/session"
)

func TestSession_Valid(t *testing.T) {
	tests := []struct {
		name string
		sess session.Session
		want bool
	}{
		{
			name: "Complete session",
			sess: session.Session{
				Cookies:    map[string]string{"csrftoken": "abc"},
				Token:      "token-value",
				DeviceUUID: "fffa1c45-d83b-4ecf-a72c-1bb372f839f6",
				CSRFToken:  "abc",
			},
			want: true,
		},
		{
			name: "No cookies is still complete",
			sess: session.Session{
				Token:      "token-value",
				DeviceUUID: "fffa1c45-d83b-4ecf-a72c-1bb372f839f6",
			},
			want: true,
		},
		{
			name: "Missing token",
			sess: session.Session{DeviceUUID: "fffa1c45-d83b-4ecf-a72c-1bb372f839f6"},
			want: false,
		},
		{
			name: "Missing device identifier",
			sess: session.Session{Token: "token-value"},
			want: false,
		},
		{
			name: "Zero value",
			sess: session.Session{},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.sess.Valid())
		})
	}
}

func TestSession_Clone(t *testing.T) {
	orig := session.Session{
		Cookies:    map[string]string{"csrftoken": "abc", "sessionid": "xyz"},
		Token:      "token-value",
		DeviceUUID: "fffa1c45-d83b-4ecf-a72c-1bb372f839f6",
		CSRFToken:  "abc",
	}

	clone := orig.Clone()
	assert.Equal(t, orig, clone)

	clone.Cookies["csrftoken"] = "mutated"
	assert.Equal(t, "abc", orig.Cookies["csrftoken"], "clone must not share the cookie map")
}
