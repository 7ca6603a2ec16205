package csrf_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/erikrubstein/monarch-api/pkg/csrf"
)

func TestFromCookies(t *testing.T) {
	tests := []struct {
		name    string
		cookies map[string]string
		want    string
	}{
		{
			name:    "Token present",
			cookies: map[string]string{"csrftoken": "wq0eXALFRnJ4GBkfUMTyA8VK", "sessionid": "abc"},
			want:    "wq0eXALFRnJ4GBkfUMTyA8VK",
		},
		{
			name:    "Token absent",
			cookies: map[string]string{"sessionid": "abc"},
			want:    "",
		},
		{
			name:    "Nil cookie set",
			cookies: nil,
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, csrf.FromCookies(tt.cookies))
		})
	}
}

func TestAttach(t *testing.T) {
	tests := []struct {
		name       string
		token      string
		wantHeader string
	}{
		{
			name:       "Token attached under the service's header name",
			token:      "wq0eXALFRnJ4GBkfUMTyA8VK",
			wantHeader: "wq0eXALFRnJ4GBkfUMTyA8VK",
		},
		{
			name:       "Empty token leaves headers untouched",
			token:      "",
			wantHeader: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := http.Header{}
			csrf.Attach(h, tt.token)
			assert.Equal(t, tt.wantHeader, h.Get(csrf.HeaderName))
		})
	}
}
