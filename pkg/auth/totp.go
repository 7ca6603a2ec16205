package auth

import (
	"strings"
	"time"

	"github.com/pquerna/otp/totp"
)

// totpCode computes the time-based one-time code for the given instant from
// a base32 shared secret. The service validates with a small clock-skew
// window; a rejected code is an MFA condition, never a transport failure.
func totpCode(secret string, at time.Time) (string, error) {
	return totp.GenerateCode(normalizeSecret(secret), at)
}

// normalizeSecret strips the spacing and lowercasing that provisioning UIs
// commonly apply to displayed secrets.
func normalizeSecret(secret string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(secret), " ", ""))
}
