package clienterr

// Code enumerates the failure kinds surfaced to callers. The set is closed:
// every error returned by this module carries exactly one of these codes.
type Code string

const (
	// CodeLoginFailed covers rejected credentials and missing/empty input.
	// Never retried automatically; the caller must supply corrected input.
	CodeLoginFailed Code = "login_failed"

	// CodeMFARequired means login halted pending a second factor. It is a
	// required continuation, not a failure of the system.
	CodeMFARequired Code = "mfa_required"

	// CodeRequestFailed covers every post-authentication failure: transient
	// network errors (retried internally before surfacing), an expired or
	// invalid session, or service-reported GraphQL errors.
	CodeRequestFailed Code = "request_failed"

	// CodeStorage covers an unreadable or unwritable session file.
	CodeStorage Code = "storage"
)

// Error is the error shape crossing the module boundary.
type Error struct {
	Code        Code
	Description string
	Operation   string // GraphQL operation name, when one was in flight
	Cause       error
}

var (
	ErrLoginFailed   = &Error{Code: CodeLoginFailed}
	ErrMFARequired   = &Error{Code: CodeMFARequired}
	ErrRequestFailed = &Error{Code: CodeRequestFailed}
	ErrStorage       = &Error{Code: CodeStorage}
)

func (e *Error) Error() string {
	msg := string(e.Code)
	if e.Description != "" {
		msg += ": " + e.Description
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error carrying the same Code, so callers can test with
// errors.Is(err, clienterr.ErrLoginFailed) regardless of description or cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

func LoginFailed(description string) *Error {
	return &Error{Code: CodeLoginFailed, Description: description}
}

func MFARequired(description string) *Error {
	return &Error{Code: CodeMFARequired, Description: description}
}

func RequestFailed(operation, description string, cause error) *Error {
	return &Error{Code: CodeRequestFailed, Description: description, Operation: operation, Cause: cause}
}

func Storage(description string, cause error) *Error {
	return &Error{Code: CodeStorage, Description: description, Cause: cause}
}
