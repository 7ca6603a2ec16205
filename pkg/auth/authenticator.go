package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"time"

	slogctx "github.com/veqryn/slog-context"

	"github.com/erikrubstein/monarch-api/pkg/clienterr"
	"github.com/erikrubstein/monarch-api/pkg/csrf"
	"github.com/erikrubstein/monarch-api/pkg/device"
	"github.com/erikrubstein/monarch-api/pkg/session"
)

const defaultTimeout = 30 * time.Second

// Flow tracks where a login attempt stands. It is threaded through call
// arguments and results, never shared between attempts, so two independent
// logins cannot corrupt each other's pending-MFA state.
type Flow int

const (
	FlowUnauthenticated Flow = iota
	FlowAwaitingMFA
	FlowAuthenticated
	FlowFailed
)

func (f Flow) String() string {
	switch f {
	case FlowUnauthenticated:
		return "unauthenticated"
	case FlowAwaitingMFA:
		return "awaiting_mfa"
	case FlowAuthenticated:
		return "authenticated"
	case FlowFailed:
		return "failed"
	}
	return "unknown"
}

// Credentials is the raw input for one login attempt. MFASecret is an
// optional base32 TOTP shared secret used to satisfy a multi-factor
// challenge without user interaction. Credentials are never persisted.
type Credentials struct {
	Email     string
	Password  string
	MFASecret string
}

// Request describes one login attempt.
type Request struct {
	Credentials Credentials
	Persist     bool // save the session on success
	ReuseSaved  bool // try the stored session before the credential exchange
}

// SessionProber checks whether a saved session is still accepted by the
// service, typically by running one lightweight authenticated operation.
type SessionProber interface {
	ProbeSession(ctx context.Context, s session.Session) error
}

// CredentialPrompter collects credentials from an interactive user. The
// authenticator is agnostic to how they are gathered.
type CredentialPrompter interface {
	PromptEmail(ctx context.Context) (string, error)
	PromptPassword(ctx context.Context) (string, error)
	PromptMFACode(ctx context.Context) (string, error)
}

// Authenticator owns the login/MFA state machine. It turns raw credentials
// into a complete session, optionally persisting it through the configured
// store. One Authenticator represents one logical user; it must not be
// shared for concurrent independent logins.
type Authenticator struct {
	store      session.Store
	prober     SessionProber
	prompter   CredentialPrompter
	loginURL   string
	httpClient *http.Client
}

// New returns an Authenticator posting credential exchanges to loginURL.
// store may be nil (no persistence, no saved-session reuse), prober may be
// nil (disables the saved-session fast path), prompter may be nil (disables
// InteractiveLogin).
func New(store session.Store, prober SessionProber, prompter CredentialPrompter, loginURL string, httpClient *http.Client) *Authenticator {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	return &Authenticator{
		store:      store,
		prober:     prober,
		prompter:   prompter,
		loginURL:   loginURL,
		httpClient: httpClient,
	}
}

// Login establishes a session. With ReuseSaved set, a stored session that
// the service still accepts is returned without contacting the credential
// endpoint. Otherwise the credentials are exchanged, a multi-factor
// challenge is satisfied from the TOTP secret when one is configured, and
// the resulting session is persisted when Persist is set.
func (a *Authenticator) Login(ctx context.Context, req Request) (session.Session, error) {
	if req.ReuseSaved {
		if sess, ok := a.reuseSaved(ctx); ok {
			return sess, nil
		}
	}

	if req.Credentials.Email == "" || req.Credentials.Password == "" {
		return session.Session{}, clienterr.LoginFailed("email and password are required")
	}

	deviceUUID := device.Resolve(ctx, a.store)

	sess, flow, err := a.exchange(ctx, req.Credentials, deviceUUID, "")
	if err != nil {
		return session.Session{}, err
	}

	if flow == FlowAwaitingMFA {
		slogctx.Debug(ctx, "Multi-factor challenge received")

		if req.Credentials.MFASecret == "" {
			return session.Session{}, clienterr.MFARequired("a one-time code is required and no TOTP secret is configured")
		}

		code, err := totpCode(req.Credentials.MFASecret, time.Now())
		if err != nil {
			return session.Session{}, clienterr.MFARequired("computing a code from the TOTP secret: " + err.Error())
		}

		sess, _, err = a.exchange(ctx, req.Credentials, deviceUUID, code)
		if err != nil {
			if errors.Is(err, clienterr.ErrLoginFailed) {
				// clock drift; the caller can fall back to manual entry
				return session.Session{}, clienterr.MFARequired("the service rejected the computed one-time code")
			}
			return session.Session{}, err
		}
	}

	if req.Persist {
		if err := a.persist(ctx, sess); err != nil {
			return session.Session{}, err
		}
	}

	slogctx.Info(ctx, "Authenticated with the service")

	return sess, nil
}

// SubmitMFACode completes a login halted by a multi-factor challenge. The
// original request travels with the call, so a second independent login
// attempt is never blocked by a prior pending challenge.
func (a *Authenticator) SubmitMFACode(ctx context.Context, req Request, code string) (session.Session, error) {
	if req.Credentials.Email == "" || req.Credentials.Password == "" {
		return session.Session{}, clienterr.LoginFailed("email and password are required")
	}
	if code == "" {
		return session.Session{}, clienterr.LoginFailed("a one-time code is required")
	}

	deviceUUID := device.Resolve(ctx, a.store)

	sess, _, err := a.exchange(ctx, req.Credentials, deviceUUID, code)
	if err != nil {
		return session.Session{}, err
	}

	if req.Persist {
		if err := a.persist(ctx, sess); err != nil {
			return session.Session{}, err
		}
	}

	slogctx.Info(ctx, "Authenticated with the service after a manual one-time code")

	return sess, nil
}

// InteractiveLogin composes Login with the credential prompter: missing
// credentials are collected interactively, and a multi-factor challenge
// falls back to a prompted one-time code.
func (a *Authenticator) InteractiveLogin(ctx context.Context, req Request) (session.Session, error) {
	if a.prompter == nil {
		return session.Session{}, clienterr.LoginFailed("interactive login requires a credential prompter")
	}

	if req.ReuseSaved {
		if sess, ok := a.reuseSaved(ctx); ok {
			return sess, nil
		}
	}

	creds := req.Credentials
	var err error

	if creds.Email == "" {
		creds.Email, err = a.prompter.PromptEmail(ctx)
		if err != nil {
			return session.Session{}, &clienterr.Error{Code: clienterr.CodeLoginFailed, Description: "collecting the email address", Cause: err}
		}
	}
	if creds.Password == "" {
		creds.Password, err = a.prompter.PromptPassword(ctx)
		if err != nil {
			return session.Session{}, &clienterr.Error{Code: clienterr.CodeLoginFailed, Description: "collecting the password", Cause: err}
		}
	}

	if creds.Email == "" || creds.Password == "" {
		return session.Session{}, clienterr.LoginFailed("email and password are required")
	}

	sess, err := a.Login(ctx, Request{Credentials: creds, Persist: req.Persist})
	if err == nil {
		return sess, nil
	}
	if !errors.Is(err, clienterr.ErrMFARequired) {
		return session.Session{}, err
	}

	code, perr := a.prompter.PromptMFACode(ctx)
	if perr != nil {
		return session.Session{}, &clienterr.Error{Code: clienterr.CodeLoginFailed, Description: "collecting the one-time code", Cause: perr}
	}

	return a.SubmitMFACode(ctx, Request{Credentials: creds, Persist: req.Persist}, code)
}

// DeleteSession erases the persisted session record. Deleting when nothing
// is stored succeeds silently.
func (a *Authenticator) DeleteSession(ctx context.Context) error {
	if a.store == nil {
		return nil
	}
	return a.store.Delete(ctx)
}

// reuseSaved implements the fast path: a stored session the service still
// accepts skips the credential exchange entirely. Every failure here means
// "proceed to a fresh login"; a missing record differs from a corrupt one
// only in how loudly it is logged.
func (a *Authenticator) reuseSaved(ctx context.Context) (session.Session, bool) {
	if a.store == nil || a.prober == nil {
		return session.Session{}, false
	}

	saved, err := a.store.Load(ctx)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slogctx.Debug(ctx, "No saved session found")
		} else {
			slogctx.Warn(ctx, "Ignoring unreadable saved session", "error", err)
		}
		return session.Session{}, false
	}

	if err := a.prober.ProbeSession(ctx, saved); err != nil {
		slogctx.Info(ctx, "Saved session was rejected by the service", "error", err)
		return session.Session{}, false
	}

	slogctx.Info(ctx, "Reusing the saved session")

	return saved, true
}

func (a *Authenticator) persist(ctx context.Context, sess session.Session) error {
	if a.store == nil {
		return clienterr.Storage("session persistence requested but no store is configured", nil)
	}
	if err := a.store.Save(ctx, sess); err != nil {
		return err
	}

	slogctx.Debug(ctx, "Saved the session")

	return nil
}

type loginPayload struct {
	Username      string `json:"username"`
	Password      string `json:"password"`
	TrustedDevice bool   `json:"trusted_device"`
	SupportsMFA   bool   `json:"supports_mfa"`
	TOTP          string `json:"totp,omitempty"`
	EmailOTP      string `json:"email_otp,omitempty"`
}

type loginRejection struct {
	ErrorCode string `json:"error_code"`
	Detail    string `json:"detail"`
}

// exchange performs one round against the credential endpoint. A
// multi-factor challenge is a flow transition, not an error, unless a
// one-time code was already supplied, in which case it is a rejection.
func (a *Authenticator) exchange(ctx context.Context, creds Credentials, deviceUUID, otp string) (session.Session, Flow, error) {
	payload := loginPayload{
		Username:      creds.Email,
		Password:      creds.Password,
		TrustedDevice: true,
		SupportsMFA:   true,
	}
	if otp != "" {
		// authenticator codes travel as "totp", emailed codes as
		// "email_otp"; all-digit codes are ambiguous and sent as both
		payload.TOTP = otp
		if isDigits(otp) {
			payload.EmailOTP = otp
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return session.Session{}, FlowFailed, clienterr.RequestFailed("", "encoding the credential exchange body", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.loginURL, bytes.NewReader(body))
	if err != nil {
		return session.Session{}, FlowFailed, clienterr.RequestFailed("", "creating the credential exchange request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Client-Platform", "web")
	req.Header.Set("device-uuid", deviceUUID)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return session.Session{}, FlowFailed, clienterr.RequestFailed("", "executing the credential exchange", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return session.Session{}, FlowFailed, clienterr.RequestFailed("", "reading the credential exchange response", err)
	}

	switch {
	case resp.StatusCode == http.StatusForbidden:
		var rejection loginRejection
		_ = json.Unmarshal(raw, &rejection)

		if rejection.ErrorCode == "MFA_REQUIRED" && otp == "" {
			return session.Session{}, FlowAwaitingMFA, nil
		}
		if otp != "" {
			return session.Session{}, FlowFailed, clienterr.LoginFailed("the service rejected the one-time code")
		}
		return session.Session{}, FlowFailed, clienterr.LoginFailed(rejectionReason(rejection, resp.StatusCode))

	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		var rejection loginRejection
		_ = json.Unmarshal(raw, &rejection)

		return session.Session{}, FlowFailed, clienterr.LoginFailed(rejectionReason(rejection, resp.StatusCode))

	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return session.Session{}, FlowFailed, clienterr.RequestFailed("",
			fmt.Sprintf("credential endpoint returned status %d", resp.StatusCode), nil)
	}

	var accepted struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(raw, &accepted); err != nil {
		return session.Session{}, FlowFailed, clienterr.RequestFailed("", "decoding the credential exchange response", err)
	}
	if accepted.Token == "" {
		return session.Session{}, FlowFailed, clienterr.LoginFailed("the service returned no session token")
	}

	cookies := make(map[string]string)
	for _, c := range resp.Cookies() {
		cookies[c.Name] = c.Value
	}

	sess := session.Session{
		Cookies:    cookies,
		Token:      accepted.Token,
		DeviceUUID: deviceUUID,
		CSRFToken:  csrf.FromCookies(cookies),
	}

	return sess, FlowAuthenticated, nil
}

func rejectionReason(rejection loginRejection, status int) string {
	if rejection.Detail != "" {
		return "the service rejected the credentials: " + rejection.Detail
	}
	return fmt.Sprintf("the service rejected the credentials with status %d", status)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
