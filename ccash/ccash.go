package ccash

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/ccash-community/ccash-go/util"
)

// ErrorInterpretation controls how the boolean endpoint wrappers (account
// existence, password verification, registration, admin verification) treat
// server error responses.
type ErrorInterpretation int

const (
	// StrictErrors reports false only for the one status code the server
	// uses as a plain "no" (401 for verification calls, 409 for
	// registration calls); every other non-2xx response surfaces as a
	// *ServerError.
	StrictErrors ErrorInterpretation = iota

	// TreatErrorsAsFalse reports every non-2xx response from a boolean
	// endpoint as false.
	TreatErrorsAsFalse
)

// SessionProperties describes the CCash instance, as returned by the
// unauthenticated properties endpoint. Immutable once fetched.
type SessionProperties struct {
	// Version is the API version of the CCash instance.
	Version *uint32 `json:"version,omitempty"`

	// MaxLog is the maximum number of log entries the instance returns
	// from the transaction log endpoints.
	MaxLog uint32 `json:"max_log"`

	// AddUserOpen reports whether unauthenticated user registration is
	// enabled on the instance.
	AddUserOpen *bool `json:"add_user_open,omitempty"`

	// ReturnOnDelete is the account that receives the funds of a deleted
	// user. Optional; set only on instances compiled with that feature.
	ReturnOnDelete *string `json:"return_on_del,omitempty"`
}

// Session describes the connection to one CCash instance. The zero value is
// not usable; construct with NewSession and call EstablishConnection before
// passing it to any endpoint wrapper.
//
// The exported fields are optional knobs and must be set before
// EstablishConnection; everything else is managed by the session itself.
type Session struct {
	// Client optionally overrides the HTTP client used for every request
	// on this session. If nil, a pooled client with default timeouts is
	// created at establishment. The library itself never retries; supply
	// util.RobustHTTPClient here to retry at the transport level.
	Client *http.Client

	// ErrorPolicy selects how boolean endpoint wrappers interpret server
	// error responses. Defaults to StrictErrors.
	ErrorPolicy ErrorInterpretation

	sessionURL string
	connected  bool
	client     *http.Client
	properties *SessionProperties
}

// NewSession constructs a disconnected session for the CCash instance at
// baseURL, e.g. "https://ccash.example.com". One trailing slash is stripped
// if present.
func NewSession(baseURL string) *Session {
	return &Session{
		sessionURL: strings.TrimSuffix(baseURL, "/") + "/api",
	}
}

// EstablishConnection opens the HTTP transport and fetches the instance
// properties. It is idempotent: calling it on an already-connected session is
// a no-op. On failure the session is left exactly as it was, so the call can
// simply be retried; connected, transport and properties are only ever set
// together.
func (s *Session) EstablishConnection(ctx context.Context) error {
	if s.connected {
		return nil
	}

	client := s.Client
	if client == nil {
		client = util.NewHTTPClient()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.sessionURL+"/properties", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent())

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("properties request failed: %w", err)
	}
	defer resp.Body.Close()

	var props SessionProperties
	if err := json.NewDecoder(resp.Body).Decode(&props); err != nil {
		return ErrCouldNotParseProperties
	}

	s.properties = &props
	s.client = client
	s.connected = true
	return nil
}

// HTTPClient returns the transport handle in use by this session, or nil if
// the session has not been established.
func (s *Session) HTTPClient() *http.Client { return s.client }

// IsConnected reports whether EstablishConnection has completed successfully
// and the session has not been closed since.
func (s *Session) IsConnected() bool { return s.connected }

// Properties returns the instance properties fetched at establishment, or
// nil if the session has not been established.
func (s *Session) Properties() *SessionProperties { return s.properties }

// SessionURL returns the API base URL requests are issued against.
func (s *Session) SessionURL() string { return s.sessionURL }

// reset returns the session to its disconnected state. Only AdminClose calls
// this, after the server confirmed the shutdown.
func (s *Session) reset() {
	s.connected = false
	s.client = nil
	s.properties = nil
}
