package ccash

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrConnectionNotAvailable is returned when an endpoint wrapper is
	// called on a session that has not been established. The check happens
	// before any network I/O.
	ErrConnectionNotAvailable = errors.New("client connection has not been established; make sure EstablishConnection has been called and returned successfully")

	// ErrCouldNotParseProperties is returned by EstablishConnection when
	// the properties endpoint responds with something that does not parse
	// as SessionProperties, e.g. on an incompatible server version.
	ErrCouldNotParseProperties = errors.New("server returned properties that could not be parsed correctly")
)

// Response is the outcome of one HTTP round trip against the CCash API: the
// status code and the verbatim response body, never mutated after
// construction. The body is kept even for error responses.
type Response struct {
	Code    int
	Message string
}

// Succeeded reports whether the response carried a 2xx status.
func (r Response) Succeeded() bool { return r.Code >= 200 && r.Code < 300 }

func (r Response) serverError() *ServerError {
	return &ServerError{StatusCode: r.Code, Body: r.Message}
}

// ServerError is a non-2xx response from the CCash instance, carrying the
// HTTP status and the raw body text.
type ServerError struct {
	StatusCode int
	Body       string
}

func (e *ServerError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("ccash: server responded with HTTP %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("ccash: server responded with HTTP %d", e.StatusCode)
}

// InternalError reports a problem inside ccash-go itself rather than on the
// wire or the server. Currently only the prune wrapper produces it, when the
// pruned-user count cannot be parsed.
type InternalError struct {
	Reason string
}

func (e *InternalError) Error() string {
	return "ccash-go ran into a problem: " + e.Reason
}

// convertMessage interprets a successful response body as JSON-encoded T.
// Interpreting an error response is always rejected, as a *ServerError.
//
// An empty body, a JSON null and a body that fails to parse as T all yield
// T's zero value. Callers therefore cannot tell "server sent nothing" apart
// from "server sent the zero value"; the CCash wire contract gives no way to
// distinguish them, so the ambiguity is accepted here rather than guessed at.
func convertMessage[T any](r Response) (T, error) {
	var v T
	if !r.Succeeded() {
		return v, r.serverError()
	}
	if err := json.Unmarshal([]byte(r.Message), &v); err != nil {
		var zero T
		return zero, nil
	}
	return v, nil
}
