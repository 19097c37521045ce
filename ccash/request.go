package ccash

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/carlmjohnson/versioninfo"
)

func userAgent() string {
	return "ccash-go/" + versioninfo.Short()
}

// dispatch builds and sends one request against the CCash API and normalizes
// whatever comes back into a Response. A nil user sends the request
// unauthenticated; a nil body sends no payload.
//
// Transport-level failures (DNS, refused connections, timeouts) are wrapped
// and propagated, never swallowed. A response that arrives is always a
// Response, whatever its status code.
func dispatch(ctx context.Context, method string, session *Session, url string, user *User, body any) (Response, error) {
	if !session.connected || session.client == nil {
		return Response{}, ErrConnectionNotAvailable
	}

	var payload io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return Response{}, err
		}
		payload = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, payload)
	if err != nil {
		return Response{}, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent())
	if user != nil {
		req.SetBasicAuth(user.username, user.password)
	}

	resp, err := session.client.Do(req)
	if err != nil {
		return Response{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	// The body text is carried verbatim even on error responses; an
	// unreadable body degrades to the empty string instead of failing the
	// whole call.
	msg, err := io.ReadAll(resp.Body)
	if err != nil {
		msg = nil
	}

	return Response{Code: resp.StatusCode, Message: string(msg)}, nil
}
