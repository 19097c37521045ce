package ccash

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddUserRequestBody(t *testing.T) {
	ctx := context.Background()

	var gotBody, gotAuthHeader string
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/user/register", func(w http.ResponseWriter, r *http.Request) {
		gotAuthHeader = r.Header.Get("Authorization")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
	})
	session := establishedSession(t, mux)

	user, err := NewUser("alice", "secret pass")
	require.NoError(t, err)

	ok, err := AddUser(ctx, session, user)
	require.NoError(t, err)
	assert.True(t, ok)
	// registration is unauthenticated and carries the normalized credential
	assert.Empty(t, gotAuthHeader)
	assert.Equal(t, `{"name":"alice","pass":"secretpass"}`, gotBody)
}

func TestGetBalance(t *testing.T) {
	ctx := context.Background()

	var gotQuery, gotName, gotPass string
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/user/balance", func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("name")
		gotName, gotPass, _ = r.BasicAuth()
		fmt.Fprint(w, "42")
	})
	session := establishedSession(t, mux)

	user, err := NewUser("alice", "secret pass")
	require.NoError(t, err)

	balance, err := GetBalance(ctx, session, user)
	require.NoError(t, err)
	assert.Equal(t, uint32(42), balance)
	assert.Equal(t, "alice", gotQuery)
	assert.Equal(t, "alice", gotName)
	assert.Equal(t, "secretpass", gotPass)
}

func TestGetBalanceEmptyBody(t *testing.T) {
	ctx := context.Background()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/user/balance", func(w http.ResponseWriter, r *http.Request) {})
	session := establishedSession(t, mux)

	balance, err := GetBalance(ctx, session, NewUserUnchecked("alice", "pw"))
	require.NoError(t, err)
	assert.Equal(t, uint32(0), balance)
}

func TestGetBalanceServerError(t *testing.T) {
	ctx := context.Background()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/user/balance", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, "wrong password")
	})
	session := establishedSession(t, mux)

	_, err := GetBalance(ctx, session, NewUserUnchecked("alice", "wrong"))
	var serverErr *ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, http.StatusUnauthorized, serverErr.StatusCode)
	assert.Equal(t, "wrong password", serverErr.Body)
}

func TestBooleanErrorPolicy(t *testing.T) {
	ctx := context.Background()

	type call func(ctx context.Context, session *Session) (bool, error)
	verify := func(ctx context.Context, session *Session) (bool, error) {
		return VerifyPassword(ctx, session, NewUserUnchecked("alice", "pw"))
	}
	register := func(ctx context.Context, session *Session) (bool, error) {
		return AddUser(ctx, session, NewUserUnchecked("alice", "pw"))
	}

	testCases := []struct {
		name      string
		path      string
		call      call
		code      int
		policy    ErrorInterpretation
		want      bool
		wantError bool
	}{
		{name: "verify success", path: "/api/v1/user/verify_password", call: verify, code: 200, want: true},
		{name: "verify 401 strict", path: "/api/v1/user/verify_password", call: verify, code: 401, want: false},
		{name: "verify 500 strict", path: "/api/v1/user/verify_password", call: verify, code: 500, wantError: true},
		{name: "verify 409 strict", path: "/api/v1/user/verify_password", call: verify, code: 409, wantError: true},
		{name: "verify 500 lenient", path: "/api/v1/user/verify_password", call: verify, code: 500, policy: TreatErrorsAsFalse, want: false},
		{name: "verify 404 lenient", path: "/api/v1/user/verify_password", call: verify, code: 404, policy: TreatErrorsAsFalse, want: false},
		{name: "register success", path: "/api/v1/user/register", call: register, code: 200, want: true},
		{name: "register 409 strict", path: "/api/v1/user/register", call: register, code: 409, want: false},
		{name: "register 401 strict", path: "/api/v1/user/register", call: register, code: 401, wantError: true},
		{name: "register 401 lenient", path: "/api/v1/user/register", call: register, code: 401, policy: TreatErrorsAsFalse, want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mux := http.NewServeMux()
			mux.HandleFunc(tc.path, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.code)
			})
			session := establishedSession(t, mux)
			session.ErrorPolicy = tc.policy

			got, err := tc.call(ctx, session)
			if tc.wantError {
				var serverErr *ServerError
				require.ErrorAs(t, err, &serverErr)
				assert.Equal(t, tc.code, serverErr.StatusCode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestContainsUser(t *testing.T) {
	ctx := context.Background()

	var gotQuery string
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/user/exists", func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("name")
	})
	session := establishedSession(t, mux)

	exists, err := ContainsUser(ctx, session, NewUserUnchecked("bob", "pw"))
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, "bob", gotQuery)
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()

	var gotMethod, gotBody, gotPass string
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/user/change_password", func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		_, gotPass, _ = r.BasicAuth()
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
	})
	session := establishedSession(t, mux)

	user, err := NewUser("alice", "secret pass")
	require.NoError(t, err)

	ok, err := ChangePassword(ctx, session, user, "newpass")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, http.MethodPatch, gotMethod)
	// the request authenticates with the old password and carries the new one
	assert.Equal(t, "secretpass", gotPass)
	assert.JSONEq(t, `{"pass":"newpass"}`, gotBody)
	// the in-memory credential now carries the confirmed password
	assert.Equal(t, "newpass", user.Password())
}

func TestChangePasswordFailureLeavesUser(t *testing.T) {
	ctx := context.Background()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/user/change_password", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	session := establishedSession(t, mux)

	user, err := NewUser("alice", "secret pass")
	require.NoError(t, err)

	_, err = ChangePassword(ctx, session, user, "newpass")
	require.Error(t, err)
	assert.Equal(t, "secretpass", user.Password())
}

func TestSendFunds(t *testing.T) {
	ctx := context.Background()

	var gotBody string
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/user/transfer", func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		fmt.Fprint(w, "37")
	})
	session := establishedSession(t, mux)

	balance, err := SendFunds(ctx, session, NewUserUnchecked("alice", "pw"), "bob", 5)
	require.NoError(t, err)
	assert.Equal(t, uint32(37), balance)
	assert.JSONEq(t, `{"name":"bob","amount":5}`, gotBody)
}

func TestGetLogV2(t *testing.T) {
	ctx := context.Background()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v2/user/log", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[
			{"counterparty":"bob","receiving":false,"amount":5,"time":1136239445},
			{"counterparty":"carol","receiving":true,"amount":3,"time":1136239500}
		]`)
	})
	session := establishedSession(t, mux)

	entries, err := GetLogV2(ctx, session, NewUserUnchecked("alice", "pw"))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "bob", entries[0].Counterparty)
	assert.False(t, entries[0].Receiving)
	assert.Equal(t, "carol", entries[1].Counterparty)
	assert.True(t, entries[1].Receiving)
}

func TestGetLogLegacy(t *testing.T) {
	ctx := context.Background()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/user/log", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[{"to":"bob","from":"alice","amount":5,"time":1136239445}]`)
	})
	session := establishedSession(t, mux)

	entries, err := GetLog(ctx, session, NewUserUnchecked("alice", "pw"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "bob", entries[0].To)
	assert.Equal(t, "alice", entries[0].From)
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()

	var gotMethod string
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/user/delete", func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
	})
	session := establishedSession(t, mux)

	require.NoError(t, DeleteUser(ctx, session, NewUserUnchecked("alice", "pw")))
	assert.Equal(t, http.MethodDelete, gotMethod)
}

func TestDeleteUserError(t *testing.T) {
	ctx := context.Background()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/user/delete", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	session := establishedSession(t, mux)

	err := DeleteUser(ctx, session, NewUserUnchecked("alice", "wrong"))
	var serverErr *ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, http.StatusUnauthorized, serverErr.StatusCode)
}
