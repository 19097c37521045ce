package ccash

import (
	"context"
	"net/http"
	"net/url"
)

// interpretBool maps a boolean endpoint's response onto true/false/error
// under the session's error policy. falseCode is the one status the server
// uses as a plain "no" for this endpoint; pass 0 when the endpoint has none.
func interpretBool(session *Session, r Response, falseCode int) (bool, error) {
	switch {
	case r.Succeeded():
		return true, nil
	case session.ErrorPolicy == TreatErrorsAsFalse:
		return false, nil
	case falseCode != 0 && r.Code == falseCode:
		return false, nil
	default:
		return false, r.serverError()
	}
}

// GetBalance returns the balance of user. Requires a correct password.
func GetBalance(ctx context.Context, session *Session, user *User) (uint32, error) {
	params := url.Values{"name": []string{user.username}}
	u := session.sessionURL + "/v1/user/balance?" + params.Encode()

	r, err := dispatch(ctx, http.MethodGet, session, u, user, nil)
	if err != nil {
		return 0, err
	}
	return convertMessage[uint32](r)
}

// GetLog returns the transaction log for user in the v1 schema. Requires a
// correct password. The instance caps the number of entries at
// SessionProperties.MaxLog.
//
// Deprecated: use GetLogV2 where the server supports it.
func GetLog(ctx context.Context, session *Session, user *User) ([]TransactionLog, error) {
	u := session.sessionURL + "/v1/user/log"

	r, err := dispatch(ctx, http.MethodGet, session, u, user, nil)
	if err != nil {
		return nil, err
	}
	return convertMessage[[]TransactionLog](r)
}

// GetLogV2 returns the transaction log for user in the v2 schema. Requires a
// correct password. The instance caps the number of entries at
// SessionProperties.MaxLog.
func GetLogV2(ctx context.Context, session *Session, user *User) ([]TransactionLogV2, error) {
	u := session.sessionURL + "/v2/user/log"

	r, err := dispatch(ctx, http.MethodGet, session, u, user, nil)
	if err != nil {
		return nil, err
	}
	return convertMessage[[]TransactionLogV2](r)
}

// ContainsUser reports whether an account with user's name exists on the
// instance. The password is not checked; a 401 means "no such account".
func ContainsUser(ctx context.Context, session *Session, user *User) (bool, error) {
	params := url.Values{"name": []string{user.username}}
	u := session.sessionURL + "/v1/user/exists?" + params.Encode()

	r, err := dispatch(ctx, http.MethodGet, session, u, user, nil)
	if err != nil {
		return false, err
	}
	return interpretBool(session, r, http.StatusUnauthorized)
}

// VerifyPassword reports whether user's password is correct.
func VerifyPassword(ctx context.Context, session *Session, user *User) (bool, error) {
	u := session.sessionURL + "/v1/user/verify_password"

	r, err := dispatch(ctx, http.MethodPost, session, u, user, nil)
	if err != nil {
		return false, err
	}
	return interpretBool(session, r, http.StatusUnauthorized)
}

// ChangePassword changes user's password to newPassword. On a confirmed
// change, user is updated in place to carry newPassword so it keeps
// authenticating; on any failure it is left untouched.
func ChangePassword(ctx context.Context, session *Session, user *User, newPassword string) (bool, error) {
	u := session.sessionURL + "/v1/user/change_password"
	body := struct {
		Pass string `json:"pass"`
	}{newPassword}

	r, err := dispatch(ctx, http.MethodPatch, session, u, user, body)
	if err != nil {
		return false, err
	}
	ok, err := interpretBool(session, r, 0)
	if ok {
		user.updatePassword(newPassword)
	}
	return ok, err
}

// SendFunds transfers amount CSH from user to the account named recipient,
// and returns user's balance after the transfer.
func SendFunds(ctx context.Context, session *Session, user *User, recipient string, amount uint32) (uint32, error) {
	u := session.sessionURL + "/v1/user/transfer"
	body := struct {
		Name   string `json:"name"`
		Amount uint32 `json:"amount"`
	}{recipient, amount}

	r, err := dispatch(ctx, http.MethodPost, session, u, user, body)
	if err != nil {
		return 0, err
	}
	return convertMessage[uint32](r)
}

// AddUser registers user on the instance with a balance of 0. The request is
// unauthenticated; a 409 means the name is already taken. Instances with
// SessionProperties.AddUserOpen disabled reject this call.
func AddUser(ctx context.Context, session *Session, user *User) (bool, error) {
	u := session.sessionURL + "/v1/user/register"

	r, err := dispatch(ctx, http.MethodPost, session, u, nil, user)
	if err != nil {
		return false, err
	}
	return interpretBool(session, r, http.StatusConflict)
}

// DeleteUser removes user's account from the instance. Requires a correct
// password.
func DeleteUser(ctx context.Context, session *Session, user *User) error {
	u := session.sessionURL + "/v1/user/delete"

	r, err := dispatch(ctx, http.MethodDelete, session, u, user, nil)
	if err != nil {
		return err
	}
	if !r.Succeeded() {
		return r.serverError()
	}
	return nil
}
