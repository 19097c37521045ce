package ccash

import (
	"context"
	"net/http"
	"strconv"
	"strings"
)

// Admin wrappers mirror the /v1/admin endpoint namespace. They all take the
// admin credential separately from the target user; nothing is verified
// locally, an unauthorized admin simply gets the server's error response.

// AdminVerifyAccount reports whether admin is the instance's admin account.
// A 401 means "no".
func AdminVerifyAccount(ctx context.Context, session *Session, admin *User) (bool, error) {
	u := session.sessionURL + "/v1/admin/verify_account"

	r, err := dispatch(ctx, http.MethodPost, session, u, admin, nil)
	if err != nil {
		return false, err
	}
	return interpretBool(session, r, http.StatusUnauthorized)
}

// AdminChangePassword changes user's password to newPassword on user's
// behalf, authenticating as admin. On a confirmed change, user is updated in
// place to carry newPassword; on any failure it is left untouched.
func AdminChangePassword(ctx context.Context, session *Session, admin, user *User, newPassword string) (bool, error) {
	u := session.sessionURL + "/v1/admin/user/change_password"
	body := struct {
		Name string `json:"name"`
		Pass string `json:"pass"`
	}{user.username, newPassword}

	r, err := dispatch(ctx, http.MethodPatch, session, u, admin, body)
	if err != nil {
		return false, err
	}
	ok, err := interpretBool(session, r, 0)
	if ok {
		user.updatePassword(newPassword)
	}
	return ok, err
}

// AdminSetBalance sets the balance of the account named username to
// newBalance.
func AdminSetBalance(ctx context.Context, session *Session, admin *User, username string, newBalance uint32) error {
	u := session.sessionURL + "/v1/admin/set_balance"
	body := struct {
		Name   string `json:"name"`
		Amount uint32 `json:"amount"`
	}{username, newBalance}

	r, err := dispatch(ctx, http.MethodPatch, session, u, admin, body)
	if err != nil {
		return err
	}
	if !r.Succeeded() {
		return r.serverError()
	}
	return nil
}

// AdminImpactBalance adjusts the balance of the account named username by
// amount, which may be negative.
func AdminImpactBalance(ctx context.Context, session *Session, admin *User, username string, amount int64) error {
	u := session.sessionURL + "/v1/admin/impact_balance"
	body := struct {
		Name   string `json:"name"`
		Amount int64  `json:"amount"`
	}{username, amount}

	r, err := dispatch(ctx, http.MethodPost, session, u, admin, body)
	if err != nil {
		return err
	}
	if !r.Succeeded() {
		return r.serverError()
	}
	return nil
}

// AdminAddUser registers newUser with a starting balance of amount,
// authenticating as admin. A 409 means the name is already taken.
func AdminAddUser(ctx context.Context, session *Session, admin, newUser *User, amount uint32) (bool, error) {
	u := session.sessionURL + "/v1/admin/user/register"
	body := struct {
		Name   string `json:"name"`
		Pass   string `json:"pass"`
		Amount uint32 `json:"amount"`
	}{newUser.username, newUser.password, amount}

	r, err := dispatch(ctx, http.MethodPost, session, u, admin, body)
	if err != nil {
		return false, err
	}
	return interpretBool(session, r, http.StatusConflict)
}

// AdminDeleteUser removes the account named username from the instance. If
// the instance was built with a deletion-refund account
// (SessionProperties.ReturnOnDelete), remaining funds go there.
func AdminDeleteUser(ctx context.Context, session *Session, admin *User, username string) error {
	u := session.sessionURL + "/v1/admin/user/delete"
	body := struct {
		Name string `json:"name"`
	}{username}

	r, err := dispatch(ctx, http.MethodDelete, session, u, admin, body)
	if err != nil {
		return err
	}
	if !r.Succeeded() {
		return r.serverError()
	}
	return nil
}

// AdminPruneUsers deletes users holding less than amount CSH; when olderThan
// is non-nil, only users whose latest transaction predates it (Unix epoch
// seconds) are considered. Returns the number of users pruned.
func AdminPruneUsers(ctx context.Context, session *Session, admin *User, amount uint32, olderThan *int64) (uint64, error) {
	u := session.sessionURL + "/v1/admin/prune_users"
	body := struct {
		Amount uint32 `json:"amount"`
		Time   *int64 `json:"time,omitempty"`
	}{amount, olderThan}

	r, err := dispatch(ctx, http.MethodPost, session, u, admin, body)
	if err != nil {
		return 0, err
	}
	if !r.Succeeded() {
		return 0, r.serverError()
	}

	// The count is load-bearing here, unlike the other numeric bodies: a
	// body that does not parse is a library-level failure, not a zero.
	count, perr := strconv.ParseUint(strings.TrimSpace(r.Message), 10, 64)
	if perr != nil {
		return 0, &InternalError{Reason: "could not parse amount of users pruned into a valid uint64"}
	}
	return count, nil
}

// AdminClose saves and shuts down the CCash instance. On a confirmed
// shutdown the session is returned to its disconnected state (flag, transport
// and properties cleared together); on failure it is left untouched.
func AdminClose(ctx context.Context, session *Session, admin *User) error {
	u := session.sessionURL + "/v1/admin/shutdown"

	r, err := dispatch(ctx, http.MethodPost, session, u, admin, nil)
	if err != nil {
		return err
	}
	if !r.Succeeded() {
		return r.serverError()
	}

	session.reset()
	return nil
}
