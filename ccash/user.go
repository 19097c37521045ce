package ccash

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode"
)

var (
	// ErrNameTooShort is returned by NewUser for usernames shorter than 3
	// characters.
	ErrNameTooShort = errors.New("name too short (needs to be at least 3 characters)")

	// ErrNameTooLong is returned by NewUser for usernames longer than 16
	// characters.
	ErrNameTooLong = errors.New("name too long (needs to be at most 16 characters)")

	// ErrNameInvalidCharacters is returned by NewUser for usernames
	// containing anything other than alphanumerics and underscores.
	ErrNameInvalidCharacters = errors.New("name contains invalid characters")
)

// User is a CCash credential pair, attached to requests as HTTP basic auth.
// It marshals to the wire shape the registration endpoints expect:
//
//	{"name": "...", "pass": "..."}
//
// A User is a stable value after construction, with one exception: the
// password-change wrappers update the password in place once the server has
// confirmed the change, so the same User keeps working afterwards.
type User struct {
	username string
	password string
}

// NewUser validates the credential pair against CCash's username rules and
// returns the normalized User. The username is lowercased (CCash usernames
// are always lowercase, so conversion beats rejection), then must be 3-16
// characters of alphanumerics or underscores with no spaces. Spaces are
// stripped from the password.
//
// Errors are ErrNameTooShort, ErrNameTooLong or ErrNameInvalidCharacters
// (match with errors.Is).
func NewUser(username, password string) (*User, error) {
	name := strings.ToLower(username)

	if len(name) < 3 {
		return nil, ErrNameTooShort
	}
	if len(name) > 16 {
		return nil, ErrNameTooLong
	}
	if strings.ContainsRune(name, ' ') {
		return nil, fmt.Errorf("%w: name cannot contain spaces", ErrNameInvalidCharacters)
	}
	for _, r := range name {
		if r == '_' {
			continue
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return nil, fmt.Errorf("%w: name cannot contain non-alphanumeric characters", ErrNameInvalidCharacters)
		}
	}

	return &User{
		username: name,
		password: strings.ReplaceAll(password, " ", ""),
	}, nil
}

// NewUserUnchecked builds a User from raw strings with no validation or
// normalization at all. Prefer NewUser; this constructor is for input that is
// already known-good, such as usernames returned by the server, and shifts
// the risk of rejection to the server side.
func NewUserUnchecked(username, password string) *User {
	return &User{username: username, password: password}
}

// Username returns the user's name.
func (u *User) Username() string { return u.username }

// Password returns the user's password.
func (u *User) Password() string { return u.password }

// updatePassword is the single sanctioned mutation of a User. The
// password-change wrappers call it only after a confirmed server-side
// change, never speculatively.
func (u *User) updatePassword(newPassword string) {
	u.password = newPassword
}

// MarshalJSON emits the registration wire shape, {"name":...,"pass":...}.
func (u *User) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name string `json:"name"`
		Pass string `json:"pass"`
	}{u.username, u.password})
}
