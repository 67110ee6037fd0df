package entity

// User is one registrable identity. It is built from already validated
// values and compares structurally with ==.
type User struct {
	Email       Email
	Password    Password
	Requires2FA bool
}

// NewUser composes a User. It cannot fail.
func NewUser(email Email, password Password, requires2FA bool) User {
	return User{Email: email, Password: password, Requires2FA: requires2FA}
}
