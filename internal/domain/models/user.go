package models

// User is the phone-keyed customer identity. Password holds a bcrypt hash of
// the phone number, mirroring the login flow's find-or-create contract. It is
// a placeholder, not a secret: possession of the phone number is the whole
// identity proof and the hash is never verified on login.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"-"`
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
}
