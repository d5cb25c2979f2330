package model

// User is a minimal identity record. The password is opaque: it is
// stored exactly as supplied and never returned in responses.
type User struct {
	ID       int64  `db:"id" json:"id"`
	Username string `db:"username" json:"username"`
	Password string `db:"password" json:"-"`
}
