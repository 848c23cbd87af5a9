package entity

// User is the minimal record kept in client storage after login.
type User struct {
	ID      string `json:"id"`
	IsAdmin bool   `json:"isAdmin"`
}
