package model

// Identity is the decoded credential claim for the acting user.
type Identity struct {
	UserID int64
	Role   Role
}
