package domain

import "time"

// User mirrors the verified identity from the auth provider plus the
// profile attributes the platform keeps. Reputation is a cached projection
// of the reputation log, maintained by atomic increments.
type User struct {
	UID        string    `json:"uid"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	AvatarID   int32     `json:"avatar_id"`
	Reputation int32     `json:"reputation"`
	CreatedOn  time.Time `json:"created_on"`
	UpdatedOn  time.Time `json:"updated_on"`
}
