package domain

import "time"

type Notification struct {
	ID        int32     `json:"id"`
	UserUID   string    `json:"user_uid"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Link      string    `json:"link,omitempty"`
	IsRead    bool      `json:"is_read"`
	CreatedOn time.Time `json:"created_on"`
}
