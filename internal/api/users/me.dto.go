package users

import "time"

type MeResponse struct {
	User   UserDTO   `json:"user"`
	Access AccessDTO `json:"access"`
}

type UserDTO struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// AccessDTO lists what the caller may do to an unlocked entry it did not
// create.
type AccessDTO struct {
	Role       string   `json:"role"`
	Operations []string `json:"operations"`
}
