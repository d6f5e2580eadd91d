package auth

import "time"

// TelegramUser is the part of the init-data "user" field the backend reads
type TelegramUser struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"first_name,omitempty"`
	LastName     string `json:"last_name,omitempty"`
	Username     string `json:"username,omitempty"`
	LanguageCode string `json:"language_code,omitempty"`
}

// DisplayName prefers @username, then the first/last name
func (u TelegramUser) DisplayName() string {
	if u.Username != "" {
		return "@" + u.Username
	}
	if u.LastName != "" {
		return u.FirstName + " " + u.LastName
	}
	return u.FirstName
}

// Principal is the authenticated mini-app user
type Principal struct {
	ExternalID int64
	User       TelegramUser
	AuthDate   time.Time
}
