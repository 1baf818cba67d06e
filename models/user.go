package models

import "time"

// User is a stored user record. Email is the unique key across the
// collection (exact, case-sensitive match).
type User struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	PasswordDigest string     `json:"password_digest"`
	Phone          string     `json:"phone,omitempty"`
	TaxID          string     `json:"tax_id,omitempty"`
	PetName        string     `json:"pet_name,omitempty"`
	Newsletter     bool       `json:"newsletter"`
	CreatedAt      time.Time  `json:"created_at"`
	LastLoginAt    *time.Time `json:"last_login_at"`
}

// Session is the public projection of a User, stored in its own slot.
// It never carries the password digest.
type Session struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone,omitempty"`
	TaxID       string     `json:"tax_id,omitempty"`
	PetName     string     `json:"pet_name,omitempty"`
	Newsletter  bool       `json:"newsletter"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLoginAt *time.Time `json:"last_login_at"`
}

// Session strips the password digest from a user record.
func (u User) Session() Session {
	return Session{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Phone:       u.Phone,
		TaxID:       u.TaxID,
		PetName:     u.PetName,
		Newsletter:  u.Newsletter,
		CreatedAt:   u.CreatedAt,
		LastLoginAt: u.LastLoginAt,
	}
}

// Snapshot is a read-only diagnostic dump of the user store.
type Snapshot struct {
	Users          []User    `json:"users"`
	CurrentSession *Session  `json:"current_session"`
	ExportedAt     time.Time `json:"exported_at"`
}

// Stats aggregates counts over the user collection.
type Stats struct {
	TotalUsers             int `json:"total_users"`
	UsersWithPet           int `json:"users_with_pet"`
	NewsletterSubscribers  int `json:"newsletter_subscribers"`
	UsersCreatedInLastWeek int `json:"users_created_in_last_week"`
}
