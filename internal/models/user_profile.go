package model

// UserProfile mirrors the remote profile document. UserID comes from the
// auth provider and is treated as an opaque string.
type UserProfile struct {
	UserID     string  `gorm:"primaryKey;size:128" json:"user_id"`
	Username   string  `json:"username"`
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	Email      string  `json:"email"`
	Profession *string `json:"profession,omitempty"`
}
