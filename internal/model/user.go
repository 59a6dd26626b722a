// Package model defines database models
package model

import "time"

// Role is the finite set of roles a user can hold. Stored as a plain
// string column so new roles don't need a migration
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	default:
		return false
	}
}

// DefaultAvatarURL is assigned to every freshly activated account until
// the user uploads their own picture
const DefaultAvatarURL = "https://i.pinimg.com/736x/3f/94/70/3f9470b34a8e3f526dbdb022f9f19cf7.jpg"

type User struct {
	ID           string `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"not null" json:"name"`
	Email        string `gorm:"unique;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	Role         Role   `gorm:"default:user" json:"role"`
	Verified     bool   `gorm:"default:false" json:"verified"`

	// AvatarID is empty while the placeholder avatar is in use. Only
	// user-uploaded avatars have an object behind them that can be deleted
	AvatarID  string `json:"avatar_id"`
	AvatarURL string `json:"avatar_url"`

	// ResetCode and ResetExpiry are either both set or both nil.
	// They're cleared in the same save that consumes the code
	ResetCode   *string    `json:"-"`
	ResetExpiry *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
