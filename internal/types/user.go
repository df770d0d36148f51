package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type User struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string         `gorm:"uniqueIndex;not null;column:email" json:"email"`
	PasswordHash string         `gorm:"not null;column:password_hash" json:"-"`
	Username     string         `gorm:"not null;column:username" json:"username"`
	Preferences  datatypes.JSON `gorm:"type:jsonb;column:preferences" json:"preferences"`
	CreatedAt    time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt    time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

// PublicUser is the shape returned from register/login/profile. The password
// hash never leaves the service layer.
type PublicUser struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Username string    `json:"username"`
}

func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Email: u.Email, Username: u.Username}
}
