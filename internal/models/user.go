package models

import "time"

// User is an account owner. Password and RecoveryPin hold bcrypt hashes;
// the raw values are never stored or logged.
type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Username    string    `gorm:"size:50;not null;uniqueIndex" json:"username"`
	Email       string    `gorm:"size:100;not null;uniqueIndex" json:"email"`
	Password    string    `gorm:"size:255;not null" json:"-"`
	RecoveryPin *string   `gorm:"size:255" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}
