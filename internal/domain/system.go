package domain

import (
	"time"
)

// User is an API account. Password holds either the salted hash or the
// protector ciphertext, depending on the registration flow.
type User struct {
	ID       int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Email    string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password string `gorm:"size:1024" json:"-"`
	Salt     string `gorm:"size:255" json:"-"`
}

// TableName Specify table name
func (User) TableName() string {
	return "users"
}

// OperationLog is one audit row written by the operation log service
type OperationLog struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Action     string    `gorm:"size:512" json:"action"`
	Controller string    `gorm:"size:128;index" json:"controller"`
	IP         string    `gorm:"size:64" json:"ip"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}

// TableName Specify table name
func (OperationLog) TableName() string {
	return "logs"
}
