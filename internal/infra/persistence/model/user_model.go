// Package model contains the GORM persistence models mirroring database tables.
package model

import "time"

// UserModel mirrors the 'users' table. The unique index on email is the
// authoritative guard against duplicate registration: the application-level
// existence check is advisory only and the constraint decides races.
type UserModel struct {
	ID                 int64     `gorm:"primaryKey;autoIncrement"`
	Email              string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash       string    `gorm:"type:varchar(255);not null"`
	PasswordSaltRounds int       `gorm:"not null"`
	Role               string    `gorm:"type:varchar(32);not null"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
