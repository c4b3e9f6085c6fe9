package models

import "time"

type SessionState struct {
	UserID    int64 `gorm:"primaryKey;autoIncrement:false"`
	Command   string
	State     []byte
	UpdatedAt time.Time
}
