package models

import (
	"github.com/maxaizer/nearby-jobs-bot/internal/geo"
	"time"
)

type User struct {
	ID           int64 `gorm:"primaryKey"`
	TelegramID   int64 `gorm:"uniqueIndex;not null"`
	Username     string
	FirstName    string
	Phone        *string
	Latitude     *float64
	Longitude    *float64
	LocationName *string
	IsEmployer   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u *User) HasLocation() bool {
	return u.Latitude != nil && u.Longitude != nil
}

func (u *User) Location() geo.Coordinate {
	if !u.HasLocation() {
		return geo.Coordinate{}
	}
	return geo.Coordinate{Latitude: *u.Latitude, Longitude: *u.Longitude}
}
