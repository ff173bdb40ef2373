package db

import (
	"time"

	"gorm.io/datatypes"
)

type Room struct {
	ID                  uint      `gorm:"primaryKey"`
	RoomCode            string    `gorm:"size:12;uniqueIndex;not null"`
	Status              string    `gorm:"size:32;not null"`
	Mode                string    `gorm:"size:16;not null"`
	TimePerRound        int       `gorm:"not null;default:60"`
	CharactersPerPlayer int       `gorm:"not null;default:3"`
	Category            string    `gorm:"size:64"`
	// State holds the engine snapshot so an unfinished room can be
	// restored after a restart.
	State     datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt time.Time      `gorm:"not null"`
	UpdatedAt time.Time      `gorm:"not null"`
	Players   []Player
	Events    []Event
}
