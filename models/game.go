package models

import "time"

const (
	GameInProgress = "in_progress"
	GameWon        = "won"
	GameLost       = "lost"
)

type Game struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	UserID         uint       `gorm:"index;not null" json:"user_id"`
	User           User       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;foreignKey:UserID" json:"-"`
	StartTime      time.Time  `gorm:"not null" json:"start_time"`
	EndTime        *time.Time `json:"end_time,omitempty"`
	Outcome        string     `gorm:"not null;default:in_progress" json:"outcome"` // in_progress | won | lost
	CardsCollected int        `json:"cards_collected"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
