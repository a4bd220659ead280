package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	StatusInitial   = "initial"
	StatusWon       = "won"
	StatusLost      = "lost"
	StatusDiscarded = "discarded"

	// StatusProposed comes from a pre-migration schema. It is never written
	// anymore but old rows with it (and correct = false) still count as losses.
	StatusProposed = "proposed"
)

// GameCard is the append-only event log of a game: the terminal state each
// card reached. A card appears at most once per game, so any card referenced
// here is ineligible for future rounds of the same game.
type GameCard struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	GameID      uint       `gorm:"not null;uniqueIndex:idx_game_card" json:"game_id"`
	Game        Game       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;foreignKey:GameID" json:"-"`
	CardID      uint       `gorm:"not null;uniqueIndex:idx_game_card" json:"card_id"`
	Card        Card       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;foreignKey:CardID" json:"card"`
	Status      string     `gorm:"not null" json:"status"` // initial | won | lost | discarded
	RoundNumber *int       `json:"round_number,omitempty"` // nil for initial deal
	GuessTime   *time.Time `json:"guess_time,omitempty"`
	Correct     *bool      `json:"correct,omitempty"`
	// ProposedHand keeps the hand the client submitted with the guess, for audit.
	ProposedHand datatypes.JSON `json:"-"`
	CreatedAt    time.Time      `json:"created_at"`
}
