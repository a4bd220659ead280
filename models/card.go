package models

// Card is one entry in the catalog of horrible situations. The bad luck
// index is the hidden ranking players have to guess around; routes must only
// serialize it for cards the player already holds.
type Card struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Name         string  `gorm:"uniqueIndex;not null" json:"name"`
	Image        string  `json:"image"`
	BadLuckIndex float64 `gorm:"uniqueIndex;not null" json:"bad_luck_index"`
	Theme        string  `json:"theme"`
}
