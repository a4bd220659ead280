package services

import (
	"time"

	"stuffhappens/models"
)

// HandCard is the (card, bad luck index) pair the judge and the engine
// reason about. For guesses it is also the shape the client submits its
// claimed hand in.
type HandCard struct {
	CardID       uint    `json:"card_id"`
	BadLuckIndex float64 `json:"bad_luck_index"`
}

// RoundCard is the client-facing view of a freshly drawn card. It
// deliberately has no bad luck index field: the index stays hidden until the
// round is resolved.
type RoundCard struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
	Theme string `json:"theme"`
}

// CardStore is the catalog port: random draws and authoritative lookups.
type CardStore interface {
	// DrawRandom returns up to count cards picked uniformly at random from
	// the catalog minus exclude, with no repeats. A short result is not an
	// error at this level; callers that need an exact count must check.
	DrawRandom(count int, exclude []uint) ([]models.Card, error)
	CardByID(id uint) (*models.Card, error)
}

// GameStore is the persistence port for games and their event logs. It is
// injected into the engine so tests can swap in doubles; nothing in the core
// touches a database handle directly.
type GameStore interface {
	InsertGame(userID uint, startTime time.Time) (uint, error)
	InsertGameCardEvent(ev *models.GameCard) error
	// UpdateGameOutcome writes the terminal fields. Implementations must only
	// apply it to a game still in progress so an outcome is recorded once.
	UpdateGameOutcome(gameID uint, endTime time.Time, outcome string, collected int) error
	GameByID(gameID uint) (*models.Game, error)
	// QueryEventsForGame returns the full event log with card detail,
	// ordered by bad luck index ascending.
	QueryEventsForGame(gameID uint) ([]models.GameCard, error)
	QueryInvolvedCardIDs(gameID uint) ([]uint, error)
	QueryWonCount(gameID uint) (int, error)
	// QueryLostCount counts lost and discarded events, plus legacy proposed
	// rows flagged incorrect.
	QueryLostCount(gameID uint) (int, error)
	// QueryGamesForUser returns the user's games, newest start time first.
	QueryGamesForUser(userID uint) ([]models.Game, error)
	// Transaction runs fn against a store whose writes commit together or
	// not at all.
	Transaction(fn func(GameStore) error) error
}
