package services

import "errors"

var (
	// ErrInsufficientCards means the catalog cannot cover the requested deal.
	ErrInsufficientCards = errors.New("not enough cards in the catalog")
	// ErrNoCardsRemaining means every catalog card is already involved in the game.
	ErrNoCardsRemaining = errors.New("no cards remaining for this game")
	ErrCardNotFound     = errors.New("card not found")
	ErrGameNotFound     = errors.New("game not found")
	// ErrGameFinished rejects any mutation on a game that already has an outcome.
	ErrGameFinished = errors.New("game already finished")
	// ErrRoundResolved rejects a second resolution for the same round, e.g. a
	// timeout arriving after the guess for that round was already accepted.
	ErrRoundResolved    = errors.New("round already resolved")
	ErrInvalidPlacement = errors.New("placement index out of range")
)
