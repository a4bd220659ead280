package services

import (
	"fmt"

	"stuffhappens/models"
)

// DemoEngine is the single-round, unauthenticated variant of the game.
// It touches nothing but the catalog and persists nothing.
type DemoEngine struct {
	cards CardStore
}

func NewDemoEngine(cards CardStore) *DemoEngine {
	return &DemoEngine{cards: cards}
}

type DemoStart struct {
	Cards    []models.Card `json:"cards"`
	NextCard RoundCard     `json:"next_card"`
}

type DemoGuessResult struct {
	Correct      bool         `json:"correct"`
	BadLuckIndex float64      `json:"bad_luck_index"`
	WonCard      *models.Card `json:"won_card,omitempty"`
}

// Start deals 3 cards sorted ascending plus a 4th with its index hidden.
func (d *DemoEngine) Start() (*DemoStart, error) {
	hand, err := d.cards.DrawRandom(initialHandSize, nil)
	if err != nil {
		return nil, fmt.Errorf("draw demo hand: %w", err)
	}
	if len(hand) < initialHandSize {
		return nil, ErrInsufficientCards
	}
	sortByBadLuck(hand)

	exclude := make([]uint, len(hand))
	for i, c := range hand {
		exclude[i] = c.ID
	}
	drawn, err := d.cards.DrawRandom(1, exclude)
	if err != nil {
		return nil, fmt.Errorf("draw demo round card: %w", err)
	}
	if len(drawn) == 0 {
		return nil, ErrInsufficientCards
	}

	next := drawn[0]
	return &DemoStart{
		Cards:    hand,
		NextCard: RoundCard{ID: next.ID, Name: next.Name, Image: next.Image, Theme: next.Theme},
	}, nil
}

// ResolveGuess judges the demo placement by the same rule as a real round.
// The hand is fully caller-supplied since no server-side state exists, but
// the judged card's index is still re-fetched from the catalog.
func (d *DemoEngine) ResolveGuess(initialCards []HandCard, newCardID uint, placementIndex int) (*DemoGuessResult, error) {
	if placementIndex < 0 || placementIndex > len(initialCards) {
		return nil, ErrInvalidPlacement
	}

	card, err := d.cards.CardByID(newCardID)
	if err != nil {
		return nil, err
	}

	correct := PlacementCorrect(initialCards, HandCard{CardID: card.ID, BadLuckIndex: card.BadLuckIndex}, placementIndex)
	res := &DemoGuessResult{
		Correct:      correct,
		BadLuckIndex: card.BadLuckIndex,
	}
	if correct {
		res.WonCard = card
	}
	return res, nil
}
