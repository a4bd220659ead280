package services

import (
	"errors"
	"sort"
	"time"

	"stuffhappens/models"
)

// fakeCardStore deals cards deterministically in slice order so tests can
// predict every draw.
type fakeCardStore struct {
	cards []models.Card
}

func (f *fakeCardStore) DrawRandom(count int, exclude []uint) ([]models.Card, error) {
	excluded := make(map[uint]bool, len(exclude))
	for _, id := range exclude {
		excluded[id] = true
	}

	var out []models.Card
	for _, c := range f.cards {
		if len(out) == count {
			break
		}
		if !excluded[c.ID] {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCardStore) CardByID(id uint) (*models.Card, error) {
	for _, c := range f.cards {
		if c.ID == id {
			card := c
			return &card, nil
		}
	}
	return nil, ErrCardNotFound
}

// fakeGameStore keeps games and events in memory. Transactions snapshot the
// whole state and restore it when fn fails, mirroring a rollback.
type fakeGameStore struct {
	cards       *fakeCardStore
	games       map[uint]*models.Game
	events      []models.GameCard
	nextGameID  uint
	nextEventID uint

	// failEventInsertAt makes the Nth InsertGameCardEvent call fail (1-based).
	failEventInsertAt int
	eventInserts      int
	outcomeWrites     int
}

func newFakeGameStore(cards *fakeCardStore) *fakeGameStore {
	return &fakeGameStore{
		cards: cards,
		games: make(map[uint]*models.Game),
	}
}

func (f *fakeGameStore) InsertGame(userID uint, startTime time.Time) (uint, error) {
	f.nextGameID++
	f.games[f.nextGameID] = &models.Game{
		ID:        f.nextGameID,
		UserID:    userID,
		StartTime: startTime,
		Outcome:   models.GameInProgress,
	}
	return f.nextGameID, nil
}

func (f *fakeGameStore) InsertGameCardEvent(ev *models.GameCard) error {
	f.eventInserts++
	if f.failEventInsertAt != 0 && f.eventInserts == f.failEventInsertAt {
		return errors.New("simulated write failure")
	}
	for _, existing := range f.events {
		if existing.GameID == ev.GameID && existing.CardID == ev.CardID {
			return errors.New("duplicate (game, card) event")
		}
	}
	f.nextEventID++
	stored := *ev
	stored.ID = f.nextEventID
	f.events = append(f.events, stored)
	return nil
}

func (f *fakeGameStore) UpdateGameOutcome(gameID uint, endTime time.Time, outcome string, collected int) error {
	g, ok := f.games[gameID]
	if !ok {
		return ErrGameNotFound
	}
	if g.Outcome != models.GameInProgress {
		return ErrGameFinished
	}
	f.outcomeWrites++
	end := endTime
	g.EndTime = &end
	g.Outcome = outcome
	g.CardsCollected = collected
	return nil
}

func (f *fakeGameStore) GameByID(gameID uint) (*models.Game, error) {
	g, ok := f.games[gameID]
	if !ok {
		return nil, ErrGameNotFound
	}
	copied := *g
	return &copied, nil
}

func (f *fakeGameStore) QueryEventsForGame(gameID uint) ([]models.GameCard, error) {
	var out []models.GameCard
	for _, ev := range f.events {
		if ev.GameID != gameID {
			continue
		}
		card, err := f.cards.CardByID(ev.CardID)
		if err == nil {
			ev.Card = *card
		}
		out = append(out, ev)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Card.BadLuckIndex < out[j].Card.BadLuckIndex
	})
	return out, nil
}

func (f *fakeGameStore) QueryInvolvedCardIDs(gameID uint) ([]uint, error) {
	var ids []uint
	for _, ev := range f.events {
		if ev.GameID == gameID {
			ids = append(ids, ev.CardID)
		}
	}
	return ids, nil
}

func (f *fakeGameStore) QueryWonCount(gameID uint) (int, error) {
	count := 0
	for _, ev := range f.events {
		if ev.GameID == gameID && ev.Status == models.StatusWon {
			count++
		}
	}
	return count, nil
}

func (f *fakeGameStore) QueryLostCount(gameID uint) (int, error) {
	count := 0
	for _, ev := range f.events {
		if ev.GameID != gameID {
			continue
		}
		switch {
		case ev.Status == models.StatusLost || ev.Status == models.StatusDiscarded:
			count++
		case ev.Status == models.StatusProposed && ev.Correct != nil && !*ev.Correct:
			count++
		}
	}
	return count, nil
}

func (f *fakeGameStore) QueryGamesForUser(userID uint) ([]models.Game, error) {
	var out []models.Game
	for _, g := range f.games {
		if g.UserID == userID {
			out = append(out, *g)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartTime.After(out[j].StartTime)
	})
	return out, nil
}

func (f *fakeGameStore) Transaction(fn func(GameStore) error) error {
	snapGames := make(map[uint]*models.Game, len(f.games))
	for id, g := range f.games {
		copied := *g
		snapGames[id] = &copied
	}
	snapEvents := append([]models.GameCard(nil), f.events...)
	snapNextGame, snapNextEvent := f.nextGameID, f.nextEventID
	snapOutcomeWrites := f.outcomeWrites

	if err := fn(f); err != nil {
		f.games = snapGames
		f.events = snapEvents
		f.nextGameID, f.nextEventID = snapNextGame, snapNextEvent
		f.outcomeWrites = snapOutcomeWrites
		return err
	}
	return nil
}

// testCatalog is the fixture from the round-resolution scenarios:
// indices 1, 5, 9 are dealt first, 7 is the first round candidate.
func testCatalog(extra ...models.Card) *fakeCardStore {
	cards := []models.Card{
		{ID: 1, Name: "Dropped your phone in the toilet", BadLuckIndex: 1, Theme: "daily"},
		{ID: 2, Name: "Missed the last train home", BadLuckIndex: 5, Theme: "travel"},
		{ID: 3, Name: "House flooded during vacation", BadLuckIndex: 9, Theme: "home"},
		{ID: 4, Name: "Locked out in the rain", BadLuckIndex: 7, Theme: "home"},
	}
	cards = append(cards, extra...)
	return &fakeCardStore{cards: cards}
}

func handCards(cards []models.Card) []HandCard {
	hand := make([]HandCard, len(cards))
	for i, c := range cards {
		hand[i] = HandCard{CardID: c.ID, BadLuckIndex: c.BadLuckIndex}
	}
	return hand
}
