package services

import (
	"testing"
	"time"
)

func TestHistory_GamesNewestFirstWithOrderedTrail(t *testing.T) {
	cards := testCatalog()
	games := newFakeGameStore(cards)
	engine := NewEngine(cards, games)
	history := NewHistoryService(games)

	first, err := engine.StartGame(7)
	if err != nil {
		t.Fatalf("start first game: %v", err)
	}
	// Resolve one round so the trail holds more than the initial deal.
	if _, err := engine.ResolveGuess(first.GameID, 4, handCards(first.Cards), 2, 1); err != nil {
		t.Fatalf("resolve guess: %v", err)
	}

	// Fake clock: push the first game back so ordering is observable.
	games.games[first.GameID].StartTime = time.Now().Add(-time.Hour)

	second, err := engine.StartGame(7)
	if err != nil {
		t.Fatalf("start second game: %v", err)
	}

	result, err := history.ForUser(7)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("expected 2 games, got %d", len(result))
	}
	if result[0].Game.ID != second.GameID || result[1].Game.ID != first.GameID {
		t.Fatalf("games must be ordered newest first")
	}

	trail := result[1].Cards
	if len(trail) != 4 {
		t.Fatalf("expected 4 events in the first game's trail, got %d", len(trail))
	}
	for i := 1; i < len(trail); i++ {
		if trail[i-1].Card.BadLuckIndex > trail[i].Card.BadLuckIndex {
			t.Fatalf("trail must be ordered by bad luck index ascending")
		}
	}
}

func TestHistory_EmptyForUnknownUser(t *testing.T) {
	games := newFakeGameStore(testCatalog())
	history := NewHistoryService(games)

	result, err := history.ForUser(404)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(result) != 0 {
		t.Fatalf("expected no games, got %d", len(result))
	}
}
