package services

import "stuffhappens/models"

// GameHistory is one past game with its full round-by-round card trail.
type GameHistory struct {
	Game  models.Game       `json:"game"`
	Cards []models.GameCard `json:"cards"`
}

// HistoryService rebuilds a user's past games from the persisted event logs.
// Read-only; one fan-out read per game.
type HistoryService struct {
	games GameStore
}

func NewHistoryService(games GameStore) *HistoryService {
	return &HistoryService{games: games}
}

// ForUser returns the user's games newest first, each with its event log
// ordered by bad luck index ascending.
func (h *HistoryService) ForUser(userID uint) ([]GameHistory, error) {
	games, err := h.games.QueryGamesForUser(userID)
	if err != nil {
		return nil, err
	}

	history := make([]GameHistory, 0, len(games))
	for _, g := range games {
		events, err := h.games.QueryEventsForGame(g.ID)
		if err != nil {
			return nil, err
		}
		history = append(history, GameHistory{Game: g, Cards: events})
	}
	return history, nil
}
