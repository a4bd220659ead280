package services

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"stuffhappens/models"
	"stuffhappens/utils/logger"

	"gorm.io/datatypes"
)

const (
	initialHandSize = 3
	winsToFinish    = 3
	lossesToFinish  = 3
)

// Engine owns the per-game state machine: start, round resolution, win/lose
// detection, termination. All mutating operations on a given game id are
// serialized through a per-game mutex, so a guess and a timeout racing for
// the same round cannot both be accepted.
type Engine struct {
	cards CardStore
	games GameStore

	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func NewEngine(cards CardStore, games GameStore) *Engine {
	return &Engine{
		cards: cards,
		games: games,
		locks: make(map[uint]*sync.Mutex),
	}
}

// StartResult is the reply to a new game: the player's own cards are full
// detail, hidden index included.
type StartResult struct {
	GameID uint          `json:"game_id"`
	Cards  []models.Card `json:"cards"`
}

// GuessResult is the reply to a resolved guess. Outcome is empty while the
// game is still in progress.
type GuessResult struct {
	Correct      bool          `json:"correct"`
	BadLuckIndex float64       `json:"bad_luck_index"`
	WonCard      *models.Card  `json:"won_card,omitempty"`
	Hand         []models.Card `json:"hand"`
	Outcome      string        `json:"outcome,omitempty"`
	WonCount     int           `json:"won_count"`
	LostCount    int           `json:"lost_count"`
}

type TimeoutResult struct {
	Outcome   string `json:"outcome,omitempty"`
	LostCount int    `json:"lost_count"`
}

// StartGame deals 3 distinct cards and persists the game header plus its
// three initial events in one atomic unit.
func (e *Engine) StartGame(userID uint) (*StartResult, error) {
	cards, err := e.cards.DrawRandom(initialHandSize, nil)
	if err != nil {
		return nil, fmt.Errorf("draw initial hand: %w", err)
	}
	if len(cards) < initialHandSize {
		return nil, ErrInsufficientCards
	}
	sortByBadLuck(cards)

	now := time.Now()
	var gameID uint
	err = e.games.Transaction(func(tx GameStore) error {
		id, err := tx.InsertGame(userID, now)
		if err != nil {
			return err
		}
		for _, c := range cards {
			ev := &models.GameCard{GameID: id, CardID: c.ID, Status: models.StatusInitial}
			if err := tx.InsertGameCardEvent(ev); err != nil {
				return err
			}
		}
		gameID = id
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("persist new game: %w", err)
	}

	logger.Infof("[Engine] game %d started for user %d", gameID, userID)
	return &StartResult{GameID: gameID, Cards: cards}, nil
}

// NextRoundCard draws the candidate for the next round, excluding every card
// already involved in the game in any status. The bad luck index stays
// hidden until the round resolves.
func (e *Engine) NextRoundCard(gameID uint) (*RoundCard, error) {
	game, err := e.games.GameByID(gameID)
	if err != nil {
		return nil, err
	}
	if game.Outcome != models.GameInProgress {
		return nil, ErrGameFinished
	}

	involved, err := e.games.QueryInvolvedCardIDs(gameID)
	if err != nil {
		return nil, fmt.Errorf("query involved cards: %w", err)
	}
	drawn, err := e.cards.DrawRandom(1, involved)
	if err != nil {
		return nil, fmt.Errorf("draw round card: %w", err)
	}
	if len(drawn) == 0 {
		return nil, ErrNoCardsRemaining
	}

	c := drawn[0]
	return &RoundCard{ID: c.ID, Name: c.Name, Image: c.Image, Theme: c.Theme}, nil
}

// ResolveGuess judges a placement and appends the round's event. The
// authoritative bad luck index is re-fetched by card id; the client-supplied
// hand is used for the structural order check only.
func (e *Engine) ResolveGuess(gameID, cardID uint, proposedHand []HandCard, placementIndex, roundNumber int) (*GuessResult, error) {
	if placementIndex < 0 || placementIndex > len(proposedHand) {
		return nil, ErrInvalidPlacement
	}

	unlock := e.lockGame(gameID)
	defer unlock()

	if err := e.guardRound(gameID, cardID, roundNumber); err != nil {
		return nil, err
	}
	card, err := e.cards.CardByID(cardID)
	if err != nil {
		return nil, err
	}

	correct := PlacementCorrect(proposedHand, HandCard{CardID: card.ID, BadLuckIndex: card.BadLuckIndex}, placementIndex)
	status := models.StatusLost
	if correct {
		status = models.StatusWon
	}
	payload, _ := json.Marshal(proposedHand)

	outcome, won, lost, err := e.recordResolution(gameID, roundEvent{
		cardID:  cardID,
		status:  status,
		correct: correct,
		round:   roundNumber,
		payload: payload,
	})
	if err != nil {
		return nil, err
	}

	hand, err := e.currentHand(gameID)
	if err != nil {
		return nil, err
	}

	res := &GuessResult{
		Correct:      correct,
		BadLuckIndex: card.BadLuckIndex,
		Hand:         hand,
		WonCount:     won,
		LostCount:    lost,
	}
	if correct {
		res.WonCard = card
	}
	if outcome != models.GameInProgress {
		res.Outcome = outcome
	}
	return res, nil
}

// ResolveTimeout records a round the player let expire: always a loss, card
// discarded. A timeout for a round whose guess was already accepted is
// rejected with ErrRoundResolved.
func (e *Engine) ResolveTimeout(gameID, cardID uint, roundNumber int) (*TimeoutResult, error) {
	unlock := e.lockGame(gameID)
	defer unlock()

	if err := e.guardRound(gameID, cardID, roundNumber); err != nil {
		return nil, err
	}
	if _, err := e.cards.CardByID(cardID); err != nil {
		return nil, err
	}

	outcome, _, lost, err := e.recordResolution(gameID, roundEvent{
		cardID:  cardID,
		status:  models.StatusDiscarded,
		correct: false,
		round:   roundNumber,
	})
	if err != nil {
		return nil, err
	}

	res := &TimeoutResult{LostCount: lost}
	if outcome != models.GameInProgress {
		res.Outcome = outcome
	}
	return res, nil
}

// EndGame force-terminates a stuck game (e.g. after NoCardsRemaining). The
// outcome of an already finished game is never overwritten.
func (e *Engine) EndGame(gameID uint, outcome string) error {
	if outcome != models.GameWon && outcome != models.GameLost {
		return fmt.Errorf("invalid outcome %q", outcome)
	}

	unlock := e.lockGame(gameID)
	defer unlock()

	game, err := e.games.GameByID(gameID)
	if err != nil {
		return err
	}
	if game.Outcome != models.GameInProgress {
		return ErrGameFinished
	}

	hand, err := e.currentHand(gameID)
	if err != nil {
		return err
	}
	if err := e.games.UpdateGameOutcome(gameID, time.Now(), outcome, len(hand)); err != nil {
		return fmt.Errorf("end game %d: %w", gameID, err)
	}
	e.releaseGame(gameID)
	logger.Infof("[Engine] game %d force-ended: %s", gameID, outcome)
	return nil
}

// CurrentHand returns the cards the player holds right now, ascending by
// bad luck index.
func (e *Engine) CurrentHand(gameID uint) ([]models.Card, error) {
	if _, err := e.games.GameByID(gameID); err != nil {
		return nil, err
	}
	return e.currentHand(gameID)
}

// -------------------- internals --------------------

type roundEvent struct {
	cardID  uint
	status  string
	correct bool
	round   int
	payload []byte
}

// guardRound rejects resolutions for finished games, cards already involved,
// and rounds already resolved.
func (e *Engine) guardRound(gameID, cardID uint, roundNumber int) error {
	game, err := e.games.GameByID(gameID)
	if err != nil {
		return err
	}
	if game.Outcome != models.GameInProgress {
		return ErrGameFinished
	}

	events, err := e.games.QueryEventsForGame(gameID)
	if err != nil {
		return fmt.Errorf("query game events: %w", err)
	}
	for _, ev := range events {
		if ev.CardID == cardID {
			return ErrRoundResolved
		}
		if ev.RoundNumber != nil && *ev.RoundNumber == roundNumber {
			return ErrRoundResolved
		}
	}
	return nil
}

// recordResolution appends the round's event, recomputes the counters and,
// when a threshold is crossed, writes the terminal fields, all in one
// transaction so a crash can never leave an event without its header update.
func (e *Engine) recordResolution(gameID uint, r roundEvent) (outcome string, won, lost int, err error) {
	now := time.Now()
	outcome = models.GameInProgress

	err = e.games.Transaction(func(tx GameStore) error {
		round := r.round
		correct := r.correct
		ev := &models.GameCard{
			GameID:       gameID,
			CardID:       r.cardID,
			Status:       r.status,
			RoundNumber:  &round,
			GuessTime:    &now,
			Correct:      &correct,
			ProposedHand: datatypes.JSON(r.payload),
		}
		if err := tx.InsertGameCardEvent(ev); err != nil {
			return err
		}

		var err error
		if won, err = tx.QueryWonCount(gameID); err != nil {
			return err
		}
		if lost, err = tx.QueryLostCount(gameID); err != nil {
			return err
		}

		switch {
		case won >= winsToFinish:
			outcome = models.GameWon
		case lost >= lossesToFinish:
			outcome = models.GameLost
		default:
			return nil
		}

		events, err := tx.QueryEventsForGame(gameID)
		if err != nil {
			return err
		}
		collected := 0
		for _, held := range events {
			if held.Status == models.StatusInitial || held.Status == models.StatusWon {
				collected++
			}
		}
		return tx.UpdateGameOutcome(gameID, now, outcome, collected)
	})
	if err != nil {
		return "", 0, 0, fmt.Errorf("record round %d: %w", r.round, err)
	}

	if outcome != models.GameInProgress {
		e.releaseGame(gameID)
		logger.Infof("[Engine] game %d finished: %s (won=%d lost=%d)", gameID, outcome, won, lost)
	}
	return outcome, won, lost, nil
}

func (e *Engine) currentHand(gameID uint) ([]models.Card, error) {
	events, err := e.games.QueryEventsForGame(gameID)
	if err != nil {
		return nil, fmt.Errorf("rebuild hand: %w", err)
	}
	hand := make([]models.Card, 0, len(events))
	for _, ev := range events {
		if ev.Status == models.StatusInitial || ev.Status == models.StatusWon {
			hand = append(hand, ev.Card)
		}
	}
	sortByBadLuck(hand)
	return hand, nil
}

// lockGame serializes mutating operations on one game id.
func (e *Engine) lockGame(gameID uint) func() {
	e.mu.Lock()
	l, ok := e.locks[gameID]
	if !ok {
		l = &sync.Mutex{}
		e.locks[gameID] = l
	}
	e.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// releaseGame drops the lock entry of a finished game so the map does not
// grow with every game ever played.
func (e *Engine) releaseGame(gameID uint) {
	e.mu.Lock()
	delete(e.locks, gameID)
	e.mu.Unlock()
}

func sortByBadLuck(cards []models.Card) {
	sort.Slice(cards, func(i, j int) bool {
		return cards[i].BadLuckIndex < cards[j].BadLuckIndex
	})
}
