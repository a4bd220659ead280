package storage

import (
	"errors"
	"time"

	"stuffhappens/models"
	"stuffhappens/services"

	"gorm.io/gorm"
)

// Store implements services.CardStore and services.GameStore on gorm.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// -------------------- catalog --------------------

func (s *Store) DrawRandom(count int, exclude []uint) ([]models.Card, error) {
	q := s.db.Order("RANDOM()").Limit(count)
	if len(exclude) > 0 {
		q = q.Where("id NOT IN ?", exclude)
	}

	var cards []models.Card
	if err := q.Find(&cards).Error; err != nil {
		return nil, err
	}
	return cards, nil
}

func (s *Store) CardByID(id uint) (*models.Card, error) {
	var card models.Card
	if err := s.db.First(&card, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrCardNotFound
		}
		return nil, err
	}
	return &card, nil
}

// -------------------- games --------------------

func (s *Store) InsertGame(userID uint, startTime time.Time) (uint, error) {
	game := models.Game{
		UserID:    userID,
		StartTime: startTime,
		Outcome:   models.GameInProgress,
	}
	if err := s.db.Create(&game).Error; err != nil {
		return 0, err
	}
	return game.ID, nil
}

func (s *Store) InsertGameCardEvent(ev *models.GameCard) error {
	return s.db.Create(ev).Error
}

// UpdateGameOutcome only matches a game still in progress, so the terminal
// fields are written exactly once no matter how often it is called.
func (s *Store) UpdateGameOutcome(gameID uint, endTime time.Time, outcome string, collected int) error {
	res := s.db.Model(&models.Game{}).
		Where("id = ? AND outcome = ?", gameID, models.GameInProgress).
		Updates(map[string]interface{}{
			"end_time":        endTime,
			"outcome":         outcome,
			"cards_collected": collected,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return services.ErrGameFinished
	}
	return nil
}

func (s *Store) GameByID(gameID uint) (*models.Game, error) {
	var game models.Game
	if err := s.db.First(&game, gameID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrGameNotFound
		}
		return nil, err
	}
	return &game, nil
}

func (s *Store) QueryEventsForGame(gameID uint) ([]models.GameCard, error) {
	var events []models.GameCard
	err := s.db.Joins("Card").
		Where("game_cards.game_id = ?", gameID).
		Order("\"Card\".bad_luck_index ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (s *Store) QueryInvolvedCardIDs(gameID uint) ([]uint, error) {
	var ids []uint
	err := s.db.Model(&models.GameCard{}).
		Where("game_id = ?", gameID).
		Pluck("card_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (s *Store) QueryWonCount(gameID uint) (int, error) {
	var count int64
	err := s.db.Model(&models.GameCard{}).
		Where("game_id = ? AND status = ?", gameID, models.StatusWon).
		Count(&count).Error
	return int(count), err
}

// QueryLostCount counts lost and discarded events. The extra branch picks up
// rows written under the pre-migration proposed status with correct = false.
func (s *Store) QueryLostCount(gameID uint) (int, error) {
	var count int64
	err := s.db.Model(&models.GameCard{}).
		Where("game_id = ? AND (status IN ? OR (status = ? AND correct = ?))",
			gameID, []string{models.StatusLost, models.StatusDiscarded}, models.StatusProposed, false).
		Count(&count).Error
	return int(count), err
}

func (s *Store) QueryGamesForUser(userID uint) ([]models.Game, error) {
	var games []models.Game
	err := s.db.Where("user_id = ?", userID).
		Order("start_time DESC").
		Find(&games).Error
	if err != nil {
		return nil, err
	}
	return games, nil
}

func (s *Store) Transaction(fn func(services.GameStore) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}
