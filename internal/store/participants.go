// Package store persists registered participants.
package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"marathon-registration/internal/model"
)

// FirstChestNumber is issued to the first registration.
const FirstChestNumber = 1000

// maxAssignAttempts bounds the retry loop when concurrent registrations
// collide on the same chest number.
const maxAssignAttempts = 10

var (
	// ErrDuplicatePayment means the payment id already backs a registration.
	ErrDuplicatePayment = errors.New("payment already registered")
	// ErrChestNumberContention means assignment kept colliding; the client
	// may safely retry.
	ErrChestNumberContention = errors.New("could not assign a chest number")
)

// Participants is the gorm-backed participant collection. It requires the
// connection to be opened with TranslateError so duplicate-key violations
// surface as gorm.ErrDuplicatedKey on every driver.
type Participants struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Participants {
	return &Participants{db: db}
}

func (s *Participants) Migrate() error {
	return s.db.AutoMigrate(&model.Participant{})
}

// NextChestNumber derives max(chestNumber)+1, or FirstChestNumber when the
// collection is empty. Callers must be prepared for a concurrent writer to
// win the number; Register handles that.
func (s *Participants) NextChestNumber(ctx context.Context) (int, error) {
	var last model.Participant
	err := s.db.WithContext(ctx).Order("chest_number DESC").First(&last).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return FirstChestNumber, nil
	}
	if err != nil {
		return 0, err
	}
	return last.ChestNumber + 1, nil
}

// Register assigns the next chest number and saves the participant. The
// unique index on chest_number serializes the read-modify-write: a loser of
// the race gets a duplicate-key error and retries with a fresh read. A
// duplicate payment id is not retried and returns ErrDuplicatePayment.
func (s *Participants) Register(ctx context.Context, p *model.Participant) error {
	for attempt := 0; attempt < maxAssignAttempts; attempt++ {
		next, err := s.NextChestNumber(ctx)
		if err != nil {
			return err
		}
		p.ChestNumber = next

		err = s.db.WithContext(ctx).Create(p).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}

		var existing model.Participant
		lookup := s.db.WithContext(ctx).Where("payment_id = ?", p.PaymentID).First(&existing).Error
		if lookup == nil {
			return ErrDuplicatePayment
		}
	}
	return ErrChestNumberContention
}

// FindByEmail returns a participant's registrations, newest chest number
// first.
func (s *Participants) FindByEmail(ctx context.Context, email string) ([]model.Participant, error) {
	var out []model.Participant
	err := s.db.WithContext(ctx).Where("email = ?", email).Order("chest_number DESC").Find(&out).Error
	return out, err
}

// All returns every participant, newest chest number first.
func (s *Participants) All(ctx context.Context) ([]model.Participant, error) {
	var out []model.Participant
	err := s.db.WithContext(ctx).Order("chest_number DESC").Find(&out).Error
	return out, err
}

// Count reports how many runners are registered.
func (s *Participants) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&model.Participant{}).Count(&n).Error
	return n, err
}
