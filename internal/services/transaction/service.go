package transaction

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"securebank/internal/models"
	"securebank/internal/repositories"
	"securebank/internal/services/fraud"

	"github.com/google/uuid"
)

// service implements the transaction Service interface.
type service struct {
	users  UserDirectory
	store  Store
	scorer Scorer
	now    func() time.Time
}

// NewService creates a new transaction service.
func NewService(users UserDirectory, store Store, scorer Scorer) Service {
	if users == nil {
		panic("user directory is required")
	}
	if store == nil {
		panic("store is required")
	}
	if scorer == nil {
		panic("scorer is required")
	}
	return &service{
		users:  users,
		store:  store,
		scorer: scorer,
		now:    time.Now,
	}
}

// Create validates a transfer, scores it, and persists the scored record.
// Scoring happens strictly before the store write: an unscored transaction
// is never visible to readers.
func (s *service) Create(ctx context.Context, senderID, receiverID uint, amount float64) (*models.Transaction, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if senderID == receiverID {
		return nil, ErrSelfTransfer
	}

	if _, err := s.users.GetByID(senderID); err != nil {
		return nil, fmt.Errorf("%w: id %d", ErrSenderNotFound, senderID)
	}
	if _, err := s.users.GetByID(receiverID); err != nil {
		return nil, fmt.Errorf("%w: id %d", ErrReceiverNotFound, receiverID)
	}

	tx := &models.Transaction{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Amount:     amount,
		Timestamp:  s.now(),
		Reference:  uuid.NewString(),
	}

	score, err := s.scorer.Score(ctx, tx)
	if err != nil {
		log.Printf("scoring failed for transfer %d->%d: %v", senderID, receiverID, err)
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	tx.FraudRiskScore = score.Total()

	if err := s.store.Save(ctx, tx); err != nil {
		// The graph edge recorded during scoring stays; see fraud package doc.
		log.Printf("failed to persist transfer %d->%d: %v", senderID, receiverID, err)
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	return tx, nil
}

// GetBySender returns the sender's transactions, newest first.
func (s *service) GetBySender(ctx context.Context, senderID uint) ([]models.Transaction, error) {
	if _, err := s.users.GetByID(senderID); err != nil {
		return nil, fmt.Errorf("%w: id %d", ErrSenderNotFound, senderID)
	}
	return s.findMany(s.store.FindBySender, ctx, senderID)
}

// GetByReceiver returns the receiver's transactions, newest first.
func (s *service) GetByReceiver(ctx context.Context, receiverID uint) ([]models.Transaction, error) {
	if _, err := s.users.GetByID(receiverID); err != nil {
		return nil, fmt.Errorf("%w: id %d", ErrReceiverNotFound, receiverID)
	}
	return s.findMany(s.store.FindByReceiver, ctx, receiverID)
}

func (s *service) GetByID(ctx context.Context, id uint) (*models.Transaction, error) {
	tx, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrTransactionNotFound, id)
		}
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return tx, nil
}

func (s *service) GetAll(ctx context.Context) ([]models.Transaction, error) {
	txs, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return txs, nil
}

// GetHighRisk returns transactions scored above the high-risk threshold.
func (s *service) GetHighRisk(ctx context.Context) ([]models.Transaction, error) {
	txs, err := s.store.FindByScoreAbove(ctx, fraud.HighRiskThreshold)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return txs, nil
}

func (s *service) CountBySender(ctx context.Context, senderID uint) (int64, error) {
	count, err := s.store.CountBySender(ctx, senderID)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return count, nil
}

func (s *service) findMany(find func(context.Context, uint) ([]models.Transaction, error), ctx context.Context, id uint) ([]models.Transaction, error) {
	txs, err := find(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return txs, nil
}
