package transaction

import (
	"context"

	"securebank/internal/models"
	"securebank/internal/services/fraud"
)

// UserDirectory resolves transaction participants.
type UserDirectory interface {
	GetByID(id uint) (*models.User, error)
}

// Store persists transaction records. It is the source of truth and the
// only collaborator that blocks on external I/O.
type Store interface {
	Save(ctx context.Context, tx *models.Transaction) error
	FindBySender(ctx context.Context, senderID uint) ([]models.Transaction, error)
	FindByReceiver(ctx context.Context, receiverID uint) ([]models.Transaction, error)
	FindByID(ctx context.Context, id uint) (*models.Transaction, error)
	FindAll(ctx context.Context) ([]models.Transaction, error)
	FindByScoreAbove(ctx context.Context, minScore int) ([]models.Transaction, error)
	CountBySender(ctx context.Context, senderID uint) (int64, error)
}

// Scorer computes the fraud risk score for a transaction.
type Scorer interface {
	Score(ctx context.Context, tx *models.Transaction) (fraud.Score, error)
}

// Service creates and retrieves scored transactions.
type Service interface {
	Create(ctx context.Context, senderID, receiverID uint, amount float64) (*models.Transaction, error)
	GetBySender(ctx context.Context, senderID uint) ([]models.Transaction, error)
	GetByReceiver(ctx context.Context, receiverID uint) ([]models.Transaction, error)
	GetByID(ctx context.Context, id uint) (*models.Transaction, error)
	GetAll(ctx context.Context) ([]models.Transaction, error)
	GetHighRisk(ctx context.Context) ([]models.Transaction, error)
	CountBySender(ctx context.Context, senderID uint) (int64, error)
}
