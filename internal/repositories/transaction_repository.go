package repositories

import (
	"context"
	"time"

	"securebank/internal/models"
)

// TransactionRepository is the durable store for transaction records. It
// also serves as the fraud engine's history provider.
type TransactionRepository interface {
	// Save persists a new transaction and assigns its id.
	Save(ctx context.Context, tx *models.Transaction) error

	// FindBySender returns a sender's transactions, newest first.
	FindBySender(ctx context.Context, senderID uint) ([]models.Transaction, error)

	// FindByReceiver returns a receiver's transactions, newest first.
	FindByReceiver(ctx context.Context, receiverID uint) ([]models.Transaction, error)

	// FindByID returns one transaction or ErrTransactionNotFound.
	FindByID(ctx context.Context, id uint) (*models.Transaction, error)

	// FindAll returns every stored transaction, newest first.
	FindAll(ctx context.Context) ([]models.Transaction, error)

	// FindByScoreAbove returns transactions with a fraud risk score
	// strictly greater than minScore.
	FindByScoreAbove(ctx context.Context, minScore int) ([]models.Transaction, error)

	// CountBySender returns the number of transactions a sender has made.
	CountBySender(ctx context.Context, senderID uint) (int64, error)

	// LatestTimestampBySender returns the timestamp of the sender's most
	// recent transaction strictly before the given instant, or nil.
	LatestTimestampBySender(ctx context.Context, senderID uint, before time.Time) (*time.Time, error)
}
