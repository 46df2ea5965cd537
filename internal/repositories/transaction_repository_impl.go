package repositories

import (
	"context"
	"errors"
	"time"

	"securebank/internal/models"

	"gorm.io/gorm"
)

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new instance of TransactionRepository
func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Save(ctx context.Context, tx *models.Transaction) error {
	if err := r.db.WithContext(ctx).Create(tx).Error; err != nil {
		return ErrDatabaseOperation
	}
	return nil
}

func (r *transactionRepository) FindBySender(ctx context.Context, senderID uint) ([]models.Transaction, error) {
	var txs []models.Transaction
	err := r.db.WithContext(ctx).
		Where("sender_id = ?", senderID).
		Order("timestamp DESC").
		Find(&txs).Error
	if err != nil {
		return nil, ErrDatabaseOperation
	}
	return txs, nil
}

func (r *transactionRepository) FindByReceiver(ctx context.Context, receiverID uint) ([]models.Transaction, error) {
	var txs []models.Transaction
	err := r.db.WithContext(ctx).
		Where("receiver_id = ?", receiverID).
		Order("timestamp DESC").
		Find(&txs).Error
	if err != nil {
		return nil, ErrDatabaseOperation
	}
	return txs, nil
}

func (r *transactionRepository) FindByID(ctx context.Context, id uint) (*models.Transaction, error) {
	var tx models.Transaction
	if err := r.db.WithContext(ctx).First(&tx, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, ErrDatabaseOperation
	}
	return &tx, nil
}

func (r *transactionRepository) FindAll(ctx context.Context) ([]models.Transaction, error) {
	var txs []models.Transaction
	if err := r.db.WithContext(ctx).Order("timestamp DESC").Find(&txs).Error; err != nil {
		return nil, ErrDatabaseOperation
	}
	return txs, nil
}

func (r *transactionRepository) FindByScoreAbove(ctx context.Context, minScore int) ([]models.Transaction, error) {
	var txs []models.Transaction
	err := r.db.WithContext(ctx).
		Where("fraud_risk_score > ?", minScore).
		Order("timestamp DESC").
		Find(&txs).Error
	if err != nil {
		return nil, ErrDatabaseOperation
	}
	return txs, nil
}

func (r *transactionRepository) CountBySender(ctx context.Context, senderID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("sender_id = ?", senderID).
		Count(&count).Error
	if err != nil {
		return 0, ErrDatabaseOperation
	}
	return count, nil
}

func (r *transactionRepository) LatestTimestampBySender(ctx context.Context, senderID uint, before time.Time) (*time.Time, error) {
	var tx models.Transaction
	err := r.db.WithContext(ctx).
		Where("sender_id = ? AND timestamp < ?", senderID, before).
		Order("timestamp DESC").
		First(&tx).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, ErrDatabaseOperation
	}
	return &tx.Timestamp, nil
}
