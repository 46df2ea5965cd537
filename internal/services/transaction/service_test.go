package transaction

import (
	"context"
	"sync"
	"testing"
	"time"

	"securebank/internal/models"
	"securebank/internal/repositories"
	"securebank/internal/services/fraud"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUserDirectory struct {
	mock.Mock
}

func (m *MockUserDirectory) GetByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockStore struct {
	mock.Mock

	mu     sync.Mutex
	nextID uint
	saved  []models.Transaction
}

func (m *MockStore) Save(ctx context.Context, tx *models.Transaction) error {
	args := m.Called(ctx, tx)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	m.mu.Lock()
	m.nextID++
	tx.ID = m.nextID
	m.saved = append(m.saved, *tx)
	m.mu.Unlock()
	return nil
}

func (m *MockStore) FindBySender(ctx context.Context, senderID uint) ([]models.Transaction, error) {
	args := m.Called(ctx, senderID)
	if txs := args.Get(0); txs != nil {
		return txs.([]models.Transaction), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) FindByReceiver(ctx context.Context, receiverID uint) ([]models.Transaction, error) {
	args := m.Called(ctx, receiverID)
	if txs := args.Get(0); txs != nil {
		return txs.([]models.Transaction), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) FindByID(ctx context.Context, id uint) (*models.Transaction, error) {
	args := m.Called(ctx, id)
	if tx := args.Get(0); tx != nil {
		return tx.(*models.Transaction), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) FindAll(ctx context.Context) ([]models.Transaction, error) {
	args := m.Called(ctx)
	if txs := args.Get(0); txs != nil {
		return txs.([]models.Transaction), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) FindByScoreAbove(ctx context.Context, minScore int) ([]models.Transaction, error) {
	args := m.Called(ctx, minScore)
	if txs := args.Get(0); txs != nil {
		return txs.([]models.Transaction), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) CountBySender(ctx context.Context, senderID uint) (int64, error) {
	args := m.Called(ctx, senderID)
	return args.Get(0).(int64), args.Error(1)
}

// LatestTimestampBySender makes the mock store double as the fraud
// engine's history provider, mirroring the real repository.
func (m *MockStore) LatestTimestampBySender(ctx context.Context, senderID uint, before time.Time) (*time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var latest *time.Time
	for i := range m.saved {
		tx := m.saved[i]
		if tx.SenderID != senderID || !tx.Timestamp.Before(before) {
			continue
		}
		if latest == nil || tx.Timestamp.After(*latest) {
			latest = &tx.Timestamp
		}
	}
	return latest, nil
}

func (m *MockStore) Saved() []models.Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Transaction(nil), m.saved...)
}

func knownUsers(ids ...uint) *MockUserDirectory {
	dir := new(MockUserDirectory)
	for _, id := range ids {
		dir.On("GetByID", id).Return(&models.User{Email: "user@example.com"}, nil)
	}
	dir.On("GetByID", mock.Anything).Return(nil, repositories.ErrUserNotFound)
	return dir
}

func newTestService(users UserDirectory, store *MockStore) (*service, *fraud.Engine) {
	engine := fraud.NewEngine(store)
	svc := NewService(users, store, engine).(*service)
	return svc, engine
}

func TestService_Create_Validation(t *testing.T) {
	tests := []struct {
		name     string
		sender   uint
		receiver uint
		amount   float64
		wantErr  error
	}{
		{"zero amount", 1, 2, 0, ErrInvalidAmount},
		{"negative amount", 1, 2, -50, ErrInvalidAmount},
		{"self transfer", 1, 1, 100, ErrSelfTransfer},
		{"unknown sender", 77, 2, 100, ErrSenderNotFound},
		{"unknown receiver", 1, 77, 100, ErrReceiverNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(MockStore)
			svc, engine := newTestService(knownUsers(1, 2), store)

			_, err := svc.Create(context.Background(), tt.sender, tt.receiver, tt.amount)
			require.ErrorIs(t, err, tt.wantErr)

			// Failed validation must leave no trace: no edge, no row.
			assert.Equal(t, 0, engine.OutDegree(tt.sender))
			assert.Empty(t, store.Saved())
		})
	}
}

func TestService_Create_FirstTransfer(t *testing.T) {
	store := new(MockStore)
	store.On("Save", mock.Anything, mock.Anything).Return(nil)
	svc, engine := newTestService(knownUsers(1, 2), store)

	tx, err := svc.Create(context.Background(), 1, 2, 500)
	require.NoError(t, err)

	assert.Equal(t, uint(1), tx.ID)
	assert.Equal(t, 3, tx.FraudRiskScore)
	assert.Equal(t, fraud.BandLowRisk, fraud.RiskLevel(tx.FraudRiskScore))
	assert.NotEmpty(t, tx.Reference)
	assert.False(t, tx.Timestamp.IsZero())
	assert.Equal(t, 1, engine.OutDegree(1))
}

func TestService_Create_ScoresBeforePersisting(t *testing.T) {
	store := new(MockStore)
	store.On("Save", mock.Anything, mock.MatchedBy(func(tx *models.Transaction) bool {
		// The record handed to the store must already carry its score.
		return tx.FraudRiskScore >= 3
	})).Return(nil)
	svc, _ := newTestService(knownUsers(1, 2), store)

	_, err := svc.Create(context.Background(), 1, 2, 150_000)
	require.NoError(t, err)
	store.AssertExpectations(t)

	saved := store.Saved()
	require.Len(t, saved, 1)
	assert.Equal(t, 5, saved[0].FraudRiskScore)
}

func TestService_Create_RepeatedPairAddsNoEdge(t *testing.T) {
	store := new(MockStore)
	store.On("Save", mock.Anything, mock.Anything).Return(nil)
	svc, engine := newTestService(knownUsers(1, 2), store)

	for i := 0; i < 3; i++ {
		_, err := svc.Create(context.Background(), 1, 2, 500)
		require.NoError(t, err)
	}

	assert.Equal(t, 1, engine.OutDegree(1))
	assert.Len(t, store.Saved(), 3)
}

func TestService_Create_CycleDetectedOnReturnTransfer(t *testing.T) {
	store := new(MockStore)
	store.On("Save", mock.Anything, mock.Anything).Return(nil)
	svc, _ := newTestService(knownUsers(1, 2), store)

	// Space the two transfers out so velocity stays at its floor.
	base := time.Now().Add(-time.Hour)
	svc.now = func() time.Time { return base }
	_, err := svc.Create(context.Background(), 1, 2, 100)
	require.NoError(t, err)

	svc.now = func() time.Time { return base.Add(10 * time.Minute) }
	tx, err := svc.Create(context.Background(), 2, 1, 100)
	require.NoError(t, err)

	// amount 1 + cycle 3 + velocity 1 + out-degree 1
	assert.Equal(t, 6, tx.FraudRiskScore)
	assert.Equal(t, fraud.BandMediumRisk, fraud.RiskLevel(tx.FraudRiskScore))
}

func TestService_Create_VelocityReflectsPersistedHistory(t *testing.T) {
	store := new(MockStore)
	store.On("Save", mock.Anything, mock.Anything).Return(nil)
	svc, _ := newTestService(knownUsers(1, 2, 3), store)

	base := time.Now().Add(-time.Hour)
	svc.now = func() time.Time { return base }
	first, err := svc.Create(context.Background(), 1, 2, 100)
	require.NoError(t, err)
	// The first transfer must not see itself as prior activity.
	assert.Equal(t, 3, first.FraudRiskScore)

	svc.now = func() time.Time { return base.Add(30 * time.Second) }
	second, err := svc.Create(context.Background(), 1, 3, 100)
	require.NoError(t, err)

	// amount 1 + cycle 0 + velocity 3 + out-degree 2
	assert.Equal(t, 7, second.FraudRiskScore)
}

func TestService_Create_StorageFailure(t *testing.T) {
	store := new(MockStore)
	store.On("Save", mock.Anything, mock.Anything).Return(repositories.ErrDatabaseOperation)
	svc, engine := newTestService(knownUsers(1, 2), store)

	_, err := svc.Create(context.Background(), 1, 2, 500)
	require.ErrorIs(t, err, ErrStorageUnavailable)

	// Accepted limitation: the edge observed during scoring remains.
	assert.Equal(t, 1, engine.OutDegree(1))
}

func TestService_Create_ConcurrentDistinctSenders(t *testing.T) {
	const n = 16

	store := new(MockStore)
	store.On("Save", mock.Anything, mock.Anything).Return(nil)
	ids := make([]uint, 0, 2*n)
	for i := uint(1); i <= 2*n; i++ {
		ids = append(ids, i)
	}
	svc, engine := newTestService(knownUsers(ids...), store)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(sender uint) {
			defer wg.Done()
			_, err := svc.Create(context.Background(), sender, sender+n, 500)
			assert.NoError(t, err)
		}(uint(i + 1))
	}
	wg.Wait()

	assert.Len(t, store.Saved(), n)
	for i := uint(1); i <= n; i++ {
		assert.Equal(t, 1, engine.OutDegree(i))
	}
}

func TestService_Lookups(t *testing.T) {
	now := time.Now()
	stored := []models.Transaction{
		{ID: 2, SenderID: 1, ReceiverID: 3, Amount: 80, Timestamp: now, FraudRiskScore: 3},
		{ID: 1, SenderID: 1, ReceiverID: 2, Amount: 50, Timestamp: now.Add(-time.Hour), FraudRiskScore: 3},
	}

	t.Run("by sender", func(t *testing.T) {
		store := new(MockStore)
		store.On("FindBySender", mock.Anything, uint(1)).Return(stored, nil)
		svc, _ := newTestService(knownUsers(1), store)

		txs, err := svc.GetBySender(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, stored, txs)
	})

	t.Run("by sender unknown user", func(t *testing.T) {
		store := new(MockStore)
		svc, _ := newTestService(knownUsers(), store)

		_, err := svc.GetBySender(context.Background(), 9)
		require.ErrorIs(t, err, ErrSenderNotFound)
	})

	t.Run("by id missing", func(t *testing.T) {
		store := new(MockStore)
		store.On("FindByID", mock.Anything, uint(42)).Return(nil, repositories.ErrTransactionNotFound)
		svc, _ := newTestService(knownUsers(), store)

		_, err := svc.GetByID(context.Background(), 42)
		require.ErrorIs(t, err, ErrTransactionNotFound)
	})

	t.Run("high risk delegates the threshold", func(t *testing.T) {
		store := new(MockStore)
		store.On("FindByScoreAbove", mock.Anything, fraud.HighRiskThreshold).Return([]models.Transaction{}, nil)
		svc, _ := newTestService(knownUsers(), store)

		_, err := svc.GetHighRisk(context.Background())
		require.NoError(t, err)
		store.AssertExpectations(t)
	})

	t.Run("count by sender", func(t *testing.T) {
		store := new(MockStore)
		store.On("CountBySender", mock.Anything, uint(1)).Return(int64(2), nil)
		svc, _ := newTestService(knownUsers(1), store)

		count, err := svc.CountBySender(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})
}

func TestService_StoredInvariants(t *testing.T) {
	store := new(MockStore)
	store.On("Save", mock.Anything, mock.Anything).Return(nil)
	svc, _ := newTestService(knownUsers(1, 2, 3), store)

	amounts := []float64{1, 500, 60_000, 150_000}
	for i, amount := range amounts {
		receiver := uint(2)
		if i%2 == 1 {
			receiver = 3
		}
		_, err := svc.Create(context.Background(), 1, receiver, amount)
		require.NoError(t, err)
	}

	for _, tx := range store.Saved() {
		assert.NotEqual(t, tx.SenderID, tx.ReceiverID)
		assert.Greater(t, tx.Amount, 0.0)
		assert.GreaterOrEqual(t, tx.FraudRiskScore, 3)
		assert.LessOrEqual(t, tx.FraudRiskScore, 12)
	}
}
