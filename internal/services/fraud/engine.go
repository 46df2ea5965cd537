package fraud

import (
	"context"
	"fmt"
	"sync"
	"time"

	"securebank/internal/models"
)

// Amount tiers. Boundary values fall into the lower tier.
const (
	highAmountThreshold     = 100_000.0
	elevatedAmountThreshold = 50_000.0
)

// Out-degree tiers.
const (
	highFanOutThreshold     = 10
	elevatedFanOutThreshold = 5
)

// Score is the per-signal breakdown of one scoring pass. Every sub-score is
// non-negative; the total is always in [3, 12].
type Score struct {
	Amount    int `json:"amount"`
	Cycle     int `json:"cycle"`
	Velocity  int `json:"velocity"`
	OutDegree int `json:"out_degree"`
}

// Total sums the four sub-scores.
func (s Score) Total() int {
	return s.Amount + s.Cycle + s.Velocity + s.OutDegree
}

// Engine computes fraud risk scores. It is the sole owner of the fraud
// graph; a single mutex makes each scoring pass atomic with respect to
// every other pass.
type Engine struct {
	history History

	mu    sync.Mutex
	graph *Graph
}

// NewEngine creates a scoring engine backed by the given history provider.
func NewEngine(history History) *Engine {
	if history == nil {
		panic("history is required")
	}
	return &Engine{
		history: history,
		graph:   NewGraph(),
	}
}

// Score computes the risk score for tx. The sender's prior activity is read
// from the store first, outside the graph lock; the edge insert and the two
// structural signals then run in one locked section so the transaction
// participates in its own cycle and out-degree evaluation.
//
// An error means the history lookup failed and no score was produced. The
// graph is not touched in that case.
func (e *Engine) Score(ctx context.Context, tx *models.Transaction) (Score, error) {
	var score Score

	switch {
	case tx.Amount > highAmountThreshold:
		score.Amount = 3
	case tx.Amount > elevatedAmountThreshold:
		score.Amount = 2
	default:
		score.Amount = 1
	}

	last, err := e.history.LatestTimestampBySender(ctx, tx.SenderID, tx.Timestamp)
	if err != nil {
		return Score{}, fmt.Errorf("fraud history lookup: %w", err)
	}
	score.Velocity = velocityScore(tx.Timestamp, last)

	e.mu.Lock()
	e.graph.Observe(tx.SenderID, tx.ReceiverID)

	if e.graph.HasCycleFrom(tx.SenderID) {
		score.Cycle = 3
	}

	switch degree := e.graph.OutDegree(tx.SenderID); {
	case degree > highFanOutThreshold:
		score.OutDegree = 3
	case degree > elevatedFanOutThreshold:
		score.OutDegree = 2
	default:
		score.OutDegree = 1
	}
	e.mu.Unlock()

	return score, nil
}

// velocityScore tiers the gap between a transaction and the sender's
// previous one. A negative gap (sender clock skew) counts as under a
// minute; no prior activity scores lowest.
func velocityScore(now time.Time, last *time.Time) int {
	if last == nil {
		return 1
	}
	gap := now.Sub(*last)
	switch {
	case gap < time.Minute:
		return 3
	case gap < 5*time.Minute:
		return 2
	default:
		return 1
	}
}

// HasCycleFrom reports whether a cycle is currently reachable from v.
func (e *Engine) HasCycleFrom(v uint) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.graph.HasCycleFrom(v)
}

// OutDegree returns the number of distinct receivers v has paid so far.
func (e *Engine) OutDegree(v uint) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.graph.OutDegree(v)
}
