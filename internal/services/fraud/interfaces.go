package fraud

import (
	"context"
	"time"
)

// History supplies a sender's most recent prior transaction timestamp.
// Implemented by the transaction repository.
type History interface {
	// LatestTimestampBySender returns the timestamp of the sender's most
	// recent stored transaction strictly before the given instant, or nil
	// if the sender has none.
	LatestTimestampBySender(ctx context.Context, senderID uint, before time.Time) (*time.Time, error)
}
