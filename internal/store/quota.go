package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

const prefixAIQuota = "aiquota:"

// AIQuota tracks a coach's assistant usage inside the current window.
// WindowStart is unix milliseconds; Count is the number of successful
// requests since WindowStart.
type AIQuota struct {
	Count       int   `json:"count"`
	WindowStart int64 `json:"windowStart"`
}

// GetAIQuota returns the persisted quota record for a coach. A coach with no
// record yet gets a zero-valued quota, not an error.
func (s *Store) GetAIQuota(ctx context.Context, coachID string) (*AIQuota, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := []byte(prefixAIQuota + coachID)
	quota := &AIQuota{}

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to get quota: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, quota)
		})
	})
	if err != nil {
		return nil, err
	}

	return quota, nil
}

// SetAIQuota persists the quota record for a coach.
func (s *Store) SetAIQuota(ctx context.Context, coachID string, quota *AIQuota) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(quota)
	if err != nil {
		return fmt.Errorf("failed to marshal quota: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(prefixAIQuota+coachID), data)
	})
}
