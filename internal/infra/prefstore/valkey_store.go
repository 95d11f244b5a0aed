package prefstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/fitgpt/internal/domain/wardrobe"
)

// ValkeyStore persists preferences as a JSON document in a Valkey-compatible database.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

// NewValkeyStore constructs a new store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "fitgpt"
	}
	return &ValkeyStore{client: client, prefix: prefix}
}

func (s *ValkeyStore) Load(ctx context.Context) (wardrobe.Preferences, bool, error) {
	payload, err := s.client.Do(ctx, s.client.B().Get().Key(s.key()).Build()).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return wardrobe.Preferences{}, false, nil
		}
		return wardrobe.Preferences{}, false, err
	}
	var prefs wardrobe.Preferences
	if err := json.Unmarshal([]byte(payload), &prefs); err != nil {
		return wardrobe.Preferences{}, false, fmt.Errorf("decode preferences: %w", err)
	}
	return prefs, true, nil
}

func (s *ValkeyStore) Save(ctx context.Context, prefs wardrobe.Preferences) error {
	payload, err := json.Marshal(prefs)
	if err != nil {
		return err
	}
	return s.client.Do(ctx, s.client.B().Set().Key(s.key()).Value(string(payload)).Build()).Error()
}

func (s *ValkeyStore) key() string {
	return s.prefix + ":preferences"
}

var _ wardrobe.PreferenceStore = (*ValkeyStore)(nil)
