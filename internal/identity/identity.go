// Package identity assigns the local learner a stable user ID.
package identity

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/abhisek/skilldash/internal/store"
)

// SettingsKey is the settings entry holding the user ID.
const SettingsKey = "user_id"

// EnsureUserID returns the stored user ID, generating and storing a new
// UUID on first run.
func EnsureUserID(ctx context.Context, repo store.SettingsRepo) (string, error) {
	raw, ok, err := repo.Get(ctx, SettingsKey)
	if err != nil {
		return "", fmt.Errorf("load user id: %w", err)
	}
	if ok {
		var id string
		if err := json.Unmarshal(raw, &id); err == nil && id != "" {
			return id, nil
		}
	}

	id := uuid.New().String()
	data, err := json.Marshal(id)
	if err != nil {
		return "", fmt.Errorf("marshal user id: %w", err)
	}
	if err := repo.Set(ctx, SettingsKey, data); err != nil {
		return "", fmt.Errorf("save user id: %w", err)
	}
	return id, nil
}
