package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/nero-collectibles/kassa/internal/model"
	"github.com/nero-collectibles/kassa/pkg/logger"
	"github.com/nero-collectibles/kassa/pkg/storage"
)

const settingsKey = "nero_settings"

// SettingsStore holds the company profile. Unlike the ledger, corrupt
// settings fall back to defaults: losing a logo is annoying, losing the
// books is not acceptable.
type SettingsStore struct {
	mu       sync.Mutex
	blobs    Blobs
	settings model.CompanySettings
}

func NewSettingsStore(blobs Blobs) (*SettingsStore, error) {
	s := &SettingsStore{blobs: blobs, settings: model.DefaultSettings()}

	raw, err := blobs.Get(settingsKey)
	if errors.Is(err, storage.ErrNotFound) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	var cs model.CompanySettings
	if err := json.Unmarshal(raw, &cs); err != nil {
		logger.Warn("settings blob is corrupt, using defaults", "error", err)
		return s, nil
	}
	s.settings = cs
	return s, nil
}

func (s *SettingsStore) Get() model.CompanySettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

func (s *SettingsStore) Update(cs model.CompanySettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(cs)
	if err != nil {
		return fmt.Errorf("persist settings: %w", err)
	}
	if err := s.blobs.Put(settingsKey, raw); err != nil {
		return fmt.Errorf("persist settings: %w", err)
	}
	s.settings = cs
	return nil
}
