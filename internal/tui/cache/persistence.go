package cache

import (
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/shipdeck/shipdeck-cli/internal/models"
	"github.com/shipdeck/shipdeck-cli/internal/utils"
)

// maxSnapshotAge bounds how stale a restored snapshot may be. Older
// snapshots are discarded so the console starts from a fresh fetch.
const maxSnapshotAge = 15 * time.Minute

// Snapshot is the on-disk shape of persisted session data
type Snapshot struct {
	Connections []models.Connection `json:"connections"`
	UserInfo    *models.UserInfo    `json:"userInfo"`
	SavedAt     time.Time           `json:"savedAt"`
}

// SaveToDisk persists slow-changing session data (called on quit)
func (s *SessionCache) SaveToDisk() error {
	snap := Snapshot{SavedAt: time.Now()}

	if conns, ok := s.GetConnections(); ok {
		snap.Connections = conns
	}
	if info, ok := s.GetUserInfo(); ok {
		snap.UserInfo = info
	}

	data, err := utils.MarshalJSONIndent(snap)
	if err != nil {
		return err
	}

	path := GetCacheFilePath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadFromDisk restores persisted session data (called on start).
// Order and return lists are never restored; they are fetched fresh.
func (s *SessionCache) LoadFromDisk() error {
	data, err := os.ReadFile(GetCacheFilePath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var snap Snapshot
	if err := utils.UnmarshalJSON(data, &snap); err != nil {
		return err
	}

	if time.Since(snap.SavedAt) > maxSnapshotAge {
		return nil
	}

	if len(snap.Connections) > 0 {
		s.SetConnections(snap.Connections)
	}
	if snap.UserInfo != nil {
		s.SetUserInfo(*snap.UserInfo)
	}
	return nil
}

// GetCacheFilePath returns the path where cache is stored
func GetCacheFilePath() string {
	// Respect XDG_CONFIG_HOME environment variable for testing
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		configDir = xdg.ConfigHome
	}
	return filepath.Join(configDir, "shipdeck", "cache.json")
}
