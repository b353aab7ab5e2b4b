package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shipdeck/shipdeck-cli/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionCache_OrdersRoundTrip(t *testing.T) {
	c := NewSessionCache()
	defer c.Stop()

	_, ok := c.GetOrders()
	assert.False(t, ok)

	orders := []models.Order{
		{ID: "ord-1", Status: models.OrderPending},
		{ID: "ord-2", Status: models.OrderShipped},
	}
	c.SetOrders(orders)

	got, ok := c.GetOrders()
	require.True(t, ok)
	assert.Len(t, got, 2)

	one, ok := c.GetOrder("ord-1")
	require.True(t, ok)
	assert.Equal(t, models.OrderPending, one.Status)
}

func TestSessionCache_InvalidateOrders(t *testing.T) {
	c := NewSessionCache()
	defer c.Stop()

	c.SetOrders([]models.Order{{ID: "ord-1"}, {ID: "ord-2"}})
	c.SetReturns([]models.ReturnOrder{{ID: "ret-1"}})

	c.InvalidateOrders()

	_, ok := c.GetOrders()
	assert.False(t, ok)
	_, ok = c.GetOrder("ord-1")
	assert.False(t, ok, "individual orders should be dropped too")

	// Returns are untouched
	_, ok = c.GetReturns()
	assert.True(t, ok)
}

func TestSessionCache_InvalidateAll(t *testing.T) {
	c := NewSessionCache()
	defer c.Stop()

	c.SetOrders([]models.Order{{ID: "ord-1"}})
	c.SetConnections([]models.Connection{{ID: "conn-1"}})
	c.SetUserInfo(models.UserInfo{Email: "ops@example.com"})

	c.InvalidateAll()

	_, ok := c.GetOrders()
	assert.False(t, ok)
	_, ok = c.GetConnections()
	assert.False(t, ok)
	_, ok = c.GetUserInfo()
	assert.False(t, ok)
}

func TestPersistence_SaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	c := NewSessionCache()
	defer c.Stop()

	c.SetConnections([]models.Connection{{ID: "conn-1", Channel: "amazon"}})
	c.SetUserInfo(models.UserInfo{Email: "ops@example.com"})
	c.SetOrders([]models.Order{{ID: "ord-1"}})

	require.NoError(t, c.SaveToDisk())

	_, err := os.Stat(filepath.Join(tmpDir, "shipdeck", "cache.json"))
	require.NoError(t, err)

	fresh := NewSessionCache()
	defer fresh.Stop()
	require.NoError(t, fresh.LoadFromDisk())

	conns, ok := fresh.GetConnections()
	require.True(t, ok)
	assert.Equal(t, "amazon", conns[0].Channel)

	info, ok := fresh.GetUserInfo()
	require.True(t, ok)
	assert.Equal(t, "ops@example.com", info.Email)

	// Order lists are never restored from disk
	_, ok = fresh.GetOrders()
	assert.False(t, ok)
}

func TestPersistence_MissingFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	c := NewSessionCache()
	defer c.Stop()

	assert.NoError(t, c.LoadFromDisk())
}
