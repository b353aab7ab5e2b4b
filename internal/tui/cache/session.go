// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package cache

import (
	"time"

	"github.com/jellydator/ttlcache/v3"
	"github.com/shipdeck/shipdeck-cli/internal/models"
)

const listTTL = 2 * time.Minute

// SessionCache provides in-memory caching with TTL for list data.
// Lists are invalidated wholesale after any mutation so the console
// never renders rows that reflect pre-action state.
type SessionCache struct {
	cache *ttlcache.Cache[string, any]
	// Note: ttlcache is thread-safe, no additional mutex needed
}

// NewSessionCache creates a new memory-based cache for session data
func NewSessionCache() *SessionCache {
	cache := ttlcache.New[string, any](
		ttlcache.WithCapacity[string, any](1000),
	)

	go cache.Start()

	return &SessionCache{
		cache: cache,
	}
}

// GetOrders retrieves the cached order list
func (s *SessionCache) GetOrders() ([]models.Order, bool) {
	item := s.cache.Get("orders:all")
	if item == nil {
		return nil, false
	}
	orders, ok := item.Value().([]models.Order)
	return orders, ok
}

// SetOrders stores the order list
func (s *SessionCache) SetOrders(orders []models.Order) {
	s.cache.Set("orders:all", orders, listTTL)
	for _, order := range orders {
		s.cache.Set("order:"+order.ID, order, listTTL)
	}
}

// GetOrder retrieves a single cached order
func (s *SessionCache) GetOrder(id string) (*models.Order, bool) {
	item := s.cache.Get("order:" + id)
	if item == nil {
		return nil, false
	}
	order, ok := item.Value().(models.Order)
	if !ok {
		return nil, false
	}
	return &order, true
}

// GetReturns retrieves the cached return list
func (s *SessionCache) GetReturns() ([]models.ReturnOrder, bool) {
	item := s.cache.Get("returns:all")
	if item == nil {
		return nil, false
	}
	returns, ok := item.Value().([]models.ReturnOrder)
	return returns, ok
}

// SetReturns stores the return list
func (s *SessionCache) SetReturns(returns []models.ReturnOrder) {
	s.cache.Set("returns:all", returns, listTTL)
}

// GetConnections retrieves the cached marketplace connections
func (s *SessionCache) GetConnections() ([]models.Connection, bool) {
	item := s.cache.Get("connections:all")
	if item == nil {
		return nil, false
	}
	conns, ok := item.Value().([]models.Connection)
	return conns, ok
}

// SetConnections stores the marketplace connections. Connections change
// rarely, so they outlive order and return lists.
func (s *SessionCache) SetConnections(conns []models.Connection) {
	s.cache.Set("connections:all", conns, 10*time.Minute)
}

// GetUserInfo retrieves cached account details
func (s *SessionCache) GetUserInfo() (*models.UserInfo, bool) {
	item := s.cache.Get("user:info")
	if item == nil {
		return nil, false
	}
	info, ok := item.Value().(models.UserInfo)
	if !ok {
		return nil, false
	}
	return &info, true
}

// SetUserInfo stores account details
func (s *SessionCache) SetUserInfo(info models.UserInfo) {
	s.cache.Set("user:info", info, 10*time.Minute)
}

// InvalidateOrders drops the order list and every individual order.
// Called after any order mutation, including partial bulk failures.
func (s *SessionCache) InvalidateOrders() {
	s.cache.Delete("orders:all")
	for key := range s.cache.Items() {
		if len(key) > 6 && key[:6] == "order:" {
			s.cache.Delete(key)
		}
	}
}

// InvalidateReturns drops the return list
func (s *SessionCache) InvalidateReturns() {
	s.cache.Delete("returns:all")
}

// InvalidateAll clears everything
func (s *SessionCache) InvalidateAll() {
	s.cache.DeleteAll()
}

// Stop shuts down the background expiry loop
func (s *SessionCache) Stop() {
	s.cache.Stop()
}
