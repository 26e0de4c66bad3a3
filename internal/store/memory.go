package store

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/diewo77/go-carteira/internal/models"
)

// MemoryStore keeps clients and assets in process memory. It mirrors the
// semantics of GormStore and backs tests and DB_DRIVER=memory.
type MemoryStore struct {
	mu         sync.RWMutex
	clients    map[uint]models.Client
	assets     map[uint]models.Asset
	nextClient uint
	nextAsset  uint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		clients: map[uint]models.Client{},
		assets:  map[uint]models.Asset{},
	}
}

func (s *MemoryStore) Ping(context.Context) error { return nil }

func (s *MemoryStore) ListClients(context.Context) ([]models.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Client, 0, len(s.clients))
	for _, c := range s.clients {
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b models.Client) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

func (s *MemoryStore) GetClient(_ context.Context, id uint) (*models.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.clients[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (s *MemoryStore) CreateClient(_ context.Context, c *models.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextClient++
	c.ID = s.nextClient
	c.Assets = nil
	s.clients[c.ID] = *c
	return nil
}

func (s *MemoryStore) UpdateClient(_ context.Context, c *models.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[c.ID]; !ok {
		return ErrNotFound
	}
	c.Assets = nil
	s.clients[c.ID] = *c
	return nil
}

func (s *MemoryStore) DeleteClient(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[id]; !ok {
		return ErrNotFound
	}
	for _, a := range s.assets {
		if a.ClientID == id {
			return ErrClientHasAssets
		}
	}
	delete(s.clients, id)
	return nil
}

func (s *MemoryStore) ListClientAssets(_ context.Context, clientID uint) ([]models.Asset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.clients[clientID]; !ok {
		return nil, ErrNotFound
	}
	out := []models.Asset{}
	for _, a := range s.assets {
		if a.ClientID == clientID {
			out = append(out, a)
		}
	}
	sortAssets(out)
	return out, nil
}

func (s *MemoryStore) ListAssets(context.Context) ([]models.Asset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Asset, 0, len(s.assets))
	for _, a := range s.assets {
		if c, ok := s.clients[a.ClientID]; ok {
			a.Client = &c
		}
		out = append(out, a)
	}
	sortAssets(out)
	return out, nil
}

func (s *MemoryStore) CreateAsset(_ context.Context, a *models.Asset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[a.ClientID]; !ok {
		return ErrClientNotFound
	}
	s.nextAsset++
	a.ID = s.nextAsset
	a.Client = nil
	s.assets[a.ID] = *a
	return nil
}

func (s *MemoryStore) UpdateAsset(_ context.Context, a *models.Asset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.assets[a.ID]; !ok {
		return ErrNotFound
	}
	if _, ok := s.clients[a.ClientID]; !ok {
		return ErrClientNotFound
	}
	a.Client = nil
	s.assets[a.ID] = *a
	return nil
}

func (s *MemoryStore) DeleteAsset(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.assets[id]; !ok {
		return ErrNotFound
	}
	delete(s.assets, id)
	return nil
}

func sortAssets(as []models.Asset) {
	slices.SortFunc(as, func(a, b models.Asset) int { return cmp.Compare(a.ID, b.ID) })
}
