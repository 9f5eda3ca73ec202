package store

import (
	"cmp"
	"context"
	"slices"
	"sync"

	beererrors "github.com/abgdnv/beerstock/internal/errors"
	"github.com/abgdnv/beerstock/internal/store/db"
)

// InMemoryStore implements BeerStore using an in-memory map.
// Names are unique, mirroring the relational schema.
type InMemoryStore struct {
	mu     sync.RWMutex
	beers  map[int64]db.Beer
	nextID int64
}

// NewInMemoryStore creates a new, empty InMemoryStore.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		beers:  make(map[int64]db.Beer),
		nextID: 1,
	}
}

func (s *InMemoryStore) Create(_ context.Context, beer db.Beer) (*db.Beer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range s.beers {
		if b.Name == beer.Name {
			return nil, beererrors.ErrBeerAlreadyRegistered
		}
	}
	beer.ID = s.nextID
	s.nextID++
	s.beers[beer.ID] = beer
	return &beer, nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id int64) (*db.Beer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.beers[id]
	if !ok {
		return nil, beererrors.ErrBeerNotFound
	}
	return &b, nil
}

func (s *InMemoryStore) FindByName(_ context.Context, name string) (*db.Beer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, b := range s.beers {
		if b.Name == name {
			return &b, nil
		}
	}
	return nil, beererrors.ErrBeerNotFound
}

func (s *InMemoryStore) FindAll(_ context.Context) ([]db.Beer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]db.Beer, 0, len(s.beers))
	for _, b := range s.beers {
		list = append(list, b)
	}
	slices.SortFunc(list, func(a, b db.Beer) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return list, nil
}

func (s *InMemoryStore) DeleteByID(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.beers[id]; !exists {
		return beererrors.ErrBeerNotFound
	}
	delete(s.beers, id)
	return nil
}

func (s *InMemoryStore) UpdateQuantity(_ context.Context, id int64, quantity int32) (*db.Beer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.beers[id]
	if !ok {
		return nil, beererrors.ErrBeerNotFound
	}
	b.Quantity = quantity
	s.beers[id] = b
	return &b, nil
}

func (s *InMemoryStore) Ping(context.Context) error {
	return nil
}
