package inmemory

import (
	"context"
	"maps"
	"sort"
	"sync"

	"personalPlanner/internal/models/journal"
	repo "personalPlanner/internal/repository"

	"github.com/google/uuid"
)

type JournalStorage struct {
	storage map[uuid.UUID]*journal.Entry
	mtx     *sync.RWMutex
}

func NewJournalStorage() *JournalStorage {
	return &JournalStorage{
		storage: make(map[uuid.UUID]*journal.Entry),
		mtx:     &sync.RWMutex{},
	}
}

func clone(e *journal.Entry) *journal.Entry {
	copied := *e
	if e.Content != nil {
		copied.Content = maps.Clone(e.Content)
	}
	return &copied
}

func (s *JournalStorage) Create(ctx context.Context, entryToCreate *journal.Entry) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.storage[entryToCreate.ID] = clone(entryToCreate)
	return nil
}

func (s *JournalStorage) GetByID(ctx context.Context, id uuid.UUID) (*journal.Entry, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	entryToGet, ok := s.storage[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return clone(entryToGet), nil
}

// GetAll отдаёт записи от новых к старым, как и postgres-реализация.
func (s *JournalStorage) GetAll(ctx context.Context) ([]*journal.Entry, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := make([]*journal.Entry, 0, len(s.storage))
	for _, e := range s.storage {
		res = append(res, clone(e))
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].Timestamp.After(res[j].Timestamp)
	})
	return res, nil
}

func (s *JournalStorage) Update(ctx context.Context, entryToUpdate *journal.Entry) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.storage[entryToUpdate.ID]; !ok {
		return repo.ErrNotFound
	}
	s.storage[entryToUpdate.ID] = clone(entryToUpdate)
	return nil
}

func (s *JournalStorage) Delete(ctx context.Context, id uuid.UUID) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.storage[id]; !ok {
		return repo.ErrNotFound
	}
	delete(s.storage, id)
	return nil
}
