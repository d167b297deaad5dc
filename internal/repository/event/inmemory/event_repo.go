package inmemory

import (
	"context"
	"sort"
	"sync"
	"time"

	"personalPlanner/internal/models/event"
	repo "personalPlanner/internal/repository"

	"github.com/google/uuid"
)

type EventStorage struct {
	storage map[uuid.UUID]*event.Event
	mtx     *sync.RWMutex
}

func NewEventStorage() *EventStorage {
	return &EventStorage{
		storage: make(map[uuid.UUID]*event.Event),
		mtx:     &sync.RWMutex{},
	}
}

func clone(e *event.Event) *event.Event {
	copied := *e
	return &copied
}

func (s *EventStorage) Create(ctx context.Context, eventToCreate *event.Event) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	eventToCreate.CreatedAt = time.Now()
	s.storage[eventToCreate.ID] = clone(eventToCreate)
	return nil
}

func (s *EventStorage) GetByID(ctx context.Context, id uuid.UUID) (*event.Event, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	eventToGet, ok := s.storage[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return clone(eventToGet), nil
}

func (s *EventStorage) GetAll(ctx context.Context) ([]*event.Event, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := make([]*event.Event, 0, len(s.storage))
	for _, e := range s.storage {
		res = append(res, clone(e))
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].StartTime.Before(res[j].StartTime)
	})
	return res, nil
}

func (s *EventStorage) Update(ctx context.Context, eventToUpdate *event.Event) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.storage[eventToUpdate.ID]; !ok {
		return repo.ErrNotFound
	}
	s.storage[eventToUpdate.ID] = clone(eventToUpdate)
	return nil
}

func (s *EventStorage) Delete(ctx context.Context, id uuid.UUID) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.storage[id]; !ok {
		return repo.ErrNotFound
	}
	delete(s.storage, id)
	return nil
}
