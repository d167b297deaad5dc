package inmemory

import (
	"context"
	"sort"
	"sync"
	"time"

	"personalPlanner/internal/models/task"
	repo "personalPlanner/internal/repository"

	"github.com/google/uuid"
)

type TaskStorage struct {
	storage map[uuid.UUID]*task.Task
	mtx     *sync.RWMutex
	ids     []uuid.UUID
}

func NewTaskStorage() *TaskStorage {
	return &TaskStorage{
		storage: make(map[uuid.UUID]*task.Task),
		mtx:     &sync.RWMutex{},
		ids:     []uuid.UUID{},
	}
}

func (s *TaskStorage) HealthCheck(ctx context.Context) error {
	return nil
}

// clone отвязывает хранимую запись от указателей вызывающего,
// как это делал бы настоящий драйвер БД.
func clone(t *task.Task) *task.Task {
	copied := *t
	return &copied
}

func (s *TaskStorage) Create(ctx context.Context, taskToCreate *task.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	taskToCreate.CreatedAt = time.Now()
	s.storage[taskToCreate.ID] = clone(taskToCreate)
	s.ids = append(s.ids, taskToCreate.ID)
	return nil
}

func (s *TaskStorage) CreateSeries(ctx context.Context, tasks []*task.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	now := time.Now()
	for _, t := range tasks {
		t.CreatedAt = now
		s.storage[t.ID] = clone(t)
		s.ids = append(s.ids, t.ID)
	}
	return nil
}

func (s *TaskStorage) GetByID(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	taskToGet, ok := s.storage[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return clone(taskToGet), nil
}

func (s *TaskStorage) GetAll(ctx context.Context) ([]*task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := make([]*task.Task, 0, len(s.ids))
	for _, id := range s.ids {
		res = append(res, clone(s.storage[id]))
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].DueDate.Before(res[j].DueDate)
	})
	return res, nil
}

func (s *TaskStorage) Update(ctx context.Context, taskToUpdate *task.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.storage[taskToUpdate.ID]; !ok {
		return repo.ErrNotFound
	}
	s.storage[taskToUpdate.ID] = clone(taskToUpdate)
	return nil
}

func (s *TaskStorage) Delete(ctx context.Context, id uuid.UUID) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.storage[id]; !ok {
		return repo.ErrNotFound
	}
	s.remove(id)
	return nil
}

func (s *TaskStorage) DeleteFutureInGroup(ctx context.Context, groupID uuid.UUID, from time.Time) (int64, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	var deleted int64
	for id, t := range s.storage {
		if t.RecurrenceGroupID == nil || *t.RecurrenceGroupID != groupID {
			continue
		}
		if t.DueDate.Before(from) {
			continue
		}
		s.remove(id)
		deleted++
	}
	return deleted, nil
}

func (s *TaskStorage) GetSeriesTails(ctx context.Context, from, before time.Time, limit int) ([]*task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	tailByGroup := map[uuid.UUID]*task.Task{}
	for _, t := range s.storage {
		if t.RecurrenceGroupID == nil {
			continue
		}
		tail, ok := tailByGroup[*t.RecurrenceGroupID]
		if !ok || t.DueDate.After(tail.DueDate) {
			tailByGroup[*t.RecurrenceGroupID] = t
		}
	}

	res := []*task.Task{}
	for _, tail := range tailByGroup {
		if len(res) >= limit {
			break
		}
		if tail.DueDate.Before(from) || !tail.DueDate.Before(before) {
			continue
		}
		res = append(res, clone(tail))
	}
	return res, nil
}

// remove вызывается под уже взятым mtx.
func (s *TaskStorage) remove(id uuid.UUID) {
	delete(s.storage, id)
	for ind, val := range s.ids {
		if val == id {
			s.ids = append(s.ids[:ind], s.ids[ind+1:]...)
			break
		}
	}
}
