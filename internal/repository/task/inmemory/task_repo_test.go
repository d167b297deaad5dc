package inmemory

import (
	"context"
	"testing"
	"time"

	"personalPlanner/internal/models/task"
	repo "personalPlanner/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTask(title string, due time.Time) *task.Task {
	return &task.Task{
		ID:      uuid.New(),
		Title:   title,
		DueDate: due,
	}
}

func newSeries(groupID uuid.UUID, start time.Time, count int) []*task.Task {
	series := make([]*task.Task, count)
	for i := range series {
		t := newTask("series", start.AddDate(0, 0, i))
		t.IsRecurring = true
		t.RecurrenceType = task.RecurrenceDaily
		t.RecurrenceGroupID = &groupID
		series[i] = t
	}
	return series
}

func TestTaskStorage_CreateAndGet(t *testing.T) {
	storage := NewTaskStorage()
	ctx := context.Background()

	created := newTask("Buy milk", time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, storage.Create(ctx, created))
	assert.False(t, created.CreatedAt.IsZero())

	stored, err := storage.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", stored.Title)

	// возвращается копия, мутация снаружи не задевает хранилище
	stored.Title = "Mutated"
	again, err := storage.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", again.Title)
}

func TestTaskStorage_GetByID_NotFound(t *testing.T) {
	storage := NewTaskStorage()

	_, err := storage.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestTaskStorage_GetAll_SortedByDueDate(t *testing.T) {
	storage := NewTaskStorage()
	ctx := context.Background()

	base := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, storage.Create(ctx, newTask("third", base.AddDate(0, 0, 2))))
	require.NoError(t, storage.Create(ctx, newTask("first", base)))
	require.NoError(t, storage.Create(ctx, newTask("second", base.AddDate(0, 0, 1))))

	tasks, err := storage.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, "first", tasks[0].Title)
	assert.Equal(t, "second", tasks[1].Title)
	assert.Equal(t, "third", tasks[2].Title)
}

func TestTaskStorage_Update(t *testing.T) {
	storage := NewTaskStorage()
	ctx := context.Background()

	created := newTask("Original", time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, storage.Create(ctx, created))

	created.Title = "Updated"
	created.IsCompleted = true
	require.NoError(t, storage.Update(ctx, created))

	stored, err := storage.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Updated", stored.Title)
	assert.True(t, stored.IsCompleted)

	missing := newTask("Ghost", time.Now())
	assert.ErrorIs(t, storage.Update(ctx, missing), repo.ErrNotFound)
}

func TestTaskStorage_Delete(t *testing.T) {
	storage := NewTaskStorage()
	ctx := context.Background()

	created := newTask("Disposable", time.Now())
	require.NoError(t, storage.Create(ctx, created))
	require.NoError(t, storage.Delete(ctx, created.ID))

	_, err := storage.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, repo.ErrNotFound)

	assert.ErrorIs(t, storage.Delete(ctx, created.ID), repo.ErrNotFound)
}

func TestTaskStorage_DeleteFutureInGroup(t *testing.T) {
	storage := NewTaskStorage()
	ctx := context.Background()

	base := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	groupID := uuid.New()
	require.NoError(t, storage.CreateSeries(ctx, newSeries(groupID, base, 10)))

	// чужая группа не должна пострадать
	otherGroup := uuid.New()
	require.NoError(t, storage.CreateSeries(ctx, newSeries(otherGroup, base, 3)))

	cut := base.AddDate(0, 0, 4)
	deleted, err := storage.DeleteFutureInGroup(ctx, groupID, cut)
	require.NoError(t, err)
	assert.Equal(t, int64(6), deleted)

	tasks, err := storage.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, tasks, 4+3)
	for _, remaining := range tasks {
		if *remaining.RecurrenceGroupID == groupID {
			assert.True(t, remaining.DueDate.Before(cut))
		}
	}
}

func TestTaskStorage_GetSeriesTails(t *testing.T) {
	storage := NewTaskStorage()
	ctx := context.Background()

	base := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	// серия с хвостом на base+9
	nearGroup := uuid.New()
	require.NoError(t, storage.CreateSeries(ctx, newSeries(nearGroup, base, 10)))

	// серия с хвостом далеко за окном
	farGroup := uuid.New()
	require.NoError(t, storage.CreateSeries(ctx, newSeries(farGroup, base, 60)))

	// одиночная задача в выборку не попадает
	require.NoError(t, storage.Create(ctx, newTask("single", base)))

	tails, err := storage.GetSeriesTails(ctx, base, base.AddDate(0, 0, 30), 10)
	require.NoError(t, err)
	require.Len(t, tails, 1)
	assert.Equal(t, nearGroup, *tails[0].RecurrenceGroupID)
	assert.True(t, tails[0].DueDate.Equal(base.AddDate(0, 0, 9)))
}
