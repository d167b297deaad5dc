package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"personalPlanner/internal/handlers"
	"personalPlanner/internal/logger"
	"personalPlanner/internal/models/task"
	"personalPlanner/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Init(false)
	defer logger.Sync()
	os.Exit(m.Run())
}

type MockTaskService struct {
	mock.Mock
}

var _ handlers.TaskService = (*MockTaskService)(nil)

func (m *MockTaskService) HealthCheck(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTaskService) CreateTask(ctx context.Context, params service.CreateTaskParams) (*task.Task, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*task.Task), args.Error(1)
}

func (m *MockTaskService) GetTasks(ctx context.Context) ([]*task.Task, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*task.Task), args.Error(1)
}

func (m *MockTaskService) UpdateTask(ctx context.Context, id uuid.UUID, options ...task.TaskOption) (*task.Task, error) {
	args := m.Called(ctx, id, options)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*task.Task), args.Error(1)
}

func (m *MockTaskService) DeleteTask(ctx context.Context, id uuid.UUID, allFuture bool) error {
	args := m.Called(ctx, id, allFuture)
	return args.Error(0)
}

// withIDParam подставляет url-параметр id так, как его увидит chi.URLParam.
func withIDParam(r *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func sampleTask(id uuid.UUID) *task.Task {
	return &task.Task{
		ID:        id,
		Title:     "Test task",
		DueDate:   time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		CreatedAt: time.Now().UTC(),
	}
}

func TestPostTask(t *testing.T) {
	taskID := uuid.New()

	tests := []struct {
		name           string
		body           string
		contentType    string
		setupMock      func(m *MockTaskService)
		expectedStatus int
	}{
		{
			name:        "successful creation",
			body:        `{"title":"Test task","due_date":"2026-09-01"}`,
			contentType: "application/json",
			setupMock: func(m *MockTaskService) {
				m.On("CreateTask", mock.Anything, mock.MatchedBy(func(p service.CreateTaskParams) bool {
					return p.Title == "Test task" &&
						p.DueDate.Equal(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)) &&
						!p.IsRecurring
				})).Return(sampleTask(taskID), nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:        "recurring params passed through",
			body:        `{"title":"Run","due_date":"2026-09-01","is_recurring":true,"recurrence_type":"daily"}`,
			contentType: "application/json",
			setupMock: func(m *MockTaskService) {
				m.On("CreateTask", mock.Anything, mock.MatchedBy(func(p service.CreateTaskParams) bool {
					return p.IsRecurring && p.RecurrenceType == task.RecurrenceDaily
				})).Return(sampleTask(taskID), nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "wrong content type",
			body:           `{"title":"Test task","due_date":"2026-09-01"}`,
			contentType:    "text/plain",
			setupMock:      func(m *MockTaskService) {},
			expectedStatus: http.StatusUnsupportedMediaType,
		},
		{
			name:           "malformed json",
			body:           `{"title":`,
			contentType:    "application/json",
			setupMock:      func(m *MockTaskService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "bad due date format",
			body:           `{"title":"Test task","due_date":"01.09.2026"}`,
			contentType:    "application/json",
			setupMock:      func(m *MockTaskService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "validation error from service",
			body:        `{"due_date":"2026-09-01"}`,
			contentType: "application/json",
			setupMock: func(m *MockTaskService) {
				m.On("CreateTask", mock.Anything, mock.Anything).
					Return(nil, service.NewValidationError("title", "не может быть пустым"))
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "internal error from service",
			body:        `{"title":"Test task","due_date":"2026-09-01"}`,
			contentType: "application/json",
			setupMock: func(m *MockTaskService) {
				m.On("CreateTask", mock.Anything, mock.Anything).
					Return(nil, errors.New("db down"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockTaskService)
			tt.setupMock(mockService)
			handler := handlers.NewTaskHandler(mockService)

			req := httptest.NewRequest(http.MethodPost, "/tasks", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", tt.contentType)
			rec := httptest.NewRecorder()

			handler.PostTask(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestPostTask_ResponseBody(t *testing.T) {
	taskID := uuid.New()
	mockService := new(MockTaskService)
	mockService.On("CreateTask", mock.Anything, mock.Anything).Return(sampleTask(taskID), nil)
	handler := handlers.NewTaskHandler(mockService)

	req := httptest.NewRequest(http.MethodPost, "/tasks",
		bytes.NewBufferString(`{"title":"Test task","due_date":"2026-09-01"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.PostTask(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var response handlers.TaskResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, taskID, response.ID)
	assert.Equal(t, "Test task", response.Title)
	assert.Equal(t, "2026-09-01", response.DueDate)
}

func TestGetTasks(t *testing.T) {
	mockService := new(MockTaskService)
	mockService.On("GetTasks", mock.Anything).
		Return([]*task.Task{sampleTask(uuid.New()), sampleTask(uuid.New())}, nil)
	handler := handlers.NewTaskHandler(mockService)

	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	rec := httptest.NewRecorder()

	handler.GetTasks(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var response []handlers.TaskResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Len(t, response, 2)
	mockService.AssertExpectations(t)
}

func TestUpdateTaskByID(t *testing.T) {
	taskID := uuid.New()

	tests := []struct {
		name           string
		id             string
		body           string
		setupMock      func(m *MockTaskService)
		expectedStatus int
	}{
		{
			name: "successful update",
			id:   taskID.String(),
			body: `{"title":"Renamed","is_completed":true}`,
			setupMock: func(m *MockTaskService) {
				m.On("UpdateTask", mock.Anything, taskID, mock.MatchedBy(func(options []task.TaskOption) bool {
					return len(options) == 2
				})).Return(sampleTask(taskID), nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "invalid uuid",
			id:             "not-a-uuid",
			body:           `{"title":"Renamed"}`,
			setupMock:      func(m *MockTaskService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "nil uuid",
			id:             uuid.Nil.String(),
			body:           `{"title":"Renamed"}`,
			setupMock:      func(m *MockTaskService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "task not found",
			id:   taskID.String(),
			body: `{"title":"Renamed"}`,
			setupMock: func(m *MockTaskService) {
				m.On("UpdateTask", mock.Anything, taskID, mock.Anything).
					Return(nil, service.NewNotFound(service.ResourceTask, taskID.String()))
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockTaskService)
			tt.setupMock(mockService)
			handler := handlers.NewTaskHandler(mockService)

			req := httptest.NewRequest(http.MethodPut, "/tasks/"+tt.id, bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			req = withIDParam(req, tt.id)
			rec := httptest.NewRecorder()

			handler.UpdateTaskByID(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestDeleteTaskByID(t *testing.T) {
	taskID := uuid.New()

	tests := []struct {
		name           string
		id             string
		query          string
		setupMock      func(m *MockTaskService)
		expectedStatus int
	}{
		{
			name: "single instance",
			id:   taskID.String(),
			setupMock: func(m *MockTaskService) {
				m.On("DeleteTask", mock.Anything, taskID, false).Return(nil)
			},
			expectedStatus: http.StatusNoContent,
		},
		{
			name:  "all future instances",
			id:    taskID.String(),
			query: "?apply_to=all_future",
			setupMock: func(m *MockTaskService) {
				m.On("DeleteTask", mock.Anything, taskID, true).Return(nil)
			},
			expectedStatus: http.StatusNoContent,
		},
		{
			name:  "unknown apply_to value is ignored",
			id:    taskID.String(),
			query: "?apply_to=everything",
			setupMock: func(m *MockTaskService) {
				m.On("DeleteTask", mock.Anything, taskID, false).Return(nil)
			},
			expectedStatus: http.StatusNoContent,
		},
		{
			name: "task not found",
			id:   taskID.String(),
			setupMock: func(m *MockTaskService) {
				m.On("DeleteTask", mock.Anything, taskID, false).
					Return(service.NewNotFound(service.ResourceTask, taskID.String()))
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "invalid uuid",
			id:             "42",
			setupMock:      func(m *MockTaskService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockTaskService)
			tt.setupMock(mockService)
			handler := handlers.NewTaskHandler(mockService)

			req := httptest.NewRequest(http.MethodDelete, "/tasks/"+tt.id+tt.query, nil)
			req = withIDParam(req, tt.id)
			rec := httptest.NewRecorder()

			handler.DeleteTaskByID(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus == http.StatusNoContent {
				assert.Empty(t, rec.Body.String())
			}
			mockService.AssertExpectations(t)
		})
	}
}

func TestHealthCheck(t *testing.T) {
	tests := []struct {
		name           string
		healthErr      error
		expectedStatus int
		expectedHealth string
	}{
		{
			name:           "healthy",
			healthErr:      nil,
			expectedStatus: http.StatusOK,
			expectedHealth: "ok",
		},
		{
			name:           "degraded",
			healthErr:      errors.New("connection refused"),
			expectedStatus: http.StatusServiceUnavailable,
			expectedHealth: "degraded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockTaskService)
			mockService.On("HealthCheck", mock.Anything).Return(tt.healthErr)
			handler := handlers.NewTaskHandler(mockService)

			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			rec := httptest.NewRecorder()

			handler.HealthCheck(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)

			var response map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
			assert.Equal(t, tt.expectedHealth, response["status"])
		})
	}
}
