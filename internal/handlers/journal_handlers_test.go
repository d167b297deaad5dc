package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"personalPlanner/internal/handlers"
	"personalPlanner/internal/models/journal"
	"personalPlanner/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockJournalService struct {
	mock.Mock
}

var _ handlers.JournalService = (*MockJournalService)(nil)

func (m *MockJournalService) CreateEntry(ctx context.Context, params service.CreateEntryParams) (*journal.Entry, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*journal.Entry), args.Error(1)
}

func (m *MockJournalService) GetEntries(ctx context.Context) ([]*journal.Entry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*journal.Entry), args.Error(1)
}

func (m *MockJournalService) UpdateEntry(ctx context.Context, id uuid.UUID, options ...journal.EntryOption) (*journal.Entry, error) {
	args := m.Called(ctx, id, options)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*journal.Entry), args.Error(1)
}

func (m *MockJournalService) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func sampleEntry(id uuid.UUID) *journal.Entry {
	return &journal.Entry{
		ID:        id,
		EntryType: "mood",
		Content:   map[string]any{"rating": 7},
		Timestamp: time.Now().UTC(),
	}
}

func TestPostEntry(t *testing.T) {
	entryID := uuid.New()

	tests := []struct {
		name           string
		body           string
		contentType    string
		setupMock      func(m *MockJournalService)
		expectedStatus int
	}{
		{
			name:        "successful creation",
			body:        `{"entry_type":"mood","content":{"rating":7}}`,
			contentType: "application/json",
			setupMock: func(m *MockJournalService) {
				m.On("CreateEntry", mock.Anything, mock.MatchedBy(func(p service.CreateEntryParams) bool {
					return p.EntryType == "mood" && p.Timestamp == nil
				})).Return(sampleEntry(entryID), nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:        "with explicit timestamp",
			body:        `{"entry_type":"dream","content":{"text":"flying"},"timestamp":"2026-08-01T22:30:00Z"}`,
			contentType: "application/json",
			setupMock: func(m *MockJournalService) {
				m.On("CreateEntry", mock.Anything, mock.MatchedBy(func(p service.CreateEntryParams) bool {
					return p.Timestamp != nil &&
						p.Timestamp.Equal(time.Date(2026, 8, 1, 22, 30, 0, 0, time.UTC))
				})).Return(sampleEntry(entryID), nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "wrong content type",
			body:           `{"entry_type":"mood"}`,
			contentType:    "application/xml",
			setupMock:      func(m *MockJournalService) {},
			expectedStatus: http.StatusUnsupportedMediaType,
		},
		{
			name:           "bad timestamp format",
			body:           `{"entry_type":"mood","content":{"rating":7},"timestamp":"yesterday"}`,
			contentType:    "application/json",
			setupMock:      func(m *MockJournalService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "validation error from service",
			body:        `{"content":{"rating":7}}`,
			contentType: "application/json",
			setupMock: func(m *MockJournalService) {
				m.On("CreateEntry", mock.Anything, mock.Anything).
					Return(nil, service.NewValidationError("entry_type", "не может быть пустым"))
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockJournalService)
			tt.setupMock(mockService)
			handler := handlers.NewJournalHandler(mockService)

			req := httptest.NewRequest(http.MethodPost, "/journal", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", tt.contentType)
			rec := httptest.NewRecorder()

			handler.PostEntry(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestGetEntries(t *testing.T) {
	mockService := new(MockJournalService)
	mockService.On("GetEntries", mock.Anything).
		Return([]*journal.Entry{sampleEntry(uuid.New()), sampleEntry(uuid.New())}, nil)
	handler := handlers.NewJournalHandler(mockService)

	req := httptest.NewRequest(http.MethodGet, "/journal", nil)
	rec := httptest.NewRecorder()

	handler.GetEntries(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var response []journal.Entry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Len(t, response, 2)
}

func TestUpdateEntryByID(t *testing.T) {
	entryID := uuid.New()

	tests := []struct {
		name           string
		id             string
		body           string
		setupMock      func(m *MockJournalService)
		expectedStatus int
	}{
		{
			name: "successful update",
			id:   entryID.String(),
			body: `{"content":{"rating":9}}`,
			setupMock: func(m *MockJournalService) {
				m.On("UpdateEntry", mock.Anything, entryID, mock.MatchedBy(func(options []journal.EntryOption) bool {
					return len(options) == 1
				})).Return(sampleEntry(entryID), nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "invalid uuid",
			id:             "abc",
			body:           `{"content":{"rating":9}}`,
			setupMock:      func(m *MockJournalService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "entry not found",
			id:   entryID.String(),
			body: `{"content":{"rating":9}}`,
			setupMock: func(m *MockJournalService) {
				m.On("UpdateEntry", mock.Anything, entryID, mock.Anything).
					Return(nil, service.NewNotFound(service.ResourceJournal, entryID.String()))
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockJournalService)
			tt.setupMock(mockService)
			handler := handlers.NewJournalHandler(mockService)

			req := httptest.NewRequest(http.MethodPut, "/journal/"+tt.id, bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			req = withIDParam(req, tt.id)
			rec := httptest.NewRecorder()

			handler.UpdateEntryByID(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestDeleteEntryByID(t *testing.T) {
	entryID := uuid.New()
	mockService := new(MockJournalService)
	mockService.On("DeleteEntry", mock.Anything, entryID).Return(nil)
	handler := handlers.NewJournalHandler(mockService)

	req := httptest.NewRequest(http.MethodDelete, "/journal/"+entryID.String(), nil)
	req = withIDParam(req, entryID.String())
	rec := httptest.NewRecorder()

	handler.DeleteEntryByID(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	mockService.AssertExpectations(t)
}
