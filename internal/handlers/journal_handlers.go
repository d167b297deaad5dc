package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"personalPlanner/internal/logger"
	"personalPlanner/internal/models/journal"
	"personalPlanner/internal/service"

	"go.uber.org/zap"
)

type JournalHandler struct {
	JournalService JournalService
}

func NewJournalHandler(journalService JournalService) JournalHandler {
	return JournalHandler{
		JournalService: journalService,
	}
}

func (h *JournalHandler) GetEntries(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	entries, err := h.JournalService.GetEntries(r.Context())
	if err != nil {
		logger.Error("HTTP: Ошибка Service", err,
			zap.String("operation", "get_journal"),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("HTTP_OUT: Записи дневника получены",
		zap.Int("count", len(entries)),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, entries)
}

func (h *JournalHandler) PostEntry(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	if !checkContentType(r, "application/json") {
		logger.Warn("HTTP: Неверный тип контента",
			zap.String("expected", "application/json"),
			zap.String("received", r.Header.Get("Content-Type")),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusUnsupportedMediaType, "Content-Type должен быть application/json")
		return
	}

	var request CreateJournalRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "неверное тело запроса: "+err.Error())
		return
	}

	timestamp, err := parseDateTime(request.Timestamp)
	if err != nil {
		logger.Warn("HTTP: Ошибка валидации",
			zap.String("field", "timestamp"),
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	logger.Info("HTTP: Вызов сервиса создания записей")

	created, err := h.JournalService.CreateEntry(r.Context(), service.CreateEntryParams{
		EntryType: request.EntryType,
		Content:   request.Content,
		Timestamp: timestamp,
	})
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: Ошибка Service", err,
			zap.String("operation", "create_journal_entry"),
			zap.String("client_ip", r.RemoteAddr),
			zap.Duration("ms", time.Since(start)))
		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("HTTP_OUT: Запись дневника создана",
		zap.String("entry_id", created.ID.String()),
		zap.String("entry_type", created.EntryType),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusCreated))

	responseWithJSON(w, http.StatusCreated, created)
}

func (h *JournalHandler) UpdateEntryByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	if !checkContentType(r, "application/json") {
		logger.Warn("HTTP: Неверный тип контента",
			zap.String("expected", "application/json"),
			zap.String("received", r.Header.Get("Content-Type")),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusUnsupportedMediaType, "Content-Type должен быть application/json")
		return
	}

	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	var request UpdateJournalRequest
	decoder := json.NewDecoder(r.Body)
	defer r.Body.Close()

	if err := decoder.Decode(&request); err != nil {
		logger.Warn("HTTP: ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "неверно переданы параметры обновления: "+err.Error())
		return
	}

	options := []journal.EntryOption{}
	if request.Content != nil {
		options = append(options, journal.WithContent(request.Content))
	}
	if request.Timestamp != nil {
		timestamp, err := parseDateTime(*request.Timestamp)
		if err != nil {
			logger.Warn("HTTP: Ошибка валидации",
				zap.String("field", "timestamp"),
				zap.Error(err),
				zap.String("client_ip", r.RemoteAddr))
			responseWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		if timestamp != nil {
			options = append(options, journal.WithTimestamp(*timestamp))
		}
	}

	logger.Info("HTTP: запрос к сервису обновления данных")

	updated, err := h.JournalService.UpdateEntry(r.Context(), id, options...)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: ошибка в Service", err,
			zap.String("operation", "update_journal_entry"),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("HTTP_OUT: Запись дневника обновлена",
		zap.String("entry_id", updated.ID.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, updated)
}

func (h *JournalHandler) DeleteEntryByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	logger.Info("HTTP: Обращение к сервису для удаления записи")

	if err := h.JournalService.DeleteEntry(r.Context(), id); err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: ошибка в Service", err,
			zap.String("operation", "delete_journal_entry"),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("HTTP_OUT: Запись дневника удалена",
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusNoContent))

	w.WriteHeader(http.StatusNoContent)
}
