package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"personalPlanner/internal/logger"
	"personalPlanner/internal/models/event"
	"personalPlanner/internal/service"

	"go.uber.org/zap"
)

type EventHandler struct {
	EventService EventService
}

func NewEventHandler(eventService EventService) EventHandler {
	return EventHandler{
		EventService: eventService,
	}
}

func (h *EventHandler) GetEvents(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	events, err := h.EventService.GetEvents(r.Context())
	if err != nil {
		logger.Error("HTTP: Ошибка Service", err,
			zap.String("operation", "get_events"),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("HTTP_OUT: События получены",
		zap.Int("count", len(events)),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, events)
}

func (h *EventHandler) PostEvent(w http.ResponseWriter, r *http.Request) {
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

	var request CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "неверное тело запроса: "+err.Error())
		return
	}

	startTime, err := parseDateTime(request.StartTime)
	if err != nil {
		logger.Warn("HTTP: Ошибка валидации",
			zap.String("field", "start_time"),
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	endTime, err := parseDateTime(request.EndTime)
	if err != nil {
		logger.Warn("HTTP: Ошибка валидации",
			zap.String("field", "end_time"),
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	params := service.CreateEventParams{
		Title:       request.Title,
		Description: request.Description,
		EndTime:     endTime,
	}
	if startTime != nil {
		params.StartTime = *startTime
	}

	logger.Info("HTTP: Вызов сервиса создания событий")

	created, err := h.EventService.CreateEvent(r.Context(), params)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: Ошибка Service", err,
			zap.String("operation", "create_event"),
			zap.String("client_ip", r.RemoteAddr),
			zap.Duration("ms", time.Since(start)))
		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("HTTP_OUT: Событие создано",
		zap.String("event_id", created.ID.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusCreated))

	responseWithJSON(w, http.StatusCreated, created)
}

func (h *EventHandler) UpdateEventByID(w http.ResponseWriter, r *http.Request) {
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

	var request UpdateEventRequest
	decoder := json.NewDecoder(r.Body)
	defer r.Body.Close()

	if err := decoder.Decode(&request); err != nil {
		logger.Warn("HTTP: ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "неверно переданы параметры обновления: "+err.Error())
		return
	}

	options := []event.EventOption{}
	if request.Title != nil {
		options = append(options, event.WithTitle(*request.Title))
	}
	if request.Description != nil {
		options = append(options, event.WithDescription(*request.Description))
	}
	if request.StartTime != nil {
		startTime, err := parseDateTime(*request.StartTime)
		if err != nil {
			logger.Warn("HTTP: Ошибка валидации",
				zap.String("field", "start_time"),
				zap.Error(err),
				zap.String("client_ip", r.RemoteAddr))
			responseWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		if startTime != nil {
			options = append(options, event.WithStartTime(*startTime))
		}
	}
	if len(request.EndTime) > 0 {
		// явный null очищает end_time, отсутствие ключа оставляет как есть
		endTime, ok := parseNullableDateTime(w, r, request.EndTime)
		if !ok {
			return
		}
		options = append(options, event.WithEndTime(endTime))
	}

	logger.Info("HTTP: запрос к сервису обновления данных")

	updated, err := h.EventService.UpdateEvent(r.Context(), id, options...)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: ошибка в Service", err,
			zap.String("operation", "update_event"),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("HTTP_OUT: Событие обновлено",
		zap.String("event_id", updated.ID.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, updated)
}

func (h *EventHandler) DeleteEventByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	logger.Info("HTTP: Обращение к сервису для удаления события")

	if err := h.EventService.DeleteEvent(r.Context(), id); err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: ошибка в Service", err,
			zap.String("operation", "delete_event"),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("HTTP_OUT: Событие удалено",
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusNoContent))

	w.WriteHeader(http.StatusNoContent)
}

func parseNullableDateTime(w http.ResponseWriter, r *http.Request, raw json.RawMessage) (*time.Time, bool) {
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, true
	}

	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		logger.Warn("HTTP: Ошибка валидации",
			zap.String("field", "end_time"),
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "неверный формат end_time")
		return nil, false
	}

	parsed, err := parseDateTime(value)
	if err != nil {
		logger.Warn("HTTP: Ошибка валидации",
			zap.String("field", "end_time"),
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return parsed, true
}
