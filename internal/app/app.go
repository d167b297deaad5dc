package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"personalPlanner/internal/config"
	"personalPlanner/internal/handlers"
	"personalPlanner/internal/logger"
	"personalPlanner/internal/middleware"
	"personalPlanner/internal/migrations"
	"personalPlanner/internal/service"
	"personalPlanner/internal/worker"

	eventinmem "personalPlanner/internal/repository/event/inmemory"
	eventpg "personalPlanner/internal/repository/event/postgres"
	journalinmem "personalPlanner/internal/repository/journal/inmemory"
	journalpg "personalPlanner/internal/repository/journal/postgres"
	taskinmem "personalPlanner/internal/repository/task/inmemory"
	taskpg "personalPlanner/internal/repository/task/postgres"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type App struct {
	config         *config.Config
	server         *http.Server
	router         *chi.Mux
	taskService    service.TaskService
	eventService   service.EventService
	journalService service.JournalService
	worker         *worker.SeriesWorker
	shutdowns      []func() // функции для graceful shutdown
}

func New(cfg *config.Config) *App {
	return &App{
		config:    cfg,
		shutdowns: make([]func(), 0),
	}
}

func (a *App) Init(ctx context.Context) error {
	if err := logger.Init(a.config.Logging.Development); err != nil {
		return fmt.Errorf("инициализация логгера: %w", err)
	}

	a.shutdowns = append(a.shutdowns, func() {
		logger.Info("Завершение работы логгирования...")
		logger.Sync()
	})

	if err := a.initRepositories(ctx); err != nil {
		return err
	}

	a.setupRouter()

	a.server = &http.Server{
		Addr:         a.config.GetServerAddr(),
		Handler:      a.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	if a.config.Worker.Enabled {
		interval := a.config.Worker.Interval.Std()
		lead := a.config.Worker.Lead.Std()
		batch := a.config.Worker.BatchSize
		a.worker = worker.NewSeriesWorker(&a.taskService, &interval, &lead, &batch)
	}

	return nil
}

func (a *App) initRepositories(ctx context.Context) error {
	switch a.config.Repository.Type {
	case "postgres":
		pool, err := a.newPool(ctx)
		if err != nil {
			return err
		}
		a.shutdowns = append(a.shutdowns, func() {
			logger.Info("Закрытие соединений PostgreSQL...")
			pool.Close()
		})

		if err := migrations.Up(a.config.Database.URL); err != nil {
			return err
		}

		a.taskService = service.NewTaskService(taskpg.New(pool))
		a.eventService = service.NewEventService(eventpg.New(pool))
		a.journalService = service.NewJournalService(journalpg.New(pool))

	case "inmemory":
		a.taskService = service.NewTaskService(taskinmem.NewTaskStorage())
		a.eventService = service.NewEventService(eventinmem.NewEventStorage())
		a.journalService = service.NewJournalService(journalinmem.NewJournalStorage())

	default:
		return fmt.Errorf("неизвестный тип репозитория: %s", a.config.Repository.Type)
	}

	logger.Info("Репозитории инициализированы", zap.String("type", a.config.Repository.Type))
	return nil
}

func (a *App) newPool(ctx context.Context) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(a.config.Database.URL)
	if err != nil {
		logger.Error("Ошибка загрузки конфига пула", err)
		return nil, fmt.Errorf("загрузка конфига пула: %w", err)
	}

	poolConfig.MaxConns = int32(a.config.Database.MaxConnections)
	poolConfig.MinConns = int32(a.config.Database.MinConnections)
	poolConfig.MaxConnIdleTime = a.config.Database.IdleTimeout.Std()

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		logger.Error("Ошибка создания пула", err)
		return nil, fmt.Errorf("создание пула: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		logger.Error("Неудачная проверка ping", err)
		return nil, fmt.Errorf("проверка соединения ping: %w", err)
	}

	logger.Info("Успешное подключение к PostgreSQL")
	return pool, nil
}

func (a *App) setupRouter() {
	taskHandler := handlers.NewTaskHandler(&a.taskService)
	eventHandler := handlers.NewEventHandler(&a.eventService)
	journalHandler := handlers.NewJournalHandler(&a.journalService)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(30 * time.Second))
	r.Use(middleware.RateLimit(100))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
	}))

	r.Route("/tasks", func(r chi.Router) {
		r.Get("/", taskHandler.GetTasks) // GET /tasks
		r.Post("/", taskHandler.PostTask) // POST /tasks

		r.Route("/{id}", func(r chi.Router) {
			r.Put("/", taskHandler.UpdateTaskByID)    // PUT /tasks/{id}
			r.Delete("/", taskHandler.DeleteTaskByID) // DELETE /tasks/{id}?apply_to=all_future
		})
	})

	r.Route("/events", func(r chi.Router) {
		r.Get("/", eventHandler.GetEvents)
		r.Post("/", eventHandler.PostEvent)

		r.Route("/{id}", func(r chi.Router) {
			r.Put("/", eventHandler.UpdateEventByID)
			r.Delete("/", eventHandler.DeleteEventByID)
		})
	})

	r.Route("/journal", func(r chi.Router) {
		r.Get("/", journalHandler.GetEntries)
		r.Post("/", journalHandler.PostEntry)

		r.Route("/{id}", func(r chi.Router) {
			r.Put("/", journalHandler.UpdateEntryByID)
			r.Delete("/", journalHandler.DeleteEntryByID)
		})
	})

	r.Get("/health", taskHandler.HealthCheck)

	a.router = r
}

// Run блокируется до отмены контекста, затем гасит сервер и фоновые задачи.
func (a *App) Run(ctx context.Context) error {
	workerCtx, cancelWorker := context.WithCancel(ctx)
	defer cancelWorker()

	if a.worker != nil {
		go a.worker.Start(workerCtx)
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Сервер запущен", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("работа сервера: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Получен сигнал завершения, останавливаем сервер...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Ошибка остановки сервера", err)
	}

	cancelWorker()
	a.Shutdown()
	return nil
}

// Shutdown выполняет зарегистрированные shutdown-хуки в обратном порядке.
func (a *App) Shutdown() {
	for i := len(a.shutdowns) - 1; i >= 0; i-- {
		a.shutdowns[i]()
	}
}
