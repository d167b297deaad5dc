package worker

import (
	"context"
	"time"

	"personalPlanner/internal/logger"

	"go.uber.org/zap"
)

type SeriesExtender interface {
	ExtendDueSeries(ctx context.Context, cutoff time.Time, batch int) (int, error)
}

// SeriesWorker следит за повторяющимися сериями: когда у серии остаётся
// меньше lead материализованных экземпляров, достраивает ей горизонт.
// Без него серия, созданная один раз, исчерпалась бы через три месяца.
type SeriesWorker struct {
	service   SeriesExtender
	interval  time.Duration
	lead      time.Duration
	batchSize int
}

func NewSeriesWorker(service SeriesExtender, interval *time.Duration, lead *time.Duration, batchSize *int) *SeriesWorker {
	var intervalToSet time.Duration
	if interval == nil {
		intervalToSet = 6 * time.Hour
	} else {
		intervalToSet = *interval
	}

	var leadToSet time.Duration
	if lead == nil {
		leadToSet = 7 * 24 * time.Hour
	} else {
		leadToSet = *lead
	}

	var batchToSet int
	if batchSize == nil {
		batchToSet = 50
	} else {
		batchToSet = *batchSize
	}

	return &SeriesWorker{
		service:   service,
		interval:  intervalToSet,
		lead:      leadToSet,
		batchSize: batchToSet,
	}
}

func (w *SeriesWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			logger.Info("Worker: Фоновая проверка горизонта серий", zap.Time("started_at", time.Now()))
			w.Check(ctx)
		case <-ctx.Done():
			logger.Info("Worker: Фоновая проверка останавливается")
			return
		}
	}
}

func (w *SeriesWorker) Check(ctx context.Context) {
	start := time.Now()

	extended, err := w.service.ExtendDueSeries(ctx, time.Now().Add(w.lead), w.batchSize)
	if err != nil {
		logger.Warn("Worker: ошибка продления серий", zap.Error(err))
		return
	}

	logger.Info("Worker: Завершение проверки серий",
		zap.Duration("ms", time.Since(start)),
		zap.Int("extended", extended))
}
