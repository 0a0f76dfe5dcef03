package worker

import (
	"context"
	"fmt"
	"time"

	"taskBoard/internal/access"
	"taskBoard/internal/catalog"
	"taskBoard/internal/logger"
	"taskBoard/internal/models/task"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const DefaultSchedule = "0 18 * * *"

type StatusCounter interface {
	CountByStatus(context.Context, access.Scope, task.Filters) (map[task.Status]int, error)
}

// SummaryWorker по расписанию пишет в лог число задач каждого статуса
// за текущий день по всем пользователям.
type SummaryWorker struct {
	counter  StatusCounter
	schedule string
	cron     *cron.Cron
	now      func() time.Time
}

func NewSummaryWorker(counter StatusCounter, schedule *string) *SummaryWorker {
	scheduleToSet := DefaultSchedule
	if schedule != nil && *schedule != "" {
		scheduleToSet = *schedule
	}

	return &SummaryWorker{
		counter:  counter,
		schedule: scheduleToSet,
		now:      time.Now,
	}
}

// Start регистрирует задание и работает до отмены ctx.
func (w *SummaryWorker) Start(ctx context.Context) error {
	w.cron = cron.New()
	if _, err := w.cron.AddFunc(w.schedule, func() { w.Check(ctx) }); err != nil {
		return fmt.Errorf("расписание %q: %w", w.schedule, err)
	}

	logger.Info("Worker: Сводка по статусам запущена", zap.String("schedule", w.schedule))
	w.cron.Start()

	go func() {
		<-ctx.Done()
		stopped := w.cron.Stop()
		<-stopped.Done()
		logger.Info("Worker: Сводка по статусам остановлена")
	}()
	return nil
}

func (w *SummaryWorker) Check(ctx context.Context) map[task.Status]int {
	start := time.Now()
	today := w.now().Format("2006-01-02")

	counts, err := w.counter.CountByStatus(ctx, access.Unscoped(), task.Filters{Date: today})
	if err != nil {
		logger.Warn("Worker: Ошибка подсчёта задач", zap.Error(err))
		return nil
	}

	fields := []zap.Field{zap.String("date", today)}
	for _, status := range catalog.Statuses() {
		fields = append(fields, zap.Int(status.Name, counts[task.Status(status.ID)]))
	}
	fields = append(fields, zap.Duration("ms", time.Since(start)))

	logger.Info("Worker: Сводка задач за день", fields...)
	return counts
}
