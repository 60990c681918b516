// Package scheduler periodically finds due reminders and publishes them
// to the notifications exchange for the sender to deliver.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/garilangu/gari-langu/internal/lib/rabbitmq"
	"github.com/garilangu/gari-langu/internal/lib/sl"
	"github.com/garilangu/gari-langu/internal/models"
)

// ReminderRepository describes the persistence the scheduler depends on.
type ReminderRepository interface {
	FindDueReminders(ctx context.Context, lookaheadDays int) ([]*models.ReminderInfo, error)
}

// SchedulerService publishes due reminders to RabbitMQ on a fixed
// interval. The sender marks them notified, so an unconsumed publish is
// re-published on the next tick rather than lost.
type SchedulerService struct {
	repo          ReminderRepository
	lookaheadDays int
	log           *slog.Logger
}

// New creates a new SchedulerService.
func New(repo ReminderRepository, lookaheadDays int, log *slog.Logger) *SchedulerService {
	return &SchedulerService{
		repo:          repo,
		lookaheadDays: lookaheadDays,
		log:           log,
	}
}

// PublishDueReminders runs one scan immediately and then on every tick
// until the context is cancelled.
func (s *SchedulerService) PublishDueReminders(ctx context.Context, channel *amqp.Channel, interval time.Duration) {
	s.runPublishDueReminders(ctx, channel)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.runPublishDueReminders(ctx, channel)
		case <-ctx.Done():
			return
		}
	}
}

func (s *SchedulerService) runPublishDueReminders(ctx context.Context, channel *amqp.Channel) {
	s.log.Info("starting scan for due reminders")
	infos, err := s.repo.FindDueReminders(ctx, s.lookaheadDays)
	if err != nil {
		s.log.Error("failed to find due reminders", sl.Err(err))
		return
	}
	if len(infos) == 0 {
		s.log.Info("no due reminders found")
		return
	}
	s.log.Info("found due reminders", slog.Int("count", len(infos)))
	for _, info := range infos {
		err = rabbitmq.PublishMessage(channel, "notifications", "due", info)
		if err != nil {
			s.log.Error("failed to publish message", sl.Err(err))
		}
	}
}
