// Package sender wires the notification sender binary: storage, delivery
// channels and the RabbitMQ consumer.
package sender

import (
	"context"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/garilangu/gari-langu/internal/config"
	"github.com/garilangu/gari-langu/internal/lib/rabbitmq"
	"github.com/garilangu/gari-langu/internal/lib/smtp"
	"github.com/garilangu/gari-langu/internal/notify"
	dispatchservice "github.com/garilangu/gari-langu/internal/services/dispatch"
	"github.com/garilangu/gari-langu/internal/storage/repository"
)

// App is the sender application.
type App struct {
	conn       *amqp.Connection
	ch         *amqp.Channel
	dispatcher *dispatchservice.Dispatcher
	logger     *slog.Logger
}

// New creates the sender application.
func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, err
	}

	queues := rabbitmq.GetNotificationQueues()
	ch, err := rabbitmq.SetupChannel(conn, queues)
	if err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			logger.Error("failed to close connection", slog.Any("err", closeErr))
		}
		return nil, err
	}

	emailSender := notify.NewEmailSender(smtp.NewTransport(cfg, logger), logger)
	smsSender := notify.NewSMSSender(cfg.SMSGateway, logger)
	dispatcher := dispatchservice.New(db, emailSender, smsSender, cfg.LookaheadDays, logger)

	return &App{
		conn:       conn,
		ch:         ch,
		dispatcher: dispatcher,
		logger:     logger,
	}, nil
}

// Run starts the queue consumer and blocks until the context is cancelled.
func (a *App) Run(ctx context.Context) error {
	err := rabbitmq.ConsumerMessage(ctx, a.ch, "reminder.due", a.dispatcher.DispatchMessage)
	if err != nil {
		a.logger.Error("failed to start reminder.due consumer", slog.Any("err", err))
		return err
	}

	<-ctx.Done()
	a.logger.Info("sender service shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", slog.Any("err", err))
	}
	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", slog.Any("err", err))
	}
	return nil
}
