// Package dispatch delivers due-reminder notifications over the enabled
// channels and records the outcome. It is shared by the synchronous scan
// endpoint and the RabbitMQ consumer so both paths behave identically.
package dispatch

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/garilangu/gari-langu/internal/lib/month"
	"github.com/garilangu/gari-langu/internal/lib/sl"
	"github.com/garilangu/gari-langu/internal/models"
	"github.com/garilangu/gari-langu/internal/storage/repository"
)

// ReminderRepository describes the persistence the dispatcher depends on.
type ReminderRepository interface {
	FindDueReminders(ctx context.Context, lookaheadDays int) ([]*models.ReminderInfo, error)
	GetReminderInfo(ctx context.Context, id int) (*models.ReminderInfo, error)
	MarkNotified(ctx context.Context, id int) (int, error)
	AppendNotification(ctx context.Context, n models.Notification) (int, error)
}

// EmailChannel delivers a plain-text e-mail.
type EmailChannel interface {
	Send(to, subject, bodyText string) error
}

// SMSChannel delivers a text message.
type SMSChannel interface {
	Send(phone, message string) error
}

// Dispatcher sends reminder notifications and flips the sent flag when at
// least one channel succeeds.
type Dispatcher struct {
	repo          ReminderRepository
	email         EmailChannel
	sms           SMSChannel
	lookaheadDays int
	log           *slog.Logger
}

// New creates a new Dispatcher.
func New(repo ReminderRepository, email EmailChannel, sms SMSChannel, lookaheadDays int, log *slog.Logger) *Dispatcher {
	return &Dispatcher{
		repo:          repo,
		email:         email,
		sms:           sms,
		lookaheadDays: lookaheadDays,
		log:           log,
	}
}

// DispatchDue scans for reminders due within the lookahead window and
// dispatches each one. A failure on one reminder is logged and skipped so
// the rest of the batch still goes out. Returns the number of reminders
// for which at least one channel succeeded.
func (d *Dispatcher) DispatchDue(ctx context.Context) (int, error) {
	infos, err := d.repo.FindDueReminders(ctx, d.lookaheadDays)
	if err != nil {
		return 0, fmt.Errorf("failed to find due reminders: %w", err)
	}
	if len(infos) == 0 {
		d.log.Info("no due reminders found")
		return 0, nil
	}
	d.log.Info("found due reminders", slog.Int("count", len(infos)))

	sent := 0
	for _, info := range infos {
		ok, err := d.Dispatch(ctx, info)
		if err != nil {
			d.log.Error("failed to dispatch reminder",
				slog.Int("reminder_id", info.ReminderID), sl.Err(err))
			continue
		}
		if ok {
			sent++
		}
	}
	return sent, nil
}

// DispatchByID dispatches a single reminder regardless of its due window,
// used by the manual send-now path. A non-empty userUID restricts the
// operation to the reminder's owner.
func (d *Dispatcher) DispatchByID(ctx context.Context, id int, userUID string) (bool, error) {
	info, err := d.repo.GetReminderInfo(ctx, id)
	if err != nil {
		return false, err
	}
	if userUID != "" && info.UserUID != userUID {
		return false, repository.ErrNotFound
	}
	return d.Dispatch(ctx, info)
}

// DispatchMessage handles one RabbitMQ delivery. An error return makes the
// consumer nack and requeue the message.
func (d *Dispatcher) DispatchMessage(body []byte) error {
	var info models.ReminderInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return fmt.Errorf("error unmarshalling message: %w", err)
	}
	ok, err := d.Dispatch(context.Background(), &info)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no channel delivered reminder %d", info.ReminderID)
	}
	return nil
}

// Dispatch sends one reminder over e-mail and, when the reminder opted in
// and the user has a phone, over SMS. The sent flag flips as soon as one
// channel succeeds; a partial failure only logs. Reports whether the
// reminder counts as notified.
func (d *Dispatcher) Dispatch(ctx context.Context, info *models.ReminderInfo) (bool, error) {
	subject, body, smsText := d.composeMessages(info)

	delivered := false

	if err := d.email.Send(info.Email, subject, body); err != nil {
		d.log.Warn("email delivery failed",
			slog.Int("reminder_id", info.ReminderID), sl.Err(err))
	} else {
		delivered = true
		d.appendLog(ctx, info, models.NotificationTypeEmail, subject, body)
	}

	if info.NotifySMS && info.Phone != "" {
		if err := d.sms.Send(info.Phone, smsText); err != nil {
			d.log.Warn("sms delivery failed",
				slog.Int("reminder_id", info.ReminderID), sl.Err(err))
		} else {
			delivered = true
			d.appendLog(ctx, info, models.NotificationTypeSMS, subject, smsText)
		}
	}

	if !delivered {
		return false, nil
	}

	count, err := d.repo.MarkNotified(ctx, info.ReminderID)
	if err != nil {
		return false, fmt.Errorf("failed to mark reminder notified: %w", err)
	}
	if count == 0 {
		// Another dispatcher won the flag; the user was notified either way.
		d.log.Info("reminder already marked notified", slog.Int("reminder_id", info.ReminderID))
	}
	return true, nil
}

func (d *Dispatcher) composeMessages(info *models.ReminderInfo) (subject, body, smsText string) {
	car := fmt.Sprintf("%s %s (%s)", info.CarMake, info.CarModel, info.CarPlate)
	days := month.DaysUntil(time.Now().UTC(), info.DueDate)

	subject = fmt.Sprintf("Service reminder: %s for %s", info.ServiceType, car)
	switch {
	case days <= 0:
		body = fmt.Sprintf("Hello %s!\n\n%s is due today for your %s.\n\nPlease arrange the service as soon as possible.",
			info.Username, info.ServiceType, car)
	case days == 1:
		body = fmt.Sprintf("Hello %s!\n\n%s is due tomorrow for your %s.\n\nPlease arrange the service in time.",
			info.Username, info.ServiceType, car)
	default:
		body = fmt.Sprintf("Hello %s!\n\n%s is due in %d days for your %s (due %s).\n\nPlease arrange the service in time.",
			info.Username, info.ServiceType, days, car, info.DueDate.Format("02-01-2006"))
	}
	smsText = fmt.Sprintf("Gari Langu: %s due %s for %s", info.ServiceType,
		info.DueDate.Format("02-01-2006"), info.CarPlate)
	return subject, body, smsText
}

func (d *Dispatcher) appendLog(ctx context.Context, info *models.ReminderInfo, notifType, title, message string) {
	userUID := info.UserUID
	_, err := d.repo.AppendNotification(ctx, models.Notification{
		RecipientType: models.RecipientUser,
		UserUID:       &userUID,
		Type:          notifType,
		Title:         title,
		Message:       message,
		Priority:      "medium",
	})
	if err != nil {
		d.log.Warn("failed to append notification log entry",
			slog.Int("reminder_id", info.ReminderID), sl.Err(err))
	}
}
