// Package payment contains the business logic for the manual mobile-money
// payment ledger: submission by users, verification and rejection by
// admins.
package payment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/garilangu/gari-langu/internal/lib/month"
	"github.com/garilangu/gari-langu/internal/models"
)

// Cache invalidates cached user entitlement snapshots after a payment
// changes the subscription state.
type Cache interface {
	Invalidate(key string) error
}

// PaymentRepository describes the persistence the service depends on.
type PaymentRepository interface {
	CreatePayment(ctx context.Context, payment models.Payment) (int, error)
	GetPayment(ctx context.Context, id int) (*models.Payment, error)
	ListPayments(ctx context.Context, userUID string) ([]*models.Payment, error)
	ListAllPayments(ctx context.Context, status string) ([]*models.Payment, error)
	MarkPaymentVerified(ctx context.Context, id int, adminNotes string) (*models.Payment, error)
	MarkPaymentRejected(ctx context.Context, id int, adminNotes string) (*models.Payment, error)

	GetUser(ctx context.Context, userUID string) (*models.User, error)
	ActivateSubscription(ctx context.Context, userUID string, expiry time.Time) error
	SetPendingPayment(ctx context.Context, userUID string, pending bool) error

	AppendNotification(ctx context.Context, n models.Notification) (int, error)
}

// PaymentService owns the payment ledger and the subscription grants that
// follow from it.
type PaymentService struct {
	repo  PaymentRepository
	cache Cache
	log   *slog.Logger
}

// New creates a new PaymentService.
func New(repo PaymentRepository, cache Cache, log *slog.Logger) *PaymentService {
	return &PaymentService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Submit records a pending payment claim, flags the user as awaiting
// verification and notifies the admin feed. Returns the payment ID.
func (s *PaymentService) Submit(ctx context.Context, userUID string, req models.DummyPayment) (int, error) {
	payment := models.Payment{
		UserUID:             userUID,
		Amount:              req.Amount,
		Currency:            "TZS",
		Method:              req.Method,
		Months:              req.Months,
		TransactionID:       req.TransactionID,
		VerificationMessage: req.VerificationMessage,
		VerificationImage:   req.VerificationImage,
	}
	id, err := s.repo.CreatePayment(ctx, payment)
	if err != nil {
		return 0, err
	}
	if err := s.repo.SetPendingPayment(ctx, userUID, true); err != nil {
		return 0, err
	}
	s.invalidateUser(userUID)

	_, err = s.repo.AppendNotification(ctx, models.Notification{
		RecipientType: models.RecipientAdmin,
		Type:          models.NotificationTypeSystem,
		Title:         "New payment submitted",
		Message: fmt.Sprintf("Payment #%d: %d TZS via %s for %d month(s) awaits verification",
			id, req.Amount, req.Method, req.Months),
		Priority: "high",
	})
	if err != nil {
		s.log.Warn("failed to append admin notification", slog.Any("err", err))
	}

	s.log.Info("payment submitted", slog.Int("id", id), slog.String("user_uid", userUID))
	return id, nil
}

// Get returns a single payment by ID for admin review.
func (s *PaymentService) Get(ctx context.Context, id int) (*models.Payment, error) {
	return s.repo.GetPayment(ctx, id)
}

// List returns the calling user's payments, newest first.
func (s *PaymentService) List(ctx context.Context, userUID string) ([]*models.Payment, error) {
	return s.repo.ListPayments(ctx, userUID)
}

// ListAll returns all payments for admin review, optionally filtered by
// status.
func (s *PaymentService) ListAll(ctx context.Context, status string) ([]*models.Payment, error) {
	return s.repo.ListAllPayments(ctx, status)
}

// Verify transitions a pending payment to verified and grants the paid
// months. The status update is the race winner: when two admins verify
// concurrently, only the one whose update lands extends the subscription,
// so the months are granted exactly once. The extension is additive on top
// of any remaining subscription time.
func (s *PaymentService) Verify(ctx context.Context, id int, adminNotes string) (*models.Payment, error) {
	payment, err := s.repo.MarkPaymentVerified(ctx, id, adminNotes)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.GetUser(ctx, payment.UserUID)
	if err != nil {
		return nil, err
	}
	newExpiry := month.ExtendSubscription(time.Now().UTC(), user.SubscriptionExpire, payment.Months)
	if err := s.repo.ActivateSubscription(ctx, payment.UserUID, newExpiry); err != nil {
		return nil, err
	}
	s.invalidateUser(payment.UserUID)

	_, err = s.repo.AppendNotification(ctx, models.Notification{
		RecipientType: models.RecipientUser,
		UserUID:       &payment.UserUID,
		Type:          models.NotificationTypeSystem,
		Title:         "Payment verified",
		Message: fmt.Sprintf("Your payment of %d TZS was verified. Subscription active until %s.",
			payment.Amount, newExpiry.Format("02-01-2006")),
		Priority: "medium",
	})
	if err != nil {
		s.log.Warn("failed to append user notification", slog.Any("err", err))
	}

	s.log.Info("payment verified", slog.Int("id", id),
		slog.String("user_uid", payment.UserUID),
		slog.Time("subscription_expiry", newExpiry))
	return payment, nil
}

// Reject transitions a pending payment to rejected and clears the user's
// pending-payment flag. No subscription time is granted.
func (s *PaymentService) Reject(ctx context.Context, id int, adminNotes string) (*models.Payment, error) {
	payment, err := s.repo.MarkPaymentRejected(ctx, id, adminNotes)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SetPendingPayment(ctx, payment.UserUID, false); err != nil {
		return nil, err
	}
	s.invalidateUser(payment.UserUID)

	_, err = s.repo.AppendNotification(ctx, models.Notification{
		RecipientType: models.RecipientUser,
		UserUID:       &payment.UserUID,
		Type:          models.NotificationTypeSystem,
		Title:         "Payment rejected",
		Message: fmt.Sprintf("Your payment of %d TZS was rejected. %s",
			payment.Amount, adminNotes),
		Priority: "high",
	})
	if err != nil {
		s.log.Warn("failed to append user notification", slog.Any("err", err))
	}

	s.log.Info("payment rejected", slog.Int("id", id), slog.String("user_uid", payment.UserUID))
	return payment, nil
}

func (s *PaymentService) invalidateUser(userUID string) {
	cacheKey := fmt.Sprintf("user:%s", userUID)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate user cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
}
