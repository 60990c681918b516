package payment

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/garilangu/gari-langu/internal/models"
	"github.com/garilangu/gari-langu/internal/storage/repository"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreatePayment(ctx context.Context, payment models.Payment) (int, error) {
	args := m.Called(ctx, payment)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) GetPayment(ctx context.Context, id int) (*models.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}

func (m *MockRepository) ListPayments(ctx context.Context, userUID string) ([]*models.Payment, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Payment), args.Error(1)
}

func (m *MockRepository) ListAllPayments(ctx context.Context, status string) ([]*models.Payment, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Payment), args.Error(1)
}

func (m *MockRepository) MarkPaymentVerified(ctx context.Context, id int, adminNotes string) (*models.Payment, error) {
	args := m.Called(ctx, id, adminNotes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}

func (m *MockRepository) MarkPaymentRejected(ctx context.Context, id int, adminNotes string) (*models.Payment, error) {
	args := m.Called(ctx, id, adminNotes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}

func (m *MockRepository) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockRepository) ActivateSubscription(ctx context.Context, userUID string, expiry time.Time) error {
	args := m.Called(ctx, userUID, expiry)
	return args.Error(0)
}

func (m *MockRepository) SetPendingPayment(ctx context.Context, userUID string, pending bool) error {
	args := m.Called(ctx, userUID, pending)
	return args.Error(0)
}

func (m *MockRepository) AppendNotification(ctx context.Context, n models.Notification) (int, error) {
	args := m.Called(ctx, n)
	return args.Int(0), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Invalidate(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestService_Submit(t *testing.T) {
	repo := new(MockRepository)
	cache := new(MockCache)
	svc := New(repo, cache, newNoopLogger())

	req := models.DummyPayment{
		Amount:        10000,
		Method:        "M-Pesa",
		Months:        2,
		TransactionID: "TX123",
	}

	repo.On("CreatePayment", mock.Anything, mock.MatchedBy(func(p models.Payment) bool {
		return p.UserUID == "uid-1" && p.Currency == "TZS" && p.Amount == 10000 && p.Months == 2
	})).Return(7, nil).Once()
	repo.On("SetPendingPayment", mock.Anything, "uid-1", true).Return(nil).Once()
	cache.On("Invalidate", "user:uid-1").Return(nil).Once()
	repo.On("AppendNotification", mock.Anything, mock.MatchedBy(func(n models.Notification) bool {
		return n.RecipientType == models.RecipientAdmin && n.UserUID == nil && n.Priority == "high"
	})).Return(1, nil).Once()

	id, err := svc.Submit(context.Background(), "uid-1", req)

	assert.NoError(t, err)
	assert.Equal(t, 7, id)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestService_Submit_CreateError(t *testing.T) {
	repo := new(MockRepository)
	cache := new(MockCache)
	svc := New(repo, cache, newNoopLogger())

	repo.On("CreatePayment", mock.Anything, mock.Anything).
		Return(0, errors.New("db error")).Once()

	_, err := svc.Submit(context.Background(), "uid-1", models.DummyPayment{Amount: 100, Method: "Tigo Pesa", Months: 1})

	assert.Error(t, err)
	repo.AssertNotCalled(t, "SetPendingPayment", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertExpectations(t)
}

func TestService_Verify_ExtendsAdditively(t *testing.T) {
	repo := new(MockRepository)
	cache := new(MockCache)
	svc := New(repo, cache, newNoopLogger())

	currentExpiry := time.Now().UTC().AddDate(0, 0, 10)
	payment := &models.Payment{
		ID:      7,
		UserUID: "uid-1",
		Amount:  10000,
		Months:  1,
		Status:  models.PaymentStatusVerified,
	}
	user := &models.User{
		UID:                "uid-1",
		IsSubscribed:       true,
		SubscriptionExpire: &currentExpiry,
	}

	repo.On("MarkPaymentVerified", mock.Anything, 7, "looks good").Return(payment, nil).Once()
	repo.On("GetUser", mock.Anything, "uid-1").Return(user, nil).Once()
	repo.On("ActivateSubscription", mock.Anything, "uid-1", mock.MatchedBy(func(expiry time.Time) bool {
		// one month on top of the remaining ten days, not on top of now
		return expiry.Equal(currentExpiry.AddDate(0, 1, 0))
	})).Return(nil).Once()
	cache.On("Invalidate", "user:uid-1").Return(nil).Once()
	repo.On("AppendNotification", mock.Anything, mock.MatchedBy(func(n models.Notification) bool {
		return n.RecipientType == models.RecipientUser && n.UserUID != nil && *n.UserUID == "uid-1"
	})).Return(2, nil).Once()

	got, err := svc.Verify(context.Background(), 7, "looks good")

	assert.NoError(t, err)
	assert.Equal(t, payment, got)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestService_Verify_AlreadyResolved(t *testing.T) {
	repo := new(MockRepository)
	cache := new(MockCache)
	svc := New(repo, cache, newNoopLogger())

	repo.On("MarkPaymentVerified", mock.Anything, 7, "").
		Return(nil, repository.ErrInvalidStateTransition).Once()

	_, err := svc.Verify(context.Background(), 7, "")

	assert.ErrorIs(t, err, repository.ErrInvalidStateTransition)
	repo.AssertNotCalled(t, "ActivateSubscription", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertExpectations(t)
}

func TestService_Verify_NotFound(t *testing.T) {
	repo := new(MockRepository)
	cache := new(MockCache)
	svc := New(repo, cache, newNoopLogger())

	repo.On("MarkPaymentVerified", mock.Anything, 99, "").
		Return(nil, repository.ErrNotFound).Once()

	_, err := svc.Verify(context.Background(), 99, "")

	assert.ErrorIs(t, err, repository.ErrNotFound)
	repo.AssertExpectations(t)
}

func TestService_Reject(t *testing.T) {
	repo := new(MockRepository)
	cache := new(MockCache)
	svc := New(repo, cache, newNoopLogger())

	payment := &models.Payment{
		ID:      8,
		UserUID: "uid-2",
		Amount:  5000,
		Status:  models.PaymentStatusRejected,
	}

	repo.On("MarkPaymentRejected", mock.Anything, 8, "screenshot unreadable").Return(payment, nil).Once()
	repo.On("SetPendingPayment", mock.Anything, "uid-2", false).Return(nil).Once()
	cache.On("Invalidate", "user:uid-2").Return(nil).Once()
	repo.On("AppendNotification", mock.Anything, mock.MatchedBy(func(n models.Notification) bool {
		return n.RecipientType == models.RecipientUser && n.Priority == "high"
	})).Return(3, nil).Once()

	got, err := svc.Reject(context.Background(), 8, "screenshot unreadable")

	assert.NoError(t, err)
	assert.Equal(t, payment, got)
	repo.AssertNotCalled(t, "ActivateSubscription", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestService_Verify_NotificationFailureIsNotFatal(t *testing.T) {
	repo := new(MockRepository)
	cache := new(MockCache)
	svc := New(repo, cache, newNoopLogger())

	payment := &models.Payment{ID: 7, UserUID: "uid-1", Months: 1}
	user := &models.User{UID: "uid-1"}

	repo.On("MarkPaymentVerified", mock.Anything, 7, "").Return(payment, nil).Once()
	repo.On("GetUser", mock.Anything, "uid-1").Return(user, nil).Once()
	repo.On("ActivateSubscription", mock.Anything, "uid-1", mock.Anything).Return(nil).Once()
	cache.On("Invalidate", "user:uid-1").Return(nil).Once()
	repo.On("AppendNotification", mock.Anything, mock.Anything).
		Return(0, errors.New("insert failed")).Once()

	_, err := svc.Verify(context.Background(), 7, "")

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}
