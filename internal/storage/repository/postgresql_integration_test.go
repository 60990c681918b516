package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorage_ResolvePayment(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	ctx := context.Background()

	t.Run("verify pending payment", func(t *testing.T) {
		uid := factory.CreateUser(t, "juma", "juma@example.com", "")
		id := factory.CreatePendingPayment(t, uid, 10000, 2)

		payment, err := storage.MarkPaymentVerified(ctx, id, "receipt checked")
		require.NoError(t, err)
		assert.Equal(t, "verified", payment.Status)
		assert.Equal(t, "receipt checked", payment.AdminNotes)
		assert.Equal(t, uid, payment.UserUID)
	})

	t.Run("verify twice fails with state error", func(t *testing.T) {
		uid := factory.CreateUser(t, "asha", "asha@example.com", "")
		id := factory.CreatePendingPayment(t, uid, 5000, 1)

		_, err := storage.MarkPaymentVerified(ctx, id, "")
		require.NoError(t, err)

		_, err = storage.MarkPaymentVerified(ctx, id, "")
		assert.ErrorIs(t, err, ErrInvalidStateTransition)
	})

	t.Run("reject after verify fails", func(t *testing.T) {
		uid := factory.CreateUser(t, "neema", "neema@example.com", "")
		id := factory.CreatePendingPayment(t, uid, 5000, 1)

		_, err := storage.MarkPaymentVerified(ctx, id, "")
		require.NoError(t, err)

		_, err = storage.MarkPaymentRejected(ctx, id, "late")
		assert.ErrorIs(t, err, ErrInvalidStateTransition)
	})

	t.Run("unknown payment", func(t *testing.T) {
		_, err := storage.MarkPaymentVerified(ctx, 999999, "")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestStorage_ResolvePayment_ConcurrentVerify(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	ctx := context.Background()

	uid := factory.CreateUser(t, "juma", "juma@example.com", "")
	id := factory.CreatePendingPayment(t, uid, 10000, 2)

	const workers = 8
	var wg sync.WaitGroup
	results := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := storage.MarkPaymentVerified(ctx, id, "race")
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	won := 0
	for err := range results {
		if err == nil {
			won++
		} else {
			assert.ErrorIs(t, err, ErrInvalidStateTransition)
		}
	}
	// exactly one concurrent verification may win
	assert.Equal(t, 1, won)
}

func TestStorage_FindDueReminders(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	ctx := context.Background()

	uid := factory.CreateUser(t, "juma", "juma@example.com", "+255700000001")
	carID := factory.CreateCar(t, uid, "Toyota", "Corolla", "T123ABC")

	today := time.Now().UTC().Truncate(24 * time.Hour)
	dueSoon := factory.CreateReminder(t, carID, "Oil Change", today.AddDate(0, 0, 3), true)
	factory.CreateReminder(t, carID, "Brake Inspection", today.AddDate(0, 0, 30), false) // outside window
	factory.CreateReminder(t, carID, "Tire Rotation", today.AddDate(0, 0, -2), false)    // already past

	infos, err := storage.FindDueReminders(ctx, 7)
	require.NoError(t, err)
	require.Len(t, infos, 1)

	info := infos[0]
	assert.Equal(t, dueSoon, info.ReminderID)
	assert.Equal(t, "Oil Change", info.ServiceType)
	assert.Equal(t, "Toyota", info.CarMake)
	assert.Equal(t, "T123ABC", info.CarPlate)
	assert.Equal(t, uid, info.UserUID)
	assert.Equal(t, "juma@example.com", info.Email)
	assert.Equal(t, "+255700000001", info.Phone)
	assert.True(t, info.NotifySMS)
}

func TestStorage_MarkNotified(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	ctx := context.Background()

	uid := factory.CreateUser(t, "juma", "juma@example.com", "")
	carID := factory.CreateCar(t, uid, "Toyota", "Corolla", "T123ABC")
	today := time.Now().UTC().Truncate(24 * time.Hour)
	id := factory.CreateReminder(t, carID, "Oil Change", today.AddDate(0, 0, 3), false)

	count, err := storage.MarkNotified(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// already flagged, a second pass is a no-op
	count, err = storage.MarkNotified(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	// flagged reminders drop out of the due scan
	infos, err := storage.FindDueReminders(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, infos)
}

func TestStorage_CompleteReminder(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	ctx := context.Background()

	uid := factory.CreateUser(t, "juma", "juma@example.com", "")
	other := factory.CreateUser(t, "asha", "asha@example.com", "")
	carID := factory.CreateCar(t, uid, "Toyota", "Corolla", "T123ABC")
	today := time.Now().UTC().Truncate(24 * time.Hour)
	id := factory.CreateReminder(t, carID, "Oil Change", today.AddDate(0, 0, 3), false)

	t.Run("another user's reminder is invisible", func(t *testing.T) {
		_, err := storage.CompleteReminder(ctx, id, other, time.Now().UTC())
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("owner completes", func(t *testing.T) {
		rem, err := storage.CompleteReminder(ctx, id, uid, time.Now().UTC())
		require.NoError(t, err)
		assert.Equal(t, "completed", rem.Status)
		require.NotNil(t, rem.CompletedAt)
	})

	t.Run("completing twice fails", func(t *testing.T) {
		_, err := storage.CompleteReminder(ctx, id, uid, time.Now().UTC())
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestStorage_ContextCancellation(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := storage.FindDueReminders(ctx, 7)
	assert.True(t, errors.Is(err, context.Canceled))
}
