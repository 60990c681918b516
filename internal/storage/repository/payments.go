package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/garilangu/gari-langu/internal/models"
)

const paymentColumns = `id, user_uid, amount, currency, method, months, status,
			      transaction_id, verification_message, verification_image,
			      admin_notes, submitted_at`

func scanPayment(row interface{ Scan(...any) error }) (*models.Payment, error) {
	p := &models.Payment{}
	if err := row.Scan(&p.ID, &p.UserUID, &p.Amount, &p.Currency, &p.Method,
		&p.Months, &p.Status, &p.TransactionID, &p.VerificationMessage,
		&p.VerificationImage, &p.AdminNotes, &p.SubmittedAt); err != nil {
		return nil, err
	}
	return p, nil
}

// CreatePayment inserts a pending payment claim and returns its ID.
func (s *Storage) CreatePayment(ctx context.Context, payment models.Payment) (int, error) {
	const op = "storage.CreatePayment"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO payments (user_uid, amount, currency, method, months,
			      transaction_id, verification_message, verification_image)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		payment.UserUID, payment.Amount, payment.Currency, payment.Method,
		payment.Months, payment.TransactionID, payment.VerificationMessage,
		payment.VerificationImage).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetPayment returns a payment by ID.
func (s *Storage) GetPayment(ctx context.Context, id int) (*models.Payment, error) {
	const op = "storage.GetPayment"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + paymentColumns + `
			  FROM payments
			  WHERE id = $1`
	p, err := scanPayment(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// ListPayments returns a user's payments, newest first.
func (s *Storage) ListPayments(ctx context.Context, userUID string) ([]*models.Payment, error) {
	const op = "storage.ListPayments"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + paymentColumns + `
			  FROM payments
			  WHERE user_uid = $1
			  ORDER BY submitted_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListAllPayments returns all payments for admin review, optionally
// filtered by status. An empty status returns everything.
func (s *Storage) ListAllPayments(ctx context.Context, status string) ([]*models.Payment, error) {
	const op = "storage.ListAllPayments"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + paymentColumns + `
			  FROM payments
			  WHERE $1 = '' OR status = $1
			  ORDER BY submitted_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// MarkPaymentVerified transitions a payment from pending to verified. The
// update is conditional on the current status, so concurrent admins cannot
// both win: exactly one caller observes the row change. Returns the updated
// payment, ErrNotFound if it does not exist, or ErrInvalidStateTransition
// if it was already resolved.
func (s *Storage) MarkPaymentVerified(ctx context.Context, id int, adminNotes string) (*models.Payment, error) {
	const op = "storage.MarkPaymentVerified"
	return s.resolvePayment(ctx, op, id, models.PaymentStatusVerified, adminNotes)
}

// MarkPaymentRejected transitions a payment from pending to rejected under
// the same guard as MarkPaymentVerified.
func (s *Storage) MarkPaymentRejected(ctx context.Context, id int, adminNotes string) (*models.Payment, error) {
	const op = "storage.MarkPaymentRejected"
	return s.resolvePayment(ctx, op, id, models.PaymentStatusRejected, adminNotes)
}

func (s *Storage) resolvePayment(ctx context.Context, op string, id int, status, adminNotes string) (*models.Payment, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE payments
			  SET status = $1, admin_notes = $2
			  WHERE id = $3 AND status = 'pending'
			  RETURNING ` + paymentColumns
	p, err := scanPayment(s.DB.QueryRowContext(ctx, query, status, adminNotes, id))
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// No row matched: distinguish a missing payment from one already
	// resolved by a concurrent admin.
	var exists bool
	checkQuery := `SELECT EXISTS (SELECT 1 FROM payments WHERE id = $1)`
	if err := s.DB.QueryRowContext(ctx, checkQuery, id).Scan(&exists); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !exists {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil, fmt.Errorf("%s: %w", op, ErrInvalidStateTransition)
}
