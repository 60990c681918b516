package models

import "time"

// Payment statuses. The only legal transitions are
// pending -> verified and pending -> rejected, never reversed.
const (
	PaymentStatusPending  = "pending"
	PaymentStatusVerified = "verified"
	PaymentStatusRejected = "rejected"
)

// Payment is one user's claim of having paid via mobile money,
// awaiting manual admin verification.
type Payment struct {
	ID                  int       // Primary key
	UserUID             string    // Owning user
	Amount              int       // Amount in TZS
	Currency            string    // Always "TZS"
	Method              string    // Mobile-money provider, e.g. "M-Pesa"
	Months              int       // Subscription months purchased
	Status              string    // pending, verified or rejected
	TransactionID       string    // Provider transaction reference, optional
	VerificationMessage string    // Free text from the user, optional
	VerificationImage   string    // Screenshot URL/path, optional
	AdminNotes          string    // Set on verify/reject
	SubmittedAt         time.Time // Submission timestamp
}

// DummyPayment carries payment submission input from a JSON request.
type DummyPayment struct {
	Amount              int    `json:"amount" validate:"required,gt=0"`
	Method              string `json:"method" validate:"required"`
	Months              int    `json:"months" validate:"required,gt=0"`
	TransactionID       string `json:"transaction_id,omitempty"`
	VerificationMessage string `json:"verification_message,omitempty"`
	VerificationImage   string `json:"verification_image,omitempty"`
}
