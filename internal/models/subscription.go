package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	SubscriptionActive   = "active"
	SubscriptionPastDue  = "past_due"
	SubscriptionCanceled = "canceled"
)

type Subscription struct {
	ID         uuid.UUID `json:"id"`
	CompanyID  uuid.UUID `json:"company_id"`
	Plan       string    `json:"plan"`
	Status     string    `json:"status"`
	Created_At time.Time `json:"created_at"`
	Updated_At time.Time `json:"updated_at"`
}

const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
	PaymentExpired = "expired"
)

// Payment is one PIX charge against a subscription. TxID is the provider's
// transaction identifier echoed back on the webhook.
type Payment struct {
	ID          uuid.UUID  `json:"id"`
	CompanyID   uuid.UUID  `json:"company_id"`
	Plan        string     `json:"plan"`
	TxID        string     `json:"txid"`
	AmountCents int64      `json:"amount_cents"`
	Status      string     `json:"status"`
	QRCode      string     `json:"qr_code"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`
	Created_At  time.Time  `json:"created_at"`
}
