package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vidflow/vidflow_server/internal/models"
)

type SQLSubscriptionStore struct {
	db *DB
}

func NewSQLSubscriptionStore(db *DB) *SQLSubscriptionStore {
	if db == nil {
		panic("db cannot be nil for SQLSubscriptionStore")
	}
	return &SQLSubscriptionStore{db: db}
}

type SubscriptionStore interface {
	GetSubscriptionByCompanyID(companyID uuid.UUID) (*models.Subscription, error)
	CreatePayment(payment *models.Payment) error
	GetPaymentByTxID(txID string) (*models.Payment, error)
	MarkPaymentPaid(txID string, paidAt time.Time) error
	ActivateSubscription(companyID uuid.UUID, plan string) error
}

func (s *SQLSubscriptionStore) GetSubscriptionByCompanyID(companyID uuid.UUID) (*models.Subscription, error) {
	subscription := &models.Subscription{}

	query := s.db.Rebind(`
	SELECT id, company_id, plan, status, created_at, updated_at
	FROM subscriptions
	WHERE company_id = ?
	`)

	err := s.db.QueryRow(query, companyID.String()).Scan(
		&subscription.ID,
		&subscription.CompanyID,
		&subscription.Plan,
		&subscription.Status,
		&subscription.Created_At,
		&subscription.Updated_At,
	)
	if err != nil {
		return nil, fmt.Errorf("error running get subscription query: %w", err)
	}

	return subscription, nil
}

func (s *SQLSubscriptionStore) CreatePayment(payment *models.Payment) error {
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}

	query := s.db.Rebind(`
	INSERT INTO payments (id, company_id, plan, txid, amount_cents, status, qr_code)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`)

	_, err := s.db.Exec(query, payment.ID.String(), payment.CompanyID.String(), payment.Plan, payment.TxID, payment.AmountCents, payment.Status, payment.QRCode)
	if err != nil {
		return fmt.Errorf("error running create payment query: %w", err)
	}

	return nil
}

func (s *SQLSubscriptionStore) GetPaymentByTxID(txID string) (*models.Payment, error) {
	payment := &models.Payment{}

	query := s.db.Rebind(`
	SELECT id, company_id, plan, txid, amount_cents, status, qr_code, paid_at, created_at
	FROM payments
	WHERE txid = ?
	`)

	err := s.db.QueryRow(query, txID).Scan(
		&payment.ID,
		&payment.CompanyID,
		&payment.Plan,
		&payment.TxID,
		&payment.AmountCents,
		&payment.Status,
		&payment.QRCode,
		&payment.PaidAt,
		&payment.Created_At,
	)
	if err != nil {
		return nil, fmt.Errorf("error running get payment by txid query: %w", err)
	}

	return payment, nil
}

func (s *SQLSubscriptionStore) MarkPaymentPaid(txID string, paidAt time.Time) error {
	query := s.db.Rebind(`
	UPDATE payments
	SET status = 'paid', paid_at = ?
	WHERE txid = ?
	`)

	_, err := s.db.Exec(query, paidAt, txID)
	if err != nil {
		return fmt.Errorf("failed to mark payment paid: %w", err)
	}

	return nil
}

// ActivateSubscription creates or refreshes the company's subscription after
// a confirmed payment.
func (s *SQLSubscriptionStore) ActivateSubscription(companyID uuid.UUID, plan string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}

	defer tx.Rollback()

	deleteQuery := s.db.Rebind(`
	DELETE FROM subscriptions
	WHERE company_id = ?
	`)

	_, err = tx.Exec(deleteQuery, companyID.String())
	if err != nil {
		return fmt.Errorf("failed to clear subscription: %w", err)
	}

	insertQuery := s.db.Rebind(`
	INSERT INTO subscriptions (id, company_id, plan, status)
	VALUES (?, ?, ?, 'active')
	`)

	_, err = tx.Exec(insertQuery, uuid.New().String(), companyID.String(), plan)
	if err != nil {
		return fmt.Errorf("failed to insert subscription: %w", err)
	}

	err = tx.Commit()
	if err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
