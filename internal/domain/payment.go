package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentStatus represents the state of a payment in the ledger
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// PaymentRecord is a read-only projection of a ledger entry
type PaymentRecord struct {
	ID            uuid.UUID
	ReservationID uuid.UUID
	TenantID      uuid.UUID
	Amount        decimal.Decimal
	Status        PaymentStatus
	ProcessedAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

// IsPaid returns true if the payment contributes to revenue
func (p PaymentRecord) IsPaid() bool {
	return p.Status == PaymentPaid
}

// EffectiveDate returns the processed time, falling back to the update time and then the creation time
func (p PaymentRecord) EffectiveDate() time.Time {
	if p.ProcessedAt != nil && !p.ProcessedAt.IsZero() {
		return p.ProcessedAt.UTC()
	}
	if p.UpdatedAt != nil && !p.UpdatedAt.IsZero() {
		return p.UpdatedAt.UTC()
	}
	return p.CreatedAt.UTC()
}
