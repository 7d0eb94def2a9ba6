package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TimelinePoint is one value of a per-day series
type TimelinePoint struct {
	Date  time.Time
	Value decimal.Decimal
}

// UtilizationRevenueRow aggregates usage and revenue for a (user, resource) pair
type UtilizationRevenueRow struct {
	UserID           uuid.UUID
	ResourceID       uuid.UUID
	UserName         string
	ResourceName     string
	HoursUsed        decimal.Decimal
	AmountPaid       decimal.Decimal
	ReservationCount int
}

// RoomReservationRow is one entry of a resource reservation history
type RoomReservationRow struct {
	ReservationID uuid.UUID
	UserID        uuid.UUID
	UserName      string
	Start         time.Time
	End           time.Time
	Status        ReservationStatus
	StatusLabel   string
	AmountPaid    decimal.Decimal
}

// RoomInsight is the occupancy series and reservation history of a resource
type RoomInsight struct {
	ResourceID   uuid.UUID
	ResourceName string
	Occupancy    []TimelinePoint
	Reservations []RoomReservationRow
}

// Snapshot is the tenant-scoped input of analytics aggregation
type Snapshot struct {
	Reservations []*Reservation
	Users        []UserRef
	Resources    []ResourceRef
	Payments     []PaymentRecord
}
