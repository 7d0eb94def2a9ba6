package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrInvalidStatus is returned for an unknown reservation status
	ErrInvalidStatus = errors.New("domain: invalid reservation status")

	// ErrInvalidReservation is returned when restoring a reservation with missing identifiers
	ErrInvalidReservation = errors.New("domain: invalid reservation")
)

// ReservationStatus represents the lifecycle state of a reservation
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
	StatusCompleted ReservationStatus = "completed"
)

// IsValid returns true for one of the known statuses
func (s ReservationStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	default:
		return false
	}
}

// BlocksSlot returns true if a reservation in this status occupies its time slot.
// Cancelled and completed reservations never block new bookings.
func (s ReservationStatus) BlocksSlot() bool {
	return s == StatusPending || s == StatusConfirmed
}

// Label returns the display label of the status
func (s ReservationStatus) Label() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusConfirmed:
		return "Confirmed"
	case StatusCancelled:
		return "Cancelled"
	case StatusCompleted:
		return "Completed"
	default:
		return "Unknown"
	}
}

// ParseReservationStatus converts a raw string into a validated status
func ParseReservationStatus(raw string) (ReservationStatus, error) {
	s := ReservationStatus(raw)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// Reservation is a booking of one resource by one user within a time range.
// State changes go through UpdateSchedule and SetStatus only.
type Reservation struct {
	id         uuid.UUID
	tenantID   uuid.UUID
	resourceID uuid.UUID
	userID     uuid.UUID
	timeRange  TimeRange
	status     ReservationStatus
	createdAt  time.Time
	updatedAt  time.Time
}

// NewReservation creates a confirmed reservation with a fresh id
func NewReservation(tenantID, resourceID, userID uuid.UUID, timeRange TimeRange) *Reservation {
	return &Reservation{
		id:         uuid.New(),
		tenantID:   tenantID,
		resourceID: resourceID,
		userID:     userID,
		timeRange:  timeRange,
		status:     StatusConfirmed,
	}
}

// RestoreReservation rebuilds a reservation loaded from storage
func RestoreReservation(
	id, tenantID, resourceID, userID uuid.UUID,
	start, end time.Time,
	status ReservationStatus,
	createdAt, updatedAt time.Time,
) (*Reservation, error) {
	if id == uuid.Nil || tenantID == uuid.Nil || resourceID == uuid.Nil || userID == uuid.Nil {
		return nil, ErrInvalidReservation
	}
	timeRange, err := NewTimeRange(start, end)
	if err != nil {
		return nil, err
	}
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}

	return &Reservation{
		id:         id,
		tenantID:   tenantID,
		resourceID: resourceID,
		userID:     userID,
		timeRange:  timeRange,
		status:     status,
		createdAt:  createdAt.UTC(),
		updatedAt:  updatedAt.UTC(),
	}, nil
}

// Getters
func (r *Reservation) ID() uuid.UUID             { return r.id }
func (r *Reservation) TenantID() uuid.UUID       { return r.tenantID }
func (r *Reservation) ResourceID() uuid.UUID     { return r.resourceID }
func (r *Reservation) UserID() uuid.UUID         { return r.userID }
func (r *Reservation) Range() TimeRange          { return r.timeRange }
func (r *Reservation) Status() ReservationStatus { return r.status }
func (r *Reservation) CreatedAt() time.Time      { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time      { return r.updatedAt }

// BelongsTo returns true if the reservation is owned by the tenant
func (r *Reservation) BelongsTo(tenantID uuid.UUID) bool {
	return r.tenantID == tenantID
}

// IsActive returns true for any status except cancelled
func (r *Reservation) IsActive() bool {
	return r.status != StatusCancelled
}

// IsCancelled returns true if the reservation has been cancelled
func (r *Reservation) IsCancelled() bool {
	return r.status == StatusCancelled
}

// BlocksSlot returns true if the reservation prevents overlapping bookings
func (r *Reservation) BlocksSlot() bool {
	return r.status.BlocksSlot()
}

// UpdateSchedule moves the reservation to a new time range
func (r *Reservation) UpdateSchedule(timeRange TimeRange) error {
	if timeRange.IsZero() || !timeRange.End().After(timeRange.Start()) {
		return ErrInvalidTimeRange
	}
	r.timeRange = timeRange
	return nil
}

// SetStatus changes the lifecycle status
func (r *Reservation) SetStatus(status ReservationStatus) error {
	if !status.IsValid() {
		return ErrInvalidStatus
	}
	r.status = status
	return nil
}

// Clone returns an independent copy, so a change can be prepared and discarded
func (r *Reservation) Clone() *Reservation {
	c := *r
	return &c
}
