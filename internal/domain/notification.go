package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Notification subjects
const (
	SubjectReservationConfirmed = "Reservation Confirmed"
	SubjectReservationCancelled = "Reservation Cancelled"
)

// DefaultNotificationChannel is used when no channel is configured
const DefaultNotificationChannel = "email"

// Notification is a message handed to the notification sink
type Notification struct {
	TenantID uuid.UUID `json:"tenantId"`
	UserID   uuid.UUID `json:"userId"`
	Channel  string    `json:"channel"`
	Subject  string    `json:"subject"`
	Body     string    `json:"body"`
}

// NewConfirmedNotification builds the message sent after a successful booking
func NewConfirmedNotification(r *Reservation, resourceName, channel string) Notification {
	return Notification{
		TenantID: r.TenantID(),
		UserID:   r.UserID(),
		Channel:  channel,
		Subject:  SubjectReservationConfirmed,
		Body: fmt.Sprintf("Your reservation of %s from %s to %s is confirmed.",
			resourceName, r.Range().Start().Format(time.RFC3339), r.Range().End().Format(time.RFC3339)),
	}
}

// NewCancelledNotification builds the message sent after a cancellation
func NewCancelledNotification(r *Reservation, channel string) Notification {
	return Notification{
		TenantID: r.TenantID(),
		UserID:   r.UserID(),
		Channel:  channel,
		Subject:  SubjectReservationCancelled,
		Body: fmt.Sprintf("Your reservation %s from %s to %s has been cancelled.",
			r.ID(), r.Range().Start().Format(time.RFC3339), r.Range().End().Format(time.RFC3339)),
	}
}
