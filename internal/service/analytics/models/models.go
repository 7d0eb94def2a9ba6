package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Request модели

// SnapshotRequest запрос аналитики тенанта, опционально по одному пользователю
type SnapshotRequest struct {
	TenantID uuid.UUID
	UserID   *uuid.UUID
}

// Response модели

// TimelinePoint точка дневного ряда
type TimelinePoint struct {
	Date  string  `json:"date"` // "2024-01-01"
	Value float64 `json:"value"`
}

// BreakdownRow строка разбивки по паре (пользователь, ресурс)
type BreakdownRow struct {
	UserID           uuid.UUID `json:"userId"`
	ResourceID       uuid.UUID `json:"resourceId"`
	UserName         string    `json:"userName"`
	ResourceName     string    `json:"resourceName"`
	HoursUsed        float64   `json:"hoursUsed"`
	AmountPaid       float64   `json:"amountPaid"`
	ReservationCount int       `json:"reservationCount"`
}

// DashboardResponse сводная аналитика тенанта
type DashboardResponse struct {
	UsageTimeline        []TimelinePoint `json:"usageTimeline"`
	RevenueTimeline      []TimelinePoint `json:"revenueTimeline"`
	UtilizationBreakdown []BreakdownRow  `json:"utilizationBreakdown"` // По часам, по убыванию
	RevenueBreakdown     []BreakdownRow  `json:"revenueBreakdown"`     // По сумме, по убыванию
}

// RoomReservation строка истории бронирований ресурса
type RoomReservation struct {
	ReservationID uuid.UUID `json:"reservationId"`
	UserID        uuid.UUID `json:"userId"`
	UserName      string    `json:"userName"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	Status        string    `json:"status"`
	StatusLabel   string    `json:"statusLabel"`
	AmountPaid    float64   `json:"amountPaid"`
}

// RoomInsight загрузка и история бронирований ресурса
type RoomInsight struct {
	ResourceID   uuid.UUID         `json:"resourceId"`
	ResourceName string            `json:"resourceName"`
	Occupancy    []TimelinePoint   `json:"occupancy"`
	Reservations []RoomReservation `json:"reservations"`
}

// RoomInsightsResponse аналитика по всем ресурсам тенанта
type RoomInsightsResponse struct {
	Rooms []RoomInsight `json:"rooms"`
}

// FromDomainTimeline конвертирует дневной ряд
func FromDomainTimeline(points []domain.TimelinePoint) []TimelinePoint {
	out := make([]TimelinePoint, 0, len(points))
	for _, p := range points {
		out = append(out, TimelinePoint{
			Date:  p.Date.Format(domain.DateFormat),
			Value: p.Value.InexactFloat64(),
		})
	}
	return out
}

// FromDomainBreakdown конвертирует строки разбивки
func FromDomainBreakdown(rows []domain.UtilizationRevenueRow) []BreakdownRow {
	out := make([]BreakdownRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, BreakdownRow{
			UserID:           r.UserID,
			ResourceID:       r.ResourceID,
			UserName:         r.UserName,
			ResourceName:     r.ResourceName,
			HoursUsed:        r.HoursUsed.InexactFloat64(),
			AmountPaid:       r.AmountPaid.InexactFloat64(),
			ReservationCount: r.ReservationCount,
		})
	}
	return out
}

// FromDomainRoomInsights конвертирует аналитику ресурсов
func FromDomainRoomInsights(insights []domain.RoomInsight) *RoomInsightsResponse {
	rooms := make([]RoomInsight, 0, len(insights))
	for _, in := range insights {
		rows := make([]RoomReservation, 0, len(in.Reservations))
		for _, r := range in.Reservations {
			rows = append(rows, RoomReservation{
				ReservationID: r.ReservationID,
				UserID:        r.UserID,
				UserName:      r.UserName,
				Start:         r.Start,
				End:           r.End,
				Status:        string(r.Status),
				StatusLabel:   r.StatusLabel,
				AmountPaid:    r.AmountPaid.InexactFloat64(),
			})
		}
		rooms = append(rooms, RoomInsight{
			ResourceID:   in.ResourceID,
			ResourceName: in.ResourceName,
			Occupancy:    FromDomainTimeline(in.Occupancy),
			Reservations: rows,
		})
	}
	return &RoomInsightsResponse{Rooms: rooms}
}
