package domain

import "time"

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Default windows for user reservation lookups
const (
	DefaultLookbackWindow  = 30 * 24 * time.Hour
	DefaultLookaheadWindow = 60 * 24 * time.Hour
	DefaultWidenWindow     = 30 * 24 * time.Hour
)

// Analytics windows
const (
	UsageTimelineDays     = 7
	RevenueTimelineDays   = 14
	OccupancyTimelineDays = 7
	HoursPerDay           = 24
	MaxPercentage         = 100
)

// Placeholder names for ids missing from the directory/catalog
const (
	UnknownUserName     = "Unknown user"
	UnknownResourceName = "Unknown resource"
)

// BlockingStatuses статусы, которые занимают слот ресурса
// Используется при проверке пересечений
var BlockingStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
}
