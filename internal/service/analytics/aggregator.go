package analytics

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

var (
	hundred        = decimal.NewFromInt(domain.MaxPercentage)
	secondsPerHour = decimal.NewFromInt(int64(time.Hour / time.Second))
	secondsPerDay  = int64(domain.HoursPerDay * time.Hour / time.Second)
)

// Aggregator вычисляет аналитические срезы по снимку данных тенанта.
// Все методы чистые, снимок не изменяется.
type Aggregator struct {
	timeProvider TimeProvider
}

// NewAggregator создает агрегатор с заданным источником времени
func NewAggregator(tp TimeProvider) *Aggregator {
	return &Aggregator{timeProvider: tp}
}

// UsageTimeline загрузка всех ресурсов за последние 7 дней (UTC), от старых к новым.
// Значение дня: часы пересечения бронирований с [00:00, 24:00) / (resourceCount * 24) * 100,
// ограничено [0, 100] и округлено до 2 знаков. При resourceCount == 0 ряд пустой.
func (a *Aggregator) UsageTimeline(reservations []*domain.Reservation, resourceCount int) []domain.TimelinePoint {
	if resourceCount <= 0 {
		return []domain.TimelinePoint{}
	}
	return occupancySeries(a.trailingDays(domain.UsageTimelineDays), activeOnly(reservations), resourceCount)
}

// RevenueTimeline сумма оплаченных платежей по дням за последние 14 дней (UTC).
// Дата платежа: processedAt, затем updatedAt, затем createdAt.
// Если оплаченных платежей нет совсем, ряд пустой.
func (a *Aggregator) RevenueTimeline(payments []domain.PaymentRecord) []domain.TimelinePoint {
	byDay := make(map[time.Time]decimal.Decimal)
	paid := 0
	for _, p := range payments {
		if !p.IsPaid() {
			continue
		}
		paid++
		day := domain.StartOfDayUTC(p.EffectiveDate())
		byDay[day] = byDay[day].Add(p.Amount)
	}
	if paid == 0 {
		return []domain.TimelinePoint{}
	}

	days := a.trailingDays(domain.RevenueTimelineDays)
	points := make([]domain.TimelinePoint, 0, len(days))
	for _, day := range days {
		points = append(points, domain.TimelinePoint{Date: day, Value: round2(byDay[day])})
	}
	return points
}

// Breakdown группирует бронирования по паре (пользователь, ресурс).
// Часы и количество считаются по активным бронированиям, сумма оплат по всем.
// Возвращает одни и те же строки в двух порядках: по часам и по сумме оплат (по убыванию).
func (a *Aggregator) Breakdown(
	reservations []*domain.Reservation,
	payments []domain.PaymentRecord,
	users []domain.UserRef,
	resources []domain.ResourceRef,
) (usage []domain.UtilizationRevenueRow, revenue []domain.UtilizationRevenueRow) {
	type groupKey struct {
		user     uuid.UUID
		resource uuid.UUID
	}
	type group struct {
		seconds int64
		amount  decimal.Decimal
		count   int
	}

	paidByReservation := paidAmounts(payments)
	userNames := domain.UserNames(users)
	resourceNames := domain.ResourceNames(resources)

	groups := make(map[groupKey]*group)
	order := make([]groupKey, 0)
	for _, r := range reservations {
		amount := paidByReservation[r.ID()]
		// отменённые бронирования учитываются только оплаченной суммой
		if !r.IsActive() && amount.IsZero() {
			continue
		}

		key := groupKey{user: r.UserID(), resource: r.ResourceID()}
		g, ok := groups[key]
		if !ok {
			g = &group{}
			groups[key] = g
			order = append(order, key)
		}
		g.amount = g.amount.Add(amount)
		if r.IsActive() {
			g.seconds += int64(r.Range().Duration() / time.Second)
			g.count++
		}
	}

	rows := make([]domain.UtilizationRevenueRow, 0, len(order))
	for _, key := range order {
		g := groups[key]
		rows = append(rows, domain.UtilizationRevenueRow{
			UserID:           key.user,
			ResourceID:       key.resource,
			UserName:         domain.NameOr(userNames, key.user, domain.UnknownUserName),
			ResourceName:     domain.NameOr(resourceNames, key.resource, domain.UnknownResourceName),
			HoursUsed:        round2(decimal.NewFromInt(g.seconds).Div(secondsPerHour)),
			AmountPaid:       round2(g.amount),
			ReservationCount: g.count,
		})
	}

	// детерминированный базовый порядок для равных значений
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].UserName != rows[j].UserName {
			return rows[i].UserName < rows[j].UserName
		}
		return rows[i].ResourceName < rows[j].ResourceName
	})

	usage = append([]domain.UtilizationRevenueRow(nil), rows...)
	sort.SliceStable(usage, func(i, j int) bool {
		return usage[i].HoursUsed.GreaterThan(usage[j].HoursUsed)
	})

	revenue = append([]domain.UtilizationRevenueRow(nil), rows...)
	sort.SliceStable(revenue, func(i, j int) bool {
		return revenue[i].AmountPaid.GreaterThan(revenue[j].AmountPaid)
	})

	return usage, revenue
}

// RoomInsights для каждого ресурса (по имени) строит 7-дневный ряд загрузки
// и историю всех бронирований по возрастанию начала
func (a *Aggregator) RoomInsights(
	reservations []*domain.Reservation,
	payments []domain.PaymentRecord,
	users []domain.UserRef,
	resources []domain.ResourceRef,
) []domain.RoomInsight {
	sorted := append([]domain.ResourceRef(nil), resources...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Name != sorted[j].Name {
			return sorted[i].Name < sorted[j].Name
		}
		return sorted[i].ID.String() < sorted[j].ID.String()
	})

	byResource := make(map[uuid.UUID][]*domain.Reservation)
	for _, r := range reservations {
		byResource[r.ResourceID()] = append(byResource[r.ResourceID()], r)
	}

	paidByReservation := paidAmounts(payments)
	userNames := domain.UserNames(users)
	days := a.trailingDays(domain.OccupancyTimelineDays)

	insights := make([]domain.RoomInsight, 0, len(sorted))
	for _, res := range sorted {
		list := append([]*domain.Reservation(nil), byResource[res.ID]...)
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].Range().Start().Before(list[j].Range().Start())
		})

		rows := make([]domain.RoomReservationRow, 0, len(list))
		for _, r := range list {
			rows = append(rows, domain.RoomReservationRow{
				ReservationID: r.ID(),
				UserID:        r.UserID(),
				UserName:      domain.NameOr(userNames, r.UserID(), domain.UnknownUserName),
				Start:         r.Range().Start(),
				End:           r.Range().End(),
				Status:        r.Status(),
				StatusLabel:   r.Status().Label(),
				AmountPaid:    round2(paidByReservation[r.ID()]),
			})
		}

		insights = append(insights, domain.RoomInsight{
			ResourceID:   res.ID,
			ResourceName: res.Name,
			Occupancy:    occupancySeries(days, activeOnly(list), 1),
			Reservations: rows,
		})
	}

	return insights
}

// trailingDays возвращает n последних дней UTC, включая сегодняшний, от старых к новым
func (a *Aggregator) trailingDays(n int) []time.Time {
	today := domain.StartOfDayUTC(a.timeProvider.Now())
	days := make([]time.Time, 0, n)
	for i := n - 1; i >= 0; i-- {
		days = append(days, today.AddDate(0, 0, -i))
	}
	return days
}

// occupancySeries процент занятости capacity ресурсов по каждому дню
func occupancySeries(days []time.Time, reservations []*domain.Reservation, capacity int) []domain.TimelinePoint {
	capacitySeconds := decimal.NewFromInt(secondsPerDay * int64(capacity))

	points := make([]domain.TimelinePoint, 0, len(days))
	for _, day := range days {
		window := domain.DayRange(day)

		var occupied int64
		for _, r := range reservations {
			occupied += int64(r.Range().OverlapDuration(window.Start(), window.End()) / time.Second)
		}

		pct := decimal.NewFromInt(occupied).Mul(hundred).Div(capacitySeconds)
		points = append(points, domain.TimelinePoint{Date: day, Value: round2(clampPercent(pct))})
	}
	return points
}

// activeOnly отбрасывает отменённые бронирования
func activeOnly(reservations []*domain.Reservation) []*domain.Reservation {
	out := make([]*domain.Reservation, 0, len(reservations))
	for _, r := range reservations {
		if r.IsActive() {
			out = append(out, r)
		}
	}
	return out
}

// paidAmounts сумма оплаченных платежей по бронированию
func paidAmounts(payments []domain.PaymentRecord) map[uuid.UUID]decimal.Decimal {
	out := make(map[uuid.UUID]decimal.Decimal)
	for _, p := range payments {
		if p.IsPaid() {
			out[p.ReservationID] = out[p.ReservationID].Add(p.Amount)
		}
	}
	return out
}

func clampPercent(v decimal.Decimal) decimal.Decimal {
	if v.IsNegative() {
		return decimal.Zero
	}
	if v.GreaterThan(hundred) {
		return hundred
	}
	return v
}

func round2(v decimal.Decimal) decimal.Decimal {
	return v.Round(2)
}
