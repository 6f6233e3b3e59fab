package report

import (
	"time"

	"beachbox/internal/pkg/money"
	"beachbox/internal/pkg/wallclock"
)

// BuildDaily aggregates the bookings of day. Rows outside day are ignored.
func BuildDaily(rows []Row, capacity Capacity, day time.Time, hours Hours) Daily {
	day = wallclock.Day(day)
	kept := inRange(rows, day, day)

	byCourt := make(map[string]float64)
	for _, r := range kept {
		byCourt[r.CourtName] += r.Price
	}
	roundAll(byCourt)

	return Daily{
		Date:           day.Format(wallclock.DateLayout),
		Summary:        summarize(kept, capacity, 1, hours),
		RevenueByCourt: byCourt,
	}
}

// BuildCustom aggregates the bookings between from and to, both inclusive.
// Every date of the range gets a revenue bucket, zero when it had no bookings.
func BuildCustom(rows []Row, capacity Capacity, from, to time.Time, hours Hours) Custom {
	from, to = wallclock.Day(from), wallclock.Day(to)
	kept := inRange(rows, from, to)

	byDate := make(map[string]float64)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		byDate[d.Format(wallclock.DateLayout)] = 0
	}
	for _, r := range kept {
		byDate[r.ScheduledAt.Format(wallclock.DateLayout)] += r.Price
	}
	roundAll(byDate)

	return Custom{
		From:          from.Format(wallclock.DateLayout),
		To:            to.Format(wallclock.DateLayout),
		Summary:       summarize(kept, capacity, DaysBetween(from, to), hours),
		RevenueByDate: byDate,
	}
}

// DaysBetween counts the calendar days from from to to, inclusive.
func DaysBetween(from, to time.Time) int {
	from, to = wallclock.Day(from), wallclock.Day(to)
	if to.Before(from) {
		return 0
	}
	return int(to.Sub(from).Hours()/24) + 1
}

func summarize(rows []Row, capacity Capacity, days int, hours Hours) Summary {
	var revenue float64
	byHour := make(map[int]int)
	for _, r := range rows {
		revenue += r.Price
		byHour[r.ScheduledAt.Hour()]++
	}

	slots := int64(days) * int64(hours.Slots())
	maxRevenue := float64(slots) * capacity.BasePriceSum
	remaining := slots*capacity.Courts - int64(len(rows))
	if remaining < 0 {
		remaining = 0
	}

	details := rows
	if details == nil {
		details = []Row{}
	}

	revenue = money.Round(revenue)
	maxRevenue = money.Round(maxRevenue)
	return Summary{
		TotalBookings:     int64(len(rows)),
		Revenue:           revenue,
		MaxRevenue:        maxRevenue,
		RevenueGap:        money.Round(maxRevenue - revenue),
		RemainingCapacity: remaining,
		BookingsByHour:    byHour,
		Details:           details,
	}
}

func inRange(rows []Row, from, to time.Time) []Row {
	end := to.AddDate(0, 0, 1)
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		at := r.ScheduledAt.Time
		if at.Before(from) || !at.Before(end) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func roundAll(m map[string]float64) {
	for k, v := range m {
		m[k] = money.Round(v)
	}
}
