package view

import (
	"fmt"
	"sort"

	"beachbox/internal/domain/booking"
	"beachbox/internal/domain/client"
	"beachbox/internal/domain/court"
	"beachbox/internal/domain/unit"
	"beachbox/internal/pkg/money"
)

// UnitBookings is the block of the bookings page for one unit.
type UnitBookings struct {
	UnitID   int64
	UnitName string
	Bookings *List[booking.Booking]
}

// GroupBookingsByUnit returns one block per unit, in the order of units, each
// with its own search. Bookings whose unit is not in units are dropped.
func GroupBookingsByUnit(units []unit.Unit, bookings []booking.Booking) []UnitBookings {
	byUnit := make(map[int64][]booking.Booking, len(units))
	for _, b := range bookings {
		byUnit[b.UnitID] = append(byUnit[b.UnitID], b)
	}
	out := make([]UnitBookings, 0, len(units))
	for _, u := range units {
		rows := byUnit[u.ID]
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].ScheduledAt.Before(rows[j].ScheduledAt.Time)
		})
		out = append(out, UnitBookings{
			UnitID:   u.ID,
			UnitName: u.Name,
			Bookings: NewList(rows, BookingSearchFields),
		})
	}
	return out
}

// CourtOptions lists the courts that can be picked for a new booking in unitID.
func CourtOptions(courts []court.Court, unitID int64) []court.Court {
	out := make([]court.Court, 0, len(courts))
	for _, c := range courts {
		if c.UnitID == unitID && c.Available {
			out = append(out, c)
		}
	}
	return out
}

func ClientSearchFields(c client.Client) []string { return []string{c.Name, c.Phone} }
func UnitSearchFields(u unit.Unit) []string       { return []string{u.Name, u.Location} }
func CourtSearchFields(c court.Court) []string    { return []string{c.Name, c.UnitName} }

func BookingSearchFields(b booking.Booking) []string {
	return []string{b.ClientName, b.CourtName}
}

// FormatMoney renders v with exactly two decimals.
func FormatMoney(v float64) string {
	v = money.Round(v)
	if v == 0 {
		v = 0 // drop the sign of -0
	}
	return fmt.Sprintf("%.2f", v)
}

func FormatCurrency(v float64) string {
	return "R$ " + FormatMoney(v)
}
