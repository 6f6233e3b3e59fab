package report

import (
	"context"
	"time"

	"gorm.io/gorm"

	"beachbox/internal/pkg/wallclock"
)

// Repository reads the booking rows and the court capacity behind a report.
type Repository interface {
	Bookings(ctx context.Context, from, to time.Time, scope Scope) ([]Row, error)
	Capacity(ctx context.Context, scope Scope) (Capacity, error)
}

type reportRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &reportRepository{db: db}
}

type reportRow struct {
	ID          int64     `gorm:"column:id"`
	ScheduledAt time.Time `gorm:"column:scheduled_at"`
	Price       float64   `gorm:"column:price"`
	ClientName  string    `gorm:"column:client_name"`
	CourtID     int64     `gorm:"column:court_id"`
	CourtName   string    `gorm:"column:court_name"`
	UnitID      int64     `gorm:"column:unit_id"`
	UnitName    string    `gorm:"column:unit_name"`
}

// Bookings returns the bookings whose date falls in [from, to].
func (r *reportRepository) Bookings(ctx context.Context, from, to time.Time, scope Scope) ([]Row, error) {
	start := wallclock.Day(from)
	end := wallclock.Day(to).AddDate(0, 0, 1)

	db := r.db.WithContext(ctx).
		Table("bookings AS b").
		Select(`b.id, b.scheduled_at, b.price,
			COALESCE(c.name, '') AS client_name,
			b.court_id, COALESCE(q.name, '') AS court_name,
			COALESCE(q.unit_id, 0) AS unit_id, COALESCE(u.name, '') AS unit_name`).
		Joins("LEFT JOIN clients c ON c.id = b.client_id").
		Joins("LEFT JOIN courts q ON q.id = b.court_id").
		Joins("LEFT JOIN units u ON u.id = q.unit_id").
		Where("b.scheduled_at >= ? AND b.scheduled_at < ?", start, end)
	if len(scope.UnitIDs) > 0 {
		db = db.Where("q.unit_id IN ?", scope.UnitIDs)
	}
	if len(scope.CourtIDs) > 0 {
		db = db.Where("b.court_id IN ?", scope.CourtIDs)
	}

	var rows []reportRow
	if err := db.Order("b.scheduled_at, b.id").Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		out = append(out, Row{
			ID:          row.ID,
			ScheduledAt: wallclock.DateTime{Time: row.ScheduledAt.UTC()},
			Price:       row.Price,
			ClientName:  row.ClientName,
			CourtID:     row.CourtID,
			CourtName:   row.CourtName,
			UnitID:      row.UnitID,
			UnitName:    row.UnitName,
		})
	}
	return out, nil
}

// Capacity counts the available courts in scope and sums their base prices.
func (r *reportRepository) Capacity(ctx context.Context, scope Scope) (Capacity, error) {
	db := r.db.WithContext(ctx).
		Table("courts").
		Select("COUNT(*) AS courts, COALESCE(SUM(base_price), 0) AS base_price_sum").
		Where("available = ?", true)
	if len(scope.UnitIDs) > 0 {
		db = db.Where("unit_id IN ?", scope.UnitIDs)
	}
	if len(scope.CourtIDs) > 0 {
		db = db.Where("id IN ?", scope.CourtIDs)
	}

	var c Capacity
	err := db.Scan(&c).Error
	return c, err
}
