package booking

import (
	"context"
	"time"

	"gorm.io/gorm"

	"beachbox/internal/pkg/listquery"
	"beachbox/internal/pkg/wallclock"
)

var SortColumns = map[string]string{
	"id":                  "b.id",
	"dataHoraAgendamento": "b.scheduled_at",
	"preco":               "b.price",
	"cliente":             "c.name",
	"quadra":              "q.name",
	"unidade":             "u.name",
}

const selectDetails = `b.id, b.scheduled_at, b.price,
	b.client_id, COALESCE(c.name, '') AS client_name,
	b.court_id, COALESCE(q.name, '') AS court_name,
	COALESCE(q.unit_id, 0) AS unit_id, COALESCE(u.name, '') AS unit_name`

type bookingRow struct {
	ID          int64     `gorm:"column:id"`
	ScheduledAt time.Time `gorm:"column:scheduled_at"`
	Price       float64   `gorm:"column:price"`
	ClientID    int64     `gorm:"column:client_id"`
	ClientName  string    `gorm:"column:client_name"`
	CourtID     int64     `gorm:"column:court_id"`
	CourtName   string    `gorm:"column:court_name"`
	UnitID      int64     `gorm:"column:unit_id"`
	UnitName    string    `gorm:"column:unit_name"`
}

func (r bookingRow) toBooking() Booking {
	return Booking{
		ID:          r.ID,
		ScheduledAt: wallclock.DateTime{Time: r.ScheduledAt.UTC()},
		Price:       r.Price,
		ClientID:    r.ClientID,
		ClientName:  r.ClientName,
		CourtID:     r.CourtID,
		CourtName:   r.CourtName,
		UnitID:      r.UnitID,
		UnitName:    r.UnitName,
	}
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("bookings AS b").
		Joins("LEFT JOIN clients c ON c.id = b.client_id").
		Joins("LEFT JOIN courts q ON q.id = b.court_id").
		Joins("LEFT JOIN units u ON u.id = q.unit_id")
}

func (r *bookingRepository) List(ctx context.Context, q listquery.Query, f Filter) ([]Booking, int64, error) {
	build := func() *gorm.DB {
		db := r.joined(ctx).Scopes(q.Match("c.name", "q.name"))
		if f.UnitID > 0 {
			db = db.Where("q.unit_id = ?", f.UnitID)
		}
		if f.Day != nil {
			from := wallclock.Day(*f.Day)
			db = db.Where("b.scheduled_at >= ? AND b.scheduled_at < ?", from, from.AddDate(0, 0, 1))
		}
		return db
	}

	var total int64
	if q.Paged {
		if err := build().Count(&total).Error; err != nil {
			return nil, 0, err
		}
	}

	var rows []bookingRow
	err := build().
		Select(selectDetails).
		Scopes(q.Order("b.scheduled_at, b.id"), q.Paginate()).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	out := make([]Booking, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toBooking())
	}
	if !q.Paged {
		total = int64(len(out))
	}
	return out, total, nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id int64) (*Booking, error) {
	var rows []bookingRow
	err := r.joined(ctx).
		Select(selectDetails).
		Where("b.id = ?", id).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	b := rows[0].toBooking()
	return &b, nil
}

func (r *bookingRepository) SlotTaken(ctx context.Context, courtID int64, at time.Time, exceptID int64) (bool, error) {
	var n int64
	db := r.db.WithContext(ctx).
		Model(&Model{}).
		Where("court_id = ? AND scheduled_at = ?", courtID, at)
	if exceptID > 0 {
		db = db.Where("id <> ?", exceptID)
	}
	if err := db.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *bookingRepository) Create(ctx context.Context, m *Model) error {
	return r.db.WithContext(ctx).Omit("Client", "Court").Create(m).Error
}

func (r *bookingRepository) Update(ctx context.Context, m *Model) error {
	res := r.db.WithContext(ctx).
		Model(&Model{}).
		Where("id = ?", m.ID).
		Updates(map[string]any{
			"scheduled_at": m.ScheduledAt,
			"price":        m.Price,
			"client_id":    m.ClientID,
			"court_id":     m.CourtID,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *bookingRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&Model{}, id)
	return res.RowsAffected > 0, res.Error
}
