package court

import (
	"context"

	"gorm.io/gorm"

	"beachbox/internal/pkg/dbutil"
	"beachbox/internal/pkg/listquery"
)

var sortColumns = map[string]string{
	"id":        "courts.id",
	"nome":      "courts.name",
	"tipo":      "courts.type",
	"precobase": "courts.base_price",
	"unidade":   "units.name",
}

const selectWithUnit = "courts.*, COALESCE(units.name, '') AS unit_name"

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&Court{}).
		Joins("LEFT JOIN units ON units.id = courts.unit_id")
}

func (r *Repository) List(ctx context.Context, q listquery.Query) ([]Court, int64, error) {
	build := func() *gorm.DB {
		return r.joined(ctx).Scopes(q.Match("courts.name", "units.name"))
	}

	var total int64
	if q.Paged {
		if err := build().Count(&total).Error; err != nil {
			return nil, 0, err
		}
	}

	courts := []Court{}
	err := build().
		Select(selectWithUnit).
		Scopes(q.Order("courts.id"), q.Paginate()).
		Find(&courts).Error
	if err != nil {
		return nil, 0, err
	}
	if !q.Paged {
		total = int64(len(courts))
	}
	return courts, total, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Court, error) {
	var c Court
	err := r.joined(ctx).
		Select(selectWithUnit).
		Where("courts.id = ?", id).
		Take(&c).Error
	if dbutil.IsNotFound(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repository) Create(ctx context.Context, c *Court) error {
	return r.db.WithContext(ctx).Omit("Unit").Create(c).Error
}

func (r *Repository) Update(ctx context.Context, c *Court) error {
	res := r.db.WithContext(ctx).
		Model(&Court{}).
		Where("id = ?", c.ID).
		Updates(map[string]any{
			"name":       c.Name,
			"location":   c.Location,
			"type":       c.Type,
			"base_price": c.BasePrice,
			"available":  c.Available,
			"unit_id":    c.UnitID,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetAvailability writes only the availability flag.
func (r *Repository) SetAvailability(ctx context.Context, id int64, available bool) error {
	res := r.db.WithContext(ctx).
		Model(&Court{}).
		Where("id = ?", id).
		Update("available", available)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id int64) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&Court{}, id)
	return res.RowsAffected > 0, res.Error
}

func (r *Repository) CountBookings(ctx context.Context, id int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Table("bookings").
		Where("court_id = ?", id).
		Count(&n).Error
	return n, err
}
