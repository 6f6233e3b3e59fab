package unit

import (
	"context"

	"gorm.io/gorm"

	"beachbox/internal/pkg/dbutil"
	"beachbox/internal/pkg/listquery"
)

var sortColumns = map[string]string{
	"id":          "id",
	"nome":        "name",
	"localizacao": "location",
}

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) List(ctx context.Context, q listquery.Query) ([]Unit, int64, error) {
	build := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&Unit{}).Scopes(q.Match("name", "location"))
	}

	var total int64
	if q.Paged {
		if err := build().Count(&total).Error; err != nil {
			return nil, 0, err
		}
	}

	units := []Unit{}
	if err := build().Scopes(q.Order("id"), q.Paginate()).Find(&units).Error; err != nil {
		return nil, 0, err
	}
	if !q.Paged {
		total = int64(len(units))
	}
	return units, total, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Unit, error) {
	var u Unit
	err := r.db.WithContext(ctx).First(&u, id).Error
	if dbutil.IsNotFound(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repository) Create(ctx context.Context, u *Unit) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *Repository) Update(ctx context.Context, u *Unit) error {
	return r.db.WithContext(ctx).
		Model(&Unit{}).
		Where("id = ?", u.ID).
		Updates(map[string]any{
			"name":     u.Name,
			"location": u.Location,
			"phone":    u.Phone,
		}).Error
}

func (r *Repository) Delete(ctx context.Context, id int64) (bool, error) {
	tx := r.db.WithContext(ctx).Delete(&Unit{}, id)
	return tx.RowsAffected > 0, tx.Error
}

// CountCourts counts the courts that still reference the unit.
func (r *Repository) CountCourts(ctx context.Context, id int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Table("courts").
		Where("unit_id = ?", id).
		Count(&n).Error
	return n, err
}
