package client

import (
	"context"

	"gorm.io/gorm"

	"beachbox/internal/pkg/dbutil"
	"beachbox/internal/pkg/listquery"
)

var sortColumns = map[string]string{
	"id":       "id",
	"nome":     "name",
	"telefone": "phone",
}

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) List(ctx context.Context, q listquery.Query) ([]Client, int64, error) {
	build := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&Client{}).Scopes(q.Match("name", "phone"))
	}

	var total int64
	if q.Paged {
		if err := build().Count(&total).Error; err != nil {
			return nil, 0, err
		}
	}

	clients := []Client{}
	if err := build().Scopes(q.Order("id"), q.Paginate()).Find(&clients).Error; err != nil {
		return nil, 0, err
	}
	if err := attachAddresses(r.db.WithContext(ctx), clients); err != nil {
		return nil, 0, err
	}
	if !q.Paged {
		total = int64(len(clients))
	}
	return clients, total, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Client, error) {
	return getByID(r.db.WithContext(ctx), id)
}

// Create inserts the client and its addresses atomically.
func (r *Repository) Create(ctx context.Context, c *Client) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(c).Error; err != nil {
			return err
		}
		return insertAddresses(tx, c.ID, c.Addresses)
	})
}

// Update rewrites the client row and replaces its address list.
func (r *Repository) Update(ctx context.Context, c *Client) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&Client{}).
			Where("id = ?", c.ID).
			Updates(map[string]any{"name": c.Name, "phone": c.Phone})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		if err := tx.Where("client_id = ?", c.ID).Delete(&Address{}).Error; err != nil {
			return err
		}
		return insertAddresses(tx, c.ID, c.Addresses)
	})
}

func (r *Repository) Delete(ctx context.Context, id int64) (bool, error) {
	deleted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("client_id = ?", id).Delete(&Address{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&Client{}, id)
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	return deleted, err
}

func (r *Repository) CountBookings(ctx context.Context, id int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Table("bookings").
		Where("client_id = ?", id).
		Count(&n).Error
	return n, err
}

func getByID(db *gorm.DB, id int64) (*Client, error) {
	var c Client
	err := db.First(&c, id).Error
	if dbutil.IsNotFound(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	list := []Client{c}
	if err := attachAddresses(db, list); err != nil {
		return nil, err
	}
	return &list[0], nil
}

func insertAddresses(tx *gorm.DB, clientID int64, addrs []string) error {
	if len(addrs) == 0 {
		return nil
	}
	rows := make([]Address, 0, len(addrs))
	for i, a := range addrs {
		rows = append(rows, Address{ClientID: clientID, Address: a, Position: i})
	}
	return tx.Create(&rows).Error
}

// attachAddresses loads the addresses of every client in one query and folds
// them back in position order.
func attachAddresses(db *gorm.DB, clients []Client) error {
	if len(clients) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(clients))
	for _, c := range clients {
		ids = append(ids, c.ID)
	}

	var rows []Address
	if err := db.Model(&Address{}).
		Where("client_id IN ?", ids).
		Order("client_id, position").
		Find(&rows).Error; err != nil {
		return err
	}

	byClient := make(map[int64][]string, len(clients))
	for _, row := range rows {
		byClient[row.ClientID] = append(byClient[row.ClientID], row.Address)
	}
	for i := range clients {
		addrs := byClient[clients[i].ID]
		if addrs == nil {
			addrs = []string{}
		}
		clients[i].Addresses = addrs
	}
	return nil
}
