package server

import (
	"gorm.io/gorm"

	"beachbox/internal/domain/booking"
	"beachbox/internal/domain/client"
	"beachbox/internal/domain/court"
	"beachbox/internal/domain/unit"
)

// Models lists every table in dependency order.
func Models() []any {
	return []any{
		&unit.Unit{},
		&court.Court{},
		&client.Client{},
		&client.Address{},
		&booking.Model{},
	}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
