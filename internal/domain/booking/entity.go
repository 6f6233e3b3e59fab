package booking

import (
	"time"

	"beachbox/internal/domain/client"
	"beachbox/internal/domain/court"
	"beachbox/internal/pkg/wallclock"
)

// Booking is the read model of a reservation: the stored row plus the
// client, court and unit names resolved by join.
type Booking struct {
	ID          int64              `json:"id"`
	ScheduledAt wallclock.DateTime `json:"dataHoraAgendamento"`
	Price       float64            `json:"preco"`
	ClientID    int64              `json:"idCliente"`
	ClientName  string             `json:"cliente"`
	CourtID     int64              `json:"idQuadra"`
	CourtName   string             `json:"quadra"`
	UnitID      int64              `json:"idUnidade"`
	UnitName    string             `json:"unidade"`
}

// Model is the bookings table. One court cannot be booked twice for the same instant.
type Model struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement"`
	ScheduledAt time.Time `gorm:"column:scheduled_at;not null;uniqueIndex:idx_bookings_court_slot,priority:2"`
	Price       float64   `gorm:"column:price;not null"`
	ClientID    int64     `gorm:"column:client_id;not null;index"`
	CourtID     int64     `gorm:"column:court_id;not null;uniqueIndex:idx_bookings_court_slot,priority:1"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`

	Client *client.Client `gorm:"foreignKey:ClientID;constraint:OnDelete:RESTRICT"`
	Court  *court.Court   `gorm:"foreignKey:CourtID;constraint:OnDelete:RESTRICT"`
}

func (Model) TableName() string { return "bookings" }

// Filter narrows GET /agendamentos beyond the generic list parameters.
type Filter struct {
	UnitID int64
	// Day, when set, keeps bookings on that wall-clock date.
	Day *time.Time
}
