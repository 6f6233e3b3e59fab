package booking

import (
	"context"
	"time"

	"beachbox/internal/domain/client"
	"beachbox/internal/domain/court"
	"beachbox/internal/pkg/listquery"
)

// BookingRepository defines the storage operations the service needs.
type BookingRepository interface {
	List(ctx context.Context, q listquery.Query, f Filter) ([]Booking, int64, error)
	GetByID(ctx context.Context, id int64) (*Booking, error)
	// SlotTaken reports whether another booking, other than exceptID, holds the court at that instant.
	SlotTaken(ctx context.Context, courtID int64, at time.Time, exceptID int64) (bool, error)
	Create(ctx context.Context, m *Model) error
	Update(ctx context.Context, m *Model) error
	Delete(ctx context.Context, id int64) (bool, error)
}

type ClientLookup interface {
	GetByID(ctx context.Context, id int64) (*client.Client, error)
}

type CourtLookup interface {
	GetByID(ctx context.Context, id int64) (*court.Court, error)
}
