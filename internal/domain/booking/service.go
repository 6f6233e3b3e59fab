package booking

import (
	"context"
	"errors"

	"beachbox/internal/domain/client"
	"beachbox/internal/domain/court"
	"beachbox/internal/pkg/dbutil"
	"beachbox/internal/pkg/listquery"
	"beachbox/internal/pkg/money"
	"beachbox/internal/pkg/wallclock"
)

type Service struct {
	bookings BookingRepository
	clients  ClientLookup
	courts   CourtLookup
}

func NewService(bookings BookingRepository, clients ClientLookup, courts CourtLookup) *Service {
	return &Service{
		bookings: bookings,
		clients:  clients,
		courts:   courts,
	}
}

func (s *Service) List(ctx context.Context, q listquery.Query, f Filter) ([]Booking, int64, error) {
	return s.bookings.List(ctx, q, f)
}

func (s *Service) Get(ctx context.Context, id int64) (*Booking, error) {
	return s.bookings.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, req BookingRequest) (*Booking, error) {
	m, err := s.prepare(ctx, req, 0)
	if err != nil {
		return nil, err
	}
	if err := s.bookings.Create(ctx, m); err != nil {
		if dbutil.IsUniqueViolation(err) {
			return nil, ErrSlotTaken
		}
		return nil, err
	}
	return s.bookings.GetByID(ctx, m.ID)
}

// Update replaces every field of an existing booking; the same rules as Create apply.
func (s *Service) Update(ctx context.Context, id int64, req BookingRequest) (*Booking, error) {
	if _, err := s.bookings.GetByID(ctx, id); err != nil {
		return nil, err
	}
	m, err := s.prepare(ctx, req, id)
	if err != nil {
		return nil, err
	}
	m.ID = id
	if err := s.bookings.Update(ctx, m); err != nil {
		if dbutil.IsUniqueViolation(err) {
			return nil, ErrSlotTaken
		}
		return nil, err
	}
	return s.bookings.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	deleted, err := s.bookings.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

// prepare validates references and the slot and returns the row to write.
func (s *Service) prepare(ctx context.Context, req BookingRequest, exceptID int64) (*Model, error) {
	at, err := wallclock.Parse(req.DataHoraAgendamento)
	if err != nil {
		return nil, ErrInvalidDateTime
	}

	if _, err := s.clients.GetByID(ctx, req.IdCliente); err != nil {
		if errors.Is(err, client.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}

	c, err := s.courts.GetByID(ctx, req.IdQuadra)
	if err != nil {
		if errors.Is(err, court.ErrNotFound) {
			return nil, ErrCourtNotFound
		}
		return nil, err
	}
	if !c.Available {
		return nil, ErrCourtUnavailable
	}

	taken, err := s.bookings.SlotTaken(ctx, c.ID, at, exceptID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrSlotTaken
	}

	return &Model{
		ScheduledAt: at,
		Price:       money.Round(float64(*req.Preco)),
		ClientID:    req.IdCliente,
		CourtID:     c.ID,
	}, nil
}
