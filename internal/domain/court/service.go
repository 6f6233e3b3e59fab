package court

import (
	"context"
	"errors"

	"beachbox/internal/domain/unit"
	"beachbox/internal/pkg/dbutil"
	"beachbox/internal/pkg/listquery"
)

type Service struct {
	repo  *Repository
	units UnitLookup
}

func NewService(repo *Repository, units UnitLookup) *Service {
	return &Service{repo: repo, units: units}
}

func (s *Service) List(ctx context.Context, q listquery.Query) ([]Court, int64, error) {
	return s.repo.List(ctx, q)
}

func (s *Service) Get(ctx context.Context, id int64) (*Court, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, req CourtRequest) (*Court, error) {
	if err := s.checkUnit(ctx, req.IdUnidade); err != nil {
		return nil, err
	}
	c := req.toCourt()
	if err := s.repo.Create(ctx, &c); err != nil {
		if dbutil.IsForeignKeyViolation(err) {
			return nil, ErrUnitNotFound
		}
		return nil, err
	}
	return s.repo.GetByID(ctx, c.ID)
}

func (s *Service) Update(ctx context.Context, id int64, req CourtRequest) (*Court, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkUnit(ctx, req.IdUnidade); err != nil {
		return nil, err
	}

	c := req.toCourt()
	c.ID = id
	if req.EstaDisponivel == nil {
		c.Available = current.Available
	}
	if err := s.repo.Update(ctx, &c); err != nil {
		if dbutil.IsForeignKeyViolation(err) {
			return nil, ErrUnitNotFound
		}
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// SetAvailability flips the flag without touching any other field.
func (s *Service) SetAvailability(ctx context.Context, id int64, available bool) (*Court, error) {
	if err := s.repo.SetAvailability(ctx, id, available); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	n, err := s.repo.CountBookings(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrInUse
	}

	deleted, err := s.repo.Delete(ctx, id)
	if dbutil.IsForeignKeyViolation(err) {
		return ErrInUse
	}
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

func (s *Service) checkUnit(ctx context.Context, unitID int64) error {
	_, err := s.units.GetByID(ctx, unitID)
	if errors.Is(err, unit.ErrNotFound) {
		return ErrUnitNotFound
	}
	return err
}
