package unit

import (
	"context"

	"beachbox/internal/pkg/dbutil"
	"beachbox/internal/pkg/listquery"
)

type Service struct {
	repo *Repository
}

func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, q listquery.Query) ([]Unit, int64, error) {
	return s.repo.List(ctx, q)
}

func (s *Service) Get(ctx context.Context, id int64) (*Unit, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, req UnitRequest) (*Unit, error) {
	u := req.toUnit()
	if err := s.repo.Create(ctx, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UnitRequest) (*Unit, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	u := req.toUnit()
	u.ID = id
	if err := s.repo.Update(ctx, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	courts, err := s.repo.CountCourts(ctx, id)
	if err != nil {
		return err
	}
	if courts > 0 {
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
