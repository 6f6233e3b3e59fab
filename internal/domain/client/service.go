package client

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

func (s *Service) List(ctx context.Context, q listquery.Query) ([]Client, int64, error) {
	return s.repo.List(ctx, q)
}

func (s *Service) Get(ctx context.Context, id int64) (*Client, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, req ClientRequest) (*Client, error) {
	c := req.toClient()
	if err := s.repo.Create(ctx, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Service) Update(ctx context.Context, id int64, req ClientRequest) (*Client, error) {
	c := req.toClient()
	c.ID = id
	if err := s.repo.Update(ctx, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Delete refuses to remove a client that still has bookings.
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
