package report

import (
	"context"
	"fmt"
	"time"

	"beachbox/internal/pkg/wallclock"
)

type Service struct {
	repo    Repository
	hours   Hours
	maxDays int
	// now is replaced in tests.
	now func() time.Time
}

func NewService(repo Repository, hours Hours, maxDays int) *Service {
	return &Service{
		repo:    repo,
		hours:   hours,
		maxDays: maxDays,
		now:     wallclock.Today,
	}
}

func (s *Service) Daily(ctx context.Context, day time.Time) (*Daily, error) {
	day = wallclock.Day(day)
	rows, err := s.repo.Bookings(ctx, day, day, Scope{})
	if err != nil {
		return nil, fmt.Errorf("daily report bookings: %w", err)
	}
	capacity, err := s.repo.Capacity(ctx, Scope{})
	if err != nil {
		return nil, fmt.Errorf("daily report capacity: %w", err)
	}
	out := BuildDaily(rows, capacity, day, s.hours)
	return &out, nil
}

// DailyFor parses an optional YYYY-MM-DD date, defaulting to today.
func (s *Service) DailyFor(ctx context.Context, date string) (*Daily, error) {
	day := s.now()
	if date != "" {
		d, err := wallclock.ParseDate(date)
		if err != nil {
			return nil, ErrInvalidDate
		}
		day = d
	}
	return s.Daily(ctx, day)
}

func (s *Service) Custom(ctx context.Context, req CustomRequest) (*Custom, error) {
	from, to := s.now(), s.now()
	if req.DataInicio != "" {
		d, err := wallclock.ParseDate(req.DataInicio)
		if err != nil {
			return nil, fmt.Errorf("%w: data_inicio", ErrInvalidDate)
		}
		from = d
	}
	if req.DataFim != "" {
		d, err := wallclock.ParseDate(req.DataFim)
		if err != nil {
			return nil, fmt.Errorf("%w: data_fim", ErrInvalidDate)
		}
		to = d
	}
	if to.Before(from) {
		return nil, ErrInvalidRange
	}
	if s.maxDays > 0 && DaysBetween(from, to) > s.maxDays {
		return nil, ErrRangeTooLong
	}

	scope := Scope{UnitIDs: req.Unidades, CourtIDs: req.Quadras}
	rows, err := s.repo.Bookings(ctx, from, to, scope)
	if err != nil {
		return nil, fmt.Errorf("custom report bookings: %w", err)
	}
	capacity, err := s.repo.Capacity(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("custom report capacity: %w", err)
	}
	out := BuildCustom(rows, capacity, from, to, s.hours)
	return &out, nil
}

// MaxDays is the longest accepted custom range.
func (s *Service) MaxDays() int { return s.maxDays }
