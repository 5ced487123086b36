package employee

import (
	"context"
	"time"

	"restaurante-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context) ([]*Employee, error)
	Get(ctx context.Context, id uint) (*Employee, error)
	Create(ctx context.Context, req SaveEmployeeRequest) (*Employee, error)
	Update(ctx context.Context, id uint, req SaveEmployeeRequest) (*Employee, error)
	Delete(ctx context.Context, id uint) error

	ClockIn(ctx context.Context, id uint, now time.Time) (*TimeRecord, error)
	ClockOut(ctx context.Context, id uint, now time.Time) (*TimeRecord, error)
	TimeRecords(ctx context.Context, id uint) ([]*TimeRecord, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]*Employee, error) {
	return s.repo.List(ctx)
}

func (s *service) Get(ctx context.Context, id uint) (*Employee, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Create(ctx context.Context, req SaveEmployeeRequest) (*Employee, error) {
	if err := req.Validate(); err != nil {
		logger.FromCtx(ctx).Warn("invalid employee input",
			zap.String("layer", "service"),
			zap.String("method", "Create"),
			zap.Error(err),
		)
		return nil, err
	}
	return s.repo.Create(ctx, req)
}

func (s *service) Update(ctx context.Context, id uint, req SaveEmployeeRequest) (*Employee, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, req)
}

func (s *service) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) ClockIn(ctx context.Context, id uint, now time.Time) (*TimeRecord, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "ClockIn"),
		zap.Uint("employee_id", id),
	)

	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !e.IsActive {
		log.Warn("inactive employee tried to clock in")
		return nil, ErrEmployeeInactive
	}
	if e.ClockedIn {
		return nil, ErrAlreadyClockedIn
	}

	rec, err := s.repo.ClockIn(ctx, id, now.UTC())
	if err != nil {
		return nil, err
	}
	log.Info("clocked in", zap.Uint("record_id", rec.ID))
	return rec, nil
}

func (s *service) ClockOut(ctx context.Context, id uint, now time.Time) (*TimeRecord, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.ClockOut(ctx, id, now.UTC())
}

func (s *service) TimeRecords(ctx context.Context, id uint) ([]*TimeRecord, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.ListTimeRecords(ctx, id)
}
