package promotion

import (
	"context"
	"database/sql"
	"errors"

	"restaurante-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context) ([]*Promotion, error)
	GetByID(ctx context.Context, id uint) (*Promotion, error)
	Create(ctx context.Context, req SavePromotionRequest) (*Promotion, error)
	Update(ctx context.Context, id uint, req SavePromotionRequest) (*Promotion, error)
	Delete(ctx context.Context, id uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const selectPromotion = `
	SELECT id, name, COALESCE(description, ''), discount_type, discount_value,
		start_date, end_date, is_active
	FROM promotions
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPromotion(row rowScanner) (*Promotion, error) {
	var p Promotion
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.DiscountType, &p.DiscountValue,
		&p.StartDate, &p.EndDate, &p.IsActive)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) List(ctx context.Context) ([]*Promotion, error) {
	rows, err := r.db.QueryContext(ctx, selectPromotion+` ORDER BY start_date DESC, id DESC`)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to query promotions",
			zap.String("layer", "repository"),
			zap.Error(err),
		)
		return nil, err
	}
	defer rows.Close()

	promotions := []*Promotion{}
	for rows.Next() {
		p, err := scanPromotion(rows)
		if err != nil {
			return nil, err
		}
		promotions = append(promotions, p)
	}
	return promotions, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Promotion, error) {
	p, err := scanPromotion(r.db.QueryRowContext(ctx, selectPromotion+` WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPromotionNotFound
	}
	return p, err
}

func (r *repository) Create(ctx context.Context, req SavePromotionRequest) (*Promotion, error) {
	p := Promotion{
		Name:          req.Name,
		Description:   req.Description,
		DiscountType:  req.DiscountType,
		DiscountValue: req.DiscountValue,
		StartDate:     req.start,
		EndDate:       req.end,
		IsActive:      req.active(),
	}

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO promotions (name, description, discount_type, discount_value, start_date, end_date, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		p.Name, p.Description, p.DiscountType, p.DiscountValue, p.StartDate, p.EndDate, p.IsActive,
	).Scan(&p.ID)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to insert promotion",
			zap.String("layer", "repository"),
			zap.String("method", "Create"),
			zap.Error(err),
		)
		return nil, err
	}
	return &p, nil
}

func (r *repository) Update(ctx context.Context, id uint, req SavePromotionRequest) (*Promotion, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE promotions
		SET name = $1, description = $2, discount_type = $3, discount_value = $4,
			start_date = $5, end_date = $6, is_active = $7
		WHERE id = $8`,
		req.Name, req.Description, req.DiscountType, req.DiscountValue, req.start, req.end, req.active(), id,
	)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrPromotionNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM promotions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrPromotionNotFound
	}
	return nil
}
