package category

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"restaurante-be/internal/db"
	"restaurante-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context) ([]*Category, error)
	GetByID(ctx context.Context, id uint) (*Category, error)
	ExistsByName(ctx context.Context, name string, excludeID uint) (bool, error)
	Create(ctx context.Context, name string) (*Category, error)
	Update(ctx context.Context, id uint, name string) (*Category, error)
	Delete(ctx context.Context, id uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const selectWithCount = `
	SELECT c.id, c.name, c.created_at, COUNT(p.id)
	FROM categories c
	LEFT JOIN products p ON p.category_id = c.id
`

func (r *repository) List(ctx context.Context) ([]*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "List"),
	)

	rows, err := r.db.QueryContext(ctx, selectWithCount+` GROUP BY c.id ORDER BY c.name ASC`)
	if err != nil {
		log.Error("failed to query categories", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	categories := []*Category{}
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt, &c.ProductCount); err != nil {
			log.Error("failed to scan category row", zap.Error(err))
			return nil, err
		}
		categories = append(categories, &c)
	}

	if err := rows.Err(); err != nil {
		log.Error("rows iteration failed", zap.Error(err))
		return nil, err
	}

	return categories, nil
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Category, error) {
	var c Category
	err := r.db.QueryRowContext(ctx,
		selectWithCount+` WHERE c.id = $1 GROUP BY c.id`, id,
	).Scan(&c.ID, &c.Name, &c.CreatedAt, &c.ProductCount)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("failed to get category",
			zap.String("layer", "repository"),
			zap.Uint("category_id", id),
			zap.Error(err),
		)
		return nil, err
	}

	return &c, nil
}

// ExistsByName matches case-insensitively, ignoring excludeID (0 for none).
func (r *repository) ExistsByName(ctx context.Context, name string, excludeID uint) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM categories WHERE LOWER(name) = LOWER($1) AND id <> $2)`,
		name, excludeID,
	).Scan(&exists)
	return exists, err
}

func (r *repository) Create(ctx context.Context, name string) (*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.String("name", name),
	)

	c := Category{Name: name}
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO categories (name) VALUES ($1) RETURNING id, created_at`, name,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		if db.IsUniqueViolation(err) {
			log.Warn("duplicate category name")
			return nil, ErrCategoryExists
		}
		log.Error("failed to insert category", zap.Error(err))
		return nil, err
	}

	log.Info("category created", zap.Uint("category_id", c.ID))
	return &c, nil
}

func (r *repository) Update(ctx context.Context, id uint, name string) (*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Update"),
		zap.Uint("category_id", id),
	)

	var createdAt time.Time
	err := r.db.QueryRowContext(ctx,
		`UPDATE categories SET name = $1 WHERE id = $2 RETURNING created_at`, name, id,
	).Scan(&createdAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, ErrCategoryNotFound
	case db.IsUniqueViolation(err):
		log.Warn("duplicate category name", zap.String("name", name))
		return nil, ErrCategoryExists
	case err != nil:
		log.Error("failed to update category", zap.Error(err))
		return nil, err
	}

	return &Category{ID: id, Name: name, CreatedAt: createdAt}, nil
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return ErrCategoryHasProducts
		}
		logger.FromCtx(ctx).Error("failed to delete category", zap.Uint("category_id", id), zap.Error(err))
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}
