package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"restaurante-be/internal/db"
	"restaurante-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]*Product, error)
	GetByID(ctx context.Context, id uint) (*Product, error)
	Create(ctx context.Context, req SaveProductRequest) (*Product, error)
	Update(ctx context.Context, id uint, req SaveProductRequest) (*Product, error)
	Delete(ctx context.Context, id uint) error
	SetAvailable(ctx context.Context, id uint, available bool) error
	HasOrders(ctx context.Context, id uint) (bool, error)

	ListAvailabilities(ctx context.Context, productIDs []uint) (map[uint][]Availability, error)
	AddAvailability(ctx context.Context, productID uint, req AddAvailabilityRequest) (*Availability, error)
	DeleteAvailability(ctx context.Context, id uint) error

	ListIngredients(ctx context.Context, productIDs []uint) (map[uint][]Ingredient, error)
	AddIngredient(ctx context.Context, productID uint, req AddIngredientRequest) (*Ingredient, error)
	DeleteIngredient(ctx context.Context, id uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const selectProduct = `
	SELECT p.id, p.name, COALESCE(p.description, ''), p.price, p.cost,
		COALESCE(p.image_url, ''), p.is_available, p.category_id, c.name, p.created_at,
		EXISTS(SELECT 1 FROM order_items oi WHERE oi.product_id = p.id)
	FROM products p
	JOIN categories c ON c.id = p.category_id
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*Product, error) {
	var p Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.Cost,
		&p.ImageURL, &p.IsAvailable, &p.CategoryID, &p.CategoryName, &p.CreatedAt,
		&p.HasSales,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "List"),
	)

	var (
		conds []string
		args  []any
	)
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		conds = append(conds, fmt.Sprintf("p.category_id = $%d", len(args)))
	}
	if filter.OnlyAvailable {
		conds = append(conds, "p.is_available = TRUE")
	}

	query := selectProduct
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY c.name ASC, p.name ASC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query products", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	products := []*Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			log.Error("failed to scan product row", zap.Error(err))
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		log.Error("rows iteration failed", zap.Error(err))
		return nil, err
	}

	return products, nil
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Product, error) {
	p, err := scanProduct(r.db.QueryRowContext(ctx, selectProduct+` WHERE p.id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("failed to get product",
			zap.String("layer", "repository"),
			zap.Uint("product_id", id),
			zap.Error(err),
		)
		return nil, err
	}
	return p, nil
}

func (r *repository) Create(ctx context.Context, req SaveProductRequest) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
	)

	var id uint
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO products (name, description, price, cost, image_url, category_id, is_available)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE)
		RETURNING id`,
		req.Name, req.Description, req.Price, req.Cost, req.ImageURL, req.CategoryID,
	).Scan(&id)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			log.Warn("unknown category", zap.Uint("category_id", req.CategoryID))
			return nil, ErrCategoryNotFound
		}
		log.Error("failed to insert product", zap.Error(err))
		return nil, err
	}

	log.Info("product created", zap.Uint("product_id", id))
	return r.GetByID(ctx, id)
}

func (r *repository) Update(ctx context.Context, id uint, req SaveProductRequest) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Update"),
		zap.Uint("product_id", id),
	)

	res, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET name = $1, description = $2, price = $3, cost = $4, image_url = $5, category_id = $6
		WHERE id = $7`,
		req.Name, req.Description, req.Price, req.Cost, req.ImageURL, req.CategoryID, id,
	)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return nil, ErrCategoryNotFound
		}
		log.Error("failed to update product", zap.Error(err))
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrProductNotFound
	}

	return r.GetByID(ctx, id)
}

// Delete removes the product with its availability rules and ingredient
// options (cascade). Products referenced by orders must be disabled instead.
func (r *repository) Delete(ctx context.Context, id uint) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to delete product", zap.Uint("product_id", id), zap.Error(err))
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *repository) SetAvailable(ctx context.Context, id uint, available bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE products SET is_available = $1 WHERE id = $2`, available, id)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to set product availability", zap.Uint("product_id", id), zap.Error(err))
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *repository) HasOrders(ctx context.Context, id uint) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM order_items WHERE product_id = $1)`, id,
	).Scan(&exists)
	return exists, err
}

func toInt64s(ids []uint) []int64 {
	out := make([]int64, len(ids))
	for i, id := range ids {
		out[i] = int64(id)
	}
	return out
}

// ListAvailabilities loads the rules of many products in one query, keyed by
// product id, each slice in id order.
func (r *repository) ListAvailabilities(ctx context.Context, productIDs []uint) (map[uint][]Availability, error) {
	result := make(map[uint][]Availability, len(productIDs))
	if len(productIDs) == 0 {
		return result, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, product_id, day_of_week, time_of_day, price_adjustment
		FROM product_availabilities
		WHERE product_id = ANY($1)
		ORDER BY product_id, id`,
		pq.Array(toInt64s(productIDs)),
	)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to query availabilities", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var a Availability
		if err := rows.Scan(&a.ID, &a.ProductID, &a.DayOfWeek, &a.TimeOfDay, &a.PriceAdjustment); err != nil {
			return nil, err
		}
		result[a.ProductID] = append(result[a.ProductID], a)
	}
	return result, rows.Err()
}

func (r *repository) AddAvailability(ctx context.Context, productID uint, req AddAvailabilityRequest) (*Availability, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "AddAvailability"),
		zap.Uint("product_id", productID),
	)

	a := Availability{
		ProductID:       productID,
		DayOfWeek:       req.DayOfWeek,
		TimeOfDay:       req.TimeOfDay,
		PriceAdjustment: req.PriceAdjustment,
	}
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO product_availabilities (product_id, day_of_week, time_of_day, price_adjustment)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		productID, req.DayOfWeek, req.TimeOfDay, req.PriceAdjustment,
	).Scan(&a.ID)
	switch {
	case db.IsUniqueViolation(err):
		log.Warn("duplicate availability rule",
			zap.String("day", req.DayOfWeek), zap.String("time", req.TimeOfDay))
		return nil, ErrAvailabilityExists
	case db.IsForeignKeyViolation(err):
		return nil, ErrProductNotFound
	case err != nil:
		log.Error("failed to insert availability", zap.Error(err))
		return nil, err
	}

	return &a, nil
}

func (r *repository) DeleteAvailability(ctx context.Context, id uint) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM product_availabilities WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrAvailabilityNotFound
	}
	return nil
}

func (r *repository) ListIngredients(ctx context.Context, productIDs []uint) (map[uint][]Ingredient, error) {
	result := make(map[uint][]Ingredient, len(productIDs))
	if len(productIDs) == 0 {
		return result, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, product_id, name, price_adjustment, is_removable
		FROM ingredient_options
		WHERE product_id = ANY($1)
		ORDER BY product_id, id`,
		pq.Array(toInt64s(productIDs)),
	)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to query ingredients", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var i Ingredient
		if err := rows.Scan(&i.ID, &i.ProductID, &i.Name, &i.PriceAdjustment, &i.IsRemovable); err != nil {
			return nil, err
		}
		result[i.ProductID] = append(result[i.ProductID], i)
	}
	return result, rows.Err()
}

func (r *repository) AddIngredient(ctx context.Context, productID uint, req AddIngredientRequest) (*Ingredient, error) {
	i := Ingredient{
		ProductID:       productID,
		Name:            req.Name,
		PriceAdjustment: req.PriceAdjustment,
		IsRemovable:     req.IsRemovable,
	}
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO ingredient_options (product_id, name, price_adjustment, is_removable)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		productID, req.Name, req.PriceAdjustment, req.IsRemovable,
	).Scan(&i.ID)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return nil, ErrProductNotFound
		}
		logger.FromCtx(ctx).Error("failed to insert ingredient",
			zap.String("layer", "repository"),
			zap.Uint("product_id", productID),
			zap.Error(err),
		)
		return nil, err
	}
	return &i, nil
}

func (r *repository) DeleteIngredient(ctx context.Context, id uint) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM ingredient_options WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrIngredientNotFound
	}
	return nil
}
