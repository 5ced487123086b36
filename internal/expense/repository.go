package expense

import (
	"context"
	"database/sql"
	"errors"

	"restaurante-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context) ([]*Expense, error)
	GetByID(ctx context.Context, id uint) (*Expense, error)
	Create(ctx context.Context, req SaveExpenseRequest) (*Expense, error)
	Update(ctx context.Context, id uint, req SaveExpenseRequest) (*Expense, error)
	Delete(ctx context.Context, id uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// Dates travel as YYYY-MM-DD text so the calendar day never shifts with the
// connection timezone.
const selectExpense = `
	SELECT id, description, amount, expense_type, to_char(date, 'YYYY-MM-DD')
	FROM expenses
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(row rowScanner) (*Expense, error) {
	var e Expense
	if err := row.Scan(&e.ID, &e.Description, &e.Amount, &e.ExpenseType, &e.Date); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) List(ctx context.Context) ([]*Expense, error) {
	rows, err := r.db.QueryContext(ctx, selectExpense+` ORDER BY date DESC, id DESC`)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to query expenses",
			zap.String("layer", "repository"),
			zap.Error(err),
		)
		return nil, err
	}
	defer rows.Close()

	expenses := []*Expense{}
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Expense, error) {
	e, err := scanExpense(r.db.QueryRowContext(ctx, selectExpense+` WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrExpenseNotFound
	}
	return e, err
}

func (r *repository) Create(ctx context.Context, req SaveExpenseRequest) (*Expense, error) {
	e := Expense{Description: req.Description, Amount: req.Amount, ExpenseType: req.ExpenseType, Date: req.Date}
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO expenses (description, amount, expense_type, date)
		VALUES ($1, $2, $3, $4::date)
		RETURNING id`,
		req.Description, req.Amount, req.ExpenseType, req.Date,
	).Scan(&e.ID)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to insert expense",
			zap.String("layer", "repository"),
			zap.String("method", "Create"),
			zap.Error(err),
		)
		return nil, err
	}
	return &e, nil
}

func (r *repository) Update(ctx context.Context, id uint, req SaveExpenseRequest) (*Expense, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE expenses
		SET description = $1, amount = $2, expense_type = $3, date = $4::date
		WHERE id = $5`,
		req.Description, req.Amount, req.ExpenseType, req.Date, id,
	)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrExpenseNotFound
	}
	return &Expense{ID: id, Description: req.Description, Amount: req.Amount, ExpenseType: req.ExpenseType, Date: req.Date}, nil
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrExpenseNotFound
	}
	return nil
}
