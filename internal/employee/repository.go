package employee

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
	List(ctx context.Context) ([]*Employee, error)
	GetByID(ctx context.Context, id uint) (*Employee, error)
	Create(ctx context.Context, req SaveEmployeeRequest) (*Employee, error)
	Update(ctx context.Context, id uint, req SaveEmployeeRequest) (*Employee, error)
	Delete(ctx context.Context, id uint) error

	ClockIn(ctx context.Context, employeeID uint, at time.Time) (*TimeRecord, error)
	ClockOut(ctx context.Context, employeeID uint, at time.Time) (*TimeRecord, error)
	ListTimeRecords(ctx context.Context, employeeID uint) ([]*TimeRecord, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const selectEmployee = `
	SELECT e.id, e.name, e.email, COALESCE(e.phone, ''), e.role, e.is_active, e.created_at,
		EXISTS(SELECT 1 FROM time_records t WHERE t.employee_id = e.id AND t.clock_out IS NULL)
	FROM employees e
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row rowScanner) (*Employee, error) {
	var e Employee
	err := row.Scan(&e.ID, &e.Name, &e.Email, &e.Phone, &e.Role, &e.IsActive, &e.CreatedAt, &e.ClockedIn)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) List(ctx context.Context) ([]*Employee, error) {
	rows, err := r.db.QueryContext(ctx, selectEmployee+` ORDER BY e.name ASC`)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to query employees",
			zap.String("layer", "repository"),
			zap.Error(err),
		)
		return nil, err
	}
	defer rows.Close()

	employees := []*Employee{}
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Employee, error) {
	e, err := scanEmployee(r.db.QueryRowContext(ctx, selectEmployee+` WHERE e.id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEmployeeNotFound
	}
	return e, err
}

func (r *repository) Create(ctx context.Context, req SaveEmployeeRequest) (*Employee, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
	)

	e := Employee{Name: req.Name, Email: req.Email, Phone: req.Phone, Role: req.Role, IsActive: req.active()}
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO employees (name, email, phone, role, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		req.Name, req.Email, req.Phone, req.Role, e.IsActive,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		if db.IsUniqueViolation(err) {
			log.Warn("duplicate employee email")
			return nil, ErrEmailExists
		}
		log.Error("failed to insert employee", zap.Error(err))
		return nil, err
	}

	log.Info("employee created", zap.Uint("employee_id", e.ID))
	return &e, nil
}

func (r *repository) Update(ctx context.Context, id uint, req SaveEmployeeRequest) (*Employee, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE employees SET name = $1, email = $2, phone = $3, role = $4, is_active = $5
		WHERE id = $6`,
		req.Name, req.Email, req.Phone, req.Role, req.active(), id,
	)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, ErrEmailExists
		}
		logger.FromCtx(ctx).Error("failed to update employee", zap.Uint("employee_id", id), zap.Error(err))
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrEmployeeNotFound
	}
	return r.GetByID(ctx, id)
}

// Delete also drops the employee's time records (cascade).
func (r *repository) Delete(ctx context.Context, id uint) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrEmployeeNotFound
	}
	return nil
}

// ClockIn relies on the partial unique index over open records to reject a
// second concurrent clock-in.
func (r *repository) ClockIn(ctx context.Context, employeeID uint, at time.Time) (*TimeRecord, error) {
	rec := TimeRecord{EmployeeID: employeeID, ClockIn: at}
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO time_records (employee_id, clock_in) VALUES ($1, $2) RETURNING id`,
		employeeID, at,
	).Scan(&rec.ID)
	switch {
	case db.IsUniqueViolation(err):
		return nil, ErrAlreadyClockedIn
	case db.IsForeignKeyViolation(err):
		return nil, ErrEmployeeNotFound
	case err != nil:
		logger.FromCtx(ctx).Error("failed to clock in",
			zap.String("layer", "repository"),
			zap.Uint("employee_id", employeeID),
			zap.Error(err),
		)
		return nil, err
	}
	return &rec, nil
}

func (r *repository) ClockOut(ctx context.Context, employeeID uint, at time.Time) (*TimeRecord, error) {
	rec := TimeRecord{EmployeeID: employeeID, ClockOut: &at}
	err := r.db.QueryRowContext(ctx, `
		UPDATE time_records SET clock_out = $1
		WHERE employee_id = $2 AND clock_out IS NULL
		RETURNING id, clock_in`,
		at, employeeID,
	).Scan(&rec.ID, &rec.ClockIn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotClockedIn
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *repository) ListTimeRecords(ctx context.Context, employeeID uint) ([]*TimeRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, employee_id, clock_in, clock_out
		FROM time_records
		WHERE employee_id = $1
		ORDER BY clock_in DESC`,
		employeeID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []*TimeRecord{}
	for rows.Next() {
		var (
			rec TimeRecord
			out sql.NullTime
		)
		if err := rows.Scan(&rec.ID, &rec.EmployeeID, &rec.ClockIn, &out); err != nil {
			return nil, err
		}
		if out.Valid {
			rec.ClockOut = &out.Time
		}
		records = append(records, &rec)
	}
	return records, rows.Err()
}
