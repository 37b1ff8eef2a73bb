package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sysu-ecnc-dev/employee-directory/backend/internal/domain"
)

func (r *Repository) GetEmployeeByID(ctx context.Context, id string) (*domain.Employee, error) {
	query := `
		SELECT first_name, last_name, email, gender, salary, created_at, version
		FROM employees WHERE id = $1
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	e := &domain.Employee{
		ID: id,
	}

	dst := []any{&e.FirstName, &e.LastName, &e.Email, &e.Gender, &e.Salary, &e.CreatedAt, &e.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return e, nil
}

func (r *Repository) GetEmployeeByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	query := `
		SELECT id, first_name, last_name, gender, salary, created_at, version
		FROM employees WHERE email = $1
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	e := &domain.Employee{
		Email: email,
	}

	dst := []any{&e.ID, &e.FirstName, &e.LastName, &e.Gender, &e.Salary, &e.CreatedAt, &e.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, email).Scan(dst...); err != nil {
		return nil, err
	}

	return e, nil
}

func (r *Repository) GetAllEmployees(ctx context.Context) ([]*domain.Employee, error) {
	query := `
		SELECT id, first_name, last_name, email, gender, salary, created_at, version FROM employees
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := make([]*domain.Employee, 0)
	for rows.Next() {
		e := &domain.Employee{}
		dst := []any{&e.ID, &e.FirstName, &e.LastName, &e.Email, &e.Gender, &e.Salary, &e.CreatedAt, &e.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}

func (r *Repository) CreateEmployee(ctx context.Context, e *domain.Employee) error {
	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	query := `
		INSERT INTO employees (id, first_name, last_name, email, gender, salary)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, version
	`

	id := uuid.NewString()

	args := []any{id, e.FirstName, e.LastName, e.Email, e.Gender, e.Salary}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&e.CreatedAt, &e.Version); err != nil {
		return err
	}
	e.ID = id

	return nil
}

// UpdateEmployee 只更新 patch 中提供的字段，合并在一条 UPDATE 语句中完成
func (r *Repository) UpdateEmployee(ctx context.Context, id string, patch domain.EmployeePatch) (*domain.Employee, error) {
	query := `
		UPDATE employees
		SET
			first_name = COALESCE($1, first_name),
			last_name = COALESCE($2, last_name),
			email = COALESCE($3, email),
			gender = COALESCE($4, gender),
			salary = COALESCE($5, salary),
			version = version + 1
		WHERE id = $6
		RETURNING first_name, last_name, email, gender, salary, created_at, version
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	e := &domain.Employee{
		ID: id,
	}

	args := []any{patch.FirstName, patch.LastName, patch.Email, patch.Gender, patch.Salary, id}
	dst := []any{&e.FirstName, &e.LastName, &e.Email, &e.Gender, &e.Salary, &e.CreatedAt, &e.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return nil, err
	}

	return e, nil
}

// DeleteEmployee 删除员工并返回删除前的记录
func (r *Repository) DeleteEmployee(ctx context.Context, id string) (*domain.Employee, error) {
	query := `
		DELETE FROM employees WHERE id = $1
		RETURNING first_name, last_name, email, gender, salary, created_at, version
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	e := &domain.Employee{
		ID: id,
	}

	dst := []any{&e.FirstName, &e.LastName, &e.Email, &e.Gender, &e.Salary, &e.CreatedAt, &e.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return e, nil
}
