package graph

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sysu-ecnc-dev/employee-directory/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

type memUsers struct {
	mu    sync.Mutex
	users []*domain.User
}

func (m *memUsers) find(match func(*domain.User) bool) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *memUsers) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return m.find(func(u *domain.User) bool { return u.Username == username })
}

func (m *memUsers) GetUserByUsernameOrEmail(ctx context.Context, identifier string) (*domain.User, error) {
	return m.find(func(u *domain.User) bool { return u.Username == identifier || u.Email == identifier })
}

func (m *memUsers) CheckUserEmailIfExists(ctx context.Context, email string) (bool, error) {
	_, err := m.find(func(u *domain.User) bool { return u.Email == email })
	return err == nil, nil
}

func (m *memUsers) CreateUser(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	user.ID = uuid.NewString()
	user.CreatedAt = time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	cp := *user
	m.users = append(m.users, &cp)
	return nil
}

type memEmployees struct {
	mu        sync.Mutex
	employees []*domain.Employee
	err       error
}

func (m *memEmployees) find(match func(*domain.Employee) bool) (*domain.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	for _, e := range m.employees {
		if match(e) {
			cp := *e
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *memEmployees) GetEmployeeByID(ctx context.Context, id string) (*domain.Employee, error) {
	return m.find(func(e *domain.Employee) bool { return e.ID == id })
}

func (m *memEmployees) GetEmployeeByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	return m.find(func(e *domain.Employee) bool { return e.Email == email })
}

func (m *memEmployees) GetAllEmployees(ctx context.Context) ([]*domain.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	employees := make([]*domain.Employee, 0, len(m.employees))
	for _, e := range m.employees {
		cp := *e
		employees = append(employees, &cp)
	}
	return employees, nil
}

func (m *memEmployees) CreateEmployee(ctx context.Context, e *domain.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e.ID = uuid.NewString()
	e.Version = 1
	cp := *e
	m.employees = append(m.employees, &cp)
	return nil
}

func (m *memEmployees) UpdateEmployee(ctx context.Context, id string, patch domain.EmployeePatch) (*domain.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, e := range m.employees {
		if e.ID == id {
			applyPatch(patch, e)
			e.Version++
			cp := *e
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *memEmployees) DeleteEmployee(ctx context.Context, id string) (*domain.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, e := range m.employees {
		if e.ID == id {
			m.employees = append(m.employees[:i], m.employees[i+1:]...)
			return e, nil
		}
	}
	return nil, sql.ErrNoRows
}

type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) {
	return "plain$" + password, nil
}

func (plainHasher) Compare(hash string, password string) error {
	if hash != "plain$"+password {
		return bcrypt.ErrMismatchedHashAndPassword
	}
	return nil
}

// applyPatch 是内存版的合并逻辑，对应 UPDATE 语句中的 COALESCE
func applyPatch(p domain.EmployeePatch, e *domain.Employee) {
	if p.FirstName != nil {
		e.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		e.LastName = *p.LastName
	}
	if p.Email != nil {
		e.Email = *p.Email
	}
	if p.Gender != nil {
		e.Gender = *p.Gender
	}
	if p.Salary != nil {
		e.Salary = *p.Salary
	}
}
