package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sysu-ecnc-dev/employee-directory/backend/internal/domain"
	"github.com/sysu-ecnc-dev/employee-directory/backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}

type fakeUsers struct {
	mu     sync.Mutex
	byID   map[string]*domain.User
	getErr error
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: make(map[string]*domain.User)}
}

func (f *fakeUsers) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, u := range f.byID {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeUsers) GetUserByUsernameOrEmail(ctx context.Context, identifier string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, u := range f.byID {
		if u.Username == identifier || u.Email == identifier {
			cp := *u
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeUsers) CheckUserEmailIfExists(ctx context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.byID {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUsers) CreateUser(ctx context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.byID {
		if u.Username == user.Username {
			return uniqueViolation(repository.ConstraintUsersUsername)
		}
		if u.Email == user.Email {
			return uniqueViolation(repository.ConstraintUsersEmail)
		}
	}

	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	cp := *user
	f.byID[user.ID] = &cp
	return nil
}

type fakeEmployees struct {
	mu     sync.Mutex
	byID   map[string]*domain.Employee
	allErr error
}

func newFakeEmployees() *fakeEmployees {
	return &fakeEmployees{byID: make(map[string]*domain.Employee)}
}

func (f *fakeEmployees) GetEmployeeByID(ctx context.Context, id string) (*domain.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	e, ok := f.byID[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *e
	return &cp, nil
}

func (f *fakeEmployees) GetEmployeeByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, e := range f.byID {
		if e.Email == email {
			cp := *e
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeEmployees) GetAllEmployees(ctx context.Context) ([]*domain.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.allErr != nil {
		return nil, f.allErr
	}
	employees := make([]*domain.Employee, 0, len(f.byID))
	for _, e := range f.byID {
		cp := *e
		employees = append(employees, &cp)
	}
	return employees, nil
}

func (f *fakeEmployees) CreateEmployee(ctx context.Context, e *domain.Employee) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.byID {
		if existing.Email == e.Email {
			return uniqueViolation(repository.ConstraintEmployeesEmail)
		}
	}

	e.ID = uuid.NewString()
	e.CreatedAt = time.Now()
	e.Version = 1
	cp := *e
	f.byID[e.ID] = &cp
	return nil
}

func (f *fakeEmployees) UpdateEmployee(ctx context.Context, id string, patch domain.EmployeePatch) (*domain.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	e, ok := f.byID[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	if patch.Email != nil {
		for otherID, other := range f.byID {
			if otherID != id && other.Email == *patch.Email {
				return nil, uniqueViolation(repository.ConstraintEmployeesEmail)
			}
		}
	}

	applyPatch(patch, e)
	e.Version++
	cp := *e
	return &cp, nil
}

func (f *fakeEmployees) DeleteEmployee(ctx context.Context, id string) (*domain.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	e, ok := f.byID[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	delete(f.byID, id)
	return e, nil
}

// fakeHasher 只用于加速测试，真实的 bcrypt 行为在 auth 包中测试
type fakeHasher struct {
	hashErr error
}

func (h *fakeHasher) Hash(password string) (string, error) {
	if h.hashErr != nil {
		return "", h.hashErr
	}
	return "hashed:" + uuid.NewString() + ":" + password, nil
}

func (h *fakeHasher) Compare(hash string, password string) error {
	if !strings.HasPrefix(hash, "hashed:") {
		return errors.New("malformed hash")
	}
	if hash[strings.LastIndex(hash, ":")+1:] != password {
		return bcrypt.ErrMismatchedHashAndPassword
	}
	return nil
}

type fakeTokens struct{}

func (fakeTokens) Issue(user *domain.User) (string, error) {
	return "token-for-" + user.ID, nil
}

type fakeLocker struct {
	mu     sync.Mutex
	locked [][]string
	err    error
}

func (l *fakeLocker) Lock(ctx context.Context, keys ...string) (func(), error) {
	if l.err != nil {
		return nil, l.err
	}
	l.mu.Lock()
	l.locked = append(l.locked, keys)
	l.mu.Unlock()
	return func() {}, nil
}

type fakeMail struct {
	mu   sync.Mutex
	sent []domain.MailMessage
	err  error
}

func (m *fakeMail) PublishMail(ctx context.Context, msg domain.MailMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

type testDeps struct {
	users     *fakeUsers
	employees *fakeEmployees
	hasher    *fakeHasher
	locker    *fakeLocker
	mail      *fakeMail
}

func newTestService() (*Service, *testDeps) {
	deps := &testDeps{
		users:     newFakeUsers(),
		employees: newFakeEmployees(),
		hasher:    &fakeHasher{},
		locker:    &fakeLocker{},
		mail:      &fakeMail{},
	}

	svc := New(Options{
		Users:     deps.users,
		Employees: deps.employees,
		Hasher:    deps.hasher,
		Tokens:    fakeTokens{},
		Locker:    deps.locker,
		Mail:      deps.mail,
	})
	return svc, deps
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
