package service

import (
	"context"

	"github.com/sysu-ecnc-dev/employee-directory/backend/internal/domain"
)

// UserStore 在找不到用户时返回 sql.ErrNoRows，唯一约束冲突时返回 *pgconn.PgError
type UserStore interface {
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	GetUserByUsernameOrEmail(ctx context.Context, identifier string) (*domain.User, error)
	CheckUserEmailIfExists(ctx context.Context, email string) (bool, error)
	CreateUser(ctx context.Context, user *domain.User) error
}

// EmployeeStore 的错误约定与 UserStore 相同
type EmployeeStore interface {
	GetEmployeeByID(ctx context.Context, id string) (*domain.Employee, error)
	GetEmployeeByEmail(ctx context.Context, email string) (*domain.Employee, error)
	GetAllEmployees(ctx context.Context) ([]*domain.Employee, error)
	CreateEmployee(ctx context.Context, e *domain.Employee) error
	UpdateEmployee(ctx context.Context, id string, patch domain.EmployeePatch) (*domain.Employee, error)
	DeleteEmployee(ctx context.Context, id string) (*domain.Employee, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error
}

type TokenIssuer interface {
	Issue(user *domain.User) (string, error)
}

type Locker interface {
	Lock(ctx context.Context, keys ...string) (unlock func(), err error)
}

type MailPublisher interface {
	PublishMail(ctx context.Context, msg domain.MailMessage) error
}
