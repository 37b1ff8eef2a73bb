package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/sysu-ecnc-dev/employee-directory/backend/internal/domain"
	"github.com/sysu-ecnc-dev/employee-directory/backend/internal/lock"
	"github.com/sysu-ecnc-dev/employee-directory/backend/internal/repository"
)

type Service struct {
	users     UserStore
	employees EmployeeStore
	hasher    PasswordHasher
	tokens    TokenIssuer
	locker    Locker
	mail      MailPublisher
	logger    *slog.Logger
}

type Options struct {
	Users     UserStore
	Employees EmployeeStore
	Hasher    PasswordHasher
	Tokens    TokenIssuer
	Locker    Locker
	Mail      MailPublisher
	Logger    *slog.Logger
}

func New(opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		users:     opts.Users,
		employees: opts.Employees,
		hasher:    opts.Hasher,
		tokens:    opts.Tokens,
		locker:    opts.Locker,
		mail:      opts.Mail,
		logger:    logger,
	}
}

// 用户名和邮箱共用同一个命名空间，登录时两者都可以作为标识
func userIdentityLockKey(identity string) string {
	return "lock:users:identity:" + identity
}

func employeeEmailLockKey(email string) string {
	return "lock:employees:email:" + email
}

// lockKeys 在没有配置 Locker 时退化为只依赖数据库唯一约束
func (s *Service) lockKeys(ctx context.Context, keys ...string) (func(), error) {
	if s.locker == nil {
		return func() {}, nil
	}

	unlock, err := s.locker.Lock(ctx, keys...)
	if err != nil {
		if errors.Is(err, lock.ErrLockTimeout) {
			return nil, &domain.Error{Kind: domain.KindStorageFailure, Message: "操作繁忙，请稍后重试", Err: err}
		}
		return nil, domain.StorageFailure(err)
	}
	return unlock, nil
}

var (
	errUsernameTaken      = domain.NewError(domain.KindDuplicateIdentity, "用户名已被占用")
	errUserEmailTaken     = domain.NewError(domain.KindDuplicateIdentity, "邮箱已被注册")
	errEmployeeEmailTaken = domain.NewError(domain.KindDuplicateIdentity, "该邮箱已被其他员工使用")
	errUserNotFound       = domain.NewError(domain.KindNotFound, "用户不存在")
	errEmployeeNotFound   = domain.NewError(domain.KindNotFound, "员工不存在")
	errWrongCredentials   = domain.NewError(domain.KindInvalidCredentials, "密码错误")
	errPasswordTooLong    = domain.NewError(domain.KindBadUserInput, "密码长度不能超过 72 字节")
)

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// storeError 把存储层错误翻译为对外的错误类别
func storeError(err error, notFound *domain.Error) error {
	if isNoRows(err) {
		return notFound
	}

	if constraint, ok := repository.UniqueViolation(err); ok {
		switch constraint {
		case repository.ConstraintUsersUsername:
			return errUsernameTaken
		case repository.ConstraintUsersEmail:
			return errUserEmailTaken
		case repository.ConstraintEmployeesEmail:
			return errEmployeeEmailTaken
		}
	}

	return domain.StorageFailure(err)
}
