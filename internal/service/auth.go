package service

import (
	"context"
	"errors"

	"github.com/sysu-ecnc-dev/employee-directory/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes 是 bcrypt 能处理的最大密码长度
const MaxPasswordBytes = 72

type SignupInput struct {
	Username string
	Email    string
	Password string
}

// Signup 创建新用户，返回的用户不会对外暴露密码哈希
func (s *Service) Signup(ctx context.Context, in SignupInput) (*domain.User, error) {
	// bcrypt 只接受不超过 72 字节的密码
	if len(in.Password) > MaxPasswordBytes {
		return nil, errPasswordTooLong
	}

	unlock, err := s.lockKeys(ctx, userIdentityLockKey(in.Username), userIdentityLockKey(in.Email))
	if err != nil {
		return nil, err
	}
	defer unlock()

	// 用户名不能与任何已有用户的用户名或邮箱相同
	isTaken, err := s.identityTaken(ctx, in.Username)
	if err != nil {
		return nil, domain.StorageFailure(err)
	}
	if isTaken {
		return nil, errUsernameTaken
	}

	// 邮箱同理
	isTaken, err = s.identityTaken(ctx, in.Email)
	if err != nil {
		return nil, domain.StorageFailure(err)
	}
	if isTaken {
		return nil, errUserEmailTaken
	}

	// 对密码进行哈希
	passwordHash, err := s.hasher.Hash(in.Password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, errPasswordTooLong
		}
		return nil, domain.StorageFailure(err)
	}

	user := &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: passwordHash,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, storeError(err, errUserNotFound)
	}

	s.publishSignupMail(ctx, user)

	return publicUser(user), nil
}

// identityTaken 判断 value 是否已被某个用户用作用户名或邮箱
func (s *Service) identityTaken(ctx context.Context, value string) (bool, error) {
	_, err := s.users.GetUserByUsername(ctx, value)
	switch {
	case err == nil:
		return true, nil
	case !isNoRows(err):
		return false, err
	}

	return s.users.CheckUserEmailIfExists(ctx, value)
}

// Register 注册并立即签发令牌
func (s *Service) Register(ctx context.Context, in SignupInput) (*domain.AuthResult, error) {
	user, err := s.Signup(ctx, in)
	if err != nil {
		return nil, err
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, err
	}

	return &domain.AuthResult{User: user, Token: token}, nil
}

// Login 通过用户名或邮箱登录，用户不存在和密码错误会返回不同的错误类别
func (s *Service) Login(ctx context.Context, usernameOrEmail, password string) (*domain.AuthResult, error) {
	// 比较时 bcrypt 会忽略 72 字节之后的内容，这样的密码不可能是注册时的密码
	if len(password) > MaxPasswordBytes {
		return nil, errWrongCredentials
	}

	user, err := s.users.GetUserByUsernameOrEmail(ctx, usernameOrEmail)
	if err != nil {
		return nil, storeError(err, errUserNotFound)
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		switch {
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			return nil, errWrongCredentials
		default:
			return nil, domain.StorageFailure(err)
		}
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, err
	}

	return &domain.AuthResult{User: publicUser(user), Token: token}, nil
}

// IssueToken 在没有配置签发器时返回空令牌
func (s *Service) IssueToken(user *domain.User) (string, error) {
	if s.tokens == nil {
		return "", nil
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", domain.StorageFailure(err)
	}
	return token, nil
}

func (s *Service) publishSignupMail(ctx context.Context, user *domain.User) {
	if s.mail == nil {
		return
	}

	msg := domain.MailMessage{
		Type: domain.MailTypeSignup,
		To:   user.Email,
		Data: domain.SignupMailData{
			Username: user.Username,
			Email:    user.Email,
		},
	}

	// 用户已经写入数据库，邮件发送失败不影响注册结果
	if err := s.mail.PublishMail(ctx, msg); err != nil {
		s.logger.Warn("无法发送注册邮件", "username", user.Username, "error", err)
	}
}

// publicUser 返回去掉密码哈希的副本
func publicUser(u *domain.User) *domain.User {
	return &domain.User{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
