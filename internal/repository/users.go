package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sysu-ecnc-dev/employee-directory/backend/internal/domain"
)

func (r *Repository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `
		SELECT id, email, password_hash, created_at
		FROM users WHERE username = $1
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	user := &domain.User{
		Username: username,
	}

	dst := []any{&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, username).Scan(dst...); err != nil {
		return nil, err
	}

	return user, nil
}

// GetUserByUsernameOrEmail 按用户名或邮箱查找用户，多条匹配时返回最早创建的一条
func (r *Repository) GetUserByUsernameOrEmail(ctx context.Context, identifier string) (*domain.User, error) {
	query := `
		SELECT id, username, email, password_hash, created_at
		FROM users WHERE username = $1 OR email = $1
		ORDER BY created_at
		LIMIT 1
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	user := &domain.User{}

	dst := []any{&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, identifier).Scan(dst...); err != nil {
		return nil, err
	}

	return user, nil
}

func (r *Repository) CreateUser(ctx context.Context, user *domain.User) error {
	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	query := `
		INSERT INTO users (id, username, email, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`

	id := uuid.NewString()

	args := []any{id, user.Username, user.Email, user.PasswordHash}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&user.CreatedAt); err != nil {
		return err
	}
	user.ID = id

	return nil
}

func (r *Repository) CheckUserEmailIfExists(ctx context.Context, email string) (bool, error) {
	isExists := false

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	query := `
		SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)
	`
	if err := r.dbpool.QueryRowContext(ctx, query, email).Scan(&isExists); err != nil {
		return false, err
	}

	return isExists, nil
}
