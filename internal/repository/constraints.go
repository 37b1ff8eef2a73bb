package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	ConstraintUsersUsername  = "users_username_key"
	ConstraintUsersEmail     = "users_email_key"
	ConstraintEmployeesEmail = "employees_email_key"

	uniqueViolationCode = "23505"
)

// UniqueViolation 判断 err 是否为唯一约束冲突，是则返回冲突的约束名
func UniqueViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolationCode {
		return "", false
	}
	return pgErr.ConstraintName, true
}
