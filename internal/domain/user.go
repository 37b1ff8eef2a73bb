package domain

import (
	"time"
)

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// AuthResult 是登录或注册成功后返回给调用方的结果，Token 为空表示未签发令牌
type AuthResult struct {
	User  *User
	Token string
}
