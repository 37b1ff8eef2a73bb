package domain

import "errors"

type ErrorKind string

const (
	KindDuplicateIdentity  ErrorKind = "DUPLICATE_IDENTITY"
	KindNotFound           ErrorKind = "NOT_FOUND"
	KindInvalidCredentials ErrorKind = "INVALID_CREDENTIALS"
	KindStorageFailure     ErrorKind = "STORAGE_FAILURE"
	KindBadUserInput       ErrorKind = "BAD_USER_INPUT"
	KindUnauthenticated    ErrorKind = "UNAUTHENTICATED"
)

// Error 是返回给 API 调用方的错误，Message 面向用户，Err 保存内部原因且不会对外暴露
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is 只比较错误类别，使得 errors.Is(err, ErrNotFound) 能匹配任意 NOT_FOUND 错误
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrDuplicateIdentity  = &Error{Kind: KindDuplicateIdentity, Message: "标识已被占用"}
	ErrNotFound           = &Error{Kind: KindNotFound, Message: "记录不存在"}
	ErrInvalidCredentials = &Error{Kind: KindInvalidCredentials, Message: "密码错误"}
	ErrStorageFailure     = &Error{Kind: KindStorageFailure, Message: "服务器内部错误"}
	ErrBadUserInput       = &Error{Kind: KindBadUserInput, Message: "参数错误"}
	ErrUnauthenticated    = &Error{Kind: KindUnauthenticated, Message: "用户未登录"}
)

func NewError(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func StorageFailure(err error) *Error {
	return &Error{Kind: KindStorageFailure, Message: ErrStorageFailure.Message, Err: err}
}

// KindOf 返回 err 链上第一个 *Error 的类别，找不到时视为存储故障
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStorageFailure
}
