package graph

import (
	"errors"

	"github.com/sysu-ecnc-dev/employee-directory/backend/internal/domain"
)

// Error 是返回给 GraphQL 客户端的错误，extensions.code 为错误类别
type Error struct {
	Kind    domain.ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Extensions() map[string]interface{} {
	return map[string]interface{}{
		"code": string(e.Kind),
	}
}

// publicError 去掉内部原因，只保留类别和面向用户的信息
func publicError(err error) *Error {
	var de *domain.Error
	if errors.As(err, &de) {
		return &Error{Kind: de.Kind, Message: de.Message}
	}
	return &Error{Kind: domain.KindStorageFailure, Message: domain.ErrStorageFailure.Message}
}
