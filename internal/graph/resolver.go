package graph

import (
	"context"
	"errors"
	"log/slog"
	"reflect"
	"strings"

	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	"github.com/sysu-ecnc-dev/employee-directory/backend/internal/auth"
	"github.com/sysu-ecnc-dev/employee-directory/backend/internal/domain"
	"github.com/sysu-ecnc-dev/employee-directory/backend/internal/metrics"
	"github.com/sysu-ecnc-dev/employee-directory/backend/internal/service"
)

// Resolver 同时作为 Query 和 Mutation 的根 resolver
type Resolver struct {
	service     *service.Service
	validate    *validator.Validate
	translator  ut.Translator
	enforceAuth bool
	logger      *slog.Logger
}

type Options struct {
	// EnforceAuth 为 true 时员工相关操作必须携带有效的令牌
	EnforceAuth bool
	Logger      *slog.Logger
}

func NewResolver(svc *service.Service, opts Options) (*Resolver, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	// 校验错误中使用 GraphQL 的字段名
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	zh := zh.New()
	uni := ut.New(zh, zh)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Resolver{
		service:     svc,
		validate:    validate,
		translator:  trans,
		enforceAuth: opts.EnforceAuth,
		logger:      logger,
	}, nil
}

func (r *Resolver) validateInput(v any) error {
	err := r.validate.Struct(v)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return domain.NewError(domain.KindBadUserInput, err.Error())
	}
	return domain.NewError(domain.KindBadUserInput, validationErrors[0].Translate(r.translator))
}

func (r *Resolver) requireAuth(ctx context.Context) error {
	if !r.enforceAuth {
		return nil
	}
	if auth.ClaimsFromContext(ctx) == nil {
		return domain.ErrUnauthenticated
	}
	return nil
}

// finish 记录操作结果，并把错误转换为对外的 GraphQL 错误
func (r *Resolver) finish(ctx context.Context, operation string, err error) error {
	if err == nil {
		metrics.RecordOperation(operation, metrics.ResultSuccess)
		return nil
	}

	gqlErr := publicError(err)
	metrics.RecordOperation(operation, string(gqlErr.Kind))
	if gqlErr.Kind == domain.KindStorageFailure {
		r.logger.ErrorContext(ctx, "服务器内部错误", "operation", operation, "error", cause(err))
	}
	return gqlErr
}

// cause 取出 domain.Error 包装的底层错误
func cause(err error) error {
	var domainErr *domain.Error
	if errors.As(err, &domainErr) && domainErr.Err != nil {
		return domainErr.Err
	}
	return err
}
