package graph

import (
	"time"

	"github.com/graph-gophers/graphql-go"
	"github.com/sysu-ecnc-dev/employee-directory/backend/internal/domain"
)

// userResolver 只暴露公开字段，密码哈希不在 schema 中
type userResolver struct {
	user  *domain.User
	token string
}

func (r *userResolver) ID() graphql.ID {
	return graphql.ID(r.user.ID)
}

func (r *userResolver) Username() string {
	return r.user.Username
}

func (r *userResolver) Email() string {
	return r.user.Email
}

func (r *userResolver) CreatedAt() string {
	return r.user.CreatedAt.UTC().Format(time.RFC3339)
}

func (r *userResolver) Token() *string {
	if r.token == "" {
		return nil
	}
	return &r.token
}

type employeeResolver struct {
	e *domain.Employee
}

func (r *employeeResolver) ID() graphql.ID {
	return graphql.ID(r.e.ID)
}

func (r *employeeResolver) FirstName() string {
	return r.e.FirstName
}

func (r *employeeResolver) LastName() string {
	return r.e.LastName
}

func (r *employeeResolver) Email() string {
	return r.e.Email
}

func (r *employeeResolver) Gender() string {
	return r.e.Gender
}

func (r *employeeResolver) Salary() float64 {
	return r.e.Salary
}

func employeeList(employees []*domain.Employee) *[]*employeeResolver {
	resolvers := make([]*employeeResolver, 0, len(employees))
	for _, e := range employees {
		resolvers = append(resolvers, &employeeResolver{e: e})
	}
	return &resolvers
}
