package graph

import (
	"context"

	"github.com/graph-gophers/graphql-go"
)

type loginArgs struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login 的 username 参数同时接受用户名或邮箱
func (r *Resolver) Login(ctx context.Context, args loginArgs) (*userResolver, error) {
	if err := r.validateInput(&args); err != nil {
		return nil, r.finish(ctx, "login", err)
	}

	res, err := r.service.Login(ctx, args.Username, args.Password)
	if err != nil {
		return nil, r.finish(ctx, "login", err)
	}

	r.finish(ctx, "login", nil)
	return &userResolver{user: res.User, token: res.Token}, nil
}

func (r *Resolver) GetAllEmployees(ctx context.Context) (*[]*employeeResolver, error) {
	return r.listEmployees(ctx, "getAllEmployees")
}

func (r *Resolver) GetEmployees(ctx context.Context) (*[]*employeeResolver, error) {
	return r.listEmployees(ctx, "getEmployees")
}

func (r *Resolver) listEmployees(ctx context.Context, operation string) (*[]*employeeResolver, error) {
	if err := r.requireAuth(ctx); err != nil {
		return nil, r.finish(ctx, operation, err)
	}

	employees, err := r.service.ListEmployees(ctx)
	if err != nil {
		return nil, r.finish(ctx, operation, err)
	}

	r.finish(ctx, operation, nil)
	return employeeList(employees), nil
}

func (r *Resolver) SearchEmployeeByID(ctx context.Context, args struct{ ID graphql.ID }) (*employeeResolver, error) {
	return r.fetchEmployee(ctx, "searchEmployeeById", args.ID)
}

func (r *Resolver) GetEmployee(ctx context.Context, args struct{ EmployeeID graphql.ID }) (*employeeResolver, error) {
	return r.fetchEmployee(ctx, "getEmployee", args.EmployeeID)
}

func (r *Resolver) fetchEmployee(ctx context.Context, operation string, id graphql.ID) (*employeeResolver, error) {
	if err := r.requireAuth(ctx); err != nil {
		return nil, r.finish(ctx, operation, err)
	}

	e, err := r.service.GetEmployee(ctx, string(id))
	if err != nil {
		return nil, r.finish(ctx, operation, err)
	}

	r.finish(ctx, operation, nil)
	return &employeeResolver{e: e}, nil
}
