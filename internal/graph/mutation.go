package graph

import (
	"context"

	"github.com/graph-gophers/graphql-go"
	"github.com/sysu-ecnc-dev/employee-directory/backend/internal/domain"
	"github.com/sysu-ecnc-dev/employee-directory/backend/internal/service"
)

type registerInput struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (in registerInput) toService() service.SignupInput {
	return service.SignupInput{
		Username: in.Username,
		Email:    in.Email,
		Password: in.Password,
	}
}

type employeeInput struct {
	FirstName string  `json:"first_name" validate:"required"`
	LastName  string  `json:"last_name" validate:"required"`
	Email     string  `json:"email" validate:"required"`
	Gender    string  `json:"gender" validate:"required"`
	Salary    float64 `json:"salary" validate:"gte=0"`
}

func (in employeeInput) toService() service.EmployeeInput {
	return service.EmployeeInput{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Gender:    in.Gender,
		Salary:    in.Salary,
	}
}

// updateEmployeeInput 中为 nil 的字段表示未提供，提供了的字段不能为空
type updateEmployeeInput struct {
	FirstName *string  `json:"first_name" validate:"omitnil,min=1"`
	LastName  *string  `json:"last_name" validate:"omitnil,min=1"`
	Email     *string  `json:"email" validate:"omitnil,min=1"`
	Gender    *string  `json:"gender" validate:"omitnil,min=1"`
	Salary    *float64 `json:"salary" validate:"omitnil,gte=0"`
}

func (in updateEmployeeInput) toPatch() domain.EmployeePatch {
	return domain.EmployeePatch{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Gender:    in.Gender,
		Salary:    in.Salary,
	}
}

func (r *Resolver) Signup(ctx context.Context, args registerInput) (*userResolver, error) {
	if err := r.validateInput(&args); err != nil {
		return nil, r.finish(ctx, "signup", err)
	}

	user, err := r.service.Signup(ctx, args.toService())
	if err != nil {
		return nil, r.finish(ctx, "signup", err)
	}

	r.finish(ctx, "signup", nil)
	return &userResolver{user: user}, nil
}

// Register 与 Signup 相同，但会在返回结果中附带令牌
func (r *Resolver) Register(ctx context.Context, args struct{ RegisterInput registerInput }) (*userResolver, error) {
	if err := r.validateInput(&args.RegisterInput); err != nil {
		return nil, r.finish(ctx, "register", err)
	}

	res, err := r.service.Register(ctx, args.RegisterInput.toService())
	if err != nil {
		return nil, r.finish(ctx, "register", err)
	}

	r.finish(ctx, "register", nil)
	return &userResolver{user: res.User, token: res.Token}, nil
}

func (r *Resolver) AddNewEmployee(ctx context.Context, args employeeInput) (*employeeResolver, error) {
	return r.createEmployee(ctx, "addNewEmployee", args)
}

func (r *Resolver) AddEmployee(ctx context.Context, args struct{ EmployeeInput employeeInput }) (*employeeResolver, error) {
	return r.createEmployee(ctx, "addEmployee", args.EmployeeInput)
}

func (r *Resolver) createEmployee(ctx context.Context, operation string, in employeeInput) (*employeeResolver, error) {
	if err := r.requireAuth(ctx); err != nil {
		return nil, r.finish(ctx, operation, err)
	}
	if err := r.validateInput(&in); err != nil {
		return nil, r.finish(ctx, operation, err)
	}

	e, err := r.service.AddEmployee(ctx, in.toService())
	if err != nil {
		return nil, r.finish(ctx, operation, err)
	}

	r.finish(ctx, operation, nil)
	return &employeeResolver{e: e}, nil
}

type updateEmployeeByIDArgs struct {
	ID        graphql.ID
	FirstName *string
	LastName  *string
	Email     *string
	Gender    *string
	Salary    *float64
}

func (r *Resolver) UpdateEmployeeByID(ctx context.Context, args updateEmployeeByIDArgs) (*employeeResolver, error) {
	in := updateEmployeeInput{
		FirstName: args.FirstName,
		LastName:  args.LastName,
		Email:     args.Email,
		Gender:    args.Gender,
		Salary:    args.Salary,
	}
	return r.patchEmployee(ctx, "updateEmployeeById", args.ID, in)
}

func (r *Resolver) UpdateEmployee(ctx context.Context, args struct {
	EmployeeID  graphql.ID
	UpdateInput updateEmployeeInput
}) (*employeeResolver, error) {
	return r.patchEmployee(ctx, "updateEmployee", args.EmployeeID, args.UpdateInput)
}

func (r *Resolver) patchEmployee(ctx context.Context, operation string, id graphql.ID, in updateEmployeeInput) (*employeeResolver, error) {
	if err := r.requireAuth(ctx); err != nil {
		return nil, r.finish(ctx, operation, err)
	}
	if err := r.validateInput(&in); err != nil {
		return nil, r.finish(ctx, operation, err)
	}

	e, err := r.service.UpdateEmployee(ctx, string(id), in.toPatch())
	if err != nil {
		return nil, r.finish(ctx, operation, err)
	}

	r.finish(ctx, operation, nil)
	return &employeeResolver{e: e}, nil
}

func (r *Resolver) DeleteEmployeeByID(ctx context.Context, args struct{ ID graphql.ID }) (*employeeResolver, error) {
	return r.removeEmployee(ctx, "deleteEmployeeById", args.ID)
}

func (r *Resolver) DeleteEmployee(ctx context.Context, args struct{ EmployeeID graphql.ID }) (*employeeResolver, error) {
	return r.removeEmployee(ctx, "deleteEmployee", args.EmployeeID)
}

func (r *Resolver) removeEmployee(ctx context.Context, operation string, id graphql.ID) (*employeeResolver, error) {
	if err := r.requireAuth(ctx); err != nil {
		return nil, r.finish(ctx, operation, err)
	}

	e, err := r.service.DeleteEmployee(ctx, string(id))
	if err != nil {
		return nil, r.finish(ctx, operation, err)
	}

	r.finish(ctx, operation, nil)
	return &employeeResolver{e: e}, nil
}
