package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sysu-ecnc-dev/employee-directory/backend/internal/domain"
)

type EmployeeInput struct {
	FirstName string
	LastName  string
	Email     string
	Gender    string
	Salary    float64
}

func (s *Service) ListEmployees(ctx context.Context) ([]*domain.Employee, error) {
	employees, err := s.employees.GetAllEmployees(ctx)
	if err != nil {
		return nil, domain.StorageFailure(err)
	}
	return employees, nil
}

func (s *Service) GetEmployee(ctx context.Context, id string) (*domain.Employee, error) {
	if !isValidID(id) {
		return nil, errEmployeeNotFound
	}

	e, err := s.employees.GetEmployeeByID(ctx, id)
	if err != nil {
		return nil, storeError(err, errEmployeeNotFound)
	}
	return e, nil
}

func (s *Service) AddEmployee(ctx context.Context, in EmployeeInput) (*domain.Employee, error) {
	unlock, err := s.lockKeys(ctx, employeeEmailLockKey(in.Email))
	if err != nil {
		return nil, err
	}
	defer unlock()

	if err := s.checkEmployeeEmailAvailable(ctx, in.Email); err != nil {
		return nil, err
	}

	e := &domain.Employee{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Gender:    in.Gender,
		Salary:    in.Salary,
	}
	if err := s.employees.CreateEmployee(ctx, e); err != nil {
		return nil, storeError(err, errEmployeeNotFound)
	}

	return e, nil
}

// UpdateEmployee 只修改 patch 中提供的字段，邮箱发生变化时重新检查唯一性
func (s *Service) UpdateEmployee(ctx context.Context, id string, patch domain.EmployeePatch) (*domain.Employee, error) {
	current, err := s.GetEmployee(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.IsEmpty() {
		return current, nil
	}

	if patch.Email != nil && *patch.Email != current.Email {
		unlock, err := s.lockKeys(ctx, employeeEmailLockKey(*patch.Email))
		if err != nil {
			return nil, err
		}
		defer unlock()

		if err := s.checkEmployeeEmailAvailable(ctx, *patch.Email); err != nil {
			return nil, err
		}
	}

	updated, err := s.employees.UpdateEmployee(ctx, id, patch)
	if err != nil {
		return nil, storeError(err, errEmployeeNotFound)
	}

	return updated, nil
}

// DeleteEmployee 永久删除员工，返回删除前的记录
func (s *Service) DeleteEmployee(ctx context.Context, id string) (*domain.Employee, error) {
	if !isValidID(id) {
		return nil, errEmployeeNotFound
	}

	e, err := s.employees.DeleteEmployee(ctx, id)
	if err != nil {
		return nil, storeError(err, errEmployeeNotFound)
	}
	return e, nil
}

func (s *Service) checkEmployeeEmailAvailable(ctx context.Context, email string) error {
	_, err := s.employees.GetEmployeeByEmail(ctx, email)
	switch {
	case err == nil:
		return errEmployeeEmailTaken
	case isNoRows(err):
		return nil
	default:
		return domain.StorageFailure(err)
	}
}

// 数据库中的 id 都是 uuid，格式不对的 id 一定不存在
func isValidID(id string) bool {
	return uuid.Validate(id) == nil
}
