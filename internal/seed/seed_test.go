package seed

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/employee-directory/backend/internal/domain"
	"github.com/sysu-ecnc-dev/employee-directory/backend/internal/service"
)

type recordingAdder struct {
	added []service.EmployeeInput
	fail  map[string]error
}

func (a *recordingAdder) AddEmployee(ctx context.Context, in service.EmployeeInput) (*domain.Employee, error) {
	if err := a.fail[in.Email]; err != nil {
		return nil, err
	}
	a.added = append(a.added, in)
	return &domain.Employee{Email: in.Email}, nil
}

func TestImportEmployees(t *testing.T) {
	csv := strings.Join([]string{
		"email,first_name,last_name,gender,salary",
		"a@x.com, San, Zhang, Male, 1000",
		"b@x.com,Si,Li,Female,2500.5",
	}, "\n")

	adder := &recordingAdder{}
	res, err := ImportEmployees(context.Background(), strings.NewReader(csv), adder)
	require.NoError(t, err)
	assert.Equal(t, Result{Imported: 2}, res)

	require.Len(t, adder.added, 2)
	assert.Equal(t, service.EmployeeInput{
		FirstName: "San", LastName: "Zhang", Email: "a@x.com", Gender: "Male", Salary: 1000,
	}, adder.added[0])
	assert.Equal(t, 2500.5, adder.added[1].Salary)
}

func TestImportEmployeesSkipsBadRows(t *testing.T) {
	csv := strings.Join([]string{
		"first_name,last_name,email,gender,salary",
		"San,Zhang,a@x.com,Male,abc",
		"San,Zhang,b@x.com,Male,-5",
		",Zhang,c@x.com,Male,100",
		"San,Zhang,dup@x.com,Male,100",
		"San,Zhang,ok@x.com,Male,100",
	}, "\n")

	adder := &recordingAdder{fail: map[string]error{
		"dup@x.com": errors.New("该邮箱已被其他员工使用"),
	}}
	res, err := ImportEmployees(context.Background(), strings.NewReader(csv), adder)
	require.NoError(t, err)
	assert.Equal(t, Result{Imported: 1, Skipped: 4}, res)
	require.Len(t, adder.added, 1)
	assert.Equal(t, "ok@x.com", adder.added[0].Email)
}

func TestImportEmployeesMissingColumn(t *testing.T) {
	_, err := ImportEmployees(context.Background(), strings.NewReader("first_name,last_name,email\n"), &recordingAdder{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gender")
}

func TestImportEmployeesEmptyInput(t *testing.T) {
	_, err := ImportEmployees(context.Background(), strings.NewReader(""), &recordingAdder{})
	assert.Error(t, err)
}

func TestImportEmployeesFromBundledFile(t *testing.T) {
	adder := &recordingAdder{}
	res, err := ImportEmployeesFromFile(context.Background(), filepath.Join("data", "employees.csv"), adder)
	require.NoError(t, err)
	assert.Equal(t, 10, res.Imported)
	assert.Zero(t, res.Skipped)
}
