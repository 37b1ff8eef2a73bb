package seed

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/sysu-ecnc-dev/employee-directory/backend/internal/domain"
	"github.com/sysu-ecnc-dev/employee-directory/backend/internal/service"
)

var employeeHeaders = []string{"first_name", "last_name", "email", "gender", "salary"}

type EmployeeAdder interface {
	AddEmployee(ctx context.Context, in service.EmployeeInput) (*domain.Employee, error)
}

type Result struct {
	Imported int
	Skipped  int
}

func ImportEmployeesFromFile(ctx context.Context, path string, adder EmployeeAdder) (Result, error) {
	file, err := os.Open(path)
	if err != nil {
		return Result{}, err
	}
	defer file.Close()

	return ImportEmployees(ctx, file, adder)
}

// ImportEmployees 逐行导入员工，单行出错时记录日志并跳过
func ImportEmployees(ctx context.Context, r io.Reader, adder EmployeeAdder) (Result, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	// 读取表头，列的顺序可以任意
	headers, err := reader.Read()
	if err != nil {
		return Result{}, fmt.Errorf("读取表头失败: %w", err)
	}
	columns := make(map[string]int, len(headers))
	for i, header := range headers {
		columns[strings.ToLower(strings.TrimSpace(header))] = i
	}
	for _, header := range employeeHeaders {
		if _, ok := columns[header]; !ok {
			return Result{}, fmt.Errorf("缺少列 %s", header)
		}
	}

	result := Result{}
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			slog.Error("读取数据失败", "line", line, "error", err)
			result.Skipped++
			continue
		}

		in, err := parseEmployee(record, columns)
		if err != nil {
			slog.Error("数据格式错误", "line", line, "error", err)
			result.Skipped++
			continue
		}

		if _, err := adder.AddEmployee(ctx, in); err != nil {
			slog.Error("无法插入员工", "line", line, "email", in.Email, "error", err)
			result.Skipped++
			continue
		}

		result.Imported++
	}

	return result, nil
}

func parseEmployee(record []string, columns map[string]int) (service.EmployeeInput, error) {
	field := func(name string) string {
		i := columns[name]
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	for _, header := range employeeHeaders {
		if field(header) == "" {
			return service.EmployeeInput{}, fmt.Errorf("%s 不能为空", header)
		}
	}

	salary, err := strconv.ParseFloat(field("salary"), 64)
	if err != nil {
		return service.EmployeeInput{}, fmt.Errorf("salary 不是合法的数字: %w", err)
	}
	if salary < 0 {
		return service.EmployeeInput{}, errors.New("salary 不能为负数")
	}

	return service.EmployeeInput{
		FirstName: field("first_name"),
		LastName:  field("last_name"),
		Email:     field("email"),
		Gender:    field("gender"),
		Salary:    salary,
	}, nil
}
