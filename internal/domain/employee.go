package domain

import "time"

type Employee struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Gender    string    `json:"gender"`
	Salary    float64   `json:"salary"`
	CreatedAt time.Time `json:"createdAt"`
	Version   int32     `json:"-"`
}

// EmployeePatch 描述一次部分更新，nil 表示该字段未提供，保持原值不变
type EmployeePatch struct {
	FirstName *string
	LastName  *string
	Email     *string
	Gender    *string
	Salary    *float64
}

func (p EmployeePatch) IsEmpty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Email == nil && p.Gender == nil && p.Salary == nil
}
