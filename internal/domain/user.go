package domain

import (
	"slices"
	"time"
)

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleStaff  Role = "staff"
	RoleTenant Role = "tenant"
)

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	Departments  []string  `json:"departments"`
	Building     string    `json:"building"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	Version      int32     `json:"-"`
}

// HasAnyDepartment 判断员工所属部门与所需部门是否有交集（命中任意一个即可）
func (u *User) HasAnyDepartment(required []string) bool {
	for _, dept := range required {
		if slices.Contains(u.Departments, dept) {
			return true
		}
	}
	return false
}
