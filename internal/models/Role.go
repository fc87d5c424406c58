package models

import (
	"gorm.io/gorm"
)

// RoleName is the closed set of capabilities a user can carry.
type RoleName string

const (
	RoleEmployee RoleName = "ROLE_EMPLOYEE"
	RoleAdmin    RoleName = "ROLE_ADMIN"
	RoleDriver   RoleName = "ROLE_DRIVER"
)

// AllRoleNames returns every role in the enumeration, in seed order.
func AllRoleNames() []RoleName {
	return []RoleName{RoleEmployee, RoleAdmin, RoleDriver}
}

// RoleNameFromInput maps a short role keyword from a signup/update
// payload ("admin", "driver", anything else) to a RoleName.
func RoleNameFromInput(s string) RoleName {
	switch s {
	case "admin":
		return RoleAdmin
	case "driver":
		return RoleDriver
	default:
		return RoleEmployee
	}
}

type Role struct {
	gorm.Model
	Name RoleName `json:"name" gorm:"uniqueIndex;size:20"`
}
