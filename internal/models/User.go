package models

import (
	"time"

	"gorm.io/gorm"
)

// EmployeeStatus is the lifecycle state of a member of staff.
// Only ACTIVE users can be assigned to new schedules as drivers.
type EmployeeStatus string

const (
	StatusActive     EmployeeStatus = "ACTIVE"
	StatusSuspended  EmployeeStatus = "SUSPENDED"
	StatusOnLeave    EmployeeStatus = "ON_LEAVE"
	StatusTerminated EmployeeStatus = "TERMINATED"
)

// ParseEmployeeStatus normalizes a status string to the closed enum,
// reporting false for anything outside it.
func ParseEmployeeStatus(s string) (EmployeeStatus, bool) {
	switch EmployeeStatus(s) {
	case StatusActive, StatusSuspended, StatusOnLeave, StatusTerminated:
		return EmployeeStatus(s), true
	}
	return "", false
}

// User is an employee account. Drivers are users whose role set
// contains ROLE_DRIVER.
type User struct {
	gorm.Model
	EmployeeID string `json:"employee_id" gorm:"uniqueIndex;size:20"`
	Username   string `json:"username" gorm:"uniqueIndex;size:20"`
	Email      string `json:"email" gorm:"uniqueIndex;size:50"`
	Password   string `json:"-"`

	FirstName        string         `json:"first_name"`
	LastName         string         `json:"last_name"`
	Phone            string         `json:"phone"`
	Address          string         `json:"address"`
	DateOfBirth      *time.Time     `json:"date_of_birth,omitempty"`
	JoiningDate      *time.Time     `json:"joining_date,omitempty"`
	EmergencyContact string         `json:"emergency_contact"`
	Status           EmployeeStatus `json:"status" gorm:"size:20"`

	Roles []Role `json:"roles,omitempty" gorm:"many2many:user_roles;"`
}

// HasRole reports whether the user's role set contains name.
func (u *User) HasRole(name RoleName) bool {
	for _, r := range u.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}
