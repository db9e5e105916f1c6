package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

const (
	RoleExecutive  = "executive"
	RoleSupervisor = "supervisor"
	RoleManager    = "manager"
	RoleAdmin      = "admin"
)

type User struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	EmpID     *string      `gorm:"column:emp_id;uniqueIndex" json:"emp_id,omitempty"`
	FirstName string       `gorm:"not null" json:"first_name"`
	LastName  string       `json:"last_name"`
	Email     string       `gorm:"not null;uniqueIndex" json:"email"`
	Role      string       `gorm:"not null;index" json:"role"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (User) TableName() string { return "users" }

// FullName joins first and last name, trimming the gap when either is empty.
func (u User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// IsExecutive reports whether the user carries the executive role.
func (u User) IsExecutive() bool {
	return u.Role == RoleExecutive
}
