package domain

import (
	"context"
	"errors"

	casesdomain "github.com/C-P-WAZARIYO/Field-Pro/internal/cases/domain"
	"github.com/bwmarrin/snowflake"
)

// Assignment binds one employee identifier to one executive user.
type Assignment struct {
	EmpID       string       `json:"emp_id"`
	ExecutiveID snowflake.ID `json:"executive_id"`
}

// AssignmentResult reports the outcome of one assignment in a bulk run.
type AssignmentResult struct {
	EmpID       string       `json:"emp_id"`
	ExecutiveID snowflake.ID `json:"executive_id"`
	Allocated   int64        `json:"allocated"`
	Error       string       `json:"error,omitempty"`
}

// BulkResult summarizes a bulk allocation. Failed assignments never abort
// the remaining ones.
type BulkResult struct {
	TotalAllocated int64              `json:"totalAllocated"`
	Succeeded      int                `json:"succeeded"`
	Failed         int                `json:"failed"`
	Results        []AssignmentResult `json:"results"`
}

// ByEmpIDResult reports one allocate-by-identifier run.
type ByEmpIDResult struct {
	EmpID         string       `json:"emp_id"`
	ExecutiveID   snowflake.ID `json:"executive_id"`
	ExecutiveName string       `json:"executive_name"`
	Allocated     int64        `json:"allocated"`
}

// StatusReport is the current allocation picture across all cases.
type StatusReport struct {
	Total       int64                       `json:"total"`
	Allocated   int64                       `json:"allocated"`
	Unallocated int64                       `json:"unallocated"`
	ByEmpID     []casesdomain.EmpAllocation `json:"byEmpId"`
}

type Service interface {
	// Allocate assigns every still-unallocated case carrying empID to the
	// executive. Already-allocated cases are untouched.
	Allocate(ctx context.Context, assignment Assignment) (int64, error)
	// BulkAllocate runs assignments in order, continuing past failures.
	BulkAllocate(ctx context.Context, assignments []Assignment) (BulkResult, error)
	// AllocateByEmpID assigns empID's unallocated cases to the referenced
	// executive user. The user must exist; unlike Allocate the role is not
	// checked, so stray identifiers can be parked on any account.
	AllocateByEmpID(ctx context.Context, empID string, executiveID snowflake.ID) (ByEmpIDResult, error)
	Status(ctx context.Context) (StatusReport, error)
}

var (
	ErrInvalidEmpID      = errors.New("invalid_emp_id")
	ErrExecutiveNotFound = errors.New("executive_not_found")
	ErrNotExecutive      = errors.New("not_executive")
)
