package domain

import (
	"context"
	"errors"
	"time"

	feedbackdomain "github.com/C-P-WAZARIYO/Field-Pro/internal/feedback/domain"
	"github.com/C-P-WAZARIYO/Field-Pro/pkg/db/pagination"
)

type CreateCaseRequest struct {
	AccountID    string
	CustomerName string
	POSAmount    float64
	BKT          string
	ProductType  string
	BankName     string
	EmpID        string
	Month        int
	Year         int
}

type ListCasesRequest struct {
	Filter Filter
	Page   pagination.Pagination
}

type ListCasesResponse struct {
	pagination.PageInfo
	Cases []CaseView `json:"cases"`
}

// CaseView is a case joined with its feedback history and owning executive.
type CaseView struct {
	Case
	Feedbacks []feedbackdomain.Feedback `json:"feedbacks,omitempty"`
	Executive *ExecutiveRef             `json:"executive,omitempty"`
}

// ExecutiveRef is the bounded user projection embedded in case responses.
type ExecutiveRef struct {
	ID        string  `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     string  `json:"email,omitempty"`
	EmpID     *string `json:"emp_id,omitempty"`
}

// VisitedCase annotates a case with its visit count and most recent visit.
type VisitedCase struct {
	CaseView
	Visits      int        `json:"visits"`
	LastVisitAt *time.Time `json:"last_visit_at,omitempty"`
}

type VisitedCasesResponse struct {
	pagination.PageInfo
	Cases []VisitedCase `json:"cases"`
}

type UpdateStatusRequest struct {
	ID     string
	Status string
}

type Service interface {
	Create(ctx context.Context, req CreateCaseRequest) (Case, error)
	GetByID(ctx context.Context, id string) (CaseView, error)
	GetByAccountID(ctx context.Context, accountID string) (CaseView, error)
	List(ctx context.Context, req ListCasesRequest) (ListCasesResponse, error)
	UpdateStatus(ctx context.Context, req UpdateStatusRequest) (Case, error)
	VisitedCases(ctx context.Context, req ListCasesRequest) (VisitedCasesResponse, error)
}

var (
	ErrInvalidAccountID = errors.New("invalid_account_id")
	ErrInvalidID        = errors.New("invalid_id")
	ErrInvalidStatus    = errors.New("invalid_status")
	ErrNotFound         = errors.New("not_found")
)
