package service

import (
	"context"
	"errors"
	"strings"

	domain "github.com/C-P-WAZARIYO/Field-Pro/internal/allocation/domain"
	casesdomain "github.com/C-P-WAZARIYO/Field-Pro/internal/cases/domain"
	"github.com/C-P-WAZARIYO/Field-Pro/internal/observability/metrics"
	userdomain "github.com/C-P-WAZARIYO/Field-Pro/internal/user/domain"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Cases casesdomain.Repository
	Users userdomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	cases casesdomain.Repository
	users userdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("allocation.service"),
		cases: p.Cases,
		users: p.Users,
	}
}

func (s *Service) Allocate(ctx context.Context, assignment domain.Assignment) (int64, error) {
	empID := strings.TrimSpace(assignment.EmpID)
	if empID == "" {
		return 0, domain.ErrInvalidEmpID
	}

	executive, err := s.users.FindByID(ctx, s.db, assignment.ExecutiveID)
	if err != nil {
		if errors.Is(err, userdomain.ErrNotFound) {
			return 0, domain.ErrExecutiveNotFound
		}
		return 0, err
	}
	if !executive.IsExecutive() {
		return 0, domain.ErrNotExecutive
	}

	allocated, err := s.cases.AllocateUnassigned(ctx, s.db, empID, executive.ID)
	if err != nil {
		return 0, err
	}

	metrics.CasesAllocated.WithLabelValues("manual").Add(float64(allocated))
	s.log.Info("cases allocated",
		zap.String("emp_id", empID),
		zap.String("executive_id", executive.ID.String()),
		zap.Int64("allocated", allocated),
	)
	return allocated, nil
}

func (s *Service) BulkAllocate(ctx context.Context, assignments []domain.Assignment) (domain.BulkResult, error) {
	var result domain.BulkResult
	for _, assignment := range assignments {
		allocated, err := s.Allocate(ctx, assignment)
		entry := domain.AssignmentResult{
			EmpID:       assignment.EmpID,
			ExecutiveID: assignment.ExecutiveID,
			Allocated:   allocated,
		}
		if err != nil {
			entry.Error = err.Error()
			result.Failed++
		} else {
			result.Succeeded++
			result.TotalAllocated += allocated
		}
		result.Results = append(result.Results, entry)
	}
	return result, nil
}

func (s *Service) AllocateByEmpID(ctx context.Context, empID string, executiveID snowflake.ID) (domain.ByEmpIDResult, error) {
	empID = strings.TrimSpace(empID)
	if empID == "" {
		return domain.ByEmpIDResult{}, domain.ErrInvalidEmpID
	}

	executive, err := s.users.FindByID(ctx, s.db, executiveID)
	if err != nil {
		if errors.Is(err, userdomain.ErrNotFound) {
			return domain.ByEmpIDResult{}, domain.ErrExecutiveNotFound
		}
		return domain.ByEmpIDResult{}, err
	}

	allocated, err := s.cases.AllocateUnassigned(ctx, s.db, empID, executive.ID)
	if err != nil {
		return domain.ByEmpIDResult{}, err
	}

	metrics.CasesAllocated.WithLabelValues("by_emp_id").Add(float64(allocated))
	s.log.Info("cases allocated by emp id",
		zap.String("emp_id", empID),
		zap.String("executive_id", executive.ID.String()),
		zap.Int64("allocated", allocated),
	)
	return domain.ByEmpIDResult{
		EmpID:         empID,
		ExecutiveID:   executive.ID,
		ExecutiveName: executive.FullName(),
		Allocated:     allocated,
	}, nil
}

func (s *Service) Status(ctx context.Context) (domain.StatusReport, error) {
	allocated, err := s.cases.CountAllocated(ctx, s.db)
	if err != nil {
		return domain.StatusReport{}, err
	}
	unallocated, err := s.cases.CountUnallocated(ctx, s.db)
	if err != nil {
		return domain.StatusReport{}, err
	}
	byEmpID, err := s.cases.GroupUnallocatedByEmpID(ctx, s.db)
	if err != nil {
		return domain.StatusReport{}, err
	}

	return domain.StatusReport{
		Total:       allocated + unallocated,
		Allocated:   allocated,
		Unallocated: unallocated,
		ByEmpID:     byEmpID,
	}, nil
}
