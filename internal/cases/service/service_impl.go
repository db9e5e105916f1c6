package service

import (
	"context"
	"strings"
	"time"

	"github.com/C-P-WAZARIYO/Field-Pro/internal/cases/domain"
	feedbackdomain "github.com/C-P-WAZARIYO/Field-Pro/internal/feedback/domain"
	userdomain "github.com/C-P-WAZARIYO/Field-Pro/internal/user/domain"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB           *gorm.DB
	Log          *zap.Logger
	GenID        *snowflake.Node
	Repo         domain.Repository
	FeedbackRepo feedbackdomain.Repository
	UserRepo     userdomain.Repository
}

type Service struct {
	db           *gorm.DB
	log          *zap.Logger
	genID        *snowflake.Node
	repo         domain.Repository
	feedbackRepo feedbackdomain.Repository
	userRepo     userdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:           p.DB,
		log:          p.Log.Named("cases.service"),
		genID:        p.GenID,
		repo:         p.Repo,
		feedbackRepo: p.FeedbackRepo,
		userRepo:     p.UserRepo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateCaseRequest) (domain.Case, error) {
	accountID := strings.TrimSpace(req.AccountID)
	if accountID == "" {
		return domain.Case{}, domain.ErrInvalidAccountID
	}

	now := time.Now().UTC()
	month, year := req.Month, req.Year
	if month < 1 || month > 12 {
		month = int(now.Month())
	}
	if year == 0 {
		year = now.Year()
	}

	c := domain.Case{
		ID:           s.genID.Generate(),
		AccountID:    accountID,
		CustomerName: strings.TrimSpace(req.CustomerName),
		POSAmount:    req.POSAmount,
		ProductType:  strings.TrimSpace(req.ProductType),
		BankName:     strings.TrimSpace(req.BankName),
		Month:        month,
		Year:         year,
		UploadMode:   domain.UploadModeOriginal,
		Status:       domain.StatusOpen,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if bkt := strings.TrimSpace(req.BKT); bkt != "" {
		c.BKT = &bkt
	}
	if empID := strings.TrimSpace(req.EmpID); empID != "" {
		c.EmpID = &empID
	}

	if err := s.repo.Insert(ctx, s.db, &c); err != nil {
		return domain.Case{}, err
	}
	return c, nil
}

func (s *Service) GetByID(ctx context.Context, raw string) (domain.CaseView, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil || id == 0 {
		return domain.CaseView{}, domain.ErrInvalidID
	}

	c, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.CaseView{}, err
	}
	if c == nil {
		return domain.CaseView{}, domain.ErrNotFound
	}

	views, err := s.hydrate(ctx, []*domain.Case{c})
	if err != nil {
		return domain.CaseView{}, err
	}
	return views[0], nil
}

func (s *Service) GetByAccountID(ctx context.Context, accountID string) (domain.CaseView, error) {
	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		return domain.CaseView{}, domain.ErrInvalidAccountID
	}

	c, err := s.repo.FindByAccountID(ctx, s.db, accountID)
	if err != nil {
		return domain.CaseView{}, err
	}
	if c == nil {
		return domain.CaseView{}, domain.ErrNotFound
	}

	views, err := s.hydrate(ctx, []*domain.Case{c})
	if err != nil {
		return domain.CaseView{}, err
	}
	return views[0], nil
}

func (s *Service) List(ctx context.Context, req domain.ListCasesRequest) (domain.ListCasesResponse, error) {
	page := req.Page.Normalize()

	items, err := s.repo.List(ctx, s.db, req.Filter, page)
	if err != nil {
		return domain.ListCasesResponse{}, err
	}
	total, err := s.repo.Count(ctx, s.db, req.Filter)
	if err != nil {
		return domain.ListCasesResponse{}, err
	}

	views, err := s.hydrate(ctx, items)
	if err != nil {
		return domain.ListCasesResponse{}, err
	}

	resp := domain.ListCasesResponse{Cases: views}
	resp.Total = total
	resp.Limit = page.Limit
	resp.Offset = page.Offset
	return resp, nil
}

func (s *Service) UpdateStatus(ctx context.Context, req domain.UpdateStatusRequest) (domain.Case, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil || id == 0 {
		return domain.Case{}, domain.ErrInvalidID
	}

	status := strings.ToUpper(strings.TrimSpace(req.Status))
	switch status {
	case domain.StatusOpen, domain.StatusPaid, domain.StatusClosed:
	default:
		return domain.Case{}, domain.ErrInvalidStatus
	}

	affected, err := s.repo.UpdateStatus(ctx, s.db, id, status)
	if err != nil {
		return domain.Case{}, err
	}
	if affected == 0 {
		return domain.Case{}, domain.ErrNotFound
	}

	updated, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Case{}, err
	}
	if updated == nil {
		return domain.Case{}, domain.ErrNotFound
	}
	return *updated, nil
}

func (s *Service) VisitedCases(ctx context.Context, req domain.ListCasesRequest) (domain.VisitedCasesResponse, error) {
	page := req.Page.Normalize()

	items, err := s.repo.ListVisited(ctx, s.db, req.Filter, page)
	if err != nil {
		return domain.VisitedCasesResponse{}, err
	}
	total, err := s.repo.CountVisited(ctx, s.db, req.Filter)
	if err != nil {
		return domain.VisitedCasesResponse{}, err
	}

	views, err := s.hydrate(ctx, items)
	if err != nil {
		return domain.VisitedCasesResponse{}, err
	}

	visited := make([]domain.VisitedCase, 0, len(views))
	for _, view := range views {
		vc := domain.VisitedCase{CaseView: view, Visits: len(view.Feedbacks)}
		if len(view.Feedbacks) > 0 {
			// feedbacks are ordered newest first
			last := view.Feedbacks[0].CreatedAt
			vc.LastVisitAt = &last
		}
		visited = append(visited, vc)
	}

	resp := domain.VisitedCasesResponse{Cases: visited}
	resp.Total = total
	resp.Limit = page.Limit
	resp.Offset = page.Offset
	return resp, nil
}

// hydrate attaches feedback history and the owning executive to each case.
func (s *Service) hydrate(ctx context.Context, items []*domain.Case) ([]domain.CaseView, error) {
	caseIDs := make([]snowflake.ID, 0, len(items))
	executiveIDs := make([]snowflake.ID, 0, len(items))
	seenExec := map[snowflake.ID]bool{}
	for _, c := range items {
		caseIDs = append(caseIDs, c.ID)
		if c.ExecutiveID != nil && !seenExec[*c.ExecutiveID] {
			seenExec[*c.ExecutiveID] = true
			executiveIDs = append(executiveIDs, *c.ExecutiveID)
		}
	}

	feedbacks, err := s.feedbackRepo.ListByCaseIDs(ctx, s.db, caseIDs)
	if err != nil {
		return nil, err
	}
	byCase := map[snowflake.ID][]feedbackdomain.Feedback{}
	for _, fb := range feedbacks {
		byCase[fb.CaseID] = append(byCase[fb.CaseID], *fb)
	}

	executives, err := s.userRepo.FindByIDs(ctx, s.db, executiveIDs)
	if err != nil {
		return nil, err
	}
	byExec := map[snowflake.ID]*userdomain.User{}
	for _, u := range executives {
		byExec[u.ID] = u
	}

	views := make([]domain.CaseView, 0, len(items))
	for _, c := range items {
		view := domain.CaseView{Case: *c, Feedbacks: byCase[c.ID]}
		if c.ExecutiveID != nil {
			if u, ok := byExec[*c.ExecutiveID]; ok {
				view.Executive = &domain.ExecutiveRef{
					ID:        u.ID.String(),
					FirstName: u.FirstName,
					LastName:  u.LastName,
					Email:     u.Email,
					EmpID:     u.EmpID,
				}
			}
		}
		views = append(views, view)
	}
	return views, nil
}
