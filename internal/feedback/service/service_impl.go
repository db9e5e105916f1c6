package service

import (
	"context"
	"strings"
	"time"

	casesdomain "github.com/C-P-WAZARIYO/Field-Pro/internal/cases/domain"
	"github.com/C-P-WAZARIYO/Field-Pro/internal/feedback/domain"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Repo     domain.Repository
	CaseRepo casesdomain.Repository
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	repo     domain.Repository
	caseRepo casesdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("feedback.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		caseRepo: p.CaseRepo,
	}
}

func (s *Service) Submit(ctx context.Context, req domain.SubmitFeedbackRequest) (domain.Feedback, error) {
	caseID, err := snowflake.ParseString(strings.TrimSpace(req.CaseID))
	if err != nil || caseID == 0 {
		return domain.Feedback{}, domain.ErrInvalidCase
	}
	executiveID, err := snowflake.ParseString(strings.TrimSpace(req.ExecutiveID))
	if err != nil || executiveID == 0 {
		return domain.Feedback{}, domain.ErrInvalidExecutive
	}
	visitCode := strings.TrimSpace(req.VisitCode)
	if visitCode == "" {
		return domain.Feedback{}, domain.ErrInvalidVisitCode
	}

	parent, err := s.caseRepo.FindByID(ctx, s.db, caseID)
	if err != nil {
		return domain.Feedback{}, err
	}
	if parent == nil {
		return domain.Feedback{}, domain.ErrInvalidCase
	}

	now := time.Now().UTC()
	fb := domain.Feedback{
		ID:                  s.genID.Generate(),
		CaseID:              caseID,
		ExecutiveID:         executiveID,
		VisitCode:           visitCode,
		WhoMet:              strings.TrimSpace(req.WhoMet),
		Relation:            optional(req.Relation),
		MetName:             optional(req.MetName),
		MeetingPlace:        optional(req.MeetingPlace),
		Remarks:             optional(req.Remarks),
		AssetStatus:         optional(req.AssetStatus),
		PhotoURL:            optional(req.PhotoURL),
		Lat:                 req.Lat,
		Lng:                 req.Lng,
		DeviceInfo:          optional(req.DeviceInfo),
		DistanceFromAddress: req.DistanceFromAddress,
		PTPDate:             req.PTPDate,
		Status:              domain.StatusVisited,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := s.repo.Insert(ctx, s.db, &fb); err != nil {
		return domain.Feedback{}, err
	}

	s.log.Info("feedback submitted",
		zap.String("case_id", caseID.String()),
		zap.String("executive_id", executiveID.String()),
		zap.String("visit_code", visitCode),
	)

	return fb, nil
}

func (s *Service) MarkFake(ctx context.Context, req domain.MarkFakeRequest) (domain.Feedback, error) {
	fb, err := s.find(ctx, req.ID)
	if err != nil {
		return domain.Feedback{}, err
	}

	reason := strings.TrimSpace(req.Reason)
	fb.Status = domain.StatusFake
	fb.IsFakeVisit = true
	if reason != "" {
		fb.FakeVisitReason = &reason
	}
	fb.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateStatus(ctx, s.db, fb); err != nil {
		return domain.Feedback{}, err
	}
	return *fb, nil
}

func (s *Service) Reject(ctx context.Context, id string) (domain.Feedback, error) {
	fb, err := s.find(ctx, id)
	if err != nil {
		return domain.Feedback{}, err
	}

	fb.Status = domain.StatusRejected
	fb.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateStatus(ctx, s.db, fb); err != nil {
		return domain.Feedback{}, err
	}
	return *fb, nil
}

const defaultPTPAlertWindow = 72 * time.Hour

func (s *Service) CheckBrokenPTP(ctx context.Context) (int64, error) {
	flagged, err := s.repo.MarkBrokenPTP(ctx, s.db, time.Now().UTC())
	if err != nil {
		return 0, err
	}
	if flagged > 0 {
		s.log.Info("broken promises flagged", zap.Int64("flagged", flagged))
	}
	return flagged, nil
}

func (s *Service) PTPAlerts(ctx context.Context, within time.Duration) ([]domain.PTPAlert, error) {
	if within <= 0 {
		within = defaultPTPAlertWindow
	}
	return s.repo.ListPTPAlerts(ctx, s.db, time.Now().UTC().Add(within))
}

func (s *Service) FakeVisitSummary(ctx context.Context) (domain.FakeVisitSummary, error) {
	rows, err := s.repo.CountFakeByExecutive(ctx, s.db)
	if err != nil {
		return domain.FakeVisitSummary{}, err
	}
	summary := domain.FakeVisitSummary{ByExecutive: rows}
	for _, row := range rows {
		summary.Total += row.Count
	}
	return summary, nil
}

func (s *Service) find(ctx context.Context, raw string) (*domain.Feedback, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil || id == 0 {
		return nil, domain.ErrInvalidID
	}
	fb, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if fb == nil {
		return nil, domain.ErrNotFound
	}
	return fb, nil
}

func optional(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
