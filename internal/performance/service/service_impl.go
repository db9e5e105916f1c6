package service

import (
	"context"

	casesdomain "github.com/C-P-WAZARIYO/Field-Pro/internal/cases/domain"
	feedbackdomain "github.com/C-P-WAZARIYO/Field-Pro/internal/feedback/domain"
	domain "github.com/C-P-WAZARIYO/Field-Pro/internal/performance/domain"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	Cases     casesdomain.Repository
	Feedbacks feedbackdomain.Repository
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	cases     casesdomain.Repository
	feedbacks feedbackdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("performance.service"),
		cases:     p.Cases,
		feedbacks: p.Feedbacks,
	}
}

func (s *Service) ExecutivePerformance(ctx context.Context, query domain.Query) (domain.Summary, error) {
	filter := casesdomain.Filter{
		ExecutiveID: &query.ExecutiveID,
		Month:       query.Month,
		Year:        query.Year,
		BankName:    query.Bank,
		ProductType: query.Product,
		BKT:         query.BKT,
	}

	cases, err := s.cases.ListAll(ctx, s.db, filter)
	if err != nil {
		return domain.Summary{}, err
	}

	visits, err := s.visitCounts(ctx, cases)
	if err != nil {
		return domain.Summary{}, err
	}

	input := make([]domain.CaseWithVisits, 0, len(cases))
	for _, c := range cases {
		input = append(input, domain.CaseWithVisits{Case: c, Visits: visits[c.ID]})
	}
	return Aggregate(input), nil
}

func (s *Service) visitCounts(ctx context.Context, cases []*casesdomain.Case) (map[snowflake.ID]int, error) {
	if len(cases) == 0 {
		return nil, nil
	}

	ids := make([]snowflake.ID, 0, len(cases))
	for _, c := range cases {
		ids = append(ids, c.ID)
	}

	feedbacks, err := s.feedbacks.ListByCaseIDs(ctx, s.db, ids)
	if err != nil {
		return nil, err
	}

	counts := make(map[snowflake.ID]int, len(cases))
	for _, f := range feedbacks {
		counts[f.CaseID]++
	}
	return counts, nil
}
