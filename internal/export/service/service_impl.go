package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	casesdomain "github.com/C-P-WAZARIYO/Field-Pro/internal/cases/domain"
	domain "github.com/C-P-WAZARIYO/Field-Pro/internal/export/domain"
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
	Cases casesdomain.Service
	Users userdomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	cases casesdomain.Service
	users userdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("export.service"),
		cases: p.Cases,
		users: p.Users,
	}
}

func (s *Service) VisitedCases(ctx context.Context, req domain.Request) (domain.File, error) {
	visited, err := s.cases.VisitedCases(ctx, casesdomain.ListCasesRequest{
		Filter: req.Filter,
		Page:   req.Page,
	})
	if err != nil {
		return domain.File{}, err
	}

	executives, err := s.visitExecutives(ctx, visited.Cases)
	if err != nil {
		return domain.File{}, err
	}

	rows := BuildVisitedRows(visited.Cases, executives)

	stamp := time.Now().UnixMilli()
	if strings.EqualFold(strings.TrimSpace(req.Format), domain.FormatExcel) {
		content, err := WriteXLSX(rows)
		if err != nil {
			return domain.File{}, err
		}
		return domain.File{
			Name:        fmt.Sprintf("visited_cases_%d.xlsx", stamp),
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Content:     content,
		}, nil
	}

	content, err := WriteCSV(rows)
	if err != nil {
		return domain.File{}, err
	}
	return domain.File{
		Name:        fmt.Sprintf("visited_cases_%d.csv", stamp),
		ContentType: "text/csv",
		Content:     content,
	}, nil
}

// visitExecutives resolves the distinct executives appearing on any feedback
// in the export in one query.
func (s *Service) visitExecutives(ctx context.Context, cases []casesdomain.VisitedCase) (map[snowflake.ID]*userdomain.User, error) {
	seen := map[snowflake.ID]bool{}
	var ids []snowflake.ID
	for _, vc := range cases {
		for _, fb := range vc.Feedbacks {
			if !seen[fb.ExecutiveID] {
				seen[fb.ExecutiveID] = true
				ids = append(ids, fb.ExecutiveID)
			}
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}

	users, err := s.users.FindByIDs(ctx, s.db, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[snowflake.ID]*userdomain.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	return byID, nil
}
