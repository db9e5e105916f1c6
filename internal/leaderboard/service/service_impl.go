package service

import (
	"context"
	"sort"

	casesdomain "github.com/C-P-WAZARIYO/Field-Pro/internal/cases/domain"
	domain "github.com/C-P-WAZARIYO/Field-Pro/internal/leaderboard/domain"
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
		log:   p.Log.Named("leaderboard.service"),
		cases: p.Cases,
		users: p.Users,
	}
}

func (s *Service) Leaderboard(ctx context.Context, month, year int) ([]domain.Row, error) {
	cases, err := s.cases.ListAllocatedForPeriod(ctx, s.db, month, year)
	if err != nil {
		return nil, err
	}

	accs := map[snowflake.ID]*accumulator{}
	var order []snowflake.ID
	for _, c := range cases {
		if c.ExecutiveID == nil {
			continue
		}
		acc, ok := accs[*c.ExecutiveID]
		if !ok {
			acc = &accumulator{}
			accs[*c.ExecutiveID] = acc
			order = append(order, *c.ExecutiveID)
		}
		acc.add(c)
	}

	users, err := s.users.FindByIDs(ctx, s.db, order)
	if err != nil {
		return nil, err
	}
	usersByID := make(map[snowflake.ID]*userdomain.User, len(users))
	for _, u := range users {
		usersByID[u.ID] = u
	}

	rows := make([]domain.Row, 0, len(order))
	for _, id := range order {
		u, ok := usersByID[id]
		if !ok || !u.IsExecutive() {
			continue
		}
		rows = append(rows, accs[id].row(u))
	}

	sort.SliceStable(rows, func(i, j int) bool { return Less(rows[i], rows[j]) })
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows, nil
}

// Less orders leaderboard rows best-first: posNotFlowRate descending, then
// posRBRate+posNormRate descending, then totalPOS descending.
func Less(a, b domain.Row) bool {
	if a.PosNotFlowRate != b.PosNotFlowRate {
		return a.PosNotFlowRate > b.PosNotFlowRate
	}
	aTie := a.PosRBRate + a.PosNormRate
	bTie := b.PosRBRate + b.PosNormRate
	if aTie != bTie {
		return aTie > bTie
	}
	return a.TotalPOS > b.TotalPOS
}

type accumulator struct {
	totalCases    int
	totalPOS      float64
	countNotFlow  int
	posNotFlow    float64
	rbCount       int
	normCount     int
	posRB         float64
	posNorm       float64
	recovered     float64
	paidRecovered float64
}

func (a *accumulator) add(c *casesdomain.Case) {
	perf := casesdomain.NormalizePerformance(c.Performance)
	pos := c.POSAmount
	collected := c.CollectionAmount

	a.totalCases++
	a.totalPOS += pos
	if perf != casesdomain.PerfFlow {
		a.countNotFlow++
		a.posNotFlow += pos
		a.paidRecovered += collected
	}
	if perf == casesdomain.PerfRB {
		a.rbCount++
		a.posRB += pos
	}
	if perf == casesdomain.PerfNorm {
		a.normCount++
		a.posNorm += pos
	}
	a.recovered += collected
}

func (a *accumulator) row(u *userdomain.User) domain.Row {
	return domain.Row{
		ID:               u.ID,
		Name:             u.FullName(),
		EmpID:            u.EmpID,
		TotalCases:       a.totalCases,
		TotalPOS:         a.totalPOS,
		CountNotFlow:     a.countNotFlow,
		CountNotFlowRate: ratio(float64(a.countNotFlow), float64(a.totalCases)),
		PosNotFlow:       a.posNotFlow,
		PosNotFlowRate:   ratio(a.posNotFlow, a.totalPOS),
		RBCount:          a.rbCount,
		NormCount:        a.normCount,
		PosRB:            a.posRB,
		PosRBRate:        ratio(a.posRB, a.totalPOS),
		PosNorm:          a.posNorm,
		PosNormRate:      ratio(a.posNorm, a.totalPOS),
		RecoveredAmount:  a.recovered,
		PaidRecovered:    a.paidRecovered,
	}
}

func ratio(num, den float64) float64 {
	if den <= 0 {
		return 0
	}
	return num / den * 100
}
