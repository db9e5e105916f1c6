package service

import (
	"context"
	"testing"
	"time"

	casesdomain "github.com/C-P-WAZARIYO/Field-Pro/internal/cases/domain"
	casesrepository "github.com/C-P-WAZARIYO/Field-Pro/internal/cases/repository"
	domain "github.com/C-P-WAZARIYO/Field-Pro/internal/leaderboard/domain"
	userdomain "github.com/C-P-WAZARIYO/Field-Pro/internal/user/domain"
	userrepository "github.com/C-P-WAZARIYO/Field-Pro/internal/user/repository"
	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newLeaderboardFixture(t *testing.T) (*Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&userdomain.User{}, &casesdomain.Case{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		Cases: casesrepository.Provide(),
		Users: userrepository.Provide(),
	}).(*Service)

	return svc, db, node
}

func boardUser(t *testing.T, db *gorm.DB, node *snowflake.Node, empID, email, role string) userdomain.User {
	t.Helper()
	now := time.Now().UTC()
	u := userdomain.User{
		ID:        node.Generate(),
		EmpID:     &empID,
		FirstName: empID,
		Email:     email,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func boardCase(t *testing.T, db *gorm.DB, node *snowflake.Node, executiveID snowflake.ID, month, year int, perf string, pos, collected float64) {
	t.Helper()
	now := time.Now().UTC()
	c := casesdomain.Case{
		ID:               node.Generate(),
		AccountID:        node.Generate().String(),
		ExecutiveID:      &executiveID,
		Performance:      &perf,
		POSAmount:        pos,
		CollectionAmount: collected,
		Month:            month,
		Year:             year,
		UploadMode:       casesdomain.UploadModeOriginal,
		Status:           casesdomain.StatusOpen,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	require.NoError(t, db.Create(&c).Error)
}

func TestLeaderboard_RanksByRecoveryPressure(t *testing.T) {
	svc, db, node := newLeaderboardFixture(t)

	weak := boardUser(t, db, node, "EMP001", "weak@fieldpro.local", userdomain.RoleExecutive)
	strong := boardUser(t, db, node, "EMP002", "strong@fieldpro.local", userdomain.RoleExecutive)
	supervisor := boardUser(t, db, node, "SUP01", "sup@fieldpro.local", "supervisor")

	// weak: 1000 POS all FLOW, nothing at risk
	boardCase(t, db, node, weak.ID, 3, 2026, "FLOW", 1000, 100)
	// strong: 500 of 1500 POS outside FLOW
	boardCase(t, db, node, strong.ID, 3, 2026, "FLOW", 1000, 0)
	boardCase(t, db, node, strong.ID, 3, 2026, "RB", 500, 50)
	// supervisors never appear on the board
	boardCase(t, db, node, supervisor.ID, 3, 2026, "RB", 9000, 0)
	// other periods are excluded
	boardCase(t, db, node, strong.ID, 4, 2026, "RB", 9000, 0)

	rows, err := svc.Leaderboard(context.Background(), 3, 2026)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, strong.ID, rows[0].ID)
	assert.Equal(t, 1, rows[0].Rank)
	assert.Equal(t, 2, rows[0].TotalCases)
	assert.InDelta(t, 1500, rows[0].TotalPOS, 1e-9)
	assert.Equal(t, 1, rows[0].CountNotFlow)
	assert.InDelta(t, 500, rows[0].PosNotFlow, 1e-9)
	assert.InDelta(t, 500.0/1500.0*100, rows[0].PosNotFlowRate, 1e-9)
	assert.Equal(t, 1, rows[0].RBCount)
	assert.InDelta(t, 50, rows[0].RecoveredAmount, 1e-9)
	assert.InDelta(t, 50, rows[0].PaidRecovered, 1e-9)

	assert.Equal(t, weak.ID, rows[1].ID)
	assert.Equal(t, 2, rows[1].Rank)
	assert.Zero(t, rows[1].PosNotFlowRate)
	assert.InDelta(t, 100, rows[1].RecoveredAmount, 1e-9)
	assert.Zero(t, rows[1].PaidRecovered)
}

func TestLeaderboard_EmptyPeriod(t *testing.T) {
	svc, _, _ := newLeaderboardFixture(t)

	rows, err := svc.Leaderboard(context.Background(), 1, 2020)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestLess(t *testing.T) {
	tests := []struct {
		name string
		a, b domain.Row
		want bool
	}{
		{
			name: "higher posNotFlowRate wins",
			a:    domain.Row{PosNotFlowRate: 60},
			b:    domain.Row{PosNotFlowRate: 40, PosRBRate: 90},
			want: true,
		},
		{
			name: "rb+norm rate breaks the tie",
			a:    domain.Row{PosNotFlowRate: 50, PosRBRate: 20, PosNormRate: 20},
			b:    domain.Row{PosNotFlowRate: 50, PosRBRate: 30},
			want: true,
		},
		{
			name: "totalPOS breaks the last tie",
			a:    domain.Row{PosNotFlowRate: 50, PosRBRate: 30, TotalPOS: 2000},
			b:    domain.Row{PosNotFlowRate: 50, PosRBRate: 30, TotalPOS: 1000},
			want: true,
		},
		{
			name: "fully equal rows keep input order",
			a:    domain.Row{PosNotFlowRate: 50},
			b:    domain.Row{PosNotFlowRate: 50},
			want: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Less(tc.a, tc.b))
			if tc.want {
				assert.False(t, Less(tc.b, tc.a))
			}
		})
	}
}
