package service

import (
	"testing"

	casesdomain "github.com/C-P-WAZARIYO/Field-Pro/internal/cases/domain"
	domain "github.com/C-P-WAZARIYO/Field-Pro/internal/performance/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func perfCase(bank, product, bkt, perf string, pos, collected float64, status string, visits int) domain.CaseWithVisits {
	c := &casesdomain.Case{
		BankName:         bank,
		ProductType:      product,
		POSAmount:        pos,
		CollectionAmount: collected,
		Status:           status,
	}
	if bkt != "" {
		c.BKT = &bkt
	}
	if perf != "" {
		c.Performance = &perf
	}
	return domain.CaseWithVisits{Case: c, Visits: visits}
}

func TestAggregate_Totals(t *testing.T) {
	cases := []domain.CaseWithVisits{
		perfCase("HDFC", "PL", "X1", "FLOW", 1000, 100, casesdomain.StatusOpen, 2),
		perfCase("HDFC", "PL", "X1", " rb ", 500, 50, casesdomain.StatusPaid, 1),
		perfCase("HDFC", "BL", "X2", "NORM", 300, 30, casesdomain.StatusOpen, 0),
		perfCase("ICICI", "PL", "X3", "STAB", 200, 20, casesdomain.StatusClosed, 0),
	}

	s := Aggregate(cases)

	assert.Equal(t, 4, s.TotalCases)
	assert.InDelta(t, 2000, s.TotalPOS, 1e-9)
	assert.Equal(t, 2, s.TotalBanks)
	assert.Equal(t, 2, s.TotalProducts)
	assert.Equal(t, 2, s.TotalVisitedCases)
	assert.Equal(t, 3, s.TotalVisits)

	assert.Equal(t, 1, s.FlowCount)
	assert.Equal(t, 1, s.RBCount)
	assert.Equal(t, 1, s.NormCount)
	assert.Equal(t, 1, s.StabCount)
	assert.Equal(t, 3, s.TotalPaidCases)
	assert.Equal(t, domain.PieCounts{Flow: 1, RB: 1, Norm: 1, Stab: 1}, s.Pie)

	// everything except FLOW counts toward not-flow positions
	assert.InDelta(t, 1000, s.PosNotFlow, 1e-9)
	assert.InDelta(t, 50, s.PosNotFlowRate, 1e-9)
	assert.InDelta(t, 500, s.PosRB, 1e-9)
	assert.InDelta(t, 25, s.PosRBRate, 1e-9)
	assert.InDelta(t, 300, s.PosNorm, 1e-9)
	assert.InDelta(t, 15, s.PosNormRate, 1e-9)

	assert.InDelta(t, 200, s.TotalRecoveredAmount, 1e-9)
	assert.InDelta(t, 100, s.PaidRecoveredAmount, 1e-9)

	// PAID and CLOSED positions count as recovered
	assert.InDelta(t, 700, s.RecoveredPOS, 1e-9)
	assert.InDelta(t, 35, s.RecoveryRate, 1e-9)
	assert.InDelta(t, 50, s.VisitRate, 1e-9)
}

func TestAggregate_LevelSumsMatchTotals(t *testing.T) {
	cases := []domain.CaseWithVisits{
		perfCase("HDFC", "PL", "X1", "FLOW", 1000, 10, casesdomain.StatusOpen, 1),
		perfCase("HDFC", "PL", "X2", "RB", 700, 70, casesdomain.StatusOpen, 0),
		perfCase("HDFC", "BL", "X1", "NORM", 400, 40, casesdomain.StatusPaid, 3),
		perfCase("ICICI", "PL", "X1", "STAB", 900, 90, casesdomain.StatusOpen, 0),
		perfCase("ICICI", "GL", "X4", "RB", 100, 5, casesdomain.StatusClosed, 2),
	}

	s := Aggregate(cases)
	require.Len(t, s.BankBreakdown, 2)

	var bankCases, productCases, bktCases int
	var bankPOS, productPOS, bktPOS float64
	for _, bank := range s.BankBreakdown {
		bankCases += bank.TotalCases
		bankPOS += bank.TotalPOS
		for _, product := range bank.Products {
			productCases += product.TotalCases
			productPOS += product.TotalPOS
			for _, bkt := range product.BKTs {
				bktCases += bkt.TotalCases
				bktPOS += bkt.TotalPOS
			}
		}
	}
	assert.Equal(t, s.TotalCases, bankCases)
	assert.Equal(t, s.TotalCases, productCases)
	assert.Equal(t, s.TotalCases, bktCases)
	assert.InDelta(t, s.TotalPOS, bankPOS, 1e-9)
	assert.InDelta(t, s.TotalPOS, productPOS, 1e-9)
	assert.InDelta(t, s.TotalPOS, bktPOS, 1e-9)

	// first-seen ordering per level
	assert.Equal(t, "HDFC", s.BankBreakdown[0].BankName)
	assert.Equal(t, "ICICI", s.BankBreakdown[1].BankName)
	require.Len(t, s.BankBreakdown[0].Products, 2)
	assert.Equal(t, "PL", s.BankBreakdown[0].Products[0].ProductName)
	assert.Equal(t, "BL", s.BankBreakdown[0].Products[1].ProductName)

	hdfc := s.BankBreakdown[0]
	assert.Equal(t, 3, hdfc.TotalCases)
	assert.Equal(t, 1, hdfc.ResolvedCount)
	assert.Equal(t, 2, hdfc.CountNotFlow)
	assert.InDelta(t, 1100, hdfc.PosNotFlow, 1e-9)
	assert.InDelta(t, 700, hdfc.PosRB, 1e-9)
	assert.InDelta(t, 400, hdfc.PosNorm, 1e-9)
	assert.InDelta(t, 110, hdfc.PaidRecovered, 1e-9)

	hdfcPL := hdfc.Products[0]
	assert.Equal(t, 2, hdfcPL.TotalCases)
	require.Len(t, hdfcPL.BKTs, 2)
	x2 := hdfcPL.BKTs[1]
	assert.Equal(t, "X2", x2.BKT)
	assert.Equal(t, 1, x2.RBCount)
	assert.InDelta(t, 100, x2.RBCountRate, 1e-9)
	assert.InDelta(t, 0, x2.NormCountRate, 1e-9)
	assert.InDelta(t, 700, x2.PosRB, 1e-9)
	assert.InDelta(t, 100, x2.PosRBRate, 1e-9)
}

func TestAggregate_PosNotFlowRate(t *testing.T) {
	cases := []domain.CaseWithVisits{
		perfCase("HDFC", "PL", "X1", "FLOW", 1000, 0, casesdomain.StatusOpen, 0),
		perfCase("HDFC", "PL", "X1", "RB", 500, 0, casesdomain.StatusOpen, 0),
	}

	s := Aggregate(cases)

	assert.InDelta(t, 500, s.PosNotFlow, 1e-9)
	assert.InDelta(t, 33.33, s.PosNotFlowRate, 0.01)
}

func TestAggregate_UnknownBuckets(t *testing.T) {
	cases := []domain.CaseWithVisits{
		perfCase("", "", "", "FLOW", 100, 0, casesdomain.StatusOpen, 0),
		perfCase("HDFC", "PL", "X1", "", 200, 0, casesdomain.StatusOpen, 1),
	}

	s := Aggregate(cases)

	// blanks bucket under UNKNOWN and count as a distinct bank/product
	assert.Equal(t, 2, s.TotalBanks)
	assert.Equal(t, 2, s.TotalProducts)
	require.Contains(t, s.ByBKT, "UNKNOWN")
	require.Contains(t, s.ByProduct, "UNKNOWN")
	assert.Equal(t, domain.GroupStat{Count: 1, POS: 100}, s.ByBKT["UNKNOWN"])
	assert.Equal(t, domain.GroupStat{Count: 1, POS: 200, Visited: 1}, s.ByBKT["X1"])
	assert.Equal(t, "UNKNOWN", s.BankBreakdown[0].BankName)

	// a missing performance label is not FLOW, so its position is at risk
	assert.InDelta(t, 200, s.PosNotFlow, 1e-9)
	assert.Equal(t, 0, s.RBCount)
}

func TestAggregate_Empty(t *testing.T) {
	s := Aggregate(nil)

	assert.Zero(t, s.TotalCases)
	assert.Zero(t, s.VisitRate)
	assert.Zero(t, s.RecoveryRate)
	assert.Zero(t, s.PosNotFlowRate)
	assert.Empty(t, s.BankBreakdown)
	assert.Empty(t, s.ByBKT)
	assert.Empty(t, s.ByProduct)
}
