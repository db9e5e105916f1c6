package service

import (
	casesdomain "github.com/C-P-WAZARIYO/Field-Pro/internal/cases/domain"
	domain "github.com/C-P-WAZARIYO/Field-Pro/internal/performance/domain"
)

const unknownLabel = "UNKNOWN"

// Aggregate folds a case set into the full performance summary. Pure: no
// queries, no writes, deterministic output order (first-seen per level).
func Aggregate(cases []domain.CaseWithVisits) domain.Summary {
	summary := domain.Summary{
		ByBKT:     map[string]domain.GroupStat{},
		ByProduct: map[string]domain.GroupStat{},
	}

	banks := map[string]*bankAcc{}
	var bankOrder []string
	bankSet := map[string]bool{}
	productSet := map[string]bool{}

	for _, cw := range cases {
		c := cw.Case
		perf := casesdomain.NormalizePerformance(c.Performance)
		pos := c.POSAmount
		collected := c.CollectionAmount
		resolved := c.IsResolved()

		bank := defaultLabel(c.BankName)
		product := defaultLabel(c.ProductType)
		bkt := defaultLabel(deref(c.BKT))

		summary.TotalCases++
		summary.TotalPOS += pos
		summary.TotalVisits += cw.Visits
		if cw.Visits > 0 {
			summary.TotalVisitedCases++
		}
		if resolved {
			summary.RecoveredPOS += pos
		}

		if perf != casesdomain.PerfFlow {
			summary.PosNotFlow += pos
		}
		switch perf {
		case casesdomain.PerfFlow:
			summary.FlowCount++
		case casesdomain.PerfRB:
			summary.RBCount++
			summary.PosRB += pos
		case casesdomain.PerfNorm:
			summary.NormCount++
			summary.PosNorm += pos
		case casesdomain.PerfStab:
			summary.StabCount++
		}

		summary.TotalRecoveredAmount += collected
		if perf != casesdomain.PerfFlow {
			summary.PaidRecoveredAmount += collected
		}

		bankSet[bank] = true
		productSet[product] = true

		bktStat := summary.ByBKT[bkt]
		bktStat.Count++
		bktStat.POS += pos
		if cw.Visits > 0 {
			bktStat.Visited++
		}
		summary.ByBKT[bkt] = bktStat

		prodStat := summary.ByProduct[product]
		prodStat.Count++
		prodStat.POS += pos
		if cw.Visits > 0 {
			prodStat.Visited++
		}
		summary.ByProduct[product] = prodStat

		b, ok := banks[bank]
		if !ok {
			b = newBankAcc()
			banks[bank] = b
			bankOrder = append(bankOrder, bank)
		}
		b.add(perf, pos, collected, resolved)

		p, ok := b.products[product]
		if !ok {
			p = newProductAcc()
			b.products[product] = p
			b.productOrder = append(b.productOrder, product)
		}
		p.add(perf, pos, collected, resolved)

		k, ok := p.bkts[bkt]
		if !ok {
			k = &levelAcc{}
			p.bkts[bkt] = k
			p.bktOrder = append(p.bktOrder, bkt)
		}
		k.add(perf, pos, collected, resolved)
	}

	summary.TotalBanks = len(bankSet)
	summary.TotalProducts = len(productSet)
	summary.TotalPaidCases = summary.FlowCount + summary.RBCount + summary.NormCount
	summary.VisitRate = ratio(float64(summary.TotalVisitedCases), float64(summary.TotalCases))
	summary.RecoveryRate = ratio(summary.RecoveredPOS, summary.TotalPOS)
	summary.PosNotFlowRate = ratio(summary.PosNotFlow, summary.TotalPOS)
	summary.PosRBRate = ratio(summary.PosRB, summary.TotalPOS)
	summary.PosNormRate = ratio(summary.PosNorm, summary.TotalPOS)
	summary.Pie = domain.PieCounts{
		Flow: summary.FlowCount,
		RB:   summary.RBCount,
		Norm: summary.NormCount,
		Stab: summary.StabCount,
	}

	for _, bank := range bankOrder {
		summary.BankBreakdown = append(summary.BankBreakdown, banks[bank].finalize(bank))
	}
	return summary
}

// levelAcc is the shared per-node accumulator for every tree level.
type levelAcc struct {
	totalCases    int
	totalPOS      float64
	posNotFlow    float64
	posRB         float64
	posNorm       float64
	flowCount     int
	rbCount       int
	normCount     int
	stabCount     int
	resolvedCount int
	recovered     float64
	paidRecovered float64
}

func (a *levelAcc) add(perf string, pos, collected float64, resolved bool) {
	a.totalCases++
	a.totalPOS += pos
	if perf != casesdomain.PerfFlow {
		a.posNotFlow += pos
		a.paidRecovered += collected
	}
	switch perf {
	case casesdomain.PerfFlow:
		a.flowCount++
	case casesdomain.PerfRB:
		a.rbCount++
		a.posRB += pos
	case casesdomain.PerfNorm:
		a.normCount++
		a.posNorm += pos
	case casesdomain.PerfStab:
		a.stabCount++
	}
	if resolved {
		a.resolvedCount++
	}
	a.recovered += collected
}

func (a *levelAcc) countNotFlow() int {
	return a.rbCount + a.normCount + a.stabCount
}

type bankAcc struct {
	levelAcc
	products     map[string]*productAcc
	productOrder []string
}

func newBankAcc() *bankAcc {
	return &bankAcc{products: map[string]*productAcc{}}
}

func (b *bankAcc) finalize(name string) domain.BankBreakdown {
	out := domain.BankBreakdown{
		BankName:         name,
		TotalCases:       b.totalCases,
		TotalPOS:         b.totalPOS,
		ResolvedCount:    b.resolvedCount,
		FlowCount:        b.flowCount,
		RBCount:          b.rbCount,
		NormCount:        b.normCount,
		StabCount:        b.stabCount,
		CountNotFlow:     b.countNotFlow(),
		CountNotFlowRate: ratio(float64(b.countNotFlow()), float64(b.totalCases)),
		PosNotFlow:       b.posNotFlow,
		PosNotFlowRate:   ratio(b.posNotFlow, b.totalPOS),
		PosRB:            b.posRB,
		PosRBRate:        ratio(b.posRB, b.totalPOS),
		PosNorm:          b.posNorm,
		PosNormRate:      ratio(b.posNorm, b.totalPOS),
		RecoveredAmount:  b.recovered,
		PaidRecovered:    b.paidRecovered,
	}
	for _, product := range b.productOrder {
		out.Products = append(out.Products, b.products[product].finalize(product))
	}
	return out
}

type productAcc struct {
	levelAcc
	bkts     map[string]*levelAcc
	bktOrder []string
}

func newProductAcc() *productAcc {
	return &productAcc{bkts: map[string]*levelAcc{}}
}

func (p *productAcc) finalize(name string) domain.ProductBreakdown {
	out := domain.ProductBreakdown{
		ProductName:      name,
		TotalCases:       p.totalCases,
		TotalPOS:         p.totalPOS,
		ResolvedCount:    p.resolvedCount,
		FlowCount:        p.flowCount,
		RBCount:          p.rbCount,
		NormCount:        p.normCount,
		StabCount:        p.stabCount,
		CountNotFlow:     p.countNotFlow(),
		CountNotFlowRate: ratio(float64(p.countNotFlow()), float64(p.totalCases)),
		PosNotFlow:       p.posNotFlow,
		PosNotFlowRate:   ratio(p.posNotFlow, p.totalPOS),
		RecoveredAmount:  p.recovered,
		PaidRecovered:    p.paidRecovered,
	}
	for _, bkt := range p.bktOrder {
		out.BKTs = append(out.BKTs, finalizeBKT(bkt, p.bkts[bkt]))
	}
	return out
}

func finalizeBKT(name string, a *levelAcc) domain.BKTBreakdown {
	return domain.BKTBreakdown{
		BKT:              name,
		TotalCases:       a.totalCases,
		TotalPOS:         a.totalPOS,
		FlowCount:        a.flowCount,
		RBCount:          a.rbCount,
		NormCount:        a.normCount,
		StabCount:        a.stabCount,
		CountNotFlow:     a.countNotFlow(),
		CountNotFlowRate: ratio(float64(a.countNotFlow()), float64(a.totalCases)),
		PosNotFlow:       a.posNotFlow,
		PosNotFlowRate:   ratio(a.posNotFlow, a.totalPOS),
		RBCountRate:      ratio(float64(a.rbCount), float64(a.totalCases)),
		NormCountRate:    ratio(float64(a.normCount), float64(a.totalCases)),
		PosRB:            a.posRB,
		PosRBRate:        ratio(a.posRB, a.totalPOS),
		PosNorm:          a.posNorm,
		PosNormRate:      ratio(a.posNorm, a.totalPOS),
		RecoveredAmount:  a.recovered,
		PaidRecovered:    a.paidRecovered,
	}
}

// ratio returns num/den as a percentage, 0 when the denominator is 0.
func ratio(num, den float64) float64 {
	if den <= 0 {
		return 0
	}
	return num / den * 100
}

func defaultLabel(s string) string {
	if s == "" {
		return unknownLabel
	}
	return s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
