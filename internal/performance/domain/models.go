package domain

import (
	casesdomain "github.com/C-P-WAZARIYO/Field-Pro/internal/cases/domain"
)

// CaseWithVisits is one case annotated with its visit count, the input unit
// of the aggregation fold.
type CaseWithVisits struct {
	Case   *casesdomain.Case
	Visits int
}

// GroupStat is a flat count/POS/visited triple keyed by one dimension.
type GroupStat struct {
	Count   int     `json:"count"`
	POS     float64 `json:"pos"`
	Visited int     `json:"visited"`
}

// PieCounts feeds the status distribution chart.
type PieCounts struct {
	Flow int `json:"flow"`
	RB   int `json:"rb"`
	Norm int `json:"norm"`
	Stab int `json:"stab"`
}

// BKTBreakdown is the leaf level of the bank → product → bkt tree.
type BKTBreakdown struct {
	BKT              string  `json:"bkt"`
	TotalCases       int     `json:"totalCases"`
	TotalPOS         float64 `json:"totalPOS"`
	FlowCount        int     `json:"flowCount"`
	RBCount          int     `json:"rbCount"`
	NormCount        int     `json:"normCount"`
	StabCount        int     `json:"stabCount"`
	CountNotFlow     int     `json:"countNotFlow"`
	CountNotFlowRate float64 `json:"countNotFlowRate"`
	PosNotFlow       float64 `json:"posNotFlow"`
	PosNotFlowRate   float64 `json:"posNotFlowRate"`
	RBCountRate      float64 `json:"rbCountRate"`
	NormCountRate    float64 `json:"normCountRate"`
	PosRB            float64 `json:"posRB"`
	PosRBRate        float64 `json:"posRBRate"`
	PosNorm          float64 `json:"posNorm"`
	PosNormRate      float64 `json:"posNormRate"`
	RecoveredAmount  float64 `json:"recoveredAmount"`
	PaidRecovered    float64 `json:"paidRecoveredAmount"`
}

// ProductBreakdown is the middle level of the breakdown tree.
type ProductBreakdown struct {
	ProductName      string         `json:"productName"`
	TotalCases       int            `json:"totalCases"`
	TotalPOS         float64        `json:"totalPOS"`
	ResolvedCount    int            `json:"resolvedCount"`
	FlowCount        int            `json:"flowCount"`
	RBCount          int            `json:"rbCount"`
	NormCount        int            `json:"normCount"`
	StabCount        int            `json:"stabCount"`
	CountNotFlow     int            `json:"countNotFlow"`
	CountNotFlowRate float64        `json:"countNotFlowRate"`
	PosNotFlow       float64        `json:"posNotFlow"`
	PosNotFlowRate   float64        `json:"posNotFlowRate"`
	RecoveredAmount  float64        `json:"recoveredAmount"`
	PaidRecovered    float64        `json:"paidRecoveredAmount"`
	BKTs             []BKTBreakdown `json:"bkts"`
}

// BankBreakdown is the top level of the breakdown tree.
type BankBreakdown struct {
	BankName         string             `json:"bankName"`
	TotalCases       int                `json:"totalCases"`
	TotalPOS         float64            `json:"totalPOS"`
	ResolvedCount    int                `json:"resolvedCount"`
	FlowCount        int                `json:"flowCount"`
	RBCount          int                `json:"rbCount"`
	NormCount        int                `json:"normCount"`
	StabCount        int                `json:"stabCount"`
	CountNotFlow     int                `json:"countNotFlow"`
	CountNotFlowRate float64            `json:"countNotFlowRate"`
	PosNotFlow       float64            `json:"posNotFlow"`
	PosNotFlowRate   float64            `json:"posNotFlowRate"`
	PosRB            float64            `json:"posRB"`
	PosRBRate        float64            `json:"posRBRate"`
	PosNorm          float64            `json:"posNorm"`
	PosNormRate      float64            `json:"posNormRate"`
	RecoveredAmount  float64            `json:"recoveredAmount"`
	PaidRecovered    float64            `json:"paidRecoveredAmount"`
	Products         []ProductBreakdown `json:"products"`
}

// Summary is the complete performance report for one case set. Every ratio
// reports 0 when its denominator is 0.
type Summary struct {
	TotalCases           int     `json:"totalCases"`
	TotalPOS             float64 `json:"totalPOS"`
	TotalBanks           int     `json:"totalBanks"`
	TotalProducts        int     `json:"totalProducts"`
	TotalVisitedCases    int     `json:"totalVisitedCases"`
	TotalVisits          int     `json:"totalVisits"`
	TotalRecoveredAmount float64 `json:"totalRecoveredAmount"`
	PaidRecoveredAmount  float64 `json:"paidRecoveredAmount"`

	FlowCount      int     `json:"flowCount"`
	RBCount        int     `json:"rbCount"`
	NormCount      int     `json:"normCount"`
	StabCount      int     `json:"stabCount"`
	TotalPaidCases int     `json:"totalPaidCases"`
	VisitRate      float64 `json:"visitRate"`
	RecoveredPOS   float64 `json:"recoveredPOS"`
	RecoveryRate   float64 `json:"recoveryRate"`

	PosNotFlow     float64 `json:"posNotFlow"`
	PosRB          float64 `json:"posRB"`
	PosNorm        float64 `json:"posNorm"`
	PosNotFlowRate float64 `json:"posNotFlowRate"`
	PosRBRate      float64 `json:"posRBRate"`
	PosNormRate    float64 `json:"posNormRate"`

	Pie           PieCounts            `json:"pie"`
	BankBreakdown []BankBreakdown      `json:"bankBreakdown"`
	ByBKT         map[string]GroupStat `json:"byBKT"`
	ByProduct     map[string]GroupStat `json:"byProduct"`
}
