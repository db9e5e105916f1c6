package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

// Row is one executive's leaderboard entry for a period.
type Row struct {
	ID    snowflake.ID `json:"id"`
	Name  string       `json:"name"`
	EmpID *string      `json:"emp_id"`

	TotalCases       int     `json:"totalCases"`
	TotalPOS         float64 `json:"totalPOS"`
	CountNotFlow     int     `json:"countNotFlow"`
	CountNotFlowRate float64 `json:"countNotFlowRate"`
	PosNotFlow       float64 `json:"posNotFlow"`
	PosNotFlowRate   float64 `json:"posNotFlowRate"`
	RBCount          int     `json:"rbCount"`
	NormCount        int     `json:"normCount"`
	PosRB            float64 `json:"posRB"`
	PosRBRate        float64 `json:"posRBRate"`
	PosNorm          float64 `json:"posNorm"`
	PosNormRate      float64 `json:"posNormRate"`
	RecoveredAmount  float64 `json:"recoveredAmount"`
	PaidRecovered    float64 `json:"paidRecoveredAmount"`

	Rank int `json:"rank"`
}

type Service interface {
	// Leaderboard ranks executives for a period: posNotFlowRate first, then
	// posRBRate+posNormRate, then totalPOS, all descending. Ranks are 1..N
	// with no gaps. Only users holding the executive role appear.
	Leaderboard(ctx context.Context, month, year int) ([]Row, error)
}
