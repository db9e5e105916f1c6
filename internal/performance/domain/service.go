package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

// Query scopes a performance report to one executive's case set, optionally
// narrowed by period and portfolio dimensions.
type Query struct {
	ExecutiveID snowflake.ID
	Month       int
	Year        int
	Bank        string
	Product     string
	BKT         string
}

type Service interface {
	ExecutivePerformance(ctx context.Context, query Query) (Summary, error)
}
