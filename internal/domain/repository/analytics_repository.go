package repository

import (
	"context"
)

// AnalyticsRepository defines aggregate queries that would be wasteful to
// answer by hydrating full records
type AnalyticsRepository interface {
	// PartsSold returns the quantity of parts moved through sale items and
	// service parts whose parent record falls in the range
	PartsSold(ctx context.Context, window DateRange) (int, error)

	// LowStockCount returns how many parts are at or below their reorder threshold
	LowStockCount(ctx context.Context) (int, error)
}
