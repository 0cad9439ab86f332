package enum

// StockStatus classifies a part at or below its reorder threshold
type StockStatus string

const (
	StockStatusLow      StockStatus = "low"
	StockStatusCritical StockStatus = "critical"
)
