package domain

// StockStatus is the label derived from a product quantity.
type StockStatus string

const (
	StockOut         StockStatus = "OUT_OF_STOCK"
	StockCritical    StockStatus = "CRITICAL_STOCK"
	StockLow         StockStatus = "LOW_STOCK"
	StockIn          StockStatus = "IN_STOCK"
	StockOverstocked StockStatus = "OVERSTOCKED"
)

// ClassifyStock maps a quantity to its stock status. Boundaries are at
// 0, 5, 10 and 51.
func ClassifyStock(quantity int) StockStatus {
	switch {
	case quantity == 0:
		return StockOut
	case quantity < 5:
		return StockCritical
	case quantity < 10:
		return StockLow
	case quantity <= 50:
		return StockIn
	default:
		return StockOverstocked
	}
}
