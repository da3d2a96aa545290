package query

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sd-store/catalog-service/internal/catalog/domain"
	"github.com/sd-store/catalog-service/pkg/logger"
)

// Health verdicts, in decreasing severity.
const (
	HealthDown     = "DOWN"
	HealthDegraded = "DEGRADED"
	HealthUp       = "UP"
)

// HealthThresholds configure the health verdict. LowStock feeds the
// low-stock count query; Degraded and Down gate the verdict. They are
// independent knobs.
type HealthThresholds struct {
	LowStock int
	Degraded int
	Down     int
}

// DefaultHealthThresholds mirror the service defaults.
func DefaultHealthThresholds() HealthThresholds {
	return HealthThresholds{LowStock: 5, Degraded: 10, Down: 5}
}

// HealthReport is the point-in-time operational verdict over the catalog.
// It carries every input of the verdict so any reading can be reproduced.
type HealthReport struct {
	Timestamp             time.Time `json:"timestamp"`
	Status                string    `json:"status"`
	Message               string    `json:"message"`
	TotalProducts         int64     `json:"total_products"`
	InStockProducts       int64     `json:"in_stock_products"`
	LowStockProducts      int64     `json:"low_stock_products"`
	OutOfStockProducts    int64     `json:"out_of_stock_products"`
	StockAvailabilityRate float64   `json:"stock_availability_rate"`
	LowStockThreshold     int       `json:"low_stock_threshold"`

	// ReadFailed distinguishes a DOWN verdict computed from the counts
	// from one caused by failing to read them.
	ReadFailed bool `json:"-"`
}

// GetHealthHandler computes the catalog health verdict
type GetHealthHandler struct {
	repo       domain.ProductRepository
	thresholds HealthThresholds
}

// NewGetHealthHandler creates a new health handler with explicit thresholds
func NewGetHealthHandler(repo domain.ProductRepository, thresholds HealthThresholds) *GetHealthHandler {
	return &GetHealthHandler{repo: repo, thresholds: thresholds}
}

// Handle evaluates the verdict. It never returns an error: a failure reading
// the aggregate counts is reported as a DOWN verdict, because this endpoint
// is itself part of the observability surface.
func (h *GetHealthHandler) Handle(ctx context.Context) *HealthReport {
	report := &HealthReport{
		Timestamp:         time.Now(),
		LowStockThreshold: h.thresholds.LowStock,
	}

	total, err := h.repo.Count()
	if err != nil {
		return h.down(ctx, report, err)
	}
	lowStock, err := h.repo.CountByQuantityLessThan(h.thresholds.LowStock)
	if err != nil {
		return h.down(ctx, report, err)
	}
	outOfStock, err := h.repo.CountOutOfStock()
	if err != nil {
		return h.down(ctx, report, err)
	}

	inStock := total - outOfStock

	report.TotalProducts = total
	report.InStockProducts = inStock
	report.LowStockProducts = lowStock
	report.OutOfStockProducts = outOfStock
	report.StockAvailabilityRate = availabilityRate(inStock, total)

	switch {
	case outOfStock > int64(h.thresholds.Down):
		report.Status = HealthDown
		report.Message = fmt.Sprintf("Too many products out of stock: %d", outOfStock)
	case lowStock > int64(h.thresholds.Degraded):
		report.Status = HealthDegraded
		report.Message = fmt.Sprintf("Too many products with low stock: %d", lowStock)
	default:
		report.Status = HealthUp
		report.Message = "All systems operational"
	}

	logger.Info(ctx).
		Str("status", report.Status).
		Int64("total", total).
		Int64("low_stock", lowStock).
		Int64("out_of_stock", outOfStock).
		Float64("availability_rate", report.StockAvailabilityRate).
		Msg("Catalog health evaluated")

	return report
}

func (h *GetHealthHandler) down(ctx context.Context, report *HealthReport, err error) *HealthReport {
	logger.Error(ctx).Err(err).Msg("Failed to read catalog health counts")
	report.Status = HealthDown
	report.Message = fmt.Sprintf("Error retrieving metrics: %v", err)
	report.ReadFailed = true
	return report
}

// availabilityRate returns inStock/total as a percentage, rounded half-up to
// two decimal places. Zero when the catalog is empty.
func availabilityRate(inStock, total int64) float64 {
	if total == 0 {
		return 0
	}
	rate := decimal.NewFromInt(inStock * 100).
		Div(decimal.NewFromInt(total)).
		Round(2)
	return rate.InexactFloat64()
}
