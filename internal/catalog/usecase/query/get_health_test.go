package query_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/sd-store/catalog-service/internal/catalog/domain"
	"github.com/sd-store/catalog-service/internal/catalog/usecase/query"
)

// MockProductRepository is a mock implementation of domain.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(p *domain.Product) error {
	args := m.Called(p)
	return args.Error(0)
}

func (m *MockProductRepository) Update(p *domain.Product) error {
	args := m.Called(p)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockProductRepository) FindByID(id uint) (*domain.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepository) FindByName(name string) (*domain.Product, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll() ([]domain.Product, error) {
	args := m.Called()
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductRepository) FindAllPaged(req domain.PageRequest) (*domain.ProductPage, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProductPage), args.Error(1)
}

func (m *MockProductRepository) SearchByName(name string) ([]domain.Product, error) {
	args := m.Called(name)
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductRepository) SearchByNamePaged(name string, req domain.PageRequest) (*domain.ProductPage, error) {
	args := m.Called(name, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProductPage), args.Error(1)
}

func (m *MockProductRepository) ExistsByID(id uint) (bool, error) {
	args := m.Called(id)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) Count() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) CountByQuantityLessThan(threshold int) (int64, error) {
	args := m.Called(threshold)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) CountOutOfStock() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func thresholds() query.HealthThresholds {
	return query.HealthThresholds{LowStock: 5, Degraded: 10, Down: 5}
}

func TestHealthUp(t *testing.T) {
	repo := new(MockProductRepository)
	repo.On("Count").Return(int64(20), nil)
	repo.On("CountByQuantityLessThan", 5).Return(int64(2), nil)
	repo.On("CountOutOfStock").Return(int64(1), nil)

	report := query.NewGetHealthHandler(repo, thresholds()).Handle(context.Background())

	assert.Equal(t, query.HealthUp, report.Status)
	assert.Equal(t, "All systems operational", report.Message)
	assert.Equal(t, int64(20), report.TotalProducts)
	assert.Equal(t, int64(19), report.InStockProducts)
	assert.Equal(t, int64(2), report.LowStockProducts)
	assert.Equal(t, int64(1), report.OutOfStockProducts)
	assert.Equal(t, 95.0, report.StockAvailabilityRate)
	assert.Equal(t, 5, report.LowStockThreshold)
	assert.False(t, report.Timestamp.IsZero())
}

// DOWN takes precedence over DEGRADED regardless of the low-stock count.
func TestHealthDownWinsOverDegraded(t *testing.T) {
	repo := new(MockProductRepository)
	repo.On("Count").Return(int64(20), nil)
	repo.On("CountByQuantityLessThan", 5).Return(int64(15), nil)
	repo.On("CountOutOfStock").Return(int64(6), nil)

	report := query.NewGetHealthHandler(repo, thresholds()).Handle(context.Background())

	assert.Equal(t, query.HealthDown, report.Status)
	assert.Contains(t, report.Message, "6")
	assert.False(t, report.ReadFailed)
}

func TestHealthDegraded(t *testing.T) {
	repo := new(MockProductRepository)
	repo.On("Count").Return(int64(30), nil)
	repo.On("CountByQuantityLessThan", 5).Return(int64(11), nil)
	repo.On("CountOutOfStock").Return(int64(2), nil)

	report := query.NewGetHealthHandler(repo, thresholds()).Handle(context.Background())

	assert.Equal(t, query.HealthDegraded, report.Status)
	assert.Contains(t, report.Message, "11")
}

// Threshold comparisons are strict: a count equal to the threshold does not
// trip the verdict.
func TestHealthThresholdBoundaries(t *testing.T) {
	repo := new(MockProductRepository)
	repo.On("Count").Return(int64(50), nil)
	repo.On("CountByQuantityLessThan", 5).Return(int64(10), nil)
	repo.On("CountOutOfStock").Return(int64(5), nil)

	report := query.NewGetHealthHandler(repo, thresholds()).Handle(context.Background())

	assert.Equal(t, query.HealthUp, report.Status)
}

func TestHealthEmptyCatalog(t *testing.T) {
	repo := new(MockProductRepository)
	repo.On("Count").Return(int64(0), nil)
	repo.On("CountByQuantityLessThan", 5).Return(int64(0), nil)
	repo.On("CountOutOfStock").Return(int64(0), nil)

	report := query.NewGetHealthHandler(repo, thresholds()).Handle(context.Background())

	assert.Equal(t, query.HealthUp, report.Status)
	assert.Equal(t, 0.0, report.StockAvailabilityRate)
}

func TestHealthRateRounding(t *testing.T) {
	repo := new(MockProductRepository)
	repo.On("Count").Return(int64(3), nil)
	repo.On("CountByQuantityLessThan", 5).Return(int64(0), nil)
	repo.On("CountOutOfStock").Return(int64(1), nil)

	report := query.NewGetHealthHandler(repo, thresholds()).Handle(context.Background())

	// 2/3 of the catalog in stock: 66.666... rounds half-up to 66.67.
	assert.Equal(t, 66.67, report.StockAvailabilityRate)
}

// A failure reading counts is reported as a DOWN verdict, never propagated.
func TestHealthStoreFailure(t *testing.T) {
	repo := new(MockProductRepository)
	repo.On("Count").Return(int64(0), errors.New("connection refused"))

	report := query.NewGetHealthHandler(repo, thresholds()).Handle(context.Background())

	assert.Equal(t, query.HealthDown, report.Status)
	assert.Contains(t, report.Message, "connection refused")
	assert.True(t, report.ReadFailed)
}

func TestGetStockStatus(t *testing.T) {
	repo := new(MockProductRepository)
	repo.On("FindByID", uint(1)).Return(&domain.Product{ID: 1, Quantity: 3}, nil).Once()

	status, err := query.NewGetStockStatusHandler(repo).Handle(query.GetStockStatusQuery{ID: 1})

	assert.NoError(t, err)
	assert.Equal(t, domain.StockCritical, status)
	repo.AssertExpectations(t)
}

func TestGetStockStatusNotFound(t *testing.T) {
	repo := new(MockProductRepository)
	repo.On("FindByID", uint(99)).Return(nil, domain.ErrNotFound).Once()

	_, err := query.NewGetStockStatusHandler(repo).Handle(query.GetStockStatusQuery{ID: 99})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
