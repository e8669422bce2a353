package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/ronesego-ui/captop/internal/domain"
	"github.com/ronesego-ui/captop/internal/usecase"
)

// MockGameRepository is an in-memory implementation of GameRepository.
// Set a Func field to override a single method.
type MockGameRepository struct {
	mu        sync.RWMutex
	companies map[string]*domain.Company
	ledgers   map[string]map[int]domain.CompanyLedger
	bundles   map[string]map[int]domain.StatementBundle

	CreateCompanyFunc   func(ctx context.Context, company *domain.Company, opening domain.CompanyLedger) error
	GetCompanyFunc      func(ctx context.Context, id string) (*domain.Company, error)
	ListCompaniesFunc   func(ctx context.Context, limit, offset int) ([]*domain.Company, error)
	SaveCloseFunc       func(ctx context.Context, companyID string, ledger domain.CompanyLedger, bundle domain.StatementBundle) error
	GetLedgerFunc       func(ctx context.Context, companyID string, period int) (domain.CompanyLedger, error)
	GetLatestLedgerFunc func(ctx context.Context, companyID string) (domain.CompanyLedger, error)
	GetBundleFunc       func(ctx context.Context, companyID string, period int) (domain.StatementBundle, error)
}

func NewMockGameRepository() *MockGameRepository {
	return &MockGameRepository{
		companies: make(map[string]*domain.Company),
		ledgers:   make(map[string]map[int]domain.CompanyLedger),
		bundles:   make(map[string]map[int]domain.StatementBundle),
	}
}

func (m *MockGameRepository) CreateCompany(ctx context.Context, company *domain.Company, opening domain.CompanyLedger) error {
	if m.CreateCompanyFunc != nil {
		return m.CreateCompanyFunc(ctx, company, opening)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.companies[company.ID] = company
	m.ledgers[company.ID] = map[int]domain.CompanyLedger{opening.Period: opening}
	m.bundles[company.ID] = make(map[int]domain.StatementBundle)
	return nil
}

func (m *MockGameRepository) GetCompany(ctx context.Context, id string) (*domain.Company, error) {
	if m.GetCompanyFunc != nil {
		return m.GetCompanyFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.companies[id]; ok {
		return c, nil
	}
	return nil, domain.ErrCompanyNotFound
}

func (m *MockGameRepository) ListCompanies(ctx context.Context, limit, offset int) ([]*domain.Company, error) {
	if m.ListCompaniesFunc != nil {
		return m.ListCompaniesFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Company
	for _, c := range m.companies {
		out = append(out, c)
	}
	return out, nil
}

func (m *MockGameRepository) SaveClose(ctx context.Context, companyID string, ledger domain.CompanyLedger, bundle domain.StatementBundle) error {
	if m.SaveCloseFunc != nil {
		return m.SaveCloseFunc(ctx, companyID, ledger, bundle)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.companies[companyID]; !ok {
		return domain.ErrCompanyNotFound
	}
	m.ledgers[companyID][ledger.Period] = ledger
	m.bundles[companyID][bundle.Period] = bundle
	return nil
}

func (m *MockGameRepository) GetLedger(ctx context.Context, companyID string, period int) (domain.CompanyLedger, error) {
	if m.GetLedgerFunc != nil {
		return m.GetLedgerFunc(ctx, companyID, period)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if l, ok := m.ledgers[companyID][period]; ok {
		return l, nil
	}
	return domain.CompanyLedger{}, domain.ErrPeriodNotFound
}

func (m *MockGameRepository) GetLatestLedger(ctx context.Context, companyID string) (domain.CompanyLedger, error) {
	if m.GetLatestLedgerFunc != nil {
		return m.GetLatestLedgerFunc(ctx, companyID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	periods, ok := m.ledgers[companyID]
	if !ok || len(periods) == 0 {
		return domain.CompanyLedger{}, domain.ErrPeriodNotFound
	}
	latest := -1
	for p := range periods {
		if p > latest {
			latest = p
		}
	}
	return periods[latest], nil
}

func (m *MockGameRepository) GetBundle(ctx context.Context, companyID string, period int) (domain.StatementBundle, error) {
	if m.GetBundleFunc != nil {
		return m.GetBundleFunc(ctx, companyID, period)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if b, ok := m.bundles[companyID][period]; ok {
		return b, nil
	}
	return domain.StatementBundle{}, domain.ErrPeriodNotFound
}

// MockMacroSource is a mock implementation of MacroSource.
type MockMacroSource struct {
	SnapshotFunc func(ctx context.Context, period int) (domain.MacroSnapshot, error)
}

func (m *MockMacroSource) Snapshot(ctx context.Context, period int) (domain.MacroSnapshot, error) {
	if m.SnapshotFunc != nil {
		return m.SnapshotFunc(ctx, period)
	}
	return domain.MacroSnapshot{}, domain.ErrMacroUnavailable
}

// MockIDGenerator returns sequential IDs.
type MockIDGenerator struct {
	mu      sync.Mutex
	counter int

	GenerateFunc func() string
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("id-%04d", m.counter)
}

var _ usecase.GameRepository = (*MockGameRepository)(nil)
var _ usecase.MacroSource = (*MockMacroSource)(nil)
var _ usecase.IDGenerator = (*MockIDGenerator)(nil)
