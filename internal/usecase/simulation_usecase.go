package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/ronesego-ui/captop/internal/domain"
	"github.com/ronesego-ui/captop/internal/engine"
	"github.com/ronesego-ui/captop/internal/infrastructure/metrics"
)

// SimulationUseCase drives the load → simulate → persist cycle around the
// pure engine core.
type SimulationUseCase struct {
	repo     GameRepository
	macro    MacroSource
	composer *engine.Composer
	idGen    IDGenerator
	metrics  *metrics.Metrics
	logger   zerolog.Logger
}

// NewSimulationUseCase creates a new SimulationUseCase. metrics may be nil.
func NewSimulationUseCase(
	repo GameRepository,
	macro MacroSource,
	composer *engine.Composer,
	idGen IDGenerator,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *SimulationUseCase {
	return &SimulationUseCase{
		repo:     repo,
		macro:    macro,
		composer: composer,
		idGen:    idGen,
		metrics:  m,
		logger:   logger,
	}
}

// CreateCompanyInput seeds a new company at period 0.
type CreateCompanyInput struct {
	Name    string
	Opening domain.CompanyLedger
}

// CreateCompany registers a company and its seeded opening position. The
// seed must already satisfy the accounting identity; everything after it is
// engine output and stays balanced by construction.
func (uc *SimulationUseCase) CreateCompany(ctx context.Context, input CreateCompanyInput) (*domain.Company, error) {
	if !input.Opening.Balanced(decimal.NewFromInt(1)) {
		return nil, &domain.LedgerImbalanceError{
			Assets:      input.Opening.TotalAssets(),
			Liabilities: input.Opening.TotalLiabilities(),
			Equity:      input.Opening.TotalEquity(),
			Gap:         input.Opening.ImbalanceGap(),
		}
	}

	company := &domain.Company{
		ID:        uc.idGen.Generate(),
		Name:      input.Name,
		CreatedAt: time.Now().UTC(),
	}
	if err := company.Validate(); err != nil {
		return nil, err
	}

	opening := input.Opening
	opening.Period = 0

	if err := uc.repo.CreateCompany(ctx, company, opening); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.CompaniesCreated.Inc()
	}

	uc.logger.Info().
		Str("company_id", company.ID).
		Str("name", company.Name).
		Msg("company seeded")

	return company, nil
}

// AdvancePeriod closes the next period for a company: loads the latest
// ledger, builds the macro snapshot, runs the engine and persists the
// result. On any error nothing is persisted and the prior close stays
// authoritative.
func (uc *SimulationUseCase) AdvancePeriod(ctx context.Context, companyID string, dec domain.DecisionSet) (domain.StatementBundle, error) {
	start := time.Now()

	if _, err := uc.repo.GetCompany(ctx, companyID); err != nil {
		return domain.StatementBundle{}, uc.countError(err)
	}

	opening, err := uc.repo.GetLatestLedger(ctx, companyID)
	if err != nil {
		return domain.StatementBundle{}, uc.countError(err)
	}

	snapshot, err := uc.macro.Snapshot(ctx, opening.Period+1)
	if err != nil {
		return domain.StatementBundle{}, uc.countError(err)
	}

	bundle, closing, err := uc.composer.AdvancePeriod(opening, dec, snapshot)
	if err != nil {
		return domain.StatementBundle{}, uc.countError(err)
	}

	bundle.RunID = uc.idGen.Generate()

	if err := uc.repo.SaveClose(ctx, companyID, closing, bundle); err != nil {
		return domain.StatementBundle{}, uc.countError(err)
	}

	if uc.metrics != nil {
		uc.metrics.PeriodsSimulated.Inc()
		uc.metrics.SimulationDuration.Observe(time.Since(start).Seconds())
		for _, d := range bundle.Diagnostics {
			uc.metrics.DiagnosticsRaised.WithLabelValues(d.Code).Inc()
		}
		if snapshot.Stale {
			uc.metrics.StaleMacroPeriods.Inc()
		}
	}

	uc.logger.Info().
		Str("company_id", companyID).
		Str("run_id", bundle.RunID).
		Int("period", closing.Period).
		Str("net_income", bundle.NetIncome.String()).
		Int("diagnostics", len(bundle.Diagnostics)).
		Msg("period closed")

	return bundle, nil
}

// countError tags failed advances for the error counter and passes the
// error through.
func (uc *SimulationUseCase) countError(err error) error {
	if uc.metrics == nil {
		return err
	}

	var invalid *domain.InvalidDecisionError
	var imbalance *domain.LedgerImbalanceError

	errorType := "internal"
	switch {
	case errors.As(err, &invalid):
		errorType = "invalid_decision"
	case errors.As(err, &imbalance):
		errorType = "ledger_imbalance"
	case errors.Is(err, domain.ErrMacroUnavailable):
		errorType = "macro_unavailable"
	case errors.Is(err, domain.ErrCompanyNotFound), errors.Is(err, domain.ErrPeriodNotFound):
		errorType = "not_found"
	}
	uc.metrics.SimulationErrors.WithLabelValues(errorType).Inc()

	return err
}

// GetStatements returns the statement bundle for a closed period.
func (uc *SimulationUseCase) GetStatements(ctx context.Context, companyID string, period int) (domain.StatementBundle, error) {
	return uc.repo.GetBundle(ctx, companyID, period)
}

// GetLedger returns the closing ledger of a period.
func (uc *SimulationUseCase) GetLedger(ctx context.Context, companyID string, period int) (domain.CompanyLedger, error) {
	return uc.repo.GetLedger(ctx, companyID, period)
}

// GetCompany returns a company by ID.
func (uc *SimulationUseCase) GetCompany(ctx context.Context, id string) (*domain.Company, error) {
	return uc.repo.GetCompany(ctx, id)
}

// ListCompaniesInput bounds company listing.
type ListCompaniesInput struct {
	Limit  int
	Offset int
}

// ListCompanies lists registered companies.
func (uc *SimulationUseCase) ListCompanies(ctx context.Context, input ListCompaniesInput) ([]*domain.Company, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}
	if input.Limit > 100 {
		input.Limit = 100
	}

	return uc.repo.ListCompanies(ctx, input.Limit, input.Offset)
}
