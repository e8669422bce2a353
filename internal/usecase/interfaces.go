package usecase

import (
	"context"

	"github.com/ronesego-ui/captop/internal/domain"
)

// GameRepository defines data access for companies and their period history.
type GameRepository interface {
	// CreateCompany stores a company together with its seeded period-0
	// ledger, atomically.
	CreateCompany(ctx context.Context, company *domain.Company, opening domain.CompanyLedger) error
	GetCompany(ctx context.Context, id string) (*domain.Company, error)
	ListCompanies(ctx context.Context, limit, offset int) ([]*domain.Company, error)

	// SaveClose stores a closing ledger and its statement bundle,
	// atomically. Re-running a period replaces the previous close.
	SaveClose(ctx context.Context, companyID string, ledger domain.CompanyLedger, bundle domain.StatementBundle) error
	GetLedger(ctx context.Context, companyID string, period int) (domain.CompanyLedger, error)
	GetLatestLedger(ctx context.Context, companyID string) (domain.CompanyLedger, error)
	GetBundle(ctx context.Context, companyID string, period int) (domain.StatementBundle, error)
}

// MacroSource provides the macro snapshot needed to advance into a period.
type MacroSource interface {
	Snapshot(ctx context.Context, period int) (domain.MacroSnapshot, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}
