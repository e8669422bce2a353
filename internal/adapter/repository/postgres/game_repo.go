package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ronesego-ui/captop/internal/domain"
)

// GameRepository implements usecase.GameRepository on PostgreSQL. Ledgers and
// statement bundles are stored as JSONB documents keyed by (company, period);
// re-closing a period replaces the stored row.
type GameRepository struct {
	pool *pgxpool.Pool
}

// NewGameRepository creates a new GameRepository.
func NewGameRepository(pool *pgxpool.Pool) *GameRepository {
	return &GameRepository{pool: pool}
}

// CreateCompany stores a company and its period-0 ledger atomically.
func (r *GameRepository) CreateCompany(ctx context.Context, company *domain.Company, opening domain.CompanyLedger) error {
	ledgerJSON, err := json.Marshal(opening)
	if err != nil {
		return fmt.Errorf("marshal opening ledger: %w", err)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO companies (id, name, created_at) VALUES ($1, $2, $3)`,
		company.ID, company.Name, company.CreatedAt,
	)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO period_ledgers (company_id, period, ledger) VALUES ($1, $2, $3)`,
		company.ID, opening.Period, ledgerJSON,
	)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// GetCompany retrieves a company by ID.
func (r *GameRepository) GetCompany(ctx context.Context, id string) (*domain.Company, error) {
	var c domain.Company

	err := r.pool.QueryRow(ctx,
		`SELECT id, name, created_at FROM companies WHERE id = $1`,
		id,
	).Scan(&c.ID, &c.Name, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCompanyNotFound
		}

		return nil, err
	}

	return &c, nil
}

// ListCompanies lists companies with pagination.
func (r *GameRepository) ListCompanies(ctx context.Context, limit, offset int) ([]*domain.Company, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, created_at FROM companies ORDER BY created_at LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	companies := make([]*domain.Company, 0)
	for rows.Next() {
		var c domain.Company
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, err
		}
		companies = append(companies, &c)
	}

	return companies, rows.Err()
}

// SaveClose stores a closing ledger and its statement bundle atomically.
func (r *GameRepository) SaveClose(ctx context.Context, companyID string, ledger domain.CompanyLedger, bundle domain.StatementBundle) error {
	ledgerJSON, err := json.Marshal(ledger)
	if err != nil {
		return fmt.Errorf("marshal ledger: %w", err)
	}
	bundleJSON, err := json.Marshal(bundle)
	if err != nil {
		return fmt.Errorf("marshal statement bundle: %w", err)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO period_ledgers (company_id, period, ledger)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (company_id, period) DO UPDATE SET ledger = EXCLUDED.ledger`,
		companyID, ledger.Period, ledgerJSON,
	)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO statement_bundles (company_id, period, run_id, bundle)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (company_id, period) DO UPDATE SET run_id = EXCLUDED.run_id, bundle = EXCLUDED.bundle`,
		companyID, bundle.Period, bundle.RunID, bundleJSON,
	)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// GetLedger retrieves the closing ledger of a period.
func (r *GameRepository) GetLedger(ctx context.Context, companyID string, period int) (domain.CompanyLedger, error) {
	var raw []byte

	err := r.pool.QueryRow(ctx,
		`SELECT ledger FROM period_ledgers WHERE company_id = $1 AND period = $2`,
		companyID, period,
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.CompanyLedger{}, domain.ErrPeriodNotFound
		}

		return domain.CompanyLedger{}, err
	}

	var ledger domain.CompanyLedger
	if err := json.Unmarshal(raw, &ledger); err != nil {
		return domain.CompanyLedger{}, fmt.Errorf("unmarshal ledger: %w", err)
	}

	return ledger, nil
}

// GetLatestLedger retrieves the most recent closing ledger of a company.
func (r *GameRepository) GetLatestLedger(ctx context.Context, companyID string) (domain.CompanyLedger, error) {
	var raw []byte

	err := r.pool.QueryRow(ctx,
		`SELECT ledger FROM period_ledgers WHERE company_id = $1 ORDER BY period DESC LIMIT 1`,
		companyID,
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.CompanyLedger{}, domain.ErrPeriodNotFound
		}

		return domain.CompanyLedger{}, err
	}

	var ledger domain.CompanyLedger
	if err := json.Unmarshal(raw, &ledger); err != nil {
		return domain.CompanyLedger{}, fmt.Errorf("unmarshal ledger: %w", err)
	}

	return ledger, nil
}

// GetBundle retrieves the statement bundle of a closed period.
func (r *GameRepository) GetBundle(ctx context.Context, companyID string, period int) (domain.StatementBundle, error) {
	var raw []byte

	err := r.pool.QueryRow(ctx,
		`SELECT bundle FROM statement_bundles WHERE company_id = $1 AND period = $2`,
		companyID, period,
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.StatementBundle{}, domain.ErrPeriodNotFound
		}

		return domain.StatementBundle{}, err
	}

	var bundle domain.StatementBundle
	if err := json.Unmarshal(raw, &bundle); err != nil {
		return domain.StatementBundle{}, fmt.Errorf("unmarshal statement bundle: %w", err)
	}

	return bundle, nil
}
