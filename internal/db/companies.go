package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/anujpndt/bizdev-agent/internal/types"
)

// SaveCompany stores one researched company under a run
func (db *DB) SaveCompany(ctx context.Context, runID uuid.UUID, record types.CompanyRecord) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO discovered_companies
		 (run_id, name, location, website, services, email, contact_details, detailed_report)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		runID, record.Name, record.Location, record.Website, record.Services,
		record.Email, record.ContactDetails, record.DetailedReport,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save company %s: %w", record.Name, err)
	}
	return id, nil
}

// ListCompanies retrieves the companies stored for a run, oldest first
func (db *DB) ListCompanies(ctx context.Context, runID uuid.UUID) ([]types.CompanyRecord, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT name, location, website, services, email, contact_details, detailed_report
		 FROM discovered_companies WHERE run_id = $1 ORDER BY created_at ASC`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	defer rows.Close()

	var records []types.CompanyRecord
	for rows.Next() {
		var r types.CompanyRecord
		if err := rows.Scan(&r.Name, &r.Location, &r.Website, &r.Services, &r.Email, &r.ContactDetails, &r.DetailedReport); err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		records = append(records, r)
	}
	return records, nil
}

// GetCompanyByName retrieves one company from a run by exact name
func (db *DB) GetCompanyByName(ctx context.Context, runID uuid.UUID, name string) (*types.CompanyRecord, error) {
	var r types.CompanyRecord
	err := db.pool.QueryRow(ctx,
		`SELECT name, location, website, services, email, contact_details, detailed_report
		 FROM discovered_companies WHERE run_id = $1 AND name = $2`,
		runID, name,
	).Scan(&r.Name, &r.Location, &r.Website, &r.Services, &r.Email, &r.ContactDetails, &r.DetailedReport)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get company %s: %w", name, err)
	}
	return &r, nil
}
