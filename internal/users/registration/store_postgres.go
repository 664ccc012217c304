// Copyright (c) 2026 Worklink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// PostgreSQL implementation of the registration storage contracts.
package registration

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/worklink/internal/platform/dberr"
)

// # Employer Repository

// PostgresEmployerRepository implements the EmployerRepository interface using pgx.
type PostgresEmployerRepository struct {
	pool *pgxpool.Pool
}

// NewEmployerRepository creates a new PostgreSQL implementation of the EmployerRepository.
func NewEmployerRepository(pool *pgxpool.Pool) *PostgresEmployerRepository {
	return &PostgresEmployerRepository{pool: pool}
}

/*
CreateEmployerProfile persists the company and the employer link row inside
a single transaction.

Description: The company row lives in core.company and the employer link in
users.employer. A failure on either insert rolls back both.

Parameters:
  - context: context.Context
  - employer: *Employer
  - company: *Company

Returns:
  - error: Transaction or constraint failures
*/
func (repository *PostgresEmployerRepository) CreateEmployerProfile(context context.Context, employer *Employer, company *Company) error {
	const insertCompany = `
		INSERT INTO core.company (id, name, country, city, size, createdat)
		VALUES ($1, $2, $3, $4, $5, $6)`

	const insertEmployer = `
		INSERT INTO users.employer (id, userid, companyid, plan, telephone, profileurl, createdat)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	now := time.Now()
	if company.CreatedAt.IsZero() {
		company.CreatedAt = now
	}
	if employer.CreatedAt.IsZero() {
		employer.CreatedAt = now
	}

	transaction, err := repository.pool.BeginTx(context, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("postgres_employer_repo_begin_failed: %w", err)
	}
	defer func() { _ = transaction.Rollback(context) }()

	if _, err := transaction.Exec(context, insertCompany,
		company.ID,
		company.Name,
		company.Country,
		company.City,
		company.Size,
		company.CreatedAt,
	); err != nil {
		return dberr.Wrap(err, "Company")
	}

	if _, err := transaction.Exec(context, insertEmployer,
		employer.ID,
		employer.UserID,
		employer.CompanyID,
		employer.Plan,
		employer.Telephone,
		employer.ProfileURL,
		employer.CreatedAt,
	); err != nil {
		return dberr.Wrap(err, "Employer profile")
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres_employer_repo_commit_failed: %w", err)
	}

	return nil
}
