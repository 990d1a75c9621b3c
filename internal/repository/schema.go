package repository

import (
	"context"
	"database/sql"
	"fmt"
)

var schemaStatements = []string{
	`CREATE SCHEMA IF NOT EXISTS customer360`,
	`CREATE TABLE IF NOT EXISTS customer360.employees (
		id            BIGSERIAL PRIMARY KEY,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS customer360.customers (
		customer_id TEXT PRIMARY KEY,
		name        TEXT NOT NULL DEFAULT '',
		ucic_id     TEXT NOT NULL DEFAULT '',
		mobile      TEXT NOT NULL DEFAULT '',
		email       TEXT NOT NULL DEFAULT '',
		pan         TEXT NOT NULL DEFAULT '',
		branch      TEXT NOT NULL DEFAULT '',
		risk        TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS customer360.loans (
		customer_id TEXT NOT NULL,
		lan         TEXT NOT NULL,
		type        TEXT NOT NULL DEFAULT '',
		zone        TEXT NOT NULL DEFAULT '',
		status      TEXT NOT NULL DEFAULT '',
		outstanding NUMERIC(14, 2) NOT NULL DEFAULT 0,
		emi         NUMERIC(14, 2) NOT NULL DEFAULT 0,
		active      BOOLEAN,
		PRIMARY KEY (customer_id, lan)
	)`,
	`CREATE TABLE IF NOT EXISTS customer360.payments (
		id             BIGSERIAL PRIMARY KEY,
		customer_id    TEXT NOT NULL,
		lan            TEXT NOT NULL,
		due_date       DATE NOT NULL,
		payment_date   DATE,
		amount_due     NUMERIC(14, 2),
		amount_paid    NUMERIC(14, 2) NOT NULL DEFAULT 0,
		status         TEXT NOT NULL DEFAULT '',
		payment_method TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS customer360.communications (
		id                      TEXT PRIMARY KEY,
		customer_id             TEXT NOT NULL,
		lan                     TEXT,
		channel                 TEXT NOT NULL,
		direction               TEXT,
		status                  TEXT NOT NULL,
		occurred_at             TIMESTAMPTZ,
		resolution_time_seconds DOUBLE PRECISION,
		csat_score              DOUBLE PRECISION,
		escalated               BOOLEAN NOT NULL DEFAULT FALSE,
		resolved                BOOLEAN NOT NULL DEFAULT FALSE,
		issue_type              TEXT,
		message                 TEXT,
		template                TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS communications_occurred_at_idx ON customer360.communications (occurred_at)`,
}

// EnsureSchema creates the customer360 schema and tables when missing
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
