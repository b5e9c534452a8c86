package database

import (
	"database/sql"
	"log"
)

// InitLedgerDB ensures the ledger tables, indexes and columns exist.
func InitLedgerDB(db *sql.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS inflows (
			id TEXT PRIMARY KEY,
			date DATE NOT NULL,
			source VARCHAR(255) NOT NULL,
			product VARCHAR(255) NOT NULL DEFAULT '',
			amount NUMERIC(18,2) NOT NULL,
			remaining_balance NUMERIC(18,2) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			payment_method VARCHAR(20) NOT NULL DEFAULT '',
			account_number VARCHAR(64) NOT NULL DEFAULT '',
			notes TEXT NOT NULL DEFAULT '',
			currency VARCHAR(3) NOT NULL DEFAULT 'RWF',
			bank_account_name VARCHAR(255) NOT NULL DEFAULT '',
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS outflows (
			id TEXT PRIMARY KEY,
			date DATE NOT NULL,
			purpose VARCHAR(255) NOT NULL,
			category VARCHAR(50) NOT NULL,
			amount NUMERIC(18,2) NOT NULL,
			seller VARCHAR(255) NOT NULL,
			inflow_id TEXT NOT NULL,
			expense_name VARCHAR(255) NOT NULL DEFAULT '',
			notes TEXT NOT NULL DEFAULT '',
			payment_method VARCHAR(20) NOT NULL DEFAULT '',
			account_number VARCHAR(64) NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS overdrafts (
			id TEXT PRIMARY KEY,
			date DATE NOT NULL,
			purpose VARCHAR(255) NOT NULL,
			amount NUMERIC(18,2) NOT NULL,
			seller VARCHAR(255) NOT NULL,
			is_settled BOOLEAN NOT NULL DEFAULT false,
			settled_with_inflow_id TEXT NOT NULL DEFAULT '',
			notes TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			email VARCHAR(255) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			name VARCHAR(255) NOT NULL DEFAULT '',
			role VARCHAR(20) NOT NULL DEFAULT 'viewer',
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)`,
	}

	for _, q := range queries {
		if _, err := db.Exec(q); err != nil {
			log.Printf("Error creating ledger tables: %v", err)
			return err
		}
	}

	// Migrations for tables created by earlier versions. No inflow_id
	// foreign key: the referential rule is enforced by the engine, and the
	// settlement refund path must be able to see outflows whose pot is gone.
	migrations := []string{
		`ALTER TABLE inflows ADD COLUMN IF NOT EXISTS bank_account_name VARCHAR(255) NOT NULL DEFAULT ''`,
		`ALTER TABLE inflows ADD COLUMN IF NOT EXISTS currency VARCHAR(3) NOT NULL DEFAULT 'RWF'`,
		`CREATE INDEX IF NOT EXISTS idx_outflows_inflow_id ON outflows(inflow_id)`,
		`CREATE INDEX IF NOT EXISTS idx_outflows_date ON outflows(date)`,
		`CREATE INDEX IF NOT EXISTS idx_inflows_date ON inflows(date)`,
		`CREATE INDEX IF NOT EXISTS idx_overdrafts_date ON overdrafts(date)`,
		`CREATE INDEX IF NOT EXISTS idx_overdrafts_is_settled ON overdrafts(is_settled)`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			log.Printf("Error running ledger migration: %v", err)
			// Continue as some might be duplicate index errors depending on PG version
		}
	}

	return nil
}
