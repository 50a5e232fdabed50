package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"loan-evaluator/domain"
)

type migration struct {
	description string
	up          string
	version     int
}

var packageMigrations = []migration{
	{
		version:     1,
		description: "Create loan_packages",
		up: `CREATE TABLE IF NOT EXISTS loan_packages (
			id TEXT PRIMARY KEY,
			bank_id TEXT NOT NULL,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			amount REAL NOT NULL,
			interest_rate REAL NOT NULL,
			loan_term_months INTEGER NOT NULL,
			minimum_credit_score INTEGER NOT NULL,
			is_active INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,
	},
	{
		version:     2,
		description: "Index active packages by bank",
		up:          `CREATE INDEX IF NOT EXISTS idx_loan_packages_bank_active ON loan_packages(bank_id, is_active)`,
	},
}

// PackageRepositorySQLite stores loan packages in a SQLite database.
type PackageRepositorySQLite struct {
	db *sql.DB
}

// NewPackageRepositorySQLite opens (creating if needed) the database at
// dbPath and applies pending migrations.
func NewPackageRepositorySQLite(ctx context.Context, dbPath string) (*PackageRepositorySQLite, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	repo := &PackageRepositorySQLite{db: db}
	if err := repo.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *PackageRepositorySQLite) Close() error {
	return r.db.Close()
}

func (r *PackageRepositorySQLite) migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	var current int
	if err := r.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	for _, m := range packageMigrations {
		if m.version <= current {
			continue
		}

		tx, err := r.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin migration %d: %w", m.version, err)
		}
		if _, err := tx.ExecContext(ctx, m.up); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d (%s) failed: %w", m.version, m.description, err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES (?)`, m.version); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", m.version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", m.version, err)
		}
		slog.Debug("applied migration", "version", m.version, "description", m.description)
	}
	return nil
}

const packageColumns = `id, bank_id, name, description, amount, interest_rate,
	loan_term_months, minimum_credit_score, is_active, created_at, updated_at`

func (r *PackageRepositorySQLite) Create(ctx context.Context, pkg domain.LoanPackage) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO loan_packages (`+packageColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		pkg.ID, pkg.BankID, pkg.Name, pkg.Description, pkg.Amount, pkg.InterestRatePercent,
		pkg.TermMonths, pkg.MinimumCreditScore, pkg.IsActive, pkg.CreatedAt.UTC(), pkg.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert package: %w", err)
	}
	return nil
}

func (r *PackageRepositorySQLite) Get(ctx context.Context, id string) (domain.LoanPackage, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+packageColumns+` FROM loan_packages WHERE id = ?`, id)
	pkg, err := scanPackage(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.LoanPackage{}, fmt.Errorf("%w: %s", domain.ErrPackageNotFound, id)
	}
	if err != nil {
		return domain.LoanPackage{}, fmt.Errorf("failed to get package: %w", err)
	}
	return pkg, nil
}

func (r *PackageRepositorySQLite) List(ctx context.Context, bankID string) ([]domain.LoanPackage, error) {
	query := `SELECT ` + packageColumns + ` FROM loan_packages WHERE is_active = 1`
	args := []any{}
	if bankID != "" {
		query += ` AND bank_id = ?`
		args = append(args, bankID)
	}
	query += ` ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := []domain.LoanPackage{}
	for rows.Next() {
		pkg, err := scanPackage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan package: %w", err)
		}
		out = append(out, pkg)
	}
	return out, rows.Err()
}

func (r *PackageRepositorySQLite) Update(ctx context.Context, pkg domain.LoanPackage) error {
	res, err := r.db.ExecContext(ctx, `UPDATE loan_packages SET
		bank_id = ?, name = ?, description = ?, amount = ?, interest_rate = ?,
		loan_term_months = ?, minimum_credit_score = ?, is_active = ?, updated_at = ?
		WHERE id = ?`,
		pkg.BankID, pkg.Name, pkg.Description, pkg.Amount, pkg.InterestRatePercent,
		pkg.TermMonths, pkg.MinimumCreditScore, pkg.IsActive, pkg.UpdatedAt.UTC(), pkg.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update package: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", domain.ErrPackageNotFound, pkg.ID)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPackage(row rowScanner) (domain.LoanPackage, error) {
	var (
		pkg                  domain.LoanPackage
		createdAt, updatedAt time.Time
	)
	err := row.Scan(
		&pkg.ID, &pkg.BankID, &pkg.Name, &pkg.Description, &pkg.Amount, &pkg.InterestRatePercent,
		&pkg.TermMonths, &pkg.MinimumCreditScore, &pkg.IsActive, &createdAt, &updatedAt,
	)
	if err != nil {
		return domain.LoanPackage{}, err
	}
	pkg.CreatedAt = createdAt.UTC()
	pkg.UpdatedAt = updatedAt.UTC()
	return pkg, nil
}
