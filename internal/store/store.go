// Package store persists the employee directory in a SQLite database.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/oakwood-commons/dirtab/internal/employee"
)

const schema = `
CREATE TABLE IF NOT EXISTS employees (
	id INTEGER PRIMARY KEY,
	first_name TEXT NOT NULL,
	last_name TEXT NOT NULL,
	email TEXT NOT NULL,
	phone TEXT NOT NULL,
	department TEXT NOT NULL,
	salary INTEGER NOT NULL,
	hire_date TEXT NOT NULL,
	is_active INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_employees_department ON employees(department);
`

// DB wraps the employee database.
type DB struct {
	db *sql.DB
}

// Open opens or creates the database at path.
func Open(ctx context.Context, path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// a single connection keeps writes serialized
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &DB{db: db}, nil
}

// Close closes the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Save upserts rows in one transaction.
func (d *DB) Save(ctx context.Context, rows []employee.Employee) error {
	return d.inTx(ctx, func(tx *sql.Tx) error {
		return insert(ctx, tx, rows)
	})
}

// Replace deletes every row and saves rows in their place. Both steps share
// one transaction, so a failed insert keeps the previous rows.
func (d *DB) Replace(ctx context.Context, rows []employee.Employee) error {
	return d.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM employees`); err != nil {
			return fmt.Errorf("clear employees: %w", err)
		}
		return insert(ctx, tx, rows)
	})
}

func (d *DB) inTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func insert(ctx context.Context, tx *sql.Tx, rows []employee.Employee) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO employees
			(id, first_name, last_name, email, phone, department, salary, hire_date, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range rows {
		if _, err := stmt.ExecContext(ctx,
			e.ID, e.FirstName, e.LastName, e.Email, e.Phone, e.Department,
			e.Salary, e.HireDate.UTC().Format(time.RFC3339), e.IsActive,
		); err != nil {
			return fmt.Errorf("save employee %d: %w", e.ID, err)
		}
	}
	return nil
}

// Load returns every employee ordered by id.
func (d *DB) Load(ctx context.Context) ([]employee.Employee, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, first_name, last_name, email, phone, department, salary, hire_date, is_active
		FROM employees
		ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []employee.Employee
	for rows.Next() {
		var (
			e     employee.Employee
			hired string
		)
		if err := rows.Scan(&e.ID, &e.FirstName, &e.LastName, &e.Email, &e.Phone,
			&e.Department, &e.Salary, &hired, &e.IsActive); err != nil {
			return nil, err
		}
		if e.HireDate, err = time.Parse(time.RFC3339, hired); err != nil {
			return nil, fmt.Errorf("employee %d: hire date: %w", e.ID, err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Count returns the number of stored employees.
func (d *DB) Count(ctx context.Context) (int, error) {
	var n int
	err := d.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM employees`).Scan(&n)
	return n, err
}
