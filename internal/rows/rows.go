// Package rows loads the records listed on an entity page.
package rows

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib"    // registers the "pgx" driver
	_ "github.com/marcboeker/go-duckdb" // registers the "duckdb" driver
	_ "modernc.org/sqlite"                // registers the "sqlite" driver

	"github.com/leapstack-labs/crudshell/internal/display"
)

// DefaultLimit caps the number of rows fetched for one list page.
const DefaultLimit = 200

// Supported drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
	DriverDuckDB   = "duckdb"
)

var (
	// ErrUnknownModel is returned for models that are not configured.
	ErrUnknownModel = errors.New("unknown model")
	// ErrNoSource is returned when no row source is configured.
	ErrNoSource = errors.New("no row source configured")
)

// Source lists the records of one model.
type Source interface {
	List(ctx context.Context, model string, limit int) ([]display.Column, []display.Row, error)
}

// ModelSetter is implemented by sources whose model set follows the
// configuration.
type ModelSetter interface {
	SetModels(models []string)
}

// SQLSource reads rows from a table named after the model.
type SQLSource struct {
	db     *sql.DB
	driver string
	logger *slog.Logger

	mu      sync.RWMutex
	allowed map[string]struct{}
}

// Open connects to dsn with driver and returns a source restricted to models.
func Open(driver, dsn string, models []string, logger *slog.Logger) (*SQLSource, error) {
	switch driver {
	case DriverSQLite, DriverPostgres, DriverDuckDB:
	default:
		return nil, fmt.Errorf("unsupported rows driver %q (want %s, %s or %s)", driver, DriverSQLite, DriverPostgres, DriverDuckDB)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}
	return NewSQLSource(db, driver, models, logger), nil
}

// NewSQLSource wraps an existing database handle.
func NewSQLSource(db *sql.DB, driver string, models []string, logger *slog.Logger) *SQLSource {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &SQLSource{db: db, driver: driver, logger: logger}
	s.SetModels(models)
	return s
}

// SetModels replaces the set of models that may be listed.
func (s *SQLSource) SetModels(models []string) {
	allowed := make(map[string]struct{}, len(models))
	for _, m := range models {
		allowed[m] = struct{}{}
	}
	s.mu.Lock()
	s.allowed = allowed
	s.mu.Unlock()
}

func (s *SQLSource) isAllowed(model string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.allowed[model]
	return ok
}

// List returns up to limit rows of model. Column order follows the table.
func (s *SQLSource) List(ctx context.Context, model string, limit int) ([]display.Column, []display.Row, error) {
	if !s.isAllowed(model) {
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownModel, model)
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	query := fmt.Sprintf("SELECT * FROM %s LIMIT %s", quoteIdent(model), s.placeholder(1))
	s.logger.Debug("listing rows", "model", model, "limit", limit)

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query %s: %w", model, err)
	}
	defer func() { _ = rows.Close() }()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read columns of %s: %w", model, err)
	}

	var result []display.Row
	for rows.Next() {
		values := make([]any, len(cols))
		valuePtrs := make([]any, len(cols))
		for i := range values {
			valuePtrs[i] = &values[i]
		}
		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, nil, fmt.Errorf("failed to scan %s: %w", model, err)
		}

		row := make(display.Row, len(cols))
		for i, col := range cols {
			val := values[i]
			if b, ok := val.([]byte); ok {
				val = string(b)
			}
			row[col] = val
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", model, err)
	}

	return display.ColumnsFromKeys(cols), result, nil
}

// Close closes the underlying database.
func (s *SQLSource) Close() error {
	return s.db.Close()
}

func (s *SQLSource) placeholder(n int) string {
	if s.driver == DriverPostgres {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// Static is an in-memory Source keyed by model name.
type Static map[string][]display.Row

// List returns the stored rows of model; columns are the sorted union of keys.
func (s Static) List(_ context.Context, model string, limit int) ([]display.Column, []display.Row, error) {
	data, ok := s[model]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownModel, model)
	}
	if limit > 0 && len(data) > limit {
		data = data[:limit]
	}

	seen := map[string]struct{}{}
	var keys []string
	for _, row := range data {
		for k := range row {
			if _, ok := seen[k]; !ok {
				seen[k] = struct{}{}
				keys = append(keys, k)
			}
		}
	}
	slices.Sort(keys)
	return display.ColumnsFromKeys(keys), data, nil
}
