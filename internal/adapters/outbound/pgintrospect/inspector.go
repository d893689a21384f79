// Package pgintrospect checks a Postgres catalog for the trigram extension
// and the GIN indexes that back case-insensitive species search.
package pgintrospect

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/shellcon/aquacheck/internal/domain"
)

const (
	extensionQuery = `SELECT EXISTS (SELECT 1 FROM pg_extension WHERE extname = $1)`
	indexQuery     = `SELECT EXISTS (SELECT 1 FROM pg_indexes WHERE tablename = $1 AND indexname = $2 AND indexdef ILIKE $3)`
)

// Querier runs a single-boolean query.
type Querier interface {
	Exists(ctx context.Context, query string, args ...any) (bool, error)
}

// Inspector implements domain.IndexInspector.
type Inspector struct {
	q       Querier
	cfg     domain.QueryConfig
	timeout time.Duration
}

// New returns an Inspector that runs its checks through q.
func New(q Querier, cfg domain.QueryConfig, timeout time.Duration) *Inspector {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &Inspector{q: q, cfg: cfg, timeout: timeout}
}

// Open connects to dsn through the pgx database/sql driver. The returned
// close function releases the pool.
func Open(dsn string, cfg domain.QueryConfig, timeout time.Duration) (*Inspector, func() error, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(2)
	db.SetConnMaxIdleTime(time.Minute)
	return New(DB{db}, cfg, timeout), db.Close, nil
}

// DB adapts *sql.DB to Querier.
type DB struct {
	*sql.DB
}

func (d DB) Exists(ctx context.Context, query string, args ...any) (bool, error) {
	var ok bool
	if err := d.QueryRowContext(ctx, query, args...).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

type check struct {
	name  string
	unmet string
	query string
	args  []any
}

func (i *Inspector) indexCheck(name, column, index string) check {
	return check{
		name: name,
		unmet: fmt.Sprintf("A GIN trigram index on '%s.%s' (%s) is missing or incorrect",
			i.cfg.Table, column, index),
		query: indexQuery,
		args:  []any{i.cfg.Table, index, fmt.Sprintf("%%USING gin (%s gin_trgm_ops)%%", column)},
	}
}

// Inspect runs every check. The first query error aborts the inspection.
func (i *Inspector) Inspect(ctx context.Context) (domain.IntrospectionResult, error) {
	ctx, cancel := context.WithTimeout(ctx, i.timeout)
	defer cancel()

	checks := []check{
		{
			name:  "TrigramExtensionEnabled",
			unmet: fmt.Sprintf("The '%s' extension is not enabled in the database", i.cfg.TrigramExtension),
			query: extensionQuery,
			args:  []any{i.cfg.TrigramExtension},
		},
		i.indexCheck("NameTrigramIndex", "name", i.cfg.NameIndex),
		i.indexCheck("ScientificNameTrigramIndex", "scientific_name", i.cfg.ScientificNameIndex),
	}

	var res domain.IntrospectionResult
	for _, c := range checks {
		ok, err := i.q.Exists(ctx, c.query, c.args...)
		if err != nil {
			return domain.IntrospectionResult{}, fmt.Errorf("checking %s: %w", c.name, err)
		}
		pr := domain.PredicateResult{Name: c.name, Passed: ok}
		if !ok {
			pr.Unmet = c.unmet
		}
		res.Checks = append(res.Checks, pr)
	}
	return res, nil
}
