// Package store serves the demo projects from SQLite, as a grid data source in server mode.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	sq "github.com/Masterminds/squirrel"
	"github.com/alaarab/ogrid-go/internal/demo"
	"github.com/alaarab/ogrid-go/pkg/filter"
	"github.com/alaarab/ogrid-go/pkg/query"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
	"strings"
	"sync"
)

const (
	projectsTable = "projects"
	peopleTable   = "people"

	// MemoryDSN asks for a private in-memory database.
	MemoryDSN = ":memory:"

	maxPeopleResults = 10
	seedBatchSize    = 500
)

var errNotStarted = errors.New("store has not been started")

type fieldKind int

const (
	kindText fieldKind = iota
	kindNumber
)

type field struct {
	expr string
	kind fieldKind
}

// fields maps filter and sort fields to SQL expressions. Unknown fields are ignored.
var fields = map[string]field{
	"id":         {expr: "id"},
	"name":       {expr: "name"},
	"status":     {expr: "status"},
	"owner":      {expr: "owner"},
	"ownerEmail": {expr: "owner_email"},
	"department": {expr: "department"},
	"budget":     {expr: "budget", kind: kindNumber},
	"startDate":  {expr: "start_date"},
	"year":       {expr: "CAST(substr(start_date, 1, 4) AS INTEGER)", kind: kindNumber},
}

var projectColumns = []string{"id", "name", "status", "owner", "owner_email", "budget", "start_date", "department"}

type Config struct {
	// DSN is a file path or MemoryDSN.
	DSN string
	// Seed is loaded into an empty database on Start.
	Seed []demo.Project
}

func (c *Config) validate() error {
	var errGrp []error
	if c.DSN == "" {
		errGrp = append(errGrp, errors.New("DSN cannot be empty"))
	}
	return errors.Join(errGrp...)
}

// Store is a grid data source over a projects table and a people directory.
type Store struct {
	dsn  string
	seed []demo.Project

	mu sync.RWMutex
	db *sql.DB
}

func New(cfg *Config) (*Store, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Store{dsn: cfg.DSN, seed: cfg.Seed}, nil
}

func (s *Store) Name() string {
	return "SQLite Store"
}

// Start opens the database, creates the schema and seeds it when empty.
func (s *Store) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db != nil {
		return nil
	}

	connStr := s.dsn
	if s.dsn == MemoryDSN {
		// a named shared cache keeps every pooled connection on the same database
		connStr = fmt.Sprintf("file:ogrid-%s?mode=memory&cache=shared", uuid.NewString())
	}

	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if s.dsn == MemoryDSN {
		db.SetMaxOpenConns(1)
	}
	if err = db.Ping(); err != nil {
		_ = db.Close()
		return fmt.Errorf("ping database: %w", err)
	}
	if s.dsn != MemoryDSN {
		if _, err = db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return fmt.Errorf("enable WAL: %w", err)
		}
	}
	if err = migrate(db); err != nil {
		_ = db.Close()
		return fmt.Errorf("create tables: %w", err)
	}
	s.db = db

	n, err := s.seedIfEmpty(context.Background())
	if err != nil {
		_ = db.Close()
		s.db = nil
		return fmt.Errorf("seed database: %w", err)
	}

	log.Info().Str("dsn", s.dsn).Int("seeded", n).Msg("SQLite store ready")
	return nil
}

// Stop closes the database.
func (s *Store) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// offset is the row offset of a 1-based page, clamped to total so pages far past the end
// cannot overflow.
func offset(page, pageSize, total int) uint64 {
	skipped := max(page, 1) - 1
	if total == 0 || skipped > total/pageSize {
		return uint64(total)
	}
	return uint64(skipped * pageSize)
}

func migrate(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS projects (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		status TEXT,
		owner TEXT,
		owner_email TEXT,
		budget REAL,
		start_date TEXT,
		department TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_projects_status ON projects(status);
	CREATE INDEX IF NOT EXISTS idx_projects_department ON projects(department);

	CREATE TABLE IF NOT EXISTS people (
		id TEXT PRIMARY KEY,
		display_name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE
	);
	`
	_, err := db.Exec(schema)
	return err
}

func (s *Store) seedIfEmpty(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM projects").Scan(&count); err != nil {
		return 0, err
	}
	if count > 0 || len(s.seed) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	for start := 0; start < len(s.seed); start += seedBatchSize {
		insert := sq.Insert(projectsTable).Columns(projectColumns...)
		for _, p := range s.seed[start:min(start+seedBatchSize, len(s.seed))] {
			insert = insert.Values(p.ID, p.Name, p.Status, p.Owner, p.OwnerEmail, p.Budget, p.StartDate, p.Department)
		}
		if _, err = insert.RunWith(tx).ExecContext(ctx); err != nil {
			return 0, err
		}
	}

	people := sq.Insert(peopleTable).Columns("id", "display_name", "email").Options("OR IGNORE")
	for _, p := range demo.People() {
		people = people.Values(uuid.NewString(), p.DisplayName, p.Email)
	}
	if _, err = people.RunWith(tx).ExecContext(ctx); err != nil {
		return 0, err
	}

	return len(s.seed), tx.Commit()
}

func (s *Store) conn() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return nil, errNotStarted
	}
	return s.db, nil
}

// where turns the grid filters into SQL predicates, mirroring the in-memory engine: multi-select
// is membership, text is a case-insensitive substring and people is a case-insensitive email
// match.
func where(filters filter.Filters) sq.And {
	and := sq.And{}
	for name, v := range filters {
		f, ok := fields[name]
		if !ok {
			continue
		}
		switch v.Kind() {
		case filter.KindMultiSelect:
			values, _ := v.Values()
			and = append(and, sq.Eq{"CAST(" + f.expr + " AS TEXT)": values})
		case filter.KindText:
			text, _ := v.TextValue()
			and = append(and, sq.Expr("instr(lower(coalesce("+f.expr+", '')), ?) > 0", strings.ToLower(text)))
		case filter.KindPerson:
			p, _ := v.PersonValue()
			and = append(and, sq.Expr("lower("+f.expr+") = ?", strings.ToLower(p.Email)))
		}
	}
	return and
}

func orderBy(s *query.Sort) []string {
	if s == nil {
		return nil
	}
	f, ok := fields[s.Field]
	if !ok {
		return nil
	}
	dir := "ASC"
	if s.Direction == query.Desc {
		dir = "DESC"
	}
	expr := f.expr
	if f.kind == kindText {
		expr = "lower(" + expr + ")"
	}
	// nulls sort first ascending in SQLite; rowid keeps ties in insertion order
	return []string{expr + " " + dir, "rowid ASC"}
}

// FetchPage implements datasource.DataSource.
func (s *Store) FetchPage(ctx context.Context, params query.Params) (query.Result[demo.Project], error) {
	db, err := s.conn()
	if err != nil {
		return query.Result[demo.Project]{}, err
	}

	pred := where(params.Filters)

	var total int
	countSQL, countArgs, err := sq.Select("COUNT(*)").From(projectsTable).Where(pred).ToSql()
	if err != nil {
		return query.Result[demo.Project]{}, fmt.Errorf("build count query: %w", err)
	}
	if err = db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return query.Result[demo.Project]{}, fmt.Errorf("count projects: %w", err)
	}

	sel := sq.Select(projectColumns...).From(projectsTable).Where(pred)
	if order := orderBy(params.Sort); order != nil {
		sel = sel.OrderBy(order...)
	} else {
		sel = sel.OrderBy("rowid ASC")
	}
	if params.PageSize > 0 {
		sel = sel.Limit(uint64(params.PageSize)).Offset(offset(params.Page, params.PageSize, total))
	}

	rows, err := sel.RunWith(db).QueryContext(ctx)
	if err != nil {
		return query.Result[demo.Project]{}, fmt.Errorf("query projects: %w", err)
	}
	defer rows.Close()

	items := []demo.Project{}
	for rows.Next() {
		var p demo.Project
		var status, owner, email, start, dept sql.NullString
		var budget sql.NullFloat64
		if err = rows.Scan(&p.ID, &p.Name, &status, &owner, &email, &budget, &start, &dept); err != nil {
			return query.Result[demo.Project]{}, fmt.Errorf("scan project: %w", err)
		}
		p.Status, p.Owner, p.OwnerEmail = status.String, owner.String, email.String
		p.Budget, p.StartDate, p.Department = budget.Float64, start.String, dept.String
		items = append(items, p)
	}
	if err = rows.Err(); err != nil {
		return query.Result[demo.Project]{}, fmt.Errorf("read projects: %w", err)
	}

	log.Debug().Msgf("fetched %d of %d projects (page %d)", len(items), total, params.Page)
	return query.Result[demo.Project]{Items: items, TotalCount: total}, nil
}

// FetchFilterOptions lists the distinct non-empty values of a field, sorted.
func (s *Store) FetchFilterOptions(ctx context.Context, name string) ([]string, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}
	f, ok := fields[name]
	if !ok {
		return []string{}, nil
	}

	expr := "CAST(" + f.expr + " AS TEXT)"
	rows, err := sq.Select("DISTINCT "+expr+" AS v").
		From(projectsTable).
		Where(sq.And{sq.NotEq{f.expr: nil}, sq.NotEq{expr: ""}}).
		OrderBy("v").
		RunWith(db).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("query options for %s: %w", name, err)
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var v string
		if err = rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan option: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// SearchPeople finds directory entries whose name or email contains q.
func (s *Store) SearchPeople(ctx context.Context, q string) ([]filter.Person, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(strings.TrimSpace(q))

	rows, err := sq.Select("id", "display_name", "email").
		From(peopleTable).
		Where(sq.Or{
			sq.Expr("instr(lower(display_name), ?) > 0", needle),
			sq.Expr("instr(lower(email), ?) > 0", needle),
		}).
		OrderBy("display_name").
		Limit(maxPeopleResults).
		RunWith(db).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("search people: %w", err)
	}
	defer rows.Close()

	out := []filter.Person{}
	for rows.Next() {
		var p filter.Person
		if err = rows.Scan(&p.ID, &p.DisplayName, &p.Email); err != nil {
			return nil, fmt.Errorf("scan person: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// GetUserByEmail returns nil without an error when nobody has the address.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*filter.Person, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}

	var p filter.Person
	err = sq.Select("id", "display_name", "email").
		From(peopleTable).
		Where(sq.Expr("lower(email) = ?", strings.ToLower(strings.TrimSpace(email)))).
		RunWith(db).
		QueryRowContext(ctx).
		Scan(&p.ID, &p.DisplayName, &p.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("look up %s: %w", email, err)
	}
	return &p, nil
}
