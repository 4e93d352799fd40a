package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"strings"
	"testing"
)

// queryLog captures the last statement handed to database/sql so tests can
// assert the generated SQL and bound arguments without a live Postgres.

type queryLog struct {
	query string
	args  []driver.Value
}

type logConnector struct{ log *queryLog }

func (c logConnector) Connect(context.Context) (driver.Conn, error) {
	return logConn{log: c.log}, nil
}
func (c logConnector) Driver() driver.Driver { return logDriver{} }

type logDriver struct{}

func (logDriver) Open(string) (driver.Conn, error) {
	return nil, errors.New("use the connector")
}

type logConn struct{ log *queryLog }

func (c logConn) Prepare(query string) (driver.Stmt, error) {
	return logStmt{query: query, log: c.log}, nil
}
func (logConn) Close() error              { return nil }
func (logConn) Begin() (driver.Tx, error) { return nil, errors.New("not supported") }

type logStmt struct {
	query string
	log   *queryLog
}

func (logStmt) Close() error  { return nil }
func (logStmt) NumInput() int { return -1 }

func (s logStmt) Exec(args []driver.Value) (driver.Result, error) {
	s.log.query, s.log.args = s.query, args
	return driver.RowsAffected(1), nil
}

func (s logStmt) Query(args []driver.Value) (driver.Rows, error) {
	s.log.query, s.log.args = s.query, args
	return emptyRows{}, nil
}

type emptyRows struct{}

func (emptyRows) Columns() []string         { return nil }
func (emptyRows) Close() error              { return nil }
func (emptyRows) Next([]driver.Value) error { return io.EOF }

func newLoggedRepo() (*MovieRepository, *queryLog) {
	log := &queryLog{}
	return NewMovieRepository(sql.OpenDB(logConnector{log: log})), log
}

func TestFilterMinRatingGuardsNonNumericScores(t *testing.T) {
	repo, log := newLoggedRepo()
	min := 7.5
	if _, err := repo.Filter(MovieFilter{MinRating: &min}); err != nil {
		t.Fatal(err)
	}

	// The score column is free text, so the comparison must only cast rows
	// whose value matches a numeric pattern; everything else falls out of
	// the predicate instead of raising a cast error.
	want := `(CASE WHEN imdb_score ~ '^[0-9]+(\.[0-9]+)?$' THEN imdb_score::double precision END) >= $1`
	if !strings.Contains(log.query, want) {
		t.Errorf("min_rating predicate missing the numeric guard:\n%s", log.query)
	}
	if len(log.args) != 1 || log.args[0] != 7.5 {
		t.Errorf("args = %v, want [7.5]", log.args)
	}
}

func TestFilterBuildsNumberedPredicates(t *testing.T) {
	repo, log := newLoggedRepo()
	min := 7.0
	_, err := repo.Filter(MovieFilter{Genre: "Action", Year: "1999", MinRating: &min})
	if err != nil {
		t.Fatal(err)
	}

	for _, cond := range []string{"genre ILIKE $1", "year = $2", "END) >= $3"} {
		if !strings.Contains(log.query, cond) {
			t.Errorf("query missing %q:\n%s", cond, log.query)
		}
	}
	if len(log.args) != 3 || log.args[0] != "%Action%" || log.args[1] != "1999" || log.args[2] != 7.0 {
		t.Errorf("args = %v", log.args)
	}
}

func TestFilterWithoutPredicates(t *testing.T) {
	repo, log := newLoggedRepo()
	if _, err := repo.Filter(MovieFilter{}); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(log.query, "WHERE") {
		t.Errorf("empty filter should have no WHERE clause:\n%s", log.query)
	}
	if !strings.HasSuffix(log.query, "ORDER BY id") {
		t.Errorf("query not ordered by id:\n%s", log.query)
	}
}
