package sqlgen_test

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/webriots/gentools"
	"github.com/webriots/gentools/sqlgen"
)

type event struct {
	ID   int
	Name string
}

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`CREATE TABLE events (id INTEGER PRIMARY KEY, name TEXT)`)
	require.NoError(t, err)
	for _, name := range []string{"start", "tick", "stop"} {
		_, err = db.Exec(`INSERT INTO events (name) VALUES (?)`, name)
		require.NoError(t, err)
	}
	return db
}

func scanEvent(rows *sql.Rows) (event, error) {
	var e event
	err := rows.Scan(&e.ID, &e.Name)
	return e, err
}

func TestQuery(t *testing.T) {
	r := require.New(t)
	db := openTestDB(t)

	g := sqlgen.Query(context.Background(), db,
		`SELECT id, name FROM events ORDER BY id`, scanEvent)

	events, err := gentools.Collect(g)
	r.NoError(err)
	r.Equal([]event{
		{ID: 1, Name: "start"},
		{ID: 2, Name: "tick"},
		{ID: 3, Name: "stop"},
	}, events)
}

func TestQueryCloseReleasesRows(t *testing.T) {
	r := require.New(t)
	db := openTestDB(t)

	g := sqlgen.Query(context.Background(), db,
		`SELECT id, name FROM events ORDER BY id`, scanEvent)

	first, ok := g.Next()
	r.True(ok)
	r.Equal("start", first.Name)

	g.Close()
	r.True(g.Done())

	// The rows are released; the connection is usable again.
	var n int
	r.NoError(db.QueryRow(`SELECT COUNT(*) FROM events`).Scan(&n))
	r.Equal(3, n)
}

func TestQueryError(t *testing.T) {
	r := require.New(t)
	db := openTestDB(t)

	g := sqlgen.Query(context.Background(), db,
		`SELECT nope FROM missing`, scanEvent)

	events, err := gentools.Collect(g)
	r.Error(err)
	r.Empty(events)
}

func TestQueryScanError(t *testing.T) {
	r := require.New(t)
	db := openTestDB(t)

	g := sqlgen.Query(context.Background(), db,
		`SELECT id, name FROM events ORDER BY id`,
		func(rows *sql.Rows) (event, error) {
			var e event
			return e, rows.Scan(&e.ID) // too few destinations
		})

	events, err := gentools.Collect(g)
	r.Error(err)
	r.Empty(events)
}

func TestQueryRow(t *testing.T) {
	r := require.New(t)
	db := openTestDB(t)

	name, err := sqlgen.QueryRow(context.Background(), db,
		`SELECT name FROM events WHERE id = ?`,
		func(row *sql.Row) (string, error) {
			var s string
			err := row.Scan(&s)
			return s, err
		}, 2)
	r.NoError(err)
	r.Equal("tick", name)
}
