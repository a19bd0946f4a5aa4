// Package sqlgen adapts database/sql queries into generator
// iterators: rows flow out on the yield channel and the query or
// iteration error, if any, is the generator's final value. Closing
// the generator releases the underlying rows.
package sqlgen

import (
	"context"
	"database/sql"

	"github.com/webriots/gentools"
)

// Scanner converts the current row into a value.
type Scanner[T any] func(*sql.Rows) (T, error)

// Query runs the query against db and returns a generator yielding
// one value per row. The generator's final value is the first error
// encountered: the query error, a scan error, or rows.Err after the
// last row; nil on clean exhaustion. Closing the generator before
// exhaustion closes the rows.
func Query[T any](ctx context.Context, db *sql.DB, query string, scan Scanner[T], args ...any) gentools.Generator[T, struct{}, error] {
	return gentools.New(func(yield func(T) struct{}) error {
		rows, err := db.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			v, err := scan(rows)
			if err != nil {
				return err
			}
			yield(v)
		}
		return rows.Err()
	})
}

// QueryRow runs a query expected to produce a single row and scans it.
func QueryRow[T any](ctx context.Context, db *sql.DB, query string, scan func(*sql.Row) (T, error), args ...any) (T, error) {
	return scan(db.QueryRowContext(ctx, query, args...))
}
