package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier es el subconjunto común de pgxpool.Pool y pgx.Tx que usan los
// repositorios. Permite construir el mismo adaptador atado al pool (lecturas
// sueltas) o a una transacción (escrituras del libro de stock).
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}
