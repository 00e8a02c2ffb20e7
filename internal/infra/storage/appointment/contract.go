package appointment

import (
	"context"
	"database/sql"

	"github.com/MBrunoS/ezpet-sub000/pkg/dbmetrics"
)

// Reuse the dbmetrics executor interfaces so the repository works on a bare
// *sql.DB and on the instrumented wrapper alike
type DBExecutor = dbmetrics.DBExecutor
type TxExecutor = dbmetrics.TxExecutor

// TxBeginner starts transactions; satisfied by *sql.DB and *dbmetrics.DB
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error)
}
