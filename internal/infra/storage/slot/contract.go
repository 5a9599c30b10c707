package slot

import (
	"context"
	"database/sql"

	"github.com/memberhq/SMP-AppointmentService/pkg/dbmetrics"
)

// Database executor interfaces shared with pkg/dbmetrics so the repository
// works over both *sql.DB and the metrics wrapper.
type DBExecutor = dbmetrics.DBExecutor
type TxExecutor = dbmetrics.TxExecutor

// TxBeginner is the transaction-opening surface of the executor.
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error)
}
