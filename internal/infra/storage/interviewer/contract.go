package interviewer

import (
	"github.com/memberhq/SMP-AppointmentService/pkg/dbmetrics"
)

type (
	DBExecutor = dbmetrics.DBExecutor
	TxExecutor = dbmetrics.TxExecutor
)
