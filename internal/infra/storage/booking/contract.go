package booking

import (
	"github.com/terapiemd/booking-service/pkg/dbmetrics"
)

// DBExecutor is satisfied by *dbmetrics.DB and by open transactions
type DBExecutor = dbmetrics.DBExecutor
