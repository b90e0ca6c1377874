package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

const mysqlDuplicateEntry = 1062

// IsDuplicateEntry reports whether err is a MySQL unique-constraint violation.
// Callers treat it as a retry signal (card-number generation) or a typed
// conflict (block requests), never as a fatal error.
func IsDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
}
