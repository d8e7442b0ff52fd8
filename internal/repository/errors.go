// Package repository provides MySQL persistence implementations for the
// application services.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// mysqlDuplicateEntry is the MySQL error number for unique key violations.
const mysqlDuplicateEntry = 1062

// isDuplicate reports whether err is a unique-constraint violation.
// Concurrent writers racing on the same unique key are resolved by the
// database; this is how the losing side is recognized.
func isDuplicate(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
}
