package db

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// mysqlDupEntry is the server error code for a unique constraint violation.
const mysqlDupEntry = 1062

// IsDuplicateKey reports whether err is a unique-constraint violation. The
// repositories treat their pre-insert existence checks as optimizations only;
// this signal is the actual correctness guarantee under concurrent requests.
func IsDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlDupEntry
}

// NullIfEmpty helps store optional strings without writing empty text.
func NullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
