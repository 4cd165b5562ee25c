package dialect

import (
	"errors"

	"github.com/jmoiron/sqlx"
	"modernc.org/sqlite"
)

// SQLiteProfile implements Profile for SQLite through the pure Go
// modernc.org/sqlite driver.
type SQLiteProfile struct{}

func init() {
	register(SQLiteProfile{}, "sqlite3")
}

// Name returns "sqlite".
func (SQLiteProfile) Name() string { return "sqlite" }

// DriverName returns "sqlite", the name modernc.org/sqlite registers.
func (SQLiteProfile) DriverName() string { return "sqlite" }

// DefaultPort returns 0; SQLite is file based.
func (SQLiteProfile) DefaultPort() int { return 0 }

// Syntax returns '?' bindvars and standard SQL quoting.
func (SQLiteProfile) Syntax() Syntax {
	return Syntax{Bind: sqlx.QUESTION}
}

// DSN returns the database file path. Host, port and credentials are ignored.
func (SQLiteProfile) DSN(c Conn) string {
	if c.Database == "" {
		return ":memory:"
	}
	return c.Database
}

// ErrorDetail unwraps *sqlite.Error. SQLite has no SQLSTATE; Code carries the
// (extended) result code.
func (SQLiteProfile) ErrorDetail(err error) (ErrorDetail, bool) {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return ErrorDetail{}, false
	}
	return ErrorDetail{
		Code:    se.Code(),
		Message: se.Error(),
	}, true
}
