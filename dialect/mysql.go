package dialect

import (
	"errors"
	"net"
	"strconv"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

// MySQLProfile implements Profile for MySQL/MariaDB through go-sql-driver/mysql.
type MySQLProfile struct{}

func init() {
	register(MySQLProfile{}, "mariadb")
}

// Name returns "mysql".
func (MySQLProfile) Name() string { return "mysql" }

// DriverName returns the driver name registered by go-sql-driver/mysql.
func (MySQLProfile) DriverName() string { return "mysql" }

// DefaultPort returns 3306.
func (MySQLProfile) DefaultPort() int { return 3306 }

// Syntax returns '?' bindvars, backslash escapes inside strings and '#' comments.
func (MySQLProfile) Syntax() Syntax {
	return Syntax{Bind: sqlx.QUESTION, BackslashEscapes: true, HashComments: true}
}

// DSN builds a go-sql-driver DSN. parseTime is always enabled so DATETIME
// columns come back as time.Time.
func (p MySQLProfile) DSN(c Conn) string {
	cfg := mysql.NewConfig()
	cfg.User = c.Username
	cfg.Passwd = c.Password
	cfg.Net = "tcp"
	cfg.DBName = c.Database
	cfg.ParseTime = true

	host := c.Host
	if host == "" {
		host = "localhost"
	}
	port := c.Port
	if port <= 0 {
		port = p.DefaultPort()
	}
	cfg.Addr = net.JoinHostPort(host, strconv.Itoa(port))

	if c.Charset != "" {
		cfg.Params = map[string]string{"charset": c.Charset}
	}
	if c.TLS {
		cfg.TLSConfig = "true"
	}

	return cfg.FormatDSN()
}

// ErrorDetail unwraps *mysql.MySQLError.
func (MySQLProfile) ErrorDetail(err error) (ErrorDetail, bool) {
	var me *mysql.MySQLError
	if !errors.As(err, &me) {
		return ErrorDetail{}, false
	}

	d := ErrorDetail{
		Code:    int(me.Number),
		Message: me.Message,
	}
	if me.SQLState != [5]byte{} {
		d.SQLState = string(me.SQLState[:])
	}
	return d, true
}
