package dialect

import (
	"errors"
	"net"
	"net/url"
	"strconv"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"github.com/jmoiron/sqlx"
)

// PostgresProfile implements Profile for PostgreSQL through pgx's stdlib driver.
// Named parameters are bound as $1, $2 ...
type PostgresProfile struct{}

func init() {
	register(PostgresProfile{}, "pgx", "postgresql")
}

// Name returns "postgres".
func (PostgresProfile) Name() string { return "postgres" }

// DriverName returns "pgx".
func (PostgresProfile) DriverName() string { return "pgx" }

// DefaultPort returns 5432.
func (PostgresProfile) DefaultPort() int { return 5432 }

// Syntax returns $n bindvars and dollar-quoted bodies.
func (PostgresProfile) Syntax() Syntax {
	return Syntax{Bind: sqlx.DOLLAR, DollarQuotes: true}
}

// DSN builds a postgres:// URL. Credentials are escaped by net/url so
// passwords may contain '/', '@' or '+'.
func (p PostgresProfile) DSN(c Conn) string {
	host := c.Host
	if host == "" {
		host = "localhost"
	}
	port := c.Port
	if port <= 0 {
		port = p.DefaultPort()
	}

	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(host, strconv.Itoa(port)),
		Path:   "/" + c.Database,
	}
	if c.Username != "" {
		if c.Password != "" {
			u.User = url.UserPassword(c.Username, c.Password)
		} else {
			u.User = url.User(c.Username)
		}
	}

	q := url.Values{}
	if c.TLS {
		q.Set("sslmode", "require")
	} else {
		q.Set("sslmode", "disable")
	}
	if c.Charset != "" {
		q.Set("client_encoding", c.Charset)
	}
	u.RawQuery = q.Encode()

	return u.String()
}

// ErrorDetail unwraps *pgconn.PgError. PostgreSQL reports SQLSTATE only, so
// Code stays zero.
func (PostgresProfile) ErrorDetail(err error) (ErrorDetail, bool) {
	var pe *pgconn.PgError
	if !errors.As(err, &pe) {
		return ErrorDetail{}, false
	}
	return ErrorDetail{
		SQLState: pe.Code,
		Message:  pe.Message,
	}, true
}
