// Package fluentdb provides a small fluent statement builder over database/sql.
//
// go-fluent-db accumulates SQL text and named parameters (:name) through
// chained calls, then executes the statement through an Executor. Table and
// column names are written as given; only values are bound as parameters.
//
// # Quick Start
//
// Connect with a Config and start composing statements:
//
//	db, err := fluentdb.Connect(ctx, &fluentdb.Config{
//	    Driver:   "mysql",
//	    Host:     "localhost",
//	    Database: "blog",
//	    Username: "root",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
//
// Drivers are "mysql" (go-sql-driver/mysql), "postgres" (pgx) and "sqlite"
// (modernc.org/sqlite).
//
// # Select Statements
//
//	rows, err := db.Select("users", "id", "name").
//	    Where(fluentdb.Cond{Column: "age", Value: ">= 18"}).
//	    OrderBy("name").
//	    GetAll()
//
// produces
//
//	SELECT id, name FROM users WHERE age >= :age ORDER BY name ASC
//
// with params {age: "18"}.
//
// # Where Conditions
//
// A string value containing '<', '>' or '=' is an operator expression of the
// form "<operator> <value>"; anything else is an equality literal:
//
//	Cond{Column: "id", Value: "2"}       // id = :id
//	Cond{Column: "age", Value: ">= 18"}  // age >= :age
//	Cond{Column: "name", Value: "!= x"}  // name != :name
//
// Allowed operators are =, !=, <>, <, >, <= and >=. Values with spaces must
// go through Query. Conditions from several Where calls are joined with AND.
//
// # Raw Statements
//
// Query stages caller-written SQL for a later fetch:
//
//	row, ok, err := db.Query("SELECT * FROM posts WHERE slug = :slug",
//	    fluentdb.Params{"slug": "hello"}).GetFirst()
//
// DB.Run and DB.Exec execute raw SQL immediately.
//
// # Placeholders
//
// Before a statement is prepared, each :name is replaced by the driver's
// bindvar (? for MySQL and SQLite, $1, $2 ... for PostgreSQL) and its value
// is taken from the params. A name starts with a letter or '_' and continues
// with letters, digits, '_' and inner dots (:users.id). Text is left as written
// inside 'single', "double" and `backtick` quotes, -- and /* */ comments, '#'
// comments on MySQL and $tag$ bodies on PostgreSQL. A '::' is kept as is, so
// casts such as id::text work and '10:30' or 'a::b' literals are not changed.
// A :name with no value in the params fails with ErrMissingParam.
//
// # Insert
//
//	ok, err := db.Builder().Insert("users", fluentdb.Params{"name": "Bob"})
//
//	// Driver error detail instead of an error:
//	ok, detail, err := db.Builder().InsertDetailed("users", fluentdb.Params{"email": dup})
//	if detail != nil {
//	    log.Println(detail.SQLState, detail.Code, detail.Message)
//	}
//
// # Fetch Modes
//
// Rows are addressed by column name by default (FetchAssoc). FetchNum
// addresses them by position and FetchBoth allows both. GetFirstInto and
// GetAllInto scan into structs using `db` tags.
//
// # Lifecycle
//
// A builder holds one statement at a time. GetFirst, GetAll and Insert
// consume it; further terminal calls return ErrStatementConsumed until Select
// or Query starts a new statement. Insert also ends a pending SELECT that was
// never fetched. Where must come before OrderBy; a Where after OrderBy
// records ErrWhereAfterOrderBy. A StatementBuilder is not safe for
// concurrent use; a *DB is.
package fluentdb
