package fluentdb

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const usersSchema = `CREATE TABLE users (
	id    INTEGER PRIMARY KEY AUTOINCREMENT,
	name  TEXT NOT NULL,
	email TEXT NOT NULL UNIQUE,
	age   INTEGER NOT NULL
)`

type user struct {
	ID    int64  `db:"id"`
	Name  string `db:"name"`
	Email string `db:"email"`
	Age   int64  `db:"age"`
}

// openTestDB returns a DB over a fresh SQLite file with a seeded users table.
func openTestDB(t *testing.T, opts ...Option) *DB {
	t.Helper()
	ctx := context.Background()

	db, err := Connect(ctx, &Config{
		Driver:   "sqlite",
		Database: filepath.Join(t.TempDir(), "test.db"),
	}, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(ctx, usersSchema, nil)
	require.NoError(t, err)

	for _, u := range []Params{
		{"name": "ada", "email": "ada@example.com", "age": 36},
		{"name": "bob", "email": "bob@example.com", "age": 17},
		{"name": "cem", "email": "cem@example.com", "age": 52},
	} {
		ok, err := db.Insert(ctx, "users", u)
		require.NoError(t, err)
		require.True(t, ok)
	}
	return db
}

func TestSQLite_SelectWhereOrder(t *testing.T) {
	db := openTestDB(t)

	rows, err := db.Select("users", "name", "age").
		Where(Cond{"age", ">= 18"}).
		OrderByDesc("age").
		GetAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	name, _ := rows[0].Get("name")
	assert.Equal(t, "cem", name)
	name, _ = rows[1].Get("name")
	assert.Equal(t, "ada", name)
}

func TestSQLite_GetFirst(t *testing.T) {
	db := openTestDB(t)

	row, ok, err := db.Select("users").Where(Cond{"email", "bob@example.com"}).GetFirst()
	require.NoError(t, err)
	require.True(t, ok)

	age, _ := row.Get("age")
	assert.Equal(t, int64(17), age)

	_, ok, err = db.Select("users").Where(Cond{"name", "nobody"}).GetFirst()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLite_MultipleConditions(t *testing.T) {
	db := openTestDB(t)

	rows, err := db.Select("users", "name").
		Where(Cond{"age", "> 10"}).
		Where(Cond{"age", "< 40"}, Cond{"name", "!= bob"}).
		GetAll()
	require.NoError(t, err)
	assert.Empty(t, rows, "age is bound once and the last write wins: age > 40 AND age < 40")

	rows, err = db.Select("users", "name").
		Where(Cond{"age", "< 40"}, Cond{"name", "!= bob"}).
		GetAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	name, _ := rows[0].Get("name")
	assert.Equal(t, "ada", name)
}

func TestSQLite_Query(t *testing.T) {
	db := openTestDB(t, WithFetchMode(FetchNum))

	rows, err := db.Query("SELECT name, age FROM users WHERE age BETWEEN :lo AND :hi ORDER BY age",
		Params{"lo": 18, "hi": 60}).GetAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	v, ok := rows[0].At(0)
	require.True(t, ok)
	assert.Equal(t, "ada", v)
	_, ok = rows[0].Get("name")
	assert.False(t, ok)
}

func TestSQLite_Into(t *testing.T) {
	db := openTestDB(t)

	var u user
	ok, err := db.Select("users").Where(Cond{"name", "ada"}).GetFirstInto(&u)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "ada@example.com", u.Email)
	assert.Equal(t, int64(36), u.Age)

	var all []user
	err = db.Select("users").OrderBy("id").GetAllInto(&all)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "cem", all[2].Name)

	var count int64
	ok, err = db.Query("SELECT COUNT(*) FROM users", nil).GetFirstInto(&count)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(3), count)

	err = db.Select("users").GetAllInto(&u)
	assert.ErrorIs(t, err, ErrNotASlice)
}

func TestSQLite_InsertDuplicate(t *testing.T) {
	db := openTestDB(t)
	dup := Params{"name": "ada2", "email": "ada@example.com", "age": 1}

	ok, err := db.Builder().Insert("users", dup)
	assert.False(t, ok)
	var qe *QueryError
	require.True(t, errors.As(err, &qe))
	assert.Contains(t, qe.Detail.Message, "UNIQUE")
	assert.NotZero(t, qe.Detail.Code)

	ok, detail, err := db.Builder().InsertDetailed("users", dup)
	require.NoError(t, err)
	assert.False(t, ok)
	require.NotNil(t, detail)
	assert.Contains(t, detail.Message, "UNIQUE")
}

func TestSQLite_RunAndExec(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	n, err := db.Exec(ctx, "UPDATE users SET age = age + 1 WHERE age < :max", Params{"max": 40})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	cur, err := db.Run(ctx, "SELECT name FROM users WHERE age = :age", Params{"age": 18})
	require.NoError(t, err)
	defer cur.Close()

	rows, err := cur.FetchAll(FetchAssoc)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	name, _ := rows[0].Get("name")
	assert.Equal(t, "bob", name)

	_, err = db.Run(ctx, "SELECT * FROM missing", nil)
	var qe *QueryError
	require.True(t, errors.As(err, &qe))
	assert.Contains(t, qe.Detail.Message, "missing")
}

func TestSQLite_MissingParam(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Query("SELECT * FROM users WHERE id = :id", nil).GetAll()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingParam)
}

func TestSQLite_ColonsInLiterals(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		sql    string
		params Params
		want   string
	}{
		{"double colon", "SELECT 'a::b' AS x", nil, "a::b"},
		{"time", "SELECT '10:30' AS x", nil, "10:30"},
		{"name inside literal", "SELECT 'user:id' AS x WHERE 1 = :one", Params{"one": 1}, "user:id"},
		{"placeholder inside literal", "SELECT ':name' || :suffix AS x", Params{"suffix": "!"}, ":name!"},
		{"comment", "SELECT 'ok' AS x -- :ignored", nil, "ok"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row, ok, err := db.Query(tt.sql, tt.params).GetFirst()
			require.NoError(t, err)
			require.True(t, ok)
			x, _ := row.Get("x")
			assert.Equal(t, tt.want, x)
		})
	}

	n, err := db.Exec(ctx, "UPDATE users SET name = 'ada:' || name WHERE email = :email", Params{"email": "ada@example.com"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	row, ok, err := db.Select("users", "name").Where(Cond{"name", "ada:ada"}).GetFirst()
	require.NoError(t, err)
	require.True(t, ok)
	name, _ := row.Get("name")
	assert.Equal(t, "ada:ada", name)
}

func TestConnect_UnknownDriver(t *testing.T) {
	_, err := Connect(context.Background(), &Config{Driver: "oracle"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "oracle")
}
