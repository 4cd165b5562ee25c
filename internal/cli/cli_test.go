package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	fluentdb "github.com/biyonik/go-fluent-db"
)

// run executes the command tree with args and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

// sqliteArgs prepares a SQLite file with a posts table and returns the
// connection flags for it.
func sqliteArgs(t *testing.T) []string {
	t.Helper()
	conn := []string{"--driver", "sqlite", "--dsn", filepath.Join(t.TempDir(), "cli.db")}

	_, err := run(t, append([]string{"exec",
		"CREATE TABLE posts (id INTEGER PRIMARY KEY, title TEXT NOT NULL UNIQUE, author TEXT, views INTEGER)"}, conn...)...)
	require.NoError(t, err)

	for _, p := range [][]string{
		{"title=hello", "author=ahmet", "views=10"},
		{"title=world", "author=ahmet", "views=3"},
		{"title=other", "author=ada", "views=7"},
	} {
		out, err := run(t, append(append([]string{"insert", "posts"}, p...), conn...)...)
		require.NoError(t, err)
		assert.Equal(t, "inserted: true\n", out)
	}
	return conn
}

func TestSelect_YAMLKeepsColumnOrder(t *testing.T) {
	conn := sqliteArgs(t)

	out, err := run(t, append([]string{"select", "posts",
		"--columns", "title,views",
		"--where", "author=ahmet",
		"--where", "views=> 5",
	}, conn...)...)
	require.NoError(t, err)
	assert.Equal(t, "- title: hello\n  views: 10\n", out)
}

func TestSelect_JSONOrderDesc(t *testing.T) {
	conn := sqliteArgs(t)

	out, err := run(t, append([]string{"select", "posts", "-c", "title",
		"--order-by", "views", "--desc", "-o", "json"}, conn...)...)
	require.NoError(t, err)

	var rows []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 3)
	assert.Equal(t, "hello", rows[0]["title"])
	assert.Equal(t, "world", rows[2]["title"])
}

func TestSelect_FirstAndEmpty(t *testing.T) {
	conn := sqliteArgs(t)

	out, err := run(t, append([]string{"select", "posts", "-c", "author", "--where", "title=other", "--first"}, conn...)...)
	require.NoError(t, err)
	assert.Equal(t, "author: ada\n", out)

	out, err = run(t, append([]string{"select", "posts", "--where", "title=none", "--first"}, conn...)...)
	require.NoError(t, err)
	assert.Equal(t, "null\n", out)

	out, err = run(t, append([]string{"select", "posts", "--where", "title=none"}, conn...)...)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", out)
}

func TestSelect_FetchNum(t *testing.T) {
	conn := sqliteArgs(t)

	out, err := run(t, append([]string{"select", "posts", "-c", "id,title", "--where", "id=1", "--fetch", "num"}, conn...)...)
	require.NoError(t, err)

	var rows [][]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, []any{1, "hello"}, rows[0])
}

func TestSelect_Malformed(t *testing.T) {
	conn := sqliteArgs(t)

	_, err := run(t, append([]string{"select", "posts", "--where", "views=>=5"}, conn...)...)
	require.Error(t, err)
	assert.ErrorIs(t, err, fluentdb.ErrMalformedCondition)

	_, err = run(t, append([]string{"select", "posts", "--where", "novalue"}, conn...)...)
	assert.Error(t, err)
}

func TestQuery(t *testing.T) {
	conn := sqliteArgs(t)

	out, err := run(t, append([]string{"query", "SELECT COUNT(*) AS n FROM posts WHERE author = :a",
		"-p", "a=ahmet", "--first"}, conn...)...)
	require.NoError(t, err)
	assert.Equal(t, "n: 2\n", out)
}

func TestExec(t *testing.T) {
	conn := sqliteArgs(t)

	out, err := run(t, append([]string{"exec", "UPDATE posts SET views = views + 1 WHERE author = :a",
		"-p", "a=ahmet", "-o", "json"}, conn...)...)
	require.NoError(t, err)
	assert.JSONEq(t, `{"affected": 2}`, out)
}

func TestInsert_Detail(t *testing.T) {
	conn := sqliteArgs(t)

	out, err := run(t, append([]string{"insert", "posts", "title=hello", "--detail"}, conn...)...)
	require.NoError(t, err)

	var res struct {
		Inserted bool `yaml:"inserted"`
		Error    struct {
			Code    int    `yaml:"code"`
			Message string `yaml:"message"`
		} `yaml:"error"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &res))
	assert.False(t, res.Inserted)
	assert.Contains(t, res.Error.Message, "UNIQUE")
	assert.NotZero(t, res.Error.Code)

	_, err = run(t, append([]string{"insert", "posts", "title=hello"}, conn...)...)
	assert.Error(t, err)
}

func TestConfig_FromFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fluentdb.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
environment: production
profiles:
  production:
    host: db.internal
    password: hunter2
`), 0o600))
	t.Setenv("FLUENTDB_DB_DATABASE", "override")

	out, err := run(t, "config", "--config", path)
	require.NoError(t, err)

	var view map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &view))
	assert.Equal(t, "mysql", view["driver"])
	assert.Equal(t, "db.internal", view["host"])
	assert.Equal(t, "override", view["database"])
	assert.Equal(t, "tester", view["username"])
	assert.Equal(t, "********", view["password"])
	assert.NotContains(t, out, "hunter2")

	_, err = run(t, "config", "--config", path, "--env", "qa")
	assert.Error(t, err)
}

func TestConnect_FromEnvProfile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "env.db")
	chdir(t, t.TempDir())
	t.Setenv("FLUENTDB_DB_DRIVER", "sqlite")
	t.Setenv("FLUENTDB_DB_DATABASE", dbPath)

	out, err := run(t, "exec", "CREATE TABLE t (a TEXT)")
	require.NoError(t, err)
	assert.Equal(t, "affected: 0\n", out)
}

func TestFlags_Validation(t *testing.T) {
	_, err := run(t, "select", "posts", "--dsn", "x.db")
	assert.ErrorContains(t, err, "--driver")

	_, err = run(t, "select", "posts", "-o", "xml", "--driver", "sqlite", "--dsn", ":memory:")
	assert.ErrorContains(t, err, "unsupported format")

	_, err = run(t, "select", "posts", "--fetch", "obj", "--driver", "sqlite", "--dsn", ":memory:")
	assert.ErrorContains(t, err, "fetch mode")

	_, err = run(t, "select")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, fluentdb.Version)
}

func TestParseConds(t *testing.T) {
	conds, err := parseConds([]string{"age=>= 18", "name=a=b", "x="})
	require.NoError(t, err)
	assert.Equal(t, []fluentdb.Cond{
		{Column: "age", Value: ">= 18"},
		{Column: "name", Value: "a=b"},
		{Column: "x", Value: ""},
	}, conds)

	_, err = parseConds([]string{"=1"})
	assert.Error(t, err)
}
