package fluentdb

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/biyonik/go-fluent-db/dialect"
)

/*
=======================================================================================================================
  💠 FLUENTDB – EXECUTOR 💠
  Builder'ın veritabanıyla konuştuğu tek kapı. Builder SQL metnini ve :name parametrelerini biriktirir; çalıştırma
  anında bu dosyadaki üç arayüzden geçer:

  🔹 Executor  → metni hazırlar (prepare)
  🔹 Statement → hazırlanan ifadeyi parametrelerle çalıştırır (execute)
  🔹 Cursor    → dönen satırları okur (fetch)

  *DB, bu arayüzleri sqlx üzerinden uygular. :name yer tutucuları hazırlık öncesinde sürücü profilinin Syntax'ına
  göre bindvar'a çevrilir (MySQL/SQLite için ?, PostgreSQL için $1); tırnak içindeki metin, yorumlar ve ::
  cast'leri dokunulmadan kalır.

  @author    Ahmet ALTUN
  @github    github.com/biyonik
  @linkedin  linkedin.com/in/biyonik
  @email     ahmet.altun60@gmail.com
=======================================================================================================================
*/

// Executor, :name yer tutucuları içeren ifade metnini hazırlar.
type Executor interface {
	PrepareContext(ctx context.Context, text string) (Statement, error)
}

// Statement, hazırlanmış bir ifadedir. Close çağrılana kadar istenildiği kadar
// çalıştırılabilir.
type Statement interface {
	// QueryContext -> satır döndüren ifadeyi çalıştırır.
	QueryContext(ctx context.Context, params Params) (Cursor, error)

	// ExecContext -> satır döndürmeyen ifadeyi çalıştırır; sonuç etkilenen
	// satır sayısını taşır.
	ExecContext(ctx context.Context, params Params) (sql.Result, error)

	Close() error
}

// Cursor, tek bir çalıştırmanın satırlarını okur. Yalnızca ileri gider ve
// baştan başlatılamaz.
type Cursor interface {
	// FetchOne -> sıradaki satırı döndürür; satır kalmadıysa false.
	FetchOne(mode FetchMode) (Row, bool, error)

	// FetchAll -> kalan tüm satırları döndürür. Satır yoksa boş slice.
	FetchAll(mode FetchMode) ([]Row, error)

	// ScanOne -> sıradaki satırı dest içine tarar ve satır olup olmadığını bildirir.
	ScanOne(dest any) (bool, error)

	// ScanAll -> kalan tüm satırları dest (bir slice pointer'ı) içine tarar.
	ScanAll(dest any) error

	Close() error
}

// Compile-time kontrolü.
var (
	_ Executor  = (*DB)(nil)
	_ Statement = (*preparedStatement)(nil)
	_ Cursor    = (*rowsCursor)(nil)
)

// DB struct'ı *sqlx.DB bağlantısını sarar ve üzerine builder varsayılanlarını
// (fetch modu, strict identifier) ve loglamayı ekler. *DB eşzamanlı kullanım için
// güvenlidir; her Builder çağrısı yeni ve bağımsız bir builder döndürür.
type DB struct {
	db        *sqlx.DB
	logger    Logger    // debug açıkken sorguların yazıldığı yer
	debug     bool      // sorgular loglansın mı?
	logArgs   bool      // parametre değerleri loglara açık yazılsın mı?
	fetchMode FetchMode // builder'ların varsayılan fetch modu
	strict    bool      // tablo/kolon adları doğrulansın mı?
	syntax    dialect.Syntax
}

// NewDB -> açık bir *sqlx.DB'yi sarar. Yer tutucu sözdizimi sürücü adından çözülür.
//
// Örnek:
//
//	sqlxDB := sqlx.MustOpen("sqlite", "app.db")
//	db := fluentdb.NewDB(sqlxDB, fluentdb.WithFetchMode(fluentdb.FetchBoth))
func NewDB(db *sqlx.DB, opts ...Option) *DB {
	d := &DB{
		db:     db,
		logger: NopLogger{},
		syntax: syntaxOf(db),
	}
	applyOptions(d, opts)
	return d
}

// syntaxOf, db'nin açıldığı sürücüden yer tutucu sözdizimini çözer.
func syntaxOf(db *sqlx.DB) dialect.Syntax {
	if db == nil {
		return dialect.Syntax{}
	}
	if p, err := dialect.Lookup(db.DriverName()); err == nil {
		return p.Syntax()
	}
	return dialect.StandardSyntax(db.DriverName())
}

// PrepareContext, Executor arayüzünü uygular. :name yer tutucuları önce sürücünün
// bindvar'ına derlenir; tırnak içindeki metin, yorumlar ve :: cast'leri olduğu
// gibi kalır.
func (d *DB) PrepareContext(ctx context.Context, text string) (Statement, error) {
	q := compileNamed(text, d.syntax)
	stmt, err := d.db.PreparexContext(ctx, q.text)
	if err != nil {
		return nil, err
	}
	return &preparedStatement{stmt: stmt, query: q}, nil
}

// executor, builder'ların çalışacağı Executor'ı döndürür: d'nin kendisi ya da
// debug modunda loglama sarmalayıcısının arkasındaki d.
func (d *DB) executor() Executor {
	if !d.debug {
		return d
	}
	return &loggingExecutor{inner: d, logger: d.logger, logArgs: d.logArgs}
}

// Builder -> d'ye bağlı yeni bir StatementBuilder döndürür.
func (d *DB) Builder() *StatementBuilder {
	b := NewBuilder(d.executor(), WithBuilderFetchMode(d.fetchMode))
	b.strict = d.strict
	return b
}

// Select, d.Builder().Select(table, columns...) kısayoludur.
func (d *DB) Select(table string, columns ...string) *StatementBuilder {
	return d.Builder().Select(table, columns...)
}

// Query, d.Builder().Query(sql, params) kısayoludur.
func (d *DB) Query(sql string, params Params) *StatementBuilder {
	return d.Builder().Query(sql, params)
}

// Insert, d.Builder().InsertContext(ctx, table, params) kısayoludur. Her çağrı yeni bir builder kullanır.
func (d *DB) Insert(ctx context.Context, table string, params Params) (bool, error) {
	return d.Builder().InsertContext(ctx, table, params)
}

// Run -> sql'i hemen hazırlar, çalıştırır ve cursor'ını döndürür. Cursor'ı
// kapatmak çağıranın sorumluluğundadır; cursor kapanınca statement da kapanır.
//
// Örnek:
//
//	cur, err := db.Run(ctx, "SELECT * FROM posts WHERE author = :author", fluentdb.Params{"author": "ahmet"})
//	if err != nil {
//	    return err
//	}
//	defer cur.Close()
//	rows, err := cur.FetchAll(fluentdb.FetchAssoc)
func (d *DB) Run(ctx context.Context, sql string, params Params) (Cursor, error) {
	stmt, err := d.executor().PrepareContext(ctx, sql)
	if err != nil {
		return nil, newQueryError("prepare", sql, err)
	}
	cur, err := stmt.QueryContext(ctx, params)
	if err != nil {
		stmt.Close()
		return nil, newQueryError("query", sql, err)
	}
	return &ownedCursor{Cursor: cur, stmt: stmt}, nil
}

// Exec -> satır döndürmeyen bir ifadeyi hazırlar, çalıştırır ve etkilenen satır
// sayısını döndürür.
func (d *DB) Exec(ctx context.Context, sql string, params Params) (int64, error) {
	stmt, err := d.executor().PrepareContext(ctx, sql)
	if err != nil {
		return 0, newQueryError("prepare", sql, err)
	}
	defer stmt.Close()

	res, err := stmt.ExecContext(ctx, params)
	if err != nil {
		return 0, newQueryError("exec", sql, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, newQueryError("rows affected", sql, err)
	}
	return n, nil
}

// Ping, bağlantının canlı olduğunu doğrular.
func (d *DB) Ping(ctx context.Context) error {
	return WrapError("ping", d.db.PingContext(ctx))
}

// Close, alttaki bağlantı havuzunu kapatır.
func (d *DB) Close() error {
	return d.db.Close()
}

// SQLX, sarılan *sqlx.DB'yi döndürür.
func (d *DB) SQLX() *sqlx.DB {
	return d.db
}

// preparedStatement, *sqlx.Stmt'yi Statement'a uyarlar; parametreler derleme
// sırasında kaydedilen yer tutucu adlarına göre bağlanır.
type preparedStatement struct {
	stmt  *sqlx.Stmt
	query namedQuery
}

func (s *preparedStatement) QueryContext(ctx context.Context, params Params) (Cursor, error) {
	args, err := s.query.args(params)
	if err != nil {
		return nil, err
	}
	rows, err := s.stmt.QueryxContext(ctx, args...)
	if err != nil {
		return nil, err
	}
	return newRowsCursor(rows), nil
}

func (s *preparedStatement) ExecContext(ctx context.Context, params Params) (sql.Result, error) {
	args, err := s.query.args(params)
	if err != nil {
		return nil, err
	}
	return s.stmt.ExecContext(ctx, args...)
}

func (s *preparedStatement) Close() error {
	return s.stmt.Close()
}
