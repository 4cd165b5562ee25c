// Package fluentdb, Go dilinde named parametreli SQL ifadelerini zincirli çağrılarla kurup çalıştırmayı
// sağlayan küçük bir kütüphanedir. Builder SQL metnini ve :name parametrelerini biriktirir, terminal
// çağrıda (GetFirst, GetAll, Insert) ifadeyi Executor üzerinden çalıştırır.
//
// Yazar: Ahmet ALTUN
// Github: github.com/biyonik
// LinkedIn: linkedin.com/in/biyonik
// Email: ahmet.altun60@gmail.com
package fluentdb

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// Version, go-fluent-db kütüphanesinin mevcut sürümünü belirtir.
const Version = "0.2.0"

// Open, verilen sqlx sürücü adı ve DSN ile bağlantı açar, bağlantıyı doğrular ve DB örneğini döndürür.
//
// Örnek:
//
//	db, err := fluentdb.Open(ctx, "sqlite", "blog.db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
func Open(ctx context.Context, driverName, dataSourceName string, opts ...Option) (*DB, error) {
	sqlxDB, err := sqlx.Open(driverName, dataSourceName)
	if err != nil {
		return nil, WrapError("connect", err)
	}

	// Bağlantıyı doğrula
	if err := sqlxDB.PingContext(ctx); err != nil {
		sqlxDB.Close()
		return nil, WrapError("ping", err)
	}

	return NewDB(sqlxDB, opts...), nil
}

// Connect, Config yapısından sürücü profilini ve DSN'i çözer ve bağlantıyı açar.
// cfg nil ise DefaultConfig kullanılır.
//
// Örnek:
//
//	cfg := &fluentdb.Config{
//	    Driver:   "mysql",
//	    Host:     "localhost",
//	    Database: "blog",
//	    Username: "root",
//	}
//	db, err := fluentdb.Connect(ctx, cfg)
func Connect(ctx context.Context, cfg *Config, opts ...Option) (*DB, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	profile, err := cfg.Profile()
	if err != nil {
		return nil, WrapError("connect", err)
	}
	return Open(ctx, profile.DriverName(), profile.DSN(cfg.conn()), opts...)
}

// New, veritabanı bağlantısı olmadan, verilen Executor üzerinde çalışan yeni bir builder oluşturur.
// executor nil olabilir; bu durumda builder yalnızca SQL üretmek (ToSQL) için kullanılır ve terminal
// çağrılar ErrNoExecutor döndürür.
//
// Örnek:
//
//	text, params, err := fluentdb.New(nil).
//	    Select("users", "id", "name").
//	    Where(fluentdb.Cond{Column: "age", Value: ">= 18"}).
//	    ToSQL()
func New(executor Executor, opts ...BuilderOption) *StatementBuilder {
	return NewBuilder(executor, opts...)
}
