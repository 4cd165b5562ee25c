package fluentdb

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// -----------------------------------------------------------------------------
//  Sorgu loglama. Debug modunda her ifade süresiyle birlikte bir Logger'a
//  iletilir. Parametre değerleri, WithLogArgs(true) verilmedikçe türlerine göre
//  gizlenir; uzun SQL metinleri kısaltılır.
//
//  -- @author   Ahmet ALTUN
//  -- @github   github.com/biyonik
//  -- @linkedin linkedin.com/in/biyonik
//  -- @email    ahmet.altun60@gmail.com
// -----------------------------------------------------------------------------

// Logger, debug modundaki bir DB üzerinden çalıştırılan her ifadeyi alır.
// WithLogArgs(true) verilmedikçe parametreler türlerine göre gizlenir.
type Logger interface {
	Log(query string, params Params, duration time.Duration, err error)
}

// NopLogger, gelen her kaydı yok sayar.
type NopLogger struct{}

// Log, Logger arayüzünü uygular.
func (NopLogger) Log(string, Params, time.Duration, error) {}

// ZerologLogger, ifadeleri bir zerolog.Logger'a yazar: başarılı olanları debug,
// hata verenleri error seviyesinde.
type ZerologLogger struct {
	log zerolog.Logger
}

// NewZerologLogger, l'yi sarar.
func NewZerologLogger(l zerolog.Logger) *ZerologLogger {
	return &ZerologLogger{log: l}
}

// Log, Logger arayüzünü uygular.
func (z *ZerologLogger) Log(query string, params Params, duration time.Duration, err error) {
	ev := z.log.Debug()
	if err != nil {
		ev = z.log.Error().Err(err)
	}
	ev.Str("sql", truncateSQL(query, 0)).
		Int("argc", len(params)).
		Dur("dur", duration)
	if len(params) > 0 {
		ev.Interface("params", params)
	}
	ev.Msg("statement")
}

// loggingExecutor, inner üzerinden çalışan her ifadeyi ölçer ve loglar.
type loggingExecutor struct {
	inner   Executor
	logger  Logger
	logArgs bool
}

func (l *loggingExecutor) PrepareContext(ctx context.Context, text string) (Statement, error) {
	start := time.Now()
	stmt, err := l.inner.PrepareContext(ctx, text)
	if err != nil {
		l.logger.Log(text, nil, time.Since(start), err)
		return nil, err
	}
	return &loggingStatement{Statement: stmt, text: text, exec: l}, nil
}

type loggingStatement struct {
	Statement
	text string
	exec *loggingExecutor
}

func (s *loggingStatement) QueryContext(ctx context.Context, params Params) (Cursor, error) {
	start := time.Now()
	cur, err := s.Statement.QueryContext(ctx, params)
	s.exec.log(s.text, params, time.Since(start), err)
	return cur, err
}

func (s *loggingStatement) ExecContext(ctx context.Context, params Params) (sql.Result, error) {
	start := time.Now()
	res, err := s.Statement.ExecContext(ctx, params)
	s.exec.log(s.text, params, time.Since(start), err)
	return res, err
}

func (l *loggingExecutor) log(query string, params Params, dur time.Duration, err error) {
	if !l.logArgs {
		params = redactParams(params)
	}
	l.logger.Log(query, params, dur, err)
}

func truncateSQL(sql string, maxLen int) string {
	const defaultMax = 2048
	if maxLen <= 0 {
		maxLen = defaultMax
	}
	if len(sql) <= maxLen {
		return sql
	}
	return sql[:maxLen] + "…"
}

// redactParams sayıları, bool değerleri ve nil'i korur; geri kalan her şeyi
// türünü ve boyutunu anlatan bir metinle değiştirir.
func redactParams(params Params) Params {
	if len(params) == 0 {
		return params
	}
	out := make(Params, len(params))
	for k, v := range params {
		out[k] = redactValue(v)
	}
	return out
}

func redactValue(v any) any {
	switch x := v.(type) {
	case nil, bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return v
	case string:
		return fmt.Sprintf("redacted(len=%d)", len(x))
	case []byte:
		return fmt.Sprintf("bytes(len=%d)", len(x))
	default:
		return fmt.Sprintf("%T(redacted)", v)
	}
}
