package fluentdb

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

// =====================================================================================
// FLUENTDB – ROW & CURSOR
// -------------------------------------------------------------------------------------
// Dönen satırların okunması. FetchMode, satırın kolon adıyla mı (assoc), sırayla mı
// (num) yoksa ikisiyle birden mi (both) adreslenebileceğini belirler. Sürücülerin
// döndürdüğü []byte değerleri string'e çevrilir.
//
// @author    Ahmet ALTUN
// @github    github.com/biyonik
// @linkedin  linkedin.com/in/biyonik
// @email     ahmet.altun60@gmail.com
// =====================================================================================

// FetchMode, okunan satırların nasıl adresleneceğini seçer.
type FetchMode int

const (
	// FetchAssoc, satırları kolon adıyla adresler. Varsayılandır.
	FetchAssoc FetchMode = iota
	// FetchNum, satırları sırayla adresler.
	FetchNum
	// FetchBoth, satırları hem adla hem sırayla adresler.
	FetchBoth
)

// String, "assoc", "num" veya "both" döndürür.
func (m FetchMode) String() string {
	switch m {
	case FetchNum:
		return "num"
	case FetchBoth:
		return "both"
	default:
		return "assoc"
	}
}

// ParseFetchMode, "assoc", "num" veya "both" değerini ayrıştırır (büyük/küçük harf duyarsız).
func ParseFetchMode(s string) (FetchMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "assoc":
		return FetchAssoc, nil
	case "num":
		return FetchNum, nil
	case "both":
		return FetchBoth, nil
	}
	return FetchAssoc, fmt.Errorf("fluentdb: unknown fetch mode %q (want assoc, num or both)", s)
}

func (m FetchMode) byName() bool { return m == FetchAssoc || m == FetchBoth }

func (m FetchMode) byPosition() bool { return m == FetchNum || m == FetchBoth }

// Row, okunan tek bir sonuç satırıdır.
type Row struct {
	mode    FetchMode
	columns []string
	values  []any
}

// NewRow, paralel kolon ve değer slice'larından bir satır kurar.
func NewRow(mode FetchMode, columns []string, values []any) Row {
	return Row{mode: mode, columns: columns, values: values}
}

// Mode, satırın okunduğu fetch modunu döndürür.
func (r Row) Mode() FetchMode { return r.mode }

// Len, satırdaki değer sayısını döndürür.
func (r Row) Len() int { return len(r.values) }

// Get, kolonun değerini döndürür. Aynı adı taşıyan birden fazla kolon varsa
// sonuncusu geçerlidir. FetchNum ile okunan satırlar adla adreslenemez.
func (r Row) Get(column string) (any, bool) {
	if !r.mode.byName() {
		return nil, false
	}
	for i := len(r.columns) - 1; i >= 0; i-- {
		if r.columns[i] == column {
			return r.values[i], true
		}
	}
	return nil, false
}

// At, i'nci sıradaki değeri döndürür. FetchAssoc ile okunan satırlar sırayla
// adreslenemez.
func (r Row) At(i int) (any, bool) {
	if !r.mode.byPosition() || i < 0 || i >= len(r.values) {
		return nil, false
	}
	return r.values[i], true
}

// Columns, kolon adlarını sonuç sırasıyla döndürür; FetchNum satırları için nil.
func (r Row) Columns() []string {
	if !r.mode.byName() {
		return nil
	}
	return append([]string(nil), r.columns...)
}

// Map, satırı kolon adına göre anahtarlanmış olarak döndürür; FetchNum satırları için nil.
func (r Row) Map() map[string]any {
	if !r.mode.byName() {
		return nil
	}
	m := make(map[string]any, len(r.columns))
	for i, c := range r.columns {
		m[c] = r.values[i]
	}
	return m
}

// Values, satırı sırayla döndürür; FetchAssoc satırları için nil.
func (r Row) Values() []any {
	if !r.mode.byPosition() {
		return nil
	}
	return append([]any(nil), r.values...)
}

// rowsCursor, *sqlx.Rows'u Cursor'a uyarlar.
type rowsCursor struct {
	rows    *sqlx.Rows
	columns []string
}

func newRowsCursor(rows *sqlx.Rows) *rowsCursor {
	return &rowsCursor{rows: rows}
}

func (c *rowsCursor) FetchOne(mode FetchMode) (Row, bool, error) {
	if !c.rows.Next() {
		return Row{}, false, c.rows.Err()
	}
	row, err := c.scan(mode)
	if err != nil {
		return Row{}, false, err
	}
	return row, true, nil
}

func (c *rowsCursor) FetchAll(mode FetchMode) ([]Row, error) {
	out := make([]Row, 0)
	for c.rows.Next() {
		row, err := c.scan(mode)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	if err := c.rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *rowsCursor) scan(mode FetchMode) (Row, error) {
	if c.columns == nil {
		cols, err := c.rows.Columns()
		if err != nil {
			return Row{}, err
		}
		c.columns = cols
	}

	values, err := c.rows.SliceScan()
	if err != nil {
		return Row{}, err
	}
	for i, v := range values {
		values[i] = normalizeValue(v)
	}
	return NewRow(mode, c.columns, values), nil
}

func (c *rowsCursor) Close() error {
	return c.rows.Close()
}

// ownedCursor, satırlarla birlikte onları üreten statement'ı da kapatır.
type ownedCursor struct {
	Cursor
	stmt Statement
}

func (c *ownedCursor) Close() error {
	err := c.Cursor.Close()
	if serr := c.stmt.Close(); err == nil {
		err = serr
	}
	return err
}
