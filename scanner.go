package fluentdb

import (
	"database/sql"
	"errors"
	"reflect"

	"github.com/jmoiron/sqlx"
)

// =====================================================================================
// FLUENTDB – SCANNER
// -------------------------------------------------------------------------------------
// Satırların Go struct'larına aktarılması. Kolon–field eşlemesi sqlx'in reflectx
// mapper'ı ile `db:"column"` tag'lerine göre yapılır; etiketsiz alanlar küçük harfe
// çevrilmiş alan adıyla eşlenir.
//
// @author    Ahmet ALTUN
// @github    github.com/biyonik
// @linkedin  linkedin.com/in/biyonik
// @email     ahmet.altun60@gmail.com
// =====================================================================================

var (
	// ErrNotAPointer, tarama hedefi nil olmayan bir pointer değilse döner.
	ErrNotAPointer = errors.New("fluentdb: destination must be a non-nil pointer")

	// ErrNotASlice, GetAllInto hedefi bir slice pointer'ı değilse döner.
	ErrNotASlice = errors.New("fluentdb: destination must be a pointer to a slice")
)

// ScanOne, sıradaki satırı dest içine tarar. Struct hedefler kolon adına göre
// doldurulur; diğer hedefler (*int64, *time.Time gibi) satırın tek kolonunu alır.
// Sonuç kümesi bittiyse false döner.
func (c *rowsCursor) ScanOne(dest any) (bool, error) {
	if err := checkPointer(dest); err != nil {
		return false, err
	}
	if !c.rows.Next() {
		return false, c.rows.Err()
	}
	var err error
	if isStructDest(dest) {
		err = c.rows.StructScan(dest)
	} else {
		err = c.rows.Scan(dest)
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ScanAll, kalan tüm satırları dest içine tarar; dest bir struct ya da struct
// pointer slice'ının pointer'ıdır.
func (c *rowsCursor) ScanAll(dest any) error {
	if err := checkPointer(dest); err != nil {
		return err
	}
	if reflect.ValueOf(dest).Elem().Kind() != reflect.Slice {
		return ErrNotASlice
	}
	return sqlx.StructScan(c.rows, dest)
}

var scannerType = reflect.TypeOf((*sql.Scanner)(nil)).Elem()

// isStructDest, dest'in kolon kolon eşlenecek bir struct'ı gösterip göstermediğini
// bildirir: sql.Scanner olmayan ve dışa açık alanları bulunan bir struct.
func isStructDest(dest any) bool {
	t := reflect.TypeOf(dest)
	if reflect.PointerTo(t.Elem()).Implements(scannerType) {
		return false
	}
	t = t.Elem()
	if t.Kind() != reflect.Struct {
		return false
	}
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).IsExported() {
			return true
		}
	}
	return false
}

func checkPointer(dest any) error {
	v := reflect.ValueOf(dest)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return ErrNotAPointer
	}
	return nil
}

// normalizeValue, sürücünün []byte değerlerini string'e çevirir. MySQL metin
// kolonlarını byte olarak döndürür.
func normalizeValue(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}
