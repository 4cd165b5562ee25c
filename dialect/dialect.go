// Package dialect, desteklenen veritabanı sürücüleri için bağlantı profillerini sağlar.
// Bir profil; database/sql sürücü adını, bağlantı dizesinin (DSN) nasıl kurulacağını
// ve sürücüye özgü hataların ortak bir ErrorDetail yapısına nasıl çevrileceğini bilir.
//
// Profiller SQL metnini yeniden yazmaz. Her profilin Syntax'ı, :name yer tutucularının
// hangi bindvar'a (?, $1) derleneceğini ve hangi tırnak/yorum biçimlerinin atlanacağını söyler.
//
// Yazar: Ahmet ALTUN
// Github: github.com/biyonik
// LinkedIn: linkedin.com/in/biyonik
// Email: ahmet.altun60@gmail.com
package dialect

import (
	"errors"
	"sort"
	"strconv"
	"strings"
)

// ----------------------------------------------------------------------------
// Connection
// ----------------------------------------------------------------------------

// Conn, bir profilin DSN üretmek için ihtiyaç duyduğu bağlantı bilgileridir.
type Conn struct {
	Host     string
	Port     int
	Database string
	Username string
	Password string
	Charset  string
	TLS      bool
}

// ----------------------------------------------------------------------------
// Error detail
// ----------------------------------------------------------------------------

// ErrorDetail is the structured form of a driver failure: the SQLSTATE class,
// the driver specific numeric code, and the driver message.
type ErrorDetail struct {
	SQLState string `json:"sqlstate,omitempty" yaml:"sqlstate,omitempty"`
	Code     int    `json:"code,omitempty" yaml:"code,omitempty"`
	Message  string `json:"message" yaml:"message"`
}

// String renders the detail as "SQLSTATE[code]: message".
func (d ErrorDetail) String() string {
	var b strings.Builder
	if d.SQLState != "" {
		b.WriteString("SQLSTATE[")
		b.WriteString(d.SQLState)
		b.WriteString("]")
	}
	if d.Code != 0 {
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString("(")
		b.WriteString(strconv.Itoa(d.Code))
		b.WriteString(")")
	}
	if b.Len() > 0 {
		b.WriteString(": ")
	}
	b.WriteString(d.Message)
	return b.String()
}

// ----------------------------------------------------------------------------
// Profile
// ----------------------------------------------------------------------------

// Profile, tek bir veritabanı sürücüsünün bağlantı davranışını tanımlar.
type Profile interface {
	// Name, profilin kanonik adını döndürür (mysql, postgres, sqlite).
	Name() string

	// DriverName, database/sql ve sqlx için kayıtlı sürücü adını döndürür.
	DriverName() string

	// DefaultPort, Conn.Port verilmediğinde kullanılan porttur. Dosya tabanlı
	// sürücüler için 0 döner.
	DefaultPort() int

	// DSN, bağlantı bilgilerinden sürücüye uygun bağlantı dizesini üretir.
	DSN(c Conn) string

	// ErrorDetail, sürücüye ait bir hatayı ErrorDetail'e çevirir. Hata bu
	// sürücüye ait değilse false döner.
	ErrorDetail(err error) (ErrorDetail, bool)

	// Syntax, sürücünün bindvar ve tırnak kurallarını döndürür.
	Syntax() Syntax
}

// ErrUnknownDriver is returned by Lookup for names no profile answers to.
var ErrUnknownDriver = errors.New("dialect: unknown driver")

var (
	profiles = map[string]Profile{}
	ordered  []Profile
)

// register adds p under its canonical name and every alias.
func register(p Profile, aliases ...string) {
	profiles[p.Name()] = p
	for _, a := range aliases {
		profiles[a] = p
	}
	ordered = append(ordered, p)
}

// Lookup returns the profile registered for name. Names are case-insensitive
// and accept the database/sql driver names as aliases ("pgx", "sqlite3").
func Lookup(name string) (Profile, error) {
	p, ok := profiles[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, &DriverError{Driver: name}
	}
	return p, nil
}

// Names returns every accepted profile name, sorted.
func Names() []string {
	names := make([]string, 0, len(profiles))
	for n := range profiles {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// DetailOf converts err into an ErrorDetail using the first profile that
// recognises it. Unrecognised errors keep only their message.
func DetailOf(err error) ErrorDetail {
	if err == nil {
		return ErrorDetail{}
	}
	for _, p := range ordered {
		if d, ok := p.ErrorDetail(err); ok {
			return d
		}
	}
	return ErrorDetail{Message: err.Error()}
}

// DriverError reports an unsupported driver name.
type DriverError struct {
	Driver string
}

// Error, hatayı string olarak döndürür.
func (e *DriverError) Error() string {
	return "dialect: unknown driver '" + e.Driver + "' (supported: " + strings.Join(Names(), ", ") + ")"
}

// Is, errors.Is(err, ErrUnknownDriver) kontrolünü destekler.
func (e *DriverError) Is(target error) bool {
	return target == ErrUnknownDriver
}
