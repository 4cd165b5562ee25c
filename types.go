package fluentdb

import (
	"github.com/biyonik/go-fluent-db/dialect"
)

/*
 * ----------------------------------------------------------------------------
 * FLUENTDB TYPE DEFINITIONS
 * ----------------------------------------------------------------------------
 *
 * Bu dosya, paketin veri taşıma ve yapılandırma tiplerini içerir:
 * 1. Params: named placeholder (:name) → bağlanan değer eşlemesi.
 * 2. Config: bağlantının "nereye" yapılacağını tanımlayan yapı; DSN üretimi
 *    sürücü profiline (dialect) devredilir.
 *
 * @author Ahmet ALTUN
 * @github github.com/biyonik
 * @linkedin linkedin.com/in/biyonik
 * @email ahmet.altun60@gmail.com
 * ----------------------------------------------------------------------------
 */

// Params, yer tutucu adını (baştaki ':' olmadan) bağlanan değere eşler.
// Değerler string, sayı, nil ya da sürücünün kabul ettiği herhangi bir tip olabilir.
type Params map[string]any

// Clone, p'nin yüzeysel bir kopyasını döndürür. nil alıcı boş bir map verir.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Config, veritabanı bağlantısının yapılandırma şemasıdır.
//
// Host, Database, Username ve Password dörtlüsü bağlantının özüdür; Driver hangi
// sürücü profilinin DSN'i kuracağını seçer.
type Config struct {
	Driver   string // Kullanılacak sürücü: "mysql", "postgres", "sqlite"
	Host     string // Veritabanı sunucusunun adresi (IP veya domain)
	Port     int    // Bağlantı portu; 0 ise sürücünün varsayılanı
	Database string // Veritabanı adı; sqlite için dosya yolu
	Username string // Yetkilendirme için kullanıcı adı
	Password string // Yetkilendirme için parola
	Charset  string // Karakter seti (mysql varsayılanı: utf8mb4)
	TLS      bool   // TLS/SSL şifreli bağlantı zorunluluğu
}

// DefaultConfig, localhost için bir MySQL yapılandırması döndürür.
func DefaultConfig() *Config {
	return &Config{
		Driver:  "mysql",
		Host:    "localhost",
		Port:    3306,
		Charset: "utf8mb4",
	}
}

// Profile, c.Driver için sürücü profilini çözer.
func (c *Config) Profile() (dialect.Profile, error) {
	return dialect.Lookup(c.Driver)
}

// DSN, c için sürücünün bağlantı dizesini kurar.
func (c *Config) DSN() (string, error) {
	p, err := c.Profile()
	if err != nil {
		return "", err
	}
	return p.DSN(c.conn()), nil
}

func (c *Config) conn() dialect.Conn {
	return dialect.Conn{
		Host:     c.Host,
		Port:     c.Port,
		Database: c.Database,
		Username: c.Username,
		Password: c.Password,
		Charset:  c.Charset,
		TLS:      c.TLS,
	}
}
