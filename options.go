package fluentdb

// -----------------------------------------------------------------------------
//  Bu dosya; DB ve StatementBuilder davranışını tek noktadan yöneten *Option*
//  fonksiyonlarını içerir. Her With* fonksiyonu DB kurulumuna eklenir ve o DB'den
//  üretilen her builder'a aktarılır.
//
//  -- @author   Ahmet ALTUN
//  -- @github   github.com/biyonik
//  -- @linkedin linkedin.com/in/biyonik
//  -- @email    ahmet.altun60@gmail.com
// -----------------------------------------------------------------------------

// Option tipi, bir *DB* örneği üzerinde çalışan yapılandırma fonksiyonlarının
// temel imzasıdır.
type Option func(*DB)

// WithLogger, sorgu kayıtlarının yazılacağı Logger'ı belirler. Kayıt yalnızca
// WithDebug(true) ile birlikte yapılır. nil verilirse NopLogger kullanılır.
//
// Örnek:
//
//	db := fluentdb.NewDB(sqlxDB,
//	    fluentdb.WithDebug(true),
//	    fluentdb.WithLogger(fluentdb.NewZerologLogger(log)),
//	)
func WithLogger(logger Logger) Option {
	return func(d *DB) {
		if logger == nil {
			logger = NopLogger{}
		}
		d.logger = logger
	}
}

// WithDebug, debug modunu açar veya kapatır. Debug açıkken çalıştırılan her
// ifade süresiyle birlikte Logger'a iletilir.
func WithDebug(enabled bool) Option {
	return func(d *DB) {
		d.debug = enabled
	}
}

// WithLogArgs, parametre değerlerinin loglara açık yazılmasına izin verir.
// Kapalıyken string ve byte değerleri yalnızca uzunluklarıyla görünür.
func WithLogArgs(enabled bool) Option {
	return func(d *DB) {
		d.logArgs = enabled
	}
}

// WithFetchMode, GetFirst ve GetAll için varsayılan fetch modunu belirler.
// Varsayılan FetchAssoc'tur; builder üzerinde SetFetchMode ile sorgu bazında değiştirilebilir.
func WithFetchMode(mode FetchMode) Option {
	return func(d *DB) {
		d.fetchMode = mode
	}
}

// WithStrictIdentifiers, tablo ve kolon adlarının doğrulanmasını açar.
// Kapalıyken (varsayılan) adlar çağıranın sorumluluğundadır ve olduğu gibi yazılır.
func WithStrictIdentifiers(enabled bool) Option {
	return func(d *DB) {
		d.strict = enabled
	}
}

// BuilderOption, tek bir StatementBuilder'ı yapılandırır.
type BuilderOption func(*StatementBuilder)

// Strict, tek bir builder üzerinde ad doğrulamasını açar.
func Strict() BuilderOption {
	return func(b *StatementBuilder) {
		b.strict = true
	}
}

// WithBuilderFetchMode, tek bir builder'ın fetch modunu belirler.
func WithBuilderFetchMode(mode FetchMode) BuilderOption {
	return func(b *StatementBuilder) {
		b.fetchMode = mode
	}
}

func applyOptions(d *DB, opts []Option) {
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
}
