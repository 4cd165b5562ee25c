package dialect

import (
	"strconv"

	"github.com/jmoiron/sqlx"
)

// Syntax, bir sürücünün SQL metnindeki yer tutucu ve tırnak kurallarını tanımlar.
// :name yer tutucuları derlenirken tırnak içindeki metin, yorumlar ve (PostgreSQL'de)
// dollar-quoted gövdeler olduğu gibi bırakılır.
type Syntax struct {
	// Bind, sqlx bindvar tipidir (sqlx.QUESTION, sqlx.DOLLAR, sqlx.AT, sqlx.NAMED).
	Bind int

	// BackslashEscapes, string içinde '\' ile kaçışa izin verir (MySQL).
	BackslashEscapes bool

	// HashComments, '#' ile başlayan satır yorumlarını tanır (MySQL).
	HashComments bool

	// DollarQuotes, $tag$ ... $tag$ gövdelerini tanır (PostgreSQL).
	DollarQuotes bool
}

// StandardSyntax returns the syntax for a driver no profile answers to: the
// bindvar sqlx associates with driverName and standard SQL quoting.
func StandardSyntax(driverName string) Syntax {
	return Syntax{Bind: sqlx.BindType(driverName)}
}

// Placeholder, n'inci (1'den başlayan) bindvar'ı name parametresi için üretir.
func (s Syntax) Placeholder(name string, n int) string {
	switch s.Bind {
	case sqlx.DOLLAR:
		return "$" + strconv.Itoa(n)
	case sqlx.AT:
		return "@p" + strconv.Itoa(n)
	case sqlx.NAMED:
		return ":" + name
	default:
		return "?"
	}
}
