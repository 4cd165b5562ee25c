package fluentdb

import (
	"strings"

	"github.com/biyonik/go-fluent-db/dialect"
)

// -----------------------------------------------------------------------------
//  NAMED PLACEHOLDER DERLEYİCİ
//
//  Builder ve Query metinleri :name yer tutucuları taşır. Bu dosya metni bir kez
//  tarar ve her :name'i sürücünün bindvar'ına (?, $1, @p1) çevirir:
//
//    - 'tek', "çift" ve `backtick` tırnak içindeki metin olduğu gibi kalır.
//    - -- ve /* */ yorumları (MySQL'de # da) olduğu gibi kalır.
//    - PostgreSQL'de $tag$ ... $tag$ gövdeleri olduğu gibi kalır.
//    - :: (PostgreSQL cast) olduğu gibi kalır; id::text bir yer tutucu değildir.
//    - Ad, harf veya '_' ile başlar; harf, rakam, '_' ve ad karakterleri
//      arasındaki '.' ile devam eder. Tırnak dışındaki ':' + rakam olduğu gibi kalır.
//
//  -- @author   Ahmet ALTUN
//  -- @github   github.com/biyonik
//  -- @linkedin linkedin.com/in/biyonik
//  -- @email    ahmet.altun60@gmail.com
// -----------------------------------------------------------------------------

// namedQuery, bindvar'lara derlenmiş metin ve her bindvar'ın parametre adıdır.
type namedQuery struct {
	text  string
	names []string
}

// args, names sırasıyla params'tan argüman listesini kurar.
func (q namedQuery) args(params Params) ([]any, error) {
	args := make([]any, len(q.names))
	for i, name := range q.names {
		v, ok := params[name]
		if !ok {
			return nil, &MissingParamError{Name: name}
		}
		args[i] = v
	}
	return args, nil
}

// compileNamed, text içindeki :name yer tutucularını syn'in bindvar'ına çevirir.
// Kapanmamış tırnak veya yorum metnin sonuna kadar sürer; hatayı sürücü bildirir.
func compileNamed(text string, syn dialect.Syntax) namedQuery {
	if strings.IndexByte(text, ':') < 0 {
		return namedQuery{text: text}
	}

	var (
		out   strings.Builder
		names []string
		n     = len(text)
	)
	out.Grow(n)

	for i := 0; i < n; {
		c := text[i]
		switch {
		case c == '\'' || c == '"':
			j := skipQuoted(text, i, c, syn.BackslashEscapes)
			out.WriteString(text[i:j])
			i = j

		case c == '`':
			j := skipQuoted(text, i, c, false)
			out.WriteString(text[i:j])
			i = j

		case c == '-' && i+1 < n && text[i+1] == '-', c == '#' && syn.HashComments:
			j := lineEnd(text, i)
			out.WriteString(text[i:j])
			i = j

		case c == '/' && i+1 < n && text[i+1] == '*':
			j := n
			if k := strings.Index(text[i+2:], "*/"); k >= 0 {
				j = i + 2 + k + 2
			}
			out.WriteString(text[i:j])
			i = j

		case c == '$' && syn.DollarQuotes && (i == 0 || !isNameByte(text[i-1])):
			tag := dollarTag(text[i:])
			if tag == "" {
				out.WriteByte(c)
				i++
				continue
			}
			j := n
			if k := strings.Index(text[i+len(tag):], tag); k >= 0 {
				j = i + len(tag) + k + len(tag)
			}
			out.WriteString(text[i:j])
			i = j

		case c == ':' && i+1 < n && text[i+1] == ':':
			out.WriteString("::")
			i += 2

		case c == ':' && i+1 < n && isNameStart(text[i+1]):
			j := nameEnd(text, i+1)
			name := text[i+1 : j]
			names = append(names, name)
			out.WriteString(syn.Placeholder(name, len(names)))
			i = j

		default:
			out.WriteByte(c)
			i++
		}
	}

	return namedQuery{text: out.String(), names: names}
}

// skipQuoted, s[i]'de açılan tırnağın hemen sonrasındaki indeksi döndürür.
// Çift yazılmış tırnak karakteri literal'in içinde kalır.
func skipQuoted(s string, i int, quote byte, backslash bool) int {
	for j := i + 1; j < len(s); j++ {
		switch s[j] {
		case '\\':
			if backslash {
				j++
			}
		case quote:
			if j+1 < len(s) && s[j+1] == quote {
				j++
				continue
			}
			return j + 1
		}
	}
	return len(s)
}

// lineEnd, s[i]'deki yorumu bitiren satır sonunun hemen sonrasını döndürür.
func lineEnd(s string, i int) int {
	if k := strings.IndexByte(s[i:], '\n'); k >= 0 {
		return i + k + 1
	}
	return len(s)
}

// dollarTag, s "$$" veya "$tag$" ile başlıyorsa onu, aksi halde "" döndürür.
func dollarTag(s string) string {
	j := 1
	if j < len(s) && isNameStart(s[j]) {
		for j < len(s) && isNameByte(s[j]) {
			j++
		}
	}
	if j < len(s) && s[j] == '$' {
		return s[:j+1]
	}
	return ""
}

// nameEnd, s[i]'de başlayan yer tutucu adının sonunu döndürür. '.' yalnızca ad
// karakterleri arasında (:users.id gibi) ada dahildir.
func nameEnd(s string, i int) int {
	j := i
	for j < len(s) {
		if isNameByte(s[j]) {
			j++
			continue
		}
		if s[j] == '.' && j+1 < len(s) && isNameStart(s[j+1]) {
			j++
			continue
		}
		break
	}
	return j
}

func isNameStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isNameByte(c byte) bool {
	return isNameStart(c) || (c >= '0' && c <= '9')
}
