package fluentdb

import (
	"sort"
	"strings"

	"github.com/biyonik/go-fluent-db/internal/validation"
)

/*
 * ----------------------------------------------------------------------------
 * WHERE KOŞULLARI
 * ----------------------------------------------------------------------------
 *
 * Where'e verilen her kolon/değer çifti burada sınıflandırılır:
 * 1. Equals: değer olduğu gibi bağlanır ("id = :id").
 * 2. Compare: '<', '>' veya '=' içeren string "<operatör> <değer>" olarak
 *    ayrıştırılır ve yalnızca değer kısmı bağlanır ("age >= :age").
 *
 * @author Ahmet ALTUN
 * @github github.com/biyonik
 * @linkedin linkedin.com/in/biyonik
 * @email ahmet.altun60@gmail.com
 * ----------------------------------------------------------------------------
 */

// Cond, Where'e verilen tek bir kolon/değer çiftidir. Değer ya eşitlik
// literal'idir ("2") ya da operatör ifadesidir (">= 18").
type Cond struct {
	Column string
	Value  any
}

// CondsFromMap, m'yi kolon adına göre sıralı koşullara çevirir; aynı map her
// zaman aynı ifadeyi üretir.
func CondsFromMap(m map[string]any) []Cond {
	cols := make([]string, 0, len(m))
	for c := range m {
		cols = append(cols, c)
	}
	sort.Strings(cols)

	conds := make([]Cond, len(cols))
	for i, c := range cols {
		conds[i] = Cond{Column: c, Value: m[c]}
	}
	return conds
}

// ConditionKind, ayrıştırılmış bir Condition'ın türüdür.
type ConditionKind int

const (
	// Equals, ham değeri olduğu gibi bağlar: "<kolon> = :<kolon>".
	Equals ConditionKind = iota
	// Compare, operatörden sonraki değeri bağlar: "<kolon> <op> :<kolon>".
	Compare
)

// String, "Equals" veya "Compare" döndürür.
func (k ConditionKind) String() string {
	if k == Compare {
		return "Compare"
	}
	return "Equals"
}

// Condition, bir Cond'un ayrıştırılmış halidir.
type Condition struct {
	Kind     ConditionKind
	Column   string
	Operator string
	Value    any
}

// ParseCondition, raw değerini sınıflandırır. Yalnızca string değerlere bakılır:
// '<', '>' veya '=' içeren bir string tam olarak bir boşlukla ayrılmış
// "<operatör> <değer>" biçiminde olmalı ve operatör izinli listede bulunmalıdır.
// Diğer tüm değerler eşitlik literal'idir.
func ParseCondition(column string, raw any) (Condition, error) {
	s, ok := raw.(string)
	if !ok || !validation.ContainsOperatorChar(s) {
		return Condition{Kind: Equals, Column: column, Operator: "=", Value: raw}, nil
	}

	op, value, err := splitOperator(s)
	if err != nil {
		return Condition{}, &MalformedConditionError{Column: column, Value: s, Reason: err.Error()}
	}
	return Condition{Kind: Compare, Column: column, Operator: op, Value: value}, nil
}

type splitError string

func (e splitError) Error() string { return string(e) }

// splitOperator, "<op> <değer>" ifadesini tek boşluğundan böler.
func splitOperator(s string) (string, string, error) {
	op, value, found := strings.Cut(s, " ")
	switch {
	case !found:
		return "", "", splitError(`expected "<operator> <value>" separated by a space`)
	case op == "":
		return "", "", splitError("missing operator before the space")
	case value == "":
		return "", "", splitError("missing value after the operator")
	case strings.Contains(value, " "):
		return "", "", splitError("value must be a single token; use Query for values containing spaces")
	}

	op, err := validation.NormalizeOperator(op)
	if err != nil {
		return "", "", splitError("operator not allowed, use one of " + strings.Join(validation.AllowedOperators(), " "))
	}
	return op, value, nil
}

// SQL, koşulu sondaki boşluğuyla birlikte yazar: "age >= :age ".
func (c Condition) SQL() string {
	return c.Column + " " + c.Operator + " :" + c.Column + " "
}
