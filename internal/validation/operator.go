// Package validation, koşul operatörlerinin ve tablo/kolon adlarının doğrulanması
// için dahili yardımcı fonksiyonları içerir.
//
// Yazar: Ahmet ALTUN
// Github: github.com/biyonik
// LinkedIn: linkedin.com/in/biyonik
// Email: ahmet.altun60@gmail.com
package validation

import (
	"sort"
	"strings"
)

// allowedOperators, "<operatör> <değer>" biçimindeki koşul değerlerinde kabul edilen
// karşılaştırma operatörleridir.
var allowedOperators = map[string]bool{
	"=":  true,
	"!=": true,
	"<>": true,
	"<":  true,
	">":  true,
	"<=": true,
	">=": true,
}

// ValidateOperator, verilen operatörün izin verilen listede olup olmadığını kontrol eder.
func ValidateOperator(op string) error {
	_, err := NormalizeOperator(op)
	return err
}

// NormalizeOperator trims op and checks it against the allow-list.
func NormalizeOperator(op string) (string, error) {
	normalized := strings.TrimSpace(op)

	if !allowedOperators[normalized] {
		return "", &OperatorError{
			Operator: op,
			Reason:   "operator not in allowed list (" + strings.Join(AllowedOperators(), ", ") + ")",
		}
	}

	return normalized, nil
}

// ContainsOperatorChar reports whether s contains any of '<', '>' or '='.
// A condition value with one of these is read as "<operator> <value>".
func ContainsOperatorChar(s string) bool {
	return strings.ContainsAny(s, "<>=")
}

// AllowedOperators, izin verilen tüm operatörleri sıralı olarak döndürür.
func AllowedOperators() []string {
	ops := make([]string, 0, len(allowedOperators))
	for op := range allowedOperators {
		ops = append(ops, op)
	}
	sort.Strings(ops)
	return ops
}

// OperatorError, operatör doğrulama hatasını temsil eder.
type OperatorError struct {
	Operator string
	Reason   string
}

// Error, error arayüzünü uygular ve hatayı açıklayıcı string olarak döner.
func (e *OperatorError) Error() string {
	return "fluentdb: invalid operator '" + e.Operator + "': " + e.Reason
}
