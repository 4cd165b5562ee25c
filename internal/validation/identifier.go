package validation

import (
	"regexp"
)

// identifierRegex, SQL tabloları ve kolonları için geçerli identifier'ları doğrular.
// Geçerli karakterler: harfler, rakamlar, alt çizgi. İlk karakter harf veya alt çizgi olmalıdır.
// Noktalar (.) table.column referanslarını destekler.
var identifierRegex = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*(\.[a-zA-Z_][a-zA-Z0-9_]*)?$`)

// aliasRegex, "table as alias" veya "table alias" formatlarını eşler.
var aliasRegex = regexp.MustCompile(`(?i)^([a-zA-Z_][a-zA-Z0-9_]*)\s+(?:as\s+)?([a-zA-Z_][a-zA-Z0-9_]*)$`)

// ValidateIdentifier, verilen identifier'ın geçerli bir SQL identifier olup olmadığını kontrol eder.
func ValidateIdentifier(id string) error {
	if id == "" {
		return &IdentifierError{
			Identifier: id,
			Reason:     "identifier cannot be empty",
		}
	}

	if len(id) > 128 {
		return &IdentifierError{
			Identifier: id,
			Reason:     "identifier exceeds maximum length of 128 characters",
		}
	}

	if !identifierRegex.MatchString(id) {
		return &IdentifierError{
			Identifier: id,
			Reason:     "identifier contains invalid characters; only letters, numbers, underscores, and dots are allowed",
		}
	}

	return nil
}

// ValidateTable validates a table reference. Accepted forms: "table",
// "table alias", "table as alias".
func ValidateTable(table string) error {
	if table == "" {
		return &IdentifierError{
			Identifier: table,
			Reason:     "table name cannot be empty",
		}
	}

	if m := aliasRegex.FindStringSubmatch(table); m != nil {
		if err := ValidateIdentifier(m[1]); err != nil {
			return err
		}
		if err := ValidateIdentifier(m[2]); err != nil {
			return &IdentifierError{
				Identifier: m[2],
				Reason:     "invalid alias: " + err.Error(),
			}
		}
		return nil
	}

	return ValidateIdentifier(table)
}

// ValidateColumn validates a selected column. "*" is accepted.
func ValidateColumn(column string) error {
	if column == "*" {
		return nil
	}
	return ValidateIdentifier(column)
}

// IdentifierError, identifier doğrulama hatalarını temsil eder.
type IdentifierError struct {
	Identifier string
	Reason     string
}

// Error, error arayüzünü uygular.
func (e *IdentifierError) Error() string {
	if e.Identifier == "" {
		return "fluentdb: invalid identifier: " + e.Reason
	}
	return "fluentdb: invalid identifier '" + e.Identifier + "': " + e.Reason
}
