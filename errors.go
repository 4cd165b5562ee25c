package fluentdb

import (
	"errors"

	"github.com/biyonik/go-fluent-db/dialect"
)

// Sentinel errors for go-fluent-db.
// These errors can be checked using errors.Is().
var (
	// ErrNoStatement is returned when Where, OrderBy or a fetch is used before
	// Select or Query started a statement.
	ErrNoStatement = errors.New("fluentdb: no statement; call Select or Query first")

	// ErrStatementConsumed is returned when a builder is reused after its
	// terminal call without starting a new statement.
	ErrStatementConsumed = errors.New("fluentdb: statement already executed; call Select or Query to start a new one")

	// ErrMalformedCondition is returned when a Where value with an operator
	// character is not of the form "<operator> <value>".
	ErrMalformedCondition = errors.New("fluentdb: malformed condition")

	// ErrInvalidIdentifier is returned in strict mode when a table or column name contains invalid characters.
	ErrInvalidIdentifier = errors.New("fluentdb: invalid SQL identifier")

	// ErrNoTable is returned when Insert is called without a table name.
	ErrNoTable = errors.New("fluentdb: no table specified")

	// ErrNoColumns is returned when Insert has no columns.
	ErrNoColumns = errors.New("fluentdb: no columns specified")

	// ErrNoExecutor is returned when a terminal call runs on a builder without an Executor.
	ErrNoExecutor = errors.New("fluentdb: no executor configured")

	// ErrWhereAfterOrderBy is returned when Where is called after OrderBy on the same statement.
	ErrWhereAfterOrderBy = errors.New("fluentdb: WHERE after ORDER BY; add conditions before OrderBy")

	// ErrMissingParam is returned when a :name placeholder has no value in the bound params.
	ErrMissingParam = errors.New("fluentdb: missing parameter")
)

// ErrorDetail is the structured driver error, the counterpart of PDO's errorInfo.
type ErrorDetail = dialect.ErrorDetail

// QueryError wraps a driver error with the statement that caused it.
type QueryError struct {
	Op     string
	Query  string
	Err    error
	Detail ErrorDetail
}

func (e *QueryError) Error() string {
	return "fluentdb: " + e.Op + ": " + e.Err.Error()
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// newQueryError creates a QueryError and resolves its detail from the driver error.
func newQueryError(op, query string, err error) *QueryError {
	return &QueryError{
		Op:     op,
		Query:  query,
		Err:    err,
		Detail: dialect.DetailOf(err),
	}
}

// MalformedConditionError describes a Where value that could not be split
// into an operator and a value.
type MalformedConditionError struct {
	Column string
	Value  string
	Reason string
}

func (e *MalformedConditionError) Error() string {
	return "fluentdb: malformed condition for column '" + e.Column + "' (" + e.Value + "): " + e.Reason
}

func (e *MalformedConditionError) Is(target error) bool {
	return target == ErrMalformedCondition
}

// MissingParamError reports a :name placeholder with no value in the bound params.
type MissingParamError struct {
	Name string
}

func (e *MissingParamError) Error() string {
	return "fluentdb: missing parameter :" + e.Name
}

func (e *MissingParamError) Is(target error) bool {
	return target == ErrMissingParam
}

// ValidationError represents an identifier validation error.
type ValidationError struct {
	Identifier string
	Context    string
	Reason     string
}

func (e *ValidationError) Error() string {
	return "fluentdb: invalid " + e.Context + " '" + e.Identifier + "': " + e.Reason
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidIdentifier
}

// NewValidationError creates a new ValidationError.
func NewValidationError(identifier, context, reason string) *ValidationError {
	return &ValidationError{
		Identifier: identifier,
		Context:    context,
		Reason:     reason,
	}
}

// WrapError prefixes err with the operation that failed. nil stays nil.
func WrapError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &opError{op: op, err: err}
}

type opError struct {
	op  string
	err error
}

func (e *opError) Error() string { return "fluentdb: " + e.op + ": " + e.err.Error() }

func (e *opError) Unwrap() error { return e.err }
