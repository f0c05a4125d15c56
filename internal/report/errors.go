package report

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsafeQuery marks a safety-gate rejection. It is always a hard stop;
// execution must not proceed past it.
var ErrUnsafeQuery = errors.New("query rejected by safety check")

// UnknownTableError reports a reference to a table the catalog does not
// contain, carrying the valid alternatives.
type UnknownTableError struct {
	Table string
	Known []string
}

func (e *UnknownTableError) Error() string {
	return fmt.Sprintf("unknown table %q (known tables: %s)", e.Table, strings.Join(e.Known, ", "))
}

// ColumnNotFoundError reports a requested column that resolves to neither
// a base column of the primary table nor a registered enhanced column.
type ColumnNotFoundError struct {
	Table  string
	Column string
	Valid  []string
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("column %q not found on table %q (valid columns: %s)",
		e.Column, e.Table, strings.Join(e.Valid, ", "))
}
