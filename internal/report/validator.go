package report

import (
	"fmt"
	"regexp"
	"strings"
)

// denyList covers schema/data mutation and execution primitives, matched
// as whole words anywhere in the statement, which also catches stacked
// statements after a semicolon.
var denyList = regexp.MustCompile(`(?i)\b(DROP|DELETE|INSERT|UPDATE|ALTER|CREATE|TRUNCATE|EXEC|EXECUTE|DECLARE)\b`)

// ValidateConfig checks a report configuration for shape problems and
// returns human-readable messages. An empty slice means valid.
func ValidateConfig(cfg Config) []string {
	var errs []string

	if cfg.PrimaryTable == "" {
		errs = append(errs, "primary table is required")
	}
	if len(cfg.Columns) == 0 {
		errs = append(errs, "at least one column is required")
	}

	for i, f := range cfg.Filters {
		if f.Column == "" {
			errs = append(errs, fmt.Sprintf("filter %d: column is required", i+1))
		}
		if f.Operator == "" {
			errs = append(errs, fmt.Sprintf("filter %d: operator is required", i+1))
			continue
		}
		if f.Operator.NeedsValue() && f.Value == "" {
			errs = append(errs, fmt.Sprintf("filter %d: operator %q requires a value", i+1, f.Operator))
		}
		if f.Operator == OpBetween && f.Value2 == "" {
			errs = append(errs, fmt.Sprintf("filter %d: between requires a second value", i+1))
		}
		if f.Operator != OpBetween && f.Value2 != "" {
			errs = append(errs, fmt.Sprintf("filter %d: second value is only valid with between", i+1))
		}
	}

	return errs
}

// ValidateSafety checks that the statement is read-only: it must start
// with SELECT and contain no deny-listed keyword. This is defense in
// depth in front of a read-only role, not a parser.
func ValidateSafety(sql string) (bool, string) {
	trimmed := strings.TrimSpace(sql)
	if trimmed == "" {
		return false, "empty statement"
	}
	if !strings.HasPrefix(strings.ToUpper(trimmed), "SELECT") {
		return false, "only SELECT statements are allowed"
	}
	if m := denyList.FindString(trimmed); m != "" {
		return false, fmt.Sprintf("statement contains forbidden keyword %s", strings.ToUpper(m))
	}
	return true, ""
}
