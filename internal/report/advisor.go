package report

import (
	"fmt"
	"strings"

	"github.com/kmaeshima/db-adhoc-report/internal/schema"
)

// SuggestJoins derives join candidates between two tables from their
// foreign-key metadata, in both directions. Suggestions are advisory
// only; the builder never applies them on its own.
func SuggestJoins(cat *schema.Catalog, tableA, tableB string) ([]JoinSuggestion, error) {
	a := cat.Table(tableA)
	if a == nil {
		return nil, &UnknownTableError{Table: tableA, Known: cat.TableNames()}
	}
	b := cat.Table(tableB)
	if b == nil {
		return nil, &UnknownTableError{Table: tableB, Known: cat.TableNames()}
	}

	var suggestions []JoinSuggestion
	suggestions = append(suggestions, fkSuggestions(a, b)...)
	suggestions = append(suggestions, fkSuggestions(b, a)...)
	return suggestions, nil
}

func fkSuggestions(child, parent *schema.Table) []JoinSuggestion {
	var out []JoinSuggestion
	for _, fk := range child.ForeignKeys {
		if fk.ReferencedTable != parent.Name {
			continue
		}
		conds := make([]string, len(fk.LocalColumns))
		for i := range fk.LocalColumns {
			conds[i] = fmt.Sprintf("%s.%s = %s.%s",
				child.Name, fk.LocalColumns[i], parent.Name, fk.ForeignColumns[i])
		}
		out = append(out, JoinSuggestion{
			Condition: strings.Join(conds, " AND "),
			Type:      "LEFT",
			Description: fmt.Sprintf("%s.%s references %s.%s",
				child.Name, strings.Join(fk.LocalColumns, ", "),
				parent.Name, strings.Join(fk.ForeignColumns, ", ")),
		})
	}
	return out
}
