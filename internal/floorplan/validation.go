package floorplan

import "fmt"

const (
	CodeNoTables       = "NO_TABLES"
	CodeTablesOverlap  = "TABLES_OVERLAP"
	CodeDuplicateTable = "DUPLICATE_TABLE_ID"
)

type Issue struct {
	Code     string   `json:"code"`
	Message  string   `json:"message"`
	TableIDs []string `json:"tableIds,omitempty"`
}

// Validate lists every problem in tables. An empty result means the layout may
// be saved. Issues come in a fixed order: empty layout, duplicate ids, then
// overlapping pairs in table order.
func Validate(tables []Table) []Issue {
	if len(tables) == 0 {
		return []Issue{{Code: CodeNoTables, Message: "Layout must contain at least one table"}}
	}

	var issues []Issue
	for _, id := range DuplicateIDs(tables) {
		issues = append(issues, Issue{
			Code:     CodeDuplicateTable,
			Message:  fmt.Sprintf("Table id %q is used more than once", id),
			TableIDs: []string{id},
		})
	}
	for _, pair := range OverlappingPairs(tables) {
		a, b := tables[pair[0]], tables[pair[1]]
		issues = append(issues, Issue{
			Code:     CodeTablesOverlap,
			Message:  OverlapMessage(a, b),
			TableIDs: []string{a.ID, b.ID},
		})
	}
	return issues
}

// FirstOverlap returns the first pair of overlapping tables, scanning pairs in order.
func FirstOverlap(tables []Table) (Table, Table, bool) {
	for i := 0; i < len(tables); i++ {
		for j := i + 1; j < len(tables); j++ {
			if Overlaps(tables[i].Rect(), tables[j].Rect()) {
				return tables[i], tables[j], true
			}
		}
	}
	return Table{}, Table{}, false
}

// OverlappingPairs returns index pairs (i < j) of every overlapping table pair.
func OverlappingPairs(tables []Table) [][2]int {
	var pairs [][2]int
	for i := 0; i < len(tables); i++ {
		for j := i + 1; j < len(tables); j++ {
			if Overlaps(tables[i].Rect(), tables[j].Rect()) {
				pairs = append(pairs, [2]int{i, j})
			}
		}
	}
	return pairs
}

// DuplicateIDs returns each repeated id once, in first-repeat order.
func DuplicateIDs(tables []Table) []string {
	seen := make(map[string]int, len(tables))
	var dups []string
	for _, t := range tables {
		seen[t.ID]++
		if seen[t.ID] == 2 {
			dups = append(dups, t.ID)
		}
	}
	return dups
}

func OverlapMessage(a, b Table) string {
	return fmt.Sprintf("Tables %s and %s overlap", a.DisplayName(), b.DisplayName())
}
