package usecase

import (
	"errors"
	"fmt"

	"floor-layout/internal/floorplan"
)

// ErrNotFound is returned when the tenant has no matching layout or table.
var ErrNotFound = errors.New("not found")

const (
	CodeNoTables       = floorplan.CodeNoTables
	CodeTablesOverlap  = floorplan.CodeTablesOverlap
	CodeDuplicateTable = floorplan.CodeDuplicateTable
	CodeInvalidStatus  = "INVALID_STATUS"
)

// LayoutError is a domain rejection that maps to 400 with a stable code.
type LayoutError struct {
	Code    string
	Message string
	Details any
}

func (e *LayoutError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// checkLayout applies the save/activate rules in order: empty layout, duplicate
// ids, then the first overlapping pair.
func checkLayout(tables []floorplan.Table) *LayoutError {
	if len(tables) == 0 {
		return &LayoutError{
			Code:    CodeNoTables,
			Message: "Layout must contain at least one table",
		}
	}

	if dups := floorplan.DuplicateIDs(tables); len(dups) > 0 {
		return &LayoutError{
			Code:    CodeDuplicateTable,
			Message: fmt.Sprintf("Duplicate table id: %s", dups[0]),
			Details: map[string]any{"tableIds": dups},
		}
	}

	if a, b, ok := floorplan.FirstOverlap(tables); ok {
		return &LayoutError{
			Code:    CodeTablesOverlap,
			Message: floorplan.OverlapMessage(a, b),
			Details: map[string]any{
				"tables":   []string{a.DisplayName(), b.DisplayName()},
				"tableIds": []string{a.ID, b.ID},
			},
		}
	}

	return nil
}
