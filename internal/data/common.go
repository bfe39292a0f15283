package data

import "strings"

// Sort direction constants shared by list queries.
const (
	sortDirAsc  = "asc"
	sortDirDesc = "desc"
)

const defaultListLimit = 50

// validateSortOptions validates a requested sort column against an allowlist
// and returns a safe column and direction. Unknown values fall back to the
// provided default column and descending order.
func validateSortOptions(sort, dir, defaultCol string, allowed map[string]string) (string, string) {
	sortCol := defaultCol
	sortDir := sortDirDesc

	if sort != "" {
		if validSort, ok := allowed[strings.ToLower(strings.TrimSpace(sort))]; ok {
			sortCol = validSort
		}
	}
	if dir != "" {
		switch strings.ToLower(strings.TrimSpace(dir)) {
		case sortDirAsc:
			sortDir = sortDirAsc
		case sortDirDesc:
			sortDir = sortDirDesc
		}
	}
	return sortCol, sortDir
}

// trimmedOrEmpty trims an optional string, treating nil as empty.
func trimmedOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
