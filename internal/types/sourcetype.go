package types

import "fmt"

// SourceTypes is the closed set of evidentiary source categories a
// field value can be attributed to. The order of this slice is also the
// system default trust ranking, so the permutation validator and the
// resolver tie-break must both read from here and nowhere else.
var SourceTypes = []string{
	"teardown",
	"a2mac1",
	"oem",
	"regulatory",
	"cad",
	"calculated",
	"press",
	"user",
}

// DefaultSourcePriority returns a fresh copy of the default ranking so
// callers can't mutate the shared slice.
func DefaultSourcePriority() []string {
	out := make([]string, len(SourceTypes))
	copy(out, SourceTypes)
	return out
}

// ValidatePriorityOrder rejects anything that is not an exact
// permutation of SourceTypes: wrong length, duplicates, or entries
// outside the enumeration.
func ValidatePriorityOrder(order []string) error {
	if len(order) != len(SourceTypes) {
		return fmt.Errorf("priority order must contain exactly %d source types, got %d", len(SourceTypes), len(order))
	}
	seen := make(map[string]bool, len(order))
	for _, st := range order {
		if !IsValidSourceType(st) {
			return fmt.Errorf("unknown source type %q", st)
		}
		if seen[st] {
			return fmt.Errorf("duplicate source type %q", st)
		}
		seen[st] = true
	}
	return nil
}

func IsValidSourceType(sourceType string) bool {
	for _, st := range SourceTypes {
		if st == sourceType {
			return true
		}
	}
	return false
}

// Field data types.
const (
	DataTypeText   = "text"
	DataTypeNumber = "number"
	DataTypeSelect = "select"
)

func IsValidDataType(dataType string) bool {
	switch dataType {
	case DataTypeText, DataTypeNumber, DataTypeSelect:
		return true
	}
	return false
}
