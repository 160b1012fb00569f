package exec

import (
	"fmt"
	"strings"
)

// Capabilities describes the SQL features supported by a dialect.
type Capabilities struct {
	CaseInsensitiveLike bool // ILIKE operator
	LimitOffset         bool // LIMIT n OFFSET m
}

// UnsupportedFeatureError indicates a feature not supported by the dialect.
type UnsupportedFeatureError struct {
	Feature string
	Dialect string
	Hint    string
}

func (e UnsupportedFeatureError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("%s: %s is not supported: %s", e.Dialect, e.Feature, e.Hint)
	}
	return fmt.Sprintf("%s: %s is not supported", e.Dialect, e.Feature)
}

// checkKeyword rejects a keyword the dialect cannot run.
func (d Dialect) checkKeyword(word string) error {
	switch strings.ToUpper(word) {
	case "ILIKE":
		if !d.Capabilities.CaseInsensitiveLike {
			return UnsupportedFeatureError{Feature: "ILIKE", Dialect: d.Name, Hint: "use LIKE on LOWER(column)"}
		}
	case "LIMIT":
		if !d.Capabilities.LimitOffset {
			return UnsupportedFeatureError{Feature: "LIMIT", Dialect: d.Name, Hint: "use OFFSET ... FETCH NEXT ... ROWS ONLY"}
		}
	}
	return nil
}
