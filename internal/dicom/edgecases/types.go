// Package edgecases varies generated series the way real exports vary:
// accented and punctuated names, unusual patient IDs and optional tags left
// out. The loader has to cope with all of them.
package edgecases

import (
	"fmt"
	"strings"
)

// Type is a category of edge case.
type Type string

const (
	SpecialChars Type = "special-chars"
	VariedIDs    Type = "varied-ids"
	MissingTags  Type = "missing-tags"
)

// AllTypes returns every edge case type.
func AllTypes() []Type {
	return []Type{SpecialChars, VariedIDs, MissingTags}
}

// ParseTypes parses a comma-separated list of types. "all" enables every type.
func ParseTypes(input string) ([]Type, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, nil
	}
	if input == "all" {
		return AllTypes(), nil
	}

	valid := make(map[Type]bool)
	for _, t := range AllTypes() {
		valid[t] = true
	}
	var result []Type
	for _, p := range strings.Split(input, ",") {
		t := Type(strings.TrimSpace(p))
		if !valid[t] {
			return nil, fmt.Errorf("unknown edge case type %q, valid types: %v", p, AllTypes())
		}
		result = append(result, t)
	}
	return result, nil
}

// Config selects the edge cases applied to a written series.
type Config struct {
	Types []Type
}

// IsEnabled returns true if any edge case type is selected.
func (c Config) IsEnabled() bool { return len(c.Types) > 0 }

// HasType checks if t is selected.
func (c Config) HasType(t Type) bool {
	for _, ct := range c.Types {
		if ct == t {
			return true
		}
	}
	return false
}
