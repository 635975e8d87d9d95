package viewport

import (
	"fmt"
	"strings"
)

// Tool is the interaction mode that decides how pointer and wheel input is
// interpreted.
type Tool string

const (
	ToolPointer     Tool = "pointer"
	ToolPan         Tool = "pan"
	ToolZoom        Tool = "zoom"
	ToolLength      Tool = "length"
	ToolAngle       Tool = "angle"
	ToolCircle      Tool = "circle"
	ToolRectangle   Tool = "rectangle"
	ToolWindowLevel Tool = "window-level"
)

// AllTools returns all tools in toolbar order.
func AllTools() []Tool {
	return []Tool{ToolPointer, ToolPan, ToolZoom, ToolLength, ToolAngle, ToolCircle, ToolRectangle, ToolWindowLevel}
}

// IsValid checks if a tool string is valid.
func IsValid(s string) bool {
	for _, t := range AllTools() {
		if string(t) == s {
			return true
		}
	}
	return false
}

// ParseTool converts a string to a Tool. Matching is case-insensitive and
// accepts "wwwc" as an alias for window-level.
func ParseTool(s string) (Tool, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "wwwc" {
		return ToolWindowLevel, nil
	}
	if IsValid(s) {
		return Tool(s), nil
	}
	names := make([]string, 0, len(AllTools()))
	for _, t := range AllTools() {
		names = append(names, string(t))
	}
	return "", fmt.Errorf("invalid tool: %s (valid: %s)", s, strings.Join(names, ", "))
}

// String returns the tool name.
func (t Tool) String() string {
	return string(t)
}

// Drags reports whether a pointer drag with this tool pans the view.
func (t Tool) Drags() bool {
	return t == ToolPointer || t == ToolPan
}

// Measures reports whether the tool places measurement points.
func (t Tool) Measures() bool {
	switch t {
	case ToolLength, ToolAngle, ToolCircle, ToolRectangle:
		return true
	}
	return false
}
