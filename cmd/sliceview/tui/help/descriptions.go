package help

// HelpText contains information about a tool
type HelpText struct {
	Title       string
	Description string
	Details     string
}

// Texts contains help information for every viewer tool, keyed by tool name
var Texts = map[string]HelpText{
	"pointer": {
		Title:       "POINTER",
		Description: "Default tool. Drag to move the image.",
		Details:     "The wheel steps through slices.",
	},
	"pan": {
		Title:       "PAN",
		Description: "Drag to move the image inside the view.",
		Details:     "Reset view (r) puts the image back in the center.",
	},
	"zoom": {
		Title:       "ZOOM",
		Description: "The wheel zooms instead of changing slice.",
		Details:     "Zoom is limited to 0.1x - 10x. + and - zoom with any tool.",
	},
	"length": {
		Title:       "LENGTH",
		Description: "Click two points to measure a distance.",
		Details:     "Result in millimetres, using the slice pixel spacing.",
	},
	"angle": {
		Title:       "ANGLE",
		Description: "Click three points: first arm, vertex, second arm.",
		Details:     "Result in degrees, always between 0° and 180°.",
	},
	"circle": {
		Title:       "CIRCLE",
		Description: "Click the center, then a point on the edge.",
		Details:     "Result is the enclosed area in mm².",
	},
	"rectangle": {
		Title:       "RECTANGLE",
		Description: "Click two opposite corners.",
		Details:     "Result is the enclosed area in mm².",
	},
	"window-level": {
		Title:       "WINDOW / LEVEL",
		Description: "Drag up/down to move the level, left/right to change the width.",
		Details: `w: type exact values   p: cycle modality presets
Any override is replaced when the slice changes.`,
	},
}
