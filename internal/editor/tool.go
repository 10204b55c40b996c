// Package editor provides the interactive tile map editor.
package editor

// Tool is the drawing operation applied at the cursor.
type Tool int

const (
	// ToolPaint writes a brush pick at the cursor.
	ToolPaint Tool = iota
	// ToolLine draws a line from the anchor to the cursor.
	ToolLine
	// ToolBox draws a framed room from the anchor to the cursor.
	ToolBox
	// ToolEllipse draws an ellipse centered on the anchor reaching the cursor.
	ToolEllipse
	// ToolFlood flood-fills the area under the cursor.
	ToolFlood
	// ToolReplace swaps every tile with the cursor's id inside the view.
	ToolReplace
	// ToolText types a label onto the overlay layer.
	ToolText

	toolCount
)

// String returns a human-readable tool name.
func (t Tool) String() string {
	switch t {
	case ToolPaint:
		return "paint"
	case ToolLine:
		return "line"
	case ToolBox:
		return "box"
	case ToolEllipse:
		return "ellipse"
	case ToolFlood:
		return "flood"
	case ToolReplace:
		return "replace"
	case ToolText:
		return "text"
	default:
		return "unknown"
	}
}

// Next returns the following tool, wrapping around.
func (t Tool) Next() Tool {
	return (t + 1) % toolCount
}

// needsAnchor returns true for tools that take two points.
func (t Tool) needsAnchor() bool {
	return t == ToolLine || t == ToolBox || t == ToolEllipse
}
