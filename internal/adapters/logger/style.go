package logger

// Palette used by the pretty handler.
const (
	colorSlate  = "#667085"
	colorRed    = "#D93025"
	colorYellow = "#F59E0B"
)

// Icons.
const (
	iconCross   = "✗"
	iconWarning = "!"
)
