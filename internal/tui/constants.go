package tui

// Package-level constants to avoid magic numbers and improve readability.
const (
	// cellWidth and cellHeight convert terminal cells to the pointer units the
	// swipe recognizer measures in; a cell is about twice as tall as wide.
	cellWidth  = 8
	cellHeight = 16

	// chromeLines is header+description+progress+footer above and below the board.
	chromeLines = 7
	// boardMinHeight keeps bars readable in short terminals.
	boardMinHeight = 6
	boardMaxHeight = 24
	// pickerWidth caps the algorithm list.
	pickerWidth  = 60
	pickerHeight = 20

	// grid cells render two columns wide to look square.
	gridCellWidth = 2
)
