package ui

import "time"

// Screen geometry, in terminal cells.
const (
	// ScreenWidth is the width of the phone screen column.
	ScreenWidth = 44

	cardWidth  = 36
	cardHeight = 7

	// Tray rows: padding, staging stack, gap, three grid rows of swatch
	// and label separated by a blank line.
	trayHeight = 11
	gridRows   = 3
	gridCols   = 2
	tileWidth  = 18
	tileGap    = 2
	gridLeft   = (ScreenWidth - gridCols*tileWidth - (gridCols-1)*tileGap) / 2

	stackSlot     = 6
	stackChip     = 4
	headerInset   = 2
	progressWidth = ScreenWidth - 12
)

// Overlay limits.
const (
	// ActivityLines is how many log lines the activity overlay keeps.
	ActivityLines = 200

	// ActivityRefresh is how often the open activity overlay rereads the log.
	ActivityRefresh = time.Second

	modalWidth = 56
)
