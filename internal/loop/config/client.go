package config

// Terminal rendering
const (
	MaxTermWidth  = 200 // Columns; wider terminals get a centered render area
	MaxTermHeight = 80  // Rows
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)
