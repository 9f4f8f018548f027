package game

import (
	"fmt"
	"time"
)

// formatDuration formats a duration as MM:SS
func formatDuration(d time.Duration) string {
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// contains reports whether (x, y) lies in the w x h rectangle at (rx, ry).
func contains(rx, ry, w, h int, x, y float64) bool {
	return x >= float64(rx) && x <= float64(rx+w) &&
		y >= float64(ry) && y <= float64(ry+h)
}
