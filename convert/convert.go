// Package convert holds small formatting helpers shared across the tool.
package convert

import "fmt"

var suffixes = [...]string{"B", "KB", "MB", "GB", "TB", "PB", "EB", "ZB", "YB"}

// BytesToHuman renders a byte count in base-1024 units with one decimal
// place, picking the largest unit that keeps the scaled value below 1024.
// Zero and negative counts (the "unavailable" case) render as "0 bytes".
func BytesToHuman(sizeInBytes int64) string {
	if sizeInBytes <= 0 {
		return "0 bytes"
	}

	size := float64(sizeInBytes)
	i := 0
	for size >= 1024 && i < len(suffixes)-1 {
		size /= 1024
		i++
	}
	return fmt.Sprintf("%.1f %s", size, suffixes[i])
}
