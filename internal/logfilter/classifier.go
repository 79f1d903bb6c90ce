// Package logfilter classifies Hytale server log lines and hides the noise
// produced during startup and shutdown.
package logfilter

import "strings"

type Level int

const (
	Info Level = iota
	Warning
	Error
)

func (l Level) String() string {
	switch l {
	case Error:
		return "error"
	case Warning:
		return "warning"
	default:
		return "info"
	}
}

// noiseMarkers hide info lines and the numeric progress lines of the
// Setup and Shutdown Modules phases.
var noiseMarkers = []string{
	"INFO]",
	"-=|Setup|",
	"=|Setup|",
	"-=|Shutdown Modules|",
	"=|Shutdown Modules|",
}

// Classify detects the severity of line. ERROR wins over WARN.
func Classify(line string) Level {
	switch {
	case strings.Contains(line, "ERROR"):
		return Error
	case strings.Contains(line, "WARN"):
		return Warning
	default:
		return Info
	}
}

// ShouldFilter reports whether line is hidden when filtering is enabled.
func ShouldFilter(line string, enabled bool) bool {
	if !enabled {
		return false
	}
	for _, marker := range noiseMarkers {
		if strings.Contains(line, marker) {
			return true
		}
	}
	return false
}

type Line struct {
	Number int
	Text   string
	Level  Level
}

// Filter splits content into numbered lines, drops filtered ones and
// classifies the rest. Line numbers refer to the unfiltered content.
func Filter(content string, enabled bool) []Line {
	var lines []Line
	for i, text := range strings.Split(strings.TrimRight(content, "\r\n"), "\n") {
		text = strings.TrimRight(text, "\r")
		if ShouldFilter(text, enabled) {
			continue
		}
		lines = append(lines, Line{Number: i + 1, Text: text, Level: Classify(text)})
	}
	return lines
}
