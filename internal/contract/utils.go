package contract

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
)

// DXI band labels.
const (
	GoodValue     = "Good"     // 70 and above
	ModerateValue = "Moderate" // 50 to 70
	LowValue      = "Low"      // below 50
)

// Color variables for console output.
var (
	GoodColor     = color.New(color.FgGreen, color.Bold) // healthy signal
	ModerateColor = color.New(color.FgYellow)            // standard caution, not bold
	LowColor      = color.New(color.FgRed, color.Bold)   // needs improvement
)

// GetPlainLabel returns a plain text band for a DXI score. This is the
// core logic used for CSV, JSON, and table printing.
func GetPlainLabel(score float64) string {
	switch {
	case score >= 70:
		return GoodValue
	case score >= 50:
		return ModerateValue
	default:
		return LowValue
	}
}

// GetColorLabel returns a colored band label for console output (table).
func GetColorLabel(score float64) string {
	text := GetPlainLabel(score)
	switch text {
	case GoodValue:
		return GoodColor.Sprint(text)
	case ModerateValue:
		return ModerateColor.Sprint(text)
	default:
		return LowColor.Sprint(text)
	}
}

// LogFatal logs an error message to stderr and exits.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetStoreDBFilePath returns the path to the SQLite DB file for the sprint
// store when no explicit connection string is configured.
func GetStoreDBFilePath() string {
	dir := ".data"
	if home, err := os.UserHomeDir(); err == nil {
		dir = filepath.Join(home, ".opendxi")
	}
	_ = os.MkdirAll(dir, 0o755)
	return filepath.Join(dir, "opendxi.db")
}
