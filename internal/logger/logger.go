package logger

import (
	"fmt"
	"os"
	"time"
)

// ANSI color codes. Disabled when NO_COLOR is set.
const (
	reset  = "\033[0m"
	bold   = "\033[1m"
	dim    = "\033[2m"
	red    = "\033[31m"
	green  = "\033[32m"
	yellow = "\033[33m"
	cyan   = "\033[36m"
)

func colorized() bool {
	return os.Getenv("NO_COLOR") == ""
}

func emit(color, symbol, tag, msg string) {
	ts := time.Now().Format("15:04:05")
	if colorized() {
		fmt.Fprintf(os.Stdout, "%s%s%s %s%s%s %s[%s]%s %s\n", dim, ts, reset, color, symbol, reset, bold, tag, reset, msg)
		return
	}
	fmt.Fprintf(os.Stdout, "%s %s [%s] %s\n", ts, symbol, tag, msg)
}

// Info logs an informational message under a component tag.
func Info(tag, msg string) {
	emit(cyan, "•", tag, msg)
}

// Success logs a completed action.
func Success(tag, msg string) {
	emit(green, "✓", tag, msg)
}

// Warn logs a recoverable problem.
func Warn(tag, msg string) {
	emit(yellow, "!", tag, msg)
}

// Error logs a failure.
func Error(tag, msg string) {
	emit(red, "✗", tag, msg)
}

// Banner prints the startup banner with the build version.
func Banner(version string) {
	if version == "" {
		version = "dev"
	}
	fmt.Fprintln(os.Stdout)
	if colorized() {
		fmt.Fprintf(os.Stdout, "  %s%sTitan Market%s %s%s%s\n", bold, cyan, reset, dim, version, reset)
	} else {
		fmt.Fprintf(os.Stdout, "  Titan Market %s\n", version)
	}
	fmt.Fprintln(os.Stdout)
}

// Section prints a section divider used around statistics blocks.
func Section(title string) {
	if colorized() {
		fmt.Fprintf(os.Stdout, "\n%s── %s ──%s\n", dim, title, reset)
		return
	}
	fmt.Fprintf(os.Stdout, "\n── %s ──\n", title)
}

// Stats prints a single key/value statistic line.
func Stats(key string, value interface{}) {
	fmt.Fprintf(os.Stdout, "   %-14s %v\n", key, value)
}

// Server logs the address the HTTP server is listening on.
func Server(addr string) {
	Success("Server", fmt.Sprintf("Listening on http://%s", addr))
}
