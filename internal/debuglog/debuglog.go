// Package debuglog provides debug logging utilities for the text buffer engine.
package debuglog

import "log"

// Enabled controls whether Printf produces output.
// Set via the demo program's -debug flag.
var Enabled bool

// Printf logs a message only when Enabled is true.
func Printf(format string, args ...any) {
	if Enabled {
		log.Printf("DEBUG: "+format, args...)
	}
}
