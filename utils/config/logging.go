package config

import "fmt"

// Verbose indicates whether verbose logging is enabled
var Verbose bool

// Debug indicates whether debug logging is enabled
var Debug bool

// VerboseLog prints high-level operational information if verbose mode is enabled
func VerboseLog(format string, args ...interface{}) {
	if Verbose {
		fmt.Printf("[INFO] "+format+"\n", args...)
	}
}

// DebugLog prints detailed internal information if debug mode is enabled
func DebugLog(format string, args ...interface{}) {
	if Debug || Verbose {
		fmt.Printf("[DEBUG] "+format+"\n", args...)
	}
}
