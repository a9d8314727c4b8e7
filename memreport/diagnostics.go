package memreport

import (
	"fmt"
	"os"
	"sync"
)

// Diagnostics is off by default: construction and bit-vector-variant
// selection are hot paths, and most callers never want the log file
// touched. Enable with EnableDiagnostics to see how construction is
// progressing (kdw.Construct logs each dimension's wavelet depth and
// distinct-value count; the sbv size estimator does not log its choice).
var (
	diagEnabled bool
	diagFile    = "kdwtree_diagnostics.log"
	diagMu      sync.Mutex
)

// EnableDiagnostics turns on LogVariantChoice's file output, optionally
// overriding the default log path.
func EnableDiagnostics(path string) {
	diagMu.Lock()
	defer diagMu.Unlock()
	diagEnabled = true
	if path != "" {
		diagFile = path
	}
}

// DisableDiagnostics turns logging back off.
func DisableDiagnostics() {
	diagMu.Lock()
	defer diagMu.Unlock()
	diagEnabled = false
}

// LogVariantChoice appends a single diagnostic line, a no-op unless
// EnableDiagnostics was called.
func LogVariantChoice(msg string) {
	diagMu.Lock()
	defer diagMu.Unlock()
	if !diagEnabled {
		return
	}
	f, err := os.OpenFile(diagFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	defer f.Close()
	fmt.Fprintln(f, msg)
}

// ClearDiagnostics removes the diagnostic log file, if present.
func ClearDiagnostics() {
	diagMu.Lock()
	defer diagMu.Unlock()
	os.Remove(diagFile)
}
