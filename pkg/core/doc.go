// Package core defines the shared data model of dumpnav.
//
// This package contains:
//   - Cells, columns, rows and tables decoded from a dump
//   - The ordered Database built once per run
//
// The Golden Rule: pkg/core imports ONLY pkg/token and stdlib.
// All other packages depend on core, not the reverse.
package core
