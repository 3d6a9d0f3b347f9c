// Package main - report format registrations.
//
// Blank-import each report package to trigger its init() function,
// which registers the format with the report registry.
//
// To add a new format, add a blank import here:
//
//	_ "github.com/cmmcready/cmmcready/internal/report/pdf"
package main

import (
	// Register all supported report formats.
	_ "github.com/cmmcready/cmmcready/internal/report/csv"
	_ "github.com/cmmcready/cmmcready/internal/report/html"
	_ "github.com/cmmcready/cmmcready/internal/report/json"
)
