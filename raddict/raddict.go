// Package raddict embeds the default RADIUS attribute dictionary bundled
// with this module, so dictionary.Default can build a process-wide
// singleton without requiring callers to ship their own dictionary file.
package raddict

import _ "embed"

// Default is the raw text of the bundled default dictionary, in the
// grammar described by spec.md §6 (ATTRIBUTE/VALUE/VENDOR/VENDORATTR,
// '#' comments).
//
//go:embed default.dictionary
var Default string
