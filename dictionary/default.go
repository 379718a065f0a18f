package dictionary

import (
	"strings"
	"sync"

	"github.com/andrewz1/radius/raddict"
)

var defaultOnce = sync.OnceValue(func() *Dictionary {
	d := New()
	// The bundled default dictionary is self-contained (no $INCLUDE), so a
	// nil FileSystem is safe here; Parse would fail fast on an $INCLUDE
	// line if that ever changed without updating this call site.
	if err := Parse(d, strings.NewReader(raddict.Default), "", nil); err != nil {
		panic("dictionary: bundled default dictionary failed to parse: " + err.Error())
	}
	return d
})

// Default returns the process-wide default Dictionary, built once from the
// bundled resource in package raddict. It is read-only from the caller's
// perspective; concurrent readers need no synchronization of their own.
func Default() *Dictionary {
	return defaultOnce()
}
