// SPDX-License-Identifier: MPL-2.0

// Package pathlist manipulates path-list environment variable values such as
// PATH and PYTHONPATH: single strings holding multiple filesystem paths
// delimited by os.PathListSeparator, searched in order.
package pathlist

import (
	"os"
	"strings"
)

// Separator is the platform path-list delimiter as a string
// (":" on POSIX systems, ";" on Windows).
var Separator = string(os.PathListSeparator)

// Split splits a path-list value into its segments. An empty value yields
// no segments. Empty segments (e.g. from a trailing separator) are kept so
// that Join(Split(v)) round-trips.
func Split(value string) []string {
	if value == "" {
		return nil
	}
	return strings.Split(value, Separator)
}

// Join assembles segments into a path-list value.
func Join(segments []string) string {
	return strings.Join(segments, Separator)
}

// Contains reports whether entry is present in the path-list value as an
// exact segment. Substring matches do not count: "/opt/app" is not contained
// in "/opt/application".
func Contains(value, entry string) bool {
	for _, seg := range Split(value) {
		if seg == entry {
			return true
		}
	}
	return false
}

// PrependUnique returns the path-list value with entry prepended, unless the
// entry is already present as an exact segment, in which case the value is
// returned unchanged. Existing segments and their order are always preserved.
//
// The operation is idempotent: PrependUnique(PrependUnique(v, e), e) equals
// PrependUnique(v, e).
func PrependUnique(value, entry string) string {
	if entry == "" {
		return value
	}
	if Contains(value, entry) {
		return value
	}
	if value == "" {
		return entry
	}
	return entry + Separator + value
}
