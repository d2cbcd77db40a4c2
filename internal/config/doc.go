// SPDX-License-Identifier: MPL-2.0

// Package config loads the pixelrun configuration: built-in defaults layered
// under an optional TOML config file and PIXELRUN_* environment variables.
package config
