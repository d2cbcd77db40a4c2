// SPDX-License-Identifier: MPL-2.0

package config

var (
	// configFilePathOverride is set via the --config flag and used
	// exclusively when non-empty.
	configFilePathOverride string

	// configDirOverride lets tests redirect the config directory.
	configDirOverride string
)

// SetConfigFilePathOverride routes Load to an explicit config file.
func SetConfigFilePathOverride(path string) {
	configFilePathOverride = path
}

// SetConfigDirOverride redirects the config directory, for tests.
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}
