// Package config manages user-level settings stored at ~/.recordx/config.yaml.
// Values can be overridden with RECORDX_* environment variables. Settings
// cover the id strategy, the default snapshot file name, token length, the
// first sequential id and the log level.
package config
