// Package config assembles the run configuration for pgconf-watch.
//
// Values are layered from built-in defaults, an optional YAML file, and the process
// environment. The environment is read through an injected lookup function so that
// callers and tests never depend on os.Getenv directly.
package config
