// Package config handles configuration loading for the rfrp-admin CLI.
//
// # Overview
//
// Configuration is loaded from a YAML file with environment variable
// expansion, plus a TOML profiles file for switching between controllers.
// Missing files fall back to built-in defaults, so the CLI works against a
// local controller with no configuration at all.
//
// # Configuration File
//
// $XDG_CONFIG_HOME/rfrp/config.yaml (default ~/.config/rfrp/config.yaml):
//
//	server:
//	  url: "https://rfrp.example.com/api/v1"
//	  timeout: "30s"
//	logging:
//	  level: "warn"
//	  format: "text"
//
// Values can reference environment variables with ${VAR_NAME} syntax.
// RFRP_SERVER_URL and RFRP_TIMEOUT override the file's server settings.
//
// # Profiles
//
// $XDG_CONFIG_HOME/rfrp/profiles.toml names alternate controllers:
//
//	[profiles.staging]
//	url = "https://staging.example.com/api/v1"
//	session_file = "/home/me/.config/rfrp/staging-session.json"
//
// Select one with rfrp-admin --profile staging or RFRP_PROFILE.
package config
