// Package config loads the settings of both clinic binaries.
//
// A config is built from up to three sources. Environment variables (prefixed
// with CLINIC_) are read first, command-line flags override them, and a JSON
// file named by -c or CLINIC_CONFIG overrides both. Only non-zero values
// override, so a source may set a subset of fields.
//
// [GetClientConfig] returns the offline-first client settings and
// [GetServerConfig] those of the reference backend. Both apply defaults and
// validate the result before returning it.
package config
