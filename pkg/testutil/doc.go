// Package testutil provides utilities for testing sandbox components.
//
// Key components:
//   - TestEnvironment: XDG isolation and a temp dir for manifests
//   - ManifestBuilder: declarative manifest setup, written as TOML or YAML
//   - Counter and Hooked: modules that record how the sandbox drives them
//
// All test data should be defined inline, not in external files.
package testutil
