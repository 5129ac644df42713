// Package bootstrap binds module manifests to a Sandbox.
//
// A manifest names factories and values; a Catalog maps those names to Go
// code. Load registers every manifest module with the factory and aliases it
// names, and Autostart starts the configured entry points.
package bootstrap
