// Package registry provides a generic, named store used by the sandbox for
// module records and by the bootstrap layer for its factory and value
// catalogs. Names are unique; listing is always sorted so that batch
// operations built on top of it are deterministic.
package registry
