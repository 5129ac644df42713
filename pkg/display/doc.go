// Package display renders sandbox state for humans and tools.
//
// Reports are plain data built from a Sandbox (status, plan, check, graph).
// A Renderer writes them in one of several formats: styled terminal output,
// plain text, JSON, YAML, TOML, or GraphML for dependency graphs.
package display
