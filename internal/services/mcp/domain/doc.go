// Package domain defines the read-only MCP tools over the tracker registries.
//
// Each tool pairs a schema constructor with a typed handler so the service
// layer can register them without knowing their payloads.
package domain
