// Package service wires the MCP tool set to a transport.
//
// It knows how to run MCP over stdio or streamable HTTP and delegates the
// meaning of each tool to the domain package.
package service
