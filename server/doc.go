// Package server exposes the query pipeline as an MCP tool server.
//
// It handles the MCP JSON-RPC methods initialize, tools/list, and
// tools/call, and registers a single tool, semantic_search. The tool
// accepts {query, limit?, threshold?, mode?} and returns the pipeline's
// response wrapped with a success flag:
//
//	{"success": true, "query": ..., "resultCount": ..., "results": [...]}
//
// Search failures (invalid input, index not yet built) come back as
// {"success": false, "message": ..., "error": ...} tool results rather
// than JSON-RPC errors, so hosts can show the message to the user.
// JSON-RPC errors are reserved for protocol problems: malformed
// requests, unknown methods, unknown tools.
//
// Three transports are supported: stdio ([ServeStdio]), plain HTTP POST
// ([ServeHTTP]), and Server-Sent Events ([ServeSSE]).
package server
