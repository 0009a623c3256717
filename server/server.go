package server

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
)

// maxLineBytes caps a single stdio request line. Oversized source
// snippets belong in the index, not in a tool call.
const maxLineBytes = 1024 * 1024

// ServeStdio answers newline-delimited JSON-RPC requests on stdin with
// one response per line on stdout, until stdin closes or ctx is
// cancelled.
func ServeStdio(ctx context.Context, s *Server) error {
	return serveLines(ctx, s, os.Stdin, os.Stdout)
}

func serveLines(ctx context.Context, s *Server, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	encoder := json.NewEncoder(out)

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		var req MCPRequest
		if err := json.Unmarshal(scanner.Bytes(), &req); err != nil {
			if err := encoder.Encode(parseErrorResponse(err)); err != nil {
				return fmt.Errorf("encode parse error response: %w", err)
			}
			continue
		}

		if err := encoder.Encode(s.HandleRequest(ctx, req)); err != nil {
			return fmt.Errorf("encode response: %w", err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read request line: %w", err)
	}
	return nil
}

// ServeHTTP returns a handler that answers one POSTed JSON-RPC request
// per call with a JSON response body.
func ServeHTTP(s *Server) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var mcpReq MCPRequest
		if err := json.NewDecoder(req.Body).Decode(&mcpReq); err != nil {
			writeJSON(w, parseErrorResponse(err))
			return
		}

		writeJSON(w, s.HandleRequest(req.Context(), mcpReq))
	})
}

// ServeSSE returns a handler for hosts that expect responses as
// Server-Sent Events: the client POSTs a JSON-RPC request and the
// response arrives as a single "message" event on the stream.
func ServeSSE(s *Server) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")

		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "SSE not supported", http.StatusInternalServerError)
			return
		}

		var mcpReq MCPRequest
		if err := json.NewDecoder(req.Body).Decode(&mcpReq); err != nil {
			writeSSEEvent(w, flusher, "error", parseErrorResponse(err))
			return
		}

		writeSSEEvent(w, flusher, "message", s.HandleRequest(req.Context(), mcpReq))
	})
}

func parseErrorResponse(err error) MCPResponse {
	return MCPResponse{
		JSONRPC: "2.0",
		Error:   &MCPError{Code: ErrCodeParseError, Message: err.Error()},
	}
}

func writeJSON(w http.ResponseWriter, resp MCPResponse) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func writeSSEEvent(w http.ResponseWriter, f http.Flusher, event string, data any) {
	jsonData, _ := json.Marshal(data)
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, jsonData); err != nil {
		return
	}
	f.Flush()
}
