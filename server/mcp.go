package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/jonwraymond/codesearch/index"
	"github.com/jonwraymond/codesearch/query"
)

// SearchToolName is the single tool this server exposes.
const SearchToolName = "semantic_search"

// MCPVersion is the protocol version reported on initialize.
const MCPVersion = "2024-11-05"

// MCPRequest represents an incoming MCP JSON-RPC request.
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      any             `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse represents an MCP JSON-RPC response.
type MCPResponse struct {
	JSONRPC string    `json:"jsonrpc"`
	ID      any       `json:"id"`
	Result  any       `json:"result,omitempty"`
	Error   *MCPError `json:"error,omitempty"`
}

// MCPError is a JSON-RPC error object.
type MCPError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Info describes this MCP server for the initialize response.
type Info struct {
	Name    string
	Version string
}

// Server exposes the query pipeline as an MCP tool server.
type Server struct {
	pipeline         *query.Pipeline
	info             Info
	defaultLimit     int
	defaultThreshold float64
	log              *zap.Logger
}

// Config configures a Server.
type Config struct {
	Pipeline *query.Pipeline
	Info     Info

	// DefaultLimit is used when a tools/call request omits limit.
	DefaultLimit int

	// DefaultThreshold is used when a tools/call request omits threshold.
	DefaultThreshold float64

	// Logger is optional; nil means no logging.
	Logger *zap.Logger
}

// New creates a Server with the given config.
func New(cfg Config) (*Server, error) {
	if cfg.Pipeline == nil {
		return nil, errors.New("server requires a pipeline")
	}
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = 10
	}
	if cfg.DefaultThreshold <= 0 {
		cfg.DefaultThreshold = query.DefaultThreshold
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Server{
		pipeline:         cfg.Pipeline,
		info:             cfg.Info,
		defaultLimit:     cfg.DefaultLimit,
		defaultThreshold: cfg.DefaultThreshold,
		log:              cfg.Logger,
	}, nil
}

// HandleRequest processes an MCP request and returns a response.
func (s *Server) HandleRequest(ctx context.Context, req MCPRequest) MCPResponse {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req.ID)
	case "tools/list":
		return s.handleToolsList(req.ID)
	case "tools/call":
		return s.handleToolsCall(ctx, req.ID, req.Params)
	default:
		return MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &MCPError{
				Code:    ErrCodeMethodNotFound,
				Message: fmt.Sprintf("method %s not found", req.Method),
			},
		}
	}
}

func (s *Server) handleInitialize(id any) MCPResponse {
	result := map[string]any{
		"protocolVersion": MCPVersion,
		"capabilities": map[string]any{
			"tools": map[string]any{},
		},
		"serverInfo": map[string]any{
			"name":    s.info.Name,
			"version": s.info.Version,
		},
	}

	return MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Result:  result,
	}
}

func (s *Server) handleToolsList(id any) MCPResponse {
	result := map[string]any{
		"tools": []map[string]any{toMCPTool(searchTool())},
	}

	return MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Result:  result,
	}
}

type toolsCallParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

type searchArgs struct {
	Query     string   `json:"query"`
	Limit     *int     `json:"limit,omitempty"`
	Threshold *float64 `json:"threshold,omitempty"`
	Mode      string   `json:"mode,omitempty"`
}

// failurePayload is the success:false tool result described by the
// tool contract. Search failures never surface as JSON-RPC errors so
// hosts can render the message to the user.
type failurePayload struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// successPayload wraps the pipeline response with the success flag.
type successPayload struct {
	Success     bool           `json:"success"`
	Query       string         `json:"query"`
	ResultCount int            `json:"resultCount"`
	Results     []query.Result `json:"results"`
}

func (s *Server) handleToolsCall(ctx context.Context, id any, params json.RawMessage) MCPResponse {
	var callParams toolsCallParams
	if err := json.Unmarshal(params, &callParams); err != nil {
		return MCPResponse{
			JSONRPC: "2.0",
			ID:      id,
			Error: &MCPError{
				Code:    ErrCodeInvalidParams,
				Message: err.Error(),
			},
		}
	}

	if callParams.Name != SearchToolName {
		return MCPResponse{
			JSONRPC: "2.0",
			ID:      id,
			Error: &MCPError{
				Code:    ErrCodeToolNotFound,
				Message: fmt.Sprintf("tool %s not found", callParams.Name),
			},
		}
	}

	var args searchArgs
	if len(callParams.Arguments) > 0 {
		if err := json.Unmarshal(callParams.Arguments, &args); err != nil {
			return MCPResponse{
				JSONRPC: "2.0",
				ID:      id,
				Error: &MCPError{
					Code:    ErrCodeInvalidParams,
					Message: err.Error(),
				},
			}
		}
	}

	return MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Result:  s.runSearch(ctx, args),
	}
}

func (s *Server) runSearch(ctx context.Context, args searchArgs) any {
	limit := s.defaultLimit
	if args.Limit != nil {
		limit = *args.Limit
	}
	threshold := s.defaultThreshold
	if args.Threshold != nil {
		threshold = *args.Threshold
	}
	mode := query.ModeSemantic
	if args.Mode != "" {
		mode = query.Mode(args.Mode)
	}

	resp, err := s.pipeline.SearchMode(ctx, args.Query, mode, limit, threshold)
	if err != nil {
		s.log.Debug("search failed",
			zap.String("query", args.Query),
			zap.Error(err))
		return failureFor(err)
	}

	return successPayload{
		Success:     true,
		Query:       resp.Query,
		ResultCount: resp.ResultCount,
		Results:     resp.Results,
	}
}

func failureFor(err error) failurePayload {
	switch {
	case errors.Is(err, index.ErrNotReady):
		return failurePayload{
			Success: false,
			Message: "no code has been indexed yet; build the index first",
			Error:   "not_indexed",
		}
	case query.IsInvalidInput(err):
		return failurePayload{
			Success: false,
			Message: err.Error(),
			Error:   "invalid_input",
		}
	default:
		return failurePayload{
			Success: false,
			Message: "search failed",
			Error:   err.Error(),
		}
	}
}

func searchTool() mcp.Tool {
	return mcp.Tool{
		Name:        SearchToolName,
		Description: "Search indexed source code by meaning and return ranked matches with context snippets",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "Natural-language or code-fragment query",
				},
				"limit": map[string]any{
					"type":        "number",
					"description": "Maximum number of results",
				},
				"threshold": map[string]any{
					"type":        "number",
					"description": "Minimum similarity score in [0,1]",
				},
				"mode": map[string]any{
					"type":        "string",
					"description": "Scoring mode: semantic, lexical, or hybrid",
				},
			},
			"required": []string{"query"},
		},
	}
}

func toMCPTool(tool mcp.Tool) map[string]any {
	return map[string]any{
		"name":        tool.Name,
		"description": tool.Description,
		"inputSchema": tool.InputSchema,
	}
}
