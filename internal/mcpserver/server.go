// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes treeq queries over Go source as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/treeq"
)

const serverInstructions = `treeq MCP server: runs jQuery-style structural queries over Go syntax trees.

Queries are pipelines of steps separated by "|", for example:
  find FuncDecl | filter 'name startsWith "Test"' | children BlockStmt
Traversal steps (find, children, parent, parents, next, prev, next_all, prev_all, siblings, next_until, prev_until) take a go/ast kind name such as FuncDecl or *ast.Ident, or * for any kind. Predicates are expr expressions over kind, type, name, path, depth, index, line, column and text.

Configuration: defaults are configurable via TREEQ_* environment variables set in your MCP client config.
- TREEQ_CACHE_ENABLED (default: true): cache parsed sources per session
- TREEQ_CACHE_MAX_SIZE (default: 10): maximum cached sources
- TREEQ_CACHE_TTL (default: 15m): cache entry lifetime
- TREEQ_QUERY_LIMIT (default: 100): default result limit
- TREEQ_MAX_LIMIT (default: 1000): upper bound for limit
- TREEQ_MAX_INLINE_SIZE (default: 10MiB): largest inline content accepted
- TREEQ_INCLUDE_COMMENTS (default: false): keep comment nodes by default`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		sourceCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}
	return newServer().Run(ctx, &mcp.StdioTransport{})
}

func newServer() *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "treeq", Version: treeq.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "query",
		Description: "Run a query pipeline over one Go source file and return the matching nodes with their kind, name, path and position. Provide the source as a file path or inline content. Pipelines ending in 'has' or 'is EXPR' return a boolean verdict. Use text=true to include each match's source text, and offset/limit to paginate. Default limit is configurable via TREEQ_QUERY_LIMIT.",
	}, handleQuery)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "kinds",
		Description: "List the go/ast node kinds that queries can name. With a source, returns only the kinds present in it, each with its occurrence count, in order of first appearance.",
	}, handleKinds)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.QueryLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.QueryLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
