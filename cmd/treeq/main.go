package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/treeq"
	"github.com/erraggy/treeq/cmd/treeq/commands"
	"github.com/erraggy/treeq/internal/mcpserver"
)

// commandNames lists the top-level commands, for typo suggestions.
var commandNames = []string{"query", "kinds", "mcp", "version", "help"}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version", "-v", "--version":
		fmt.Printf("treeq v%s\n", treeq.Version())
		fmt.Printf("commit: %s\n", treeq.Commit())
		fmt.Printf("built: %s\n", treeq.BuildTime())
		fmt.Printf("go: %s\n", treeq.GoVersion())
	case "help", "-h", "--help":
		printUsage()
	case "query":
		exitOnError(commands.HandleQuery(os.Args[2:]))
	case "kinds":
		exitOnError(commands.HandleKinds(os.Args[2:]))
	case "mcp":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		err := mcpserver.Run(ctx)
		stop()
		exitOnError(err)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			fmt.Fprintf(os.Stderr, "Did you mean: %s?\n", suggestion)
		}
		fmt.Fprintln(os.Stderr)
		printUsage()
		os.Exit(1)
	}
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// suggestCommand returns the known command closest to input, or "" when none
// is within an edit distance of 2.
func suggestCommand(input string) string {
	best, bestDist := "", 3
	for _, name := range commandNames {
		if d := editDistance(input, name); d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}

// editDistance is the Levenshtein distance between a and b.
func editDistance(a, b string) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func printUsage() {
	fmt.Println(`treeq - jQuery-style structural queries over Go syntax trees

Usage:
  treeq <command> [options]

Commands:
  query       Run a query pipeline over Go source files
  kinds       List the node kinds a pipeline can name
  mcp         Serve the query and kinds tools over MCP (stdio)
  version     Show version information
  help        Show this help message

Examples:
  treeq query -p 'find FuncDecl | filter '\''name startsWith "Test"'\''' ./...
  treeq query -p 'find ReturnStmt | parent *' --text main.go
  treeq query -p 'find FuncDecl | has' --format json pkg/
  treeq kinds --comments
  treeq kinds main.go

Run 'treeq <command> --help' for more information on a command.`)
}
