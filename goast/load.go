package goast

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/scanner"
	"go/token"
	"io"
	"os"
	"time"

	"github.com/erraggy/treeq/grammar"
	"github.com/erraggy/treeq/query"
	"github.com/erraggy/treeq/treeqerrors"
	"github.com/erraggy/treeq/walker"
)

// DefaultMaxFileSize is the largest source accepted when no limit is set.
const DefaultMaxFileSize int64 = 16 << 20

// File is a parsed Go source file together with the grammar that traverses it.
type File struct {
	// Path is the file path, or the name given to in-memory sources.
	Path string
	// Fset holds position information for AST.
	Fset *token.FileSet
	// AST is the parsed file.
	AST *ast.File
	// Src is the source text.
	Src []byte
	// Registry is the go/ast grammar matching the load's comment setting.
	Registry *grammar.Registry
	// LoadTime is the time spent reading and parsing.
	LoadTime time.Duration

	logger walker.Logger
}

// Option configures a load.
type Option func(*loadConfig) error

type loadConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	reader   io.Reader
	bytes    []byte

	name        string
	comments    bool
	maxFileSize int64
	logger      walker.Logger
}

// WithFilePath loads the file at path.
func WithFilePath(path string) Option {
	return func(cfg *loadConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithReader loads source from r.
func WithReader(r io.Reader) Option {
	return func(cfg *loadConfig) error {
		if r == nil {
			return fmt.Errorf("reader cannot be nil")
		}
		cfg.reader = r
		return nil
	}
}

// WithBytes loads source from src.
func WithBytes(src []byte) Option {
	return func(cfg *loadConfig) error {
		if src == nil {
			return fmt.Errorf("source bytes cannot be nil")
		}
		cfg.bytes = src
		return nil
	}
}

// WithSourceName sets the file name reported for in-memory sources.
func WithSourceName(name string) Option {
	return func(cfg *loadConfig) error {
		cfg.name = name
		return nil
	}
}

// WithComments keeps comments in the parsed file and registers the comment
// kinds in the grammar.
func WithComments(enabled bool) Option {
	return func(cfg *loadConfig) error {
		cfg.comments = enabled
		return nil
	}
}

// WithMaxFileSize limits the size of the source in bytes. Zero means
// DefaultMaxFileSize.
func WithMaxFileSize(n int64) Option {
	return func(cfg *loadConfig) error {
		if n < 0 {
			return fmt.Errorf("max file size cannot be negative: %d", n)
		}
		cfg.maxFileSize = n
		return nil
	}
}

// WithLogger sets the logger handed to trees built from the file.
func WithLogger(l walker.Logger) Option {
	return func(cfg *loadConfig) error {
		cfg.logger = l
		return nil
	}
}

// Load reads and parses one Go source file.
//
// Example:
//
//	f, err := goast.Load(goast.WithFilePath("main.go"), goast.WithComments(true))
func Load(opts ...Option) (*File, error) {
	cfg := &loadConfig{logger: walker.NopLogger{}}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, &treeqerrors.ConfigError{Message: "goast: invalid options", Cause: err}
		}
	}

	sources := 0
	for _, set := range []bool{cfg.filePath != nil, cfg.reader != nil, cfg.bytes != nil} {
		if set {
			sources++
		}
	}
	if sources != 1 {
		return nil, &treeqerrors.ConfigError{
			Option:  "source",
			Value:   sources,
			Message: "goast: exactly one of WithFilePath, WithReader or WithBytes is required",
		}
	}
	limit := cfg.maxFileSize
	if limit == 0 {
		limit = DefaultMaxFileSize
	}

	start := time.Now()
	name := cfg.name
	var src []byte
	var err error
	switch {
	case cfg.filePath != nil:
		if name == "" {
			name = *cfg.filePath
		}
		src, err = readFile(*cfg.filePath, limit)
	case cfg.reader != nil:
		src, err = readLimited(cfg.reader, limit)
	default:
		src = cfg.bytes
		if int64(len(src)) > limit {
			err = fmt.Errorf("source exceeds %d bytes", limit)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("goast: failed to read %s: %w", displayName(name), err)
	}
	if name == "" {
		name = "source.go"
	}

	mode := parser.SkipObjectResolution
	if cfg.comments {
		mode |= parser.ParseComments
	}
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, name, src, mode)
	if err != nil {
		return nil, parseError(name, err)
	}

	cfg.logger.Debug("parsed go source", "path", name, "bytes", len(src), "decls", len(file.Decls))
	return &File{
		Path:     name,
		Fset:     fset,
		AST:      file,
		Src:      src,
		Registry: NewRegistry(cfg.comments),
		LoadTime: time.Since(start),
		logger:   cfg.logger,
	}, nil
}

// Tree anchors a query tree at the file node.
func (f *File) Tree() (*query.Tree, error) {
	return query.New(f.Registry, f.AST, query.WithLogger(f.logger))
}

func readFile(path string, limit int64) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() > limit {
		return nil, fmt.Errorf("file is %d bytes, limit is %d", info.Size(), limit)
	}
	return os.ReadFile(path)
}

func readLimited(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("source exceeds %d bytes", limit)
	}
	return data, nil
}

func displayName(name string) string {
	if name == "" {
		return "source"
	}
	return name
}

// parseError converts a go/parser failure into a *treeqerrors.ParseError
// located at the first reported problem.
func parseError(name string, err error) error {
	var list scanner.ErrorList
	if !errors.As(err, &list) || len(list) == 0 {
		return &treeqerrors.ParseError{Path: name, Message: "invalid Go source", Cause: err}
	}
	first := list[0]
	msg := first.Msg
	if len(list) > 1 {
		msg += fmt.Sprintf(" (and %d more errors)", len(list)-1)
	}
	return &treeqerrors.ParseError{Path: name, Line: first.Pos.Line, Column: first.Pos.Column, Message: msg}
}
