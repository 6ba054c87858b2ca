// Package treeqerrors provides structured error types for treeq.
//
// The query algebra itself never fails: absence is an empty result. Errors
// arise only at the edges, when source text is loaded, when a tree or walk is
// configured, when a kind name given as text cannot be resolved, and when a
// textual query pipeline cannot be compiled. Each category has a sentinel for
// use with [errors.Is] and a struct type for use with [errors.As].
//
//	f, err := goast.Load(goast.WithFilePath("main.go"))
//	if err != nil {
//	    var perr *treeqerrors.ParseError
//	    if errors.As(err, &perr) {
//	        fmt.Println(perr.Line, perr.Column)
//	    }
//	}
package treeqerrors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrParse indicates source text could not be parsed into a tree.
	ErrParse = errors.New("parse error")

	// ErrConfig indicates an invalid configuration or input.
	ErrConfig = errors.New("configuration error")

	// ErrUnknownKind indicates a kind name that the grammar does not register.
	ErrUnknownKind = errors.New("unknown kind")

	// ErrPipeline indicates a textual query pipeline could not be compiled or run.
	ErrPipeline = errors.New("pipeline error")
)

// ParseError represents a failure to parse source text.
type ParseError struct {
	// Path is the file path or source identifier
	Path string
	// Line is the line number where the error occurred (0 if unknown)
	Line int
	// Column is the column number where the error occurred (0 if unknown)
	Column int
	// Message describes the parsing failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d", e.Line)
		if e.Column > 0 {
			msg += fmt.Sprintf(", column %d", e.Column)
		}
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// ConfigError represents an invalid configuration or input.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

// KindError reports a kind name that could not be resolved against a grammar.
type KindError struct {
	// Name is the kind name as given by the caller
	Name string
	// Suggestions lists registered kind names that are close to Name
	Suggestions []string
}

// Error returns a human-readable error message.
func (e *KindError) Error() string {
	msg := "unknown kind"
	if e.Name != "" {
		msg += fmt.Sprintf(" %q", e.Name)
	}
	if len(e.Suggestions) > 0 {
		msg += " (did you mean " + strings.Join(e.Suggestions, ", ") + "?)"
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *KindError) Is(target error) bool {
	return target == ErrUnknownKind
}

// PipelineError represents a failure to compile or run one step of a query pipeline.
type PipelineError struct {
	// Step is the zero-based index of the failing step (-1 when not step specific)
	Step int
	// Op is the step's operator name, if known
	Op string
	// Message describes the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *PipelineError) Error() string {
	msg := "pipeline error"
	if e.Step >= 0 {
		msg += fmt.Sprintf(" at step %d", e.Step+1)
	}
	if e.Op != "" {
		msg += " (" + e.Op + ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *PipelineError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
// A PipelineError caused by an unknown kind also matches ErrUnknownKind via Unwrap.
func (e *PipelineError) Is(target error) bool {
	return target == ErrPipeline
}
