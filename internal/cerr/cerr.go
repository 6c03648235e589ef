// Package cerr defines the structured error type shared by every component
// of the rule-expression engine.
package cerr

import "fmt"

// Kind identifies the category of failure, mirroring the error kinds named
// in the engine's design: a small closed set rather than open-ended string
// codes.
type Kind string

const (
	NotANodeList         Kind = "NOT_A_NODE_LIST"
	InvalidAST           Kind = "INVALID_AST"
	FatLeak              Kind = "FAT_LEAK"
	UnexpectedDependency Kind = "UNEXPECTED_DEPENDENCY"
	MissingDependency    Kind = "MISSING_DEPENDENCY"
	ParsingError         Kind = "PARSING_ERROR"
)

// Error is a structured error carrying a Kind, a human-readable message, an
// optional wrapped cause, and arbitrary context for programmatic inspection.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
	Context map[string]interface{}
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates an Error with no wrapped cause.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message, Context: make(map[string]interface{})}
}

// Wrap creates an Error that wraps cause.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause, Context: make(map[string]interface{})}
}

// WithContext attaches a key/value pair, returning the receiver for chaining.
func (e *Error) WithContext(key string, value interface{}) *Error {
	e.Context[key] = value
	return e
}

// Is reports whether err is a *Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if err == nil {
		return false
	}
	if ce, ok := err.(*Error); ok {
		e = ce
	} else if u, ok := err.(interface{ Unwrap() error }); ok {
		return Is(u.Unwrap(), kind)
	} else {
		return false
	}
	return e.Kind == kind
}

// NewNotANodeList reports that a polynomial cannot be read as a node list.
func NewNotANodeList(message string) *Error {
	return New(NotANodeList, message)
}

// NewInvalidAST reports a Rex that violates a structural invariant.
func NewInvalidAST(message string) *Error {
	return New(InvalidAST, message)
}

// NewFatLeak reports that the compiler encountered an un-normalized Fat node.
func NewFatLeak() *Error {
	return New(FatLeak, "compiler encountered a Fat node; Rex must be normalized first")
}

// NewUnexpectedDependency reports a compile-time reference to an instance
// name absent from the context.
func NewUnexpectedDependency(name string) *Error {
	return New(UnexpectedDependency, fmt.Sprintf("instance %q has no content in context", name)).
		WithContext("name", name)
}

// NewMissingDependency reports a pre-check failure: the caller may install
// the content for name and retry.
func NewMissingDependency(name string) *Error {
	return New(MissingDependency, fmt.Sprintf("instance %q not yet resolved", name)).
		WithContext("name", name)
}

// DependencyName extracts the offending instance name from an
// UnexpectedDependency or MissingDependency error, if present.
func DependencyName(err error) (string, bool) {
	e, ok := err.(*Error)
	if !ok {
		return "", false
	}
	name, ok := e.Context["name"].(string)
	return name, ok
}
