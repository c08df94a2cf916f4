// errors.go
//
// Typed error kinds surfaced by the interpreter. None of these are recovered
// internally: every failure aborts the run and propagates synchronously up
// the runner call chain to the top-level caller, which reports and exits.
//
// *RuntimeError is the propagation wrapper: the statement runner attaches the
// offending statement index and source text to whatever error bubbled out of
// evaluation, so the top level can point at the statement that failed.
// It unwraps, so errors.As against the inner kinds works through it.
package luma

import "fmt"

// ParseError reports malformed statement or operand text: a missing
// separator, a missing :type suffix, an empty conditional body.
type ParseError struct {
	Text string
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error: %s: %q", e.Msg, e.Text)
}

// TypeError reports literal text that does not match its declared type, or a
// call whose argument count does not match the callee's parameter list.
// Msg, when set, replaces the default literal-mismatch wording.
type TypeError struct {
	Text string
	Want string
	Msg  string
}

func (e *TypeError) Error() string {
	if e.Msg != "" {
		return "type error: " + e.Msg
	}
	return fmt.Sprintf("type error: %q is not a valid %s", e.Text, e.Want)
}

// UndefinedError reports a variable, function, marker or import alias that is
// not bound anywhere on the scope chain.
type UndefinedError struct {
	Name string
	Kind string // "variable", "function", "marker", "import"
}

func (e *UndefinedError) Error() string {
	return fmt.Sprintf("undefined %s: %s", e.Kind, e.Name)
}

// NotCallableError reports a bound value invoked as a function.
type NotCallableError struct {
	Name string
	Got  string // type name of the non-function value
}

func (e *NotCallableError) Error() string {
	return fmt.Sprintf("not callable: %s is a %s, not a function", e.Name, e.Got)
}

// ExternalProcessError reports a build failure, a nonzero exit, or a protocol
// violation from a bridged program. Stderr carries the child's diagnostic
// text verbatim.
type ExternalProcessError struct {
	Path   string
	Stderr string
}

func (e *ExternalProcessError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("external process failed: %s", e.Path)
	}
	return fmt.Sprintf("external process failed: %s: %s", e.Path, e.Stderr)
}

// DepthError reports language-level call recursion past the configured
// limit. Surfaced as a typed error instead of exhausting the host stack.
type DepthError struct {
	Limit int
}

func (e *DepthError) Error() string {
	return fmt.Sprintf("call depth exceeded limit of %d", e.Limit)
}

// RuntimeError wraps a failure with the statement that raised it. Index is
// the zero-based position within the running function.
type RuntimeError struct {
	Index int
	Stmt  string
	Err   error
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("runtime error at statement %d (%s): %v", e.Index, e.Stmt, e.Err)
}

func (e *RuntimeError) Unwrap() error { return e.Err }

// atStatement tags err with the statement position unless it already carries
// one from a deeper frame.
func atStatement(err error, index int, stmt string) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*RuntimeError); ok {
		return err
	}
	return &RuntimeError{Index: index, Stmt: stmt, Err: err}
}
